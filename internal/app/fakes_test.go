package app

import (
	"context"

	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/domain"
)

// fakeRequestService implements RequestService with overridable funcs. Nil
// funcs return zero values so tests only wire what they assert on.
type fakeRequestService struct {
	listFn         func(ctx context.Context) ([]domain.PurchaseRequest, error)
	getFn          func(ctx context.Context, id int) (*domain.PurchaseRequest, error)
	createFn       func(ctx context.Context, payload api.RequestPayload) (*domain.PurchaseRequest, error)
	updateFn       func(ctx context.Context, id int, payload api.RequestPayload) (*domain.PurchaseRequest, error)
	deleteFn       func(ctx context.Context, id int) error
	updateStatusFn func(ctx context.Context, id int, update api.StatusUpdate) (*domain.PurchaseRequest, error)
	hodUsersFn     func(ctx context.Context) ([]domain.HODUser, error)
}

func (f *fakeRequestService) ListRequests(ctx context.Context) ([]domain.PurchaseRequest, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx)
}

func (f *fakeRequestService) GetRequest(ctx context.Context, id int) (*domain.PurchaseRequest, error) {
	if f.getFn == nil {
		return nil, nil
	}
	return f.getFn(ctx, id)
}

func (f *fakeRequestService) CreateRequest(ctx context.Context, payload api.RequestPayload) (*domain.PurchaseRequest, error) {
	if f.createFn == nil {
		return nil, nil
	}
	return f.createFn(ctx, payload)
}

func (f *fakeRequestService) UpdateRequest(ctx context.Context, id int, payload api.RequestPayload) (*domain.PurchaseRequest, error) {
	if f.updateFn == nil {
		return nil, nil
	}
	return f.updateFn(ctx, id, payload)
}

func (f *fakeRequestService) DeleteRequest(ctx context.Context, id int) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeRequestService) UpdateStatus(ctx context.Context, id int, update api.StatusUpdate) (*domain.PurchaseRequest, error) {
	if f.updateStatusFn == nil {
		return nil, nil
	}
	return f.updateStatusFn(ctx, id, update)
}

func (f *fakeRequestService) HODUsers(ctx context.Context) ([]domain.HODUser, error) {
	if f.hodUsersFn == nil {
		return nil, nil
	}
	return f.hodUsersFn(ctx)
}

type fakeNotificationService struct {
	notificationsFn func(ctx context.Context) ([]domain.Notification, error)
	markReadFn      func(ctx context.Context, id int) error
}

func (f *fakeNotificationService) Notifications(ctx context.Context) ([]domain.Notification, error) {
	if f.notificationsFn == nil {
		return nil, nil
	}
	return f.notificationsFn(ctx)
}

func (f *fakeNotificationService) MarkNotificationRead(ctx context.Context, id int) error {
	if f.markReadFn == nil {
		return nil
	}
	return f.markReadFn(ctx, id)
}

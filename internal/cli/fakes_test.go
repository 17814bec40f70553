package cli

import (
	"context"

	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/domain"
)

// fakeRequestService implements app.RequestService with overridable
// behavior per call. Unset funcs return zero values.
type fakeRequestService struct {
	listFn    func(ctx context.Context) ([]domain.PurchaseRequest, error)
	getFn     func(ctx context.Context, id int) (*domain.PurchaseRequest, error)
	createFn  func(ctx context.Context, payload api.RequestPayload) (*domain.PurchaseRequest, error)
	updateFn  func(ctx context.Context, id int, payload api.RequestPayload) (*domain.PurchaseRequest, error)
	deleteFn  func(ctx context.Context, id int) error
	statusFn  func(ctx context.Context, id int, update api.StatusUpdate) (*domain.PurchaseRequest, error)
	hodFn     func(ctx context.Context) ([]domain.HODUser, error)
	statuses  []api.StatusUpdate
	deletions []int
}

func (f *fakeRequestService) ListRequests(ctx context.Context) ([]domain.PurchaseRequest, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeRequestService) GetRequest(ctx context.Context, id int) (*domain.PurchaseRequest, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return nil, api.ErrNotFound
}

func (f *fakeRequestService) CreateRequest(ctx context.Context, payload api.RequestPayload) (*domain.PurchaseRequest, error) {
	if f.createFn != nil {
		return f.createFn(ctx, payload)
	}
	return nil, nil
}

func (f *fakeRequestService) UpdateRequest(ctx context.Context, id int, payload api.RequestPayload) (*domain.PurchaseRequest, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, payload)
	}
	return nil, nil
}

func (f *fakeRequestService) DeleteRequest(ctx context.Context, id int) error {
	f.deletions = append(f.deletions, id)
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeRequestService) UpdateStatus(ctx context.Context, id int, update api.StatusUpdate) (*domain.PurchaseRequest, error) {
	f.statuses = append(f.statuses, update)
	if f.statusFn != nil {
		return f.statusFn(ctx, id, update)
	}
	return &domain.PurchaseRequest{ID: id, Status: update.Status}, nil
}

func (f *fakeRequestService) HODUsers(ctx context.Context) ([]domain.HODUser, error) {
	if f.hodFn != nil {
		return f.hodFn(ctx)
	}
	return []domain.HODUser{{ID: 1, FirstName: "Helen", LastName: "Tadesse"}}, nil
}

// fakeNotificationService implements app.NotificationService.
type fakeNotificationService struct {
	listFn     func(ctx context.Context) ([]domain.Notification, error)
	markFn     func(ctx context.Context, id int) error
	markedRead []int
}

func (f *fakeNotificationService) Notifications(ctx context.Context) ([]domain.Notification, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeNotificationService) MarkNotificationRead(ctx context.Context, id int) error {
	f.markedRead = append(f.markedRead, id)
	if f.markFn != nil {
		return f.markFn(ctx, id)
	}
	return nil
}

// fakeAuthService implements AuthService.
type fakeAuthService struct {
	loginFn    func(ctx context.Context, username, password string) (*api.LoginResponse, error)
	registerFn func(ctx context.Context, in api.RegisterInput) error
	profileFn  func(ctx context.Context) (*domain.User, error)
	updateFn   func(ctx context.Context, fields map[string]any) (*domain.User, error)
	resetFn    func(ctx context.Context, email string) error
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, username, password)
	}
	return &api.LoginResponse{Token: "tok", User: domain.User{Username: username}}, nil
}

func (f *fakeAuthService) Register(ctx context.Context, in api.RegisterInput) error {
	if f.registerFn != nil {
		return f.registerFn(ctx, in)
	}
	return nil
}

func (f *fakeAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if f.resetFn != nil {
		return f.resetFn(ctx, email)
	}
	return nil
}

func (f *fakeAuthService) Profile(ctx context.Context) (*domain.User, error) {
	if f.profileFn != nil {
		return f.profileFn(ctx)
	}
	return &domain.User{Username: "sara"}, nil
}

func (f *fakeAuthService) UpdateProfile(ctx context.Context, fields map[string]any) (*domain.User, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, fields)
	}
	return &domain.User{Username: "sara"}, nil
}

// fakeMetricsService implements MetricsService.
type fakeMetricsService struct {
	metricsFn func(ctx context.Context, period domain.MetricsPeriod) (*domain.DashboardMetrics, error)
}

func (f *fakeMetricsService) DashboardMetrics(ctx context.Context, period domain.MetricsPeriod) (*domain.DashboardMetrics, error) {
	if f.metricsFn != nil {
		return f.metricsFn(ctx, period)
	}
	return &domain.DashboardMetrics{Period: period}, nil
}

// fakeStream implements NotificationStream over a buffered channel the test
// feeds directly.
type fakeStream struct {
	ch     chan domain.Notification
	closed bool
}

func newFakeStream() *fakeStream {
	return &fakeStream{ch: make(chan domain.Notification, 8)}
}

func (f *fakeStream) Start(ctx context.Context) <-chan domain.Notification {
	return f.ch
}

func (f *fakeStream) Close() {
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
}

package app

import (
	"context"

	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/domain"
)

// RequestService is the slice of the API gateway the purchase-request
// controllers depend on. Implemented by *api.Client.
type RequestService interface {
	ListRequests(ctx context.Context) ([]domain.PurchaseRequest, error)
	GetRequest(ctx context.Context, id int) (*domain.PurchaseRequest, error)
	CreateRequest(ctx context.Context, payload api.RequestPayload) (*domain.PurchaseRequest, error)
	UpdateRequest(ctx context.Context, id int, payload api.RequestPayload) (*domain.PurchaseRequest, error)
	DeleteRequest(ctx context.Context, id int) error
	UpdateStatus(ctx context.Context, id int, update api.StatusUpdate) (*domain.PurchaseRequest, error)
	HODUsers(ctx context.Context) ([]domain.HODUser, error)
}

// NotificationService is the slice of the API gateway the notification
// center depends on. Implemented by *api.Client.
type NotificationService interface {
	Notifications(ctx context.Context) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id int) error
}

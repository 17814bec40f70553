package testutil

import (
	"sync/atomic"
	"time"

	"github.com/dagimg/prdesk/internal/domain"
)

var testIDCounter atomic.Int64

func nextID() int {
	return int(testIDCounter.Add(1))
}

// Purchase request options
type RequestOption func(*domain.PurchaseRequest)

func WithStatus(s domain.Status) RequestOption {
	return func(r *domain.PurchaseRequest) {
		r.Status = s
	}
}

func WithInitiator(name string) RequestOption {
	return func(r *domain.PurchaseRequest) {
		r.InitiatorName = name
	}
}

func WithPurchaseType(t string) RequestOption {
	return func(r *domain.PurchaseRequest) {
		r.PurchaseType = t
	}
}

func WithRejectionReason(reason string) RequestOption {
	return func(r *domain.PurchaseRequest) {
		r.RejectionReason = reason
	}
}

func WithItems(items ...domain.LineItem) RequestOption {
	return func(r *domain.PurchaseRequest) {
		r.Items = items
	}
}

func NewTestRequest(title string, opts ...RequestOption) *domain.PurchaseRequest {
	r := &domain.PurchaseRequest{
		ID:            nextID(),
		Title:         title,
		Department:    "IT & Business Support",
		PurchaseType:  "Hardware",
		Status:        domain.StatusPending,
		Approver:      1,
		InitiatorName: "Sara Bekele",
		CreatedAt:     time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// User options
type UserOption func(*domain.User)

func WithHOD() UserOption {
	return func(u *domain.User) {
		u.IsHOD = true
	}
}

func WithName(first, last string) UserOption {
	return func(u *domain.User) {
		u.FirstName = first
		u.LastName = last
	}
}

func NewTestUser(username string, opts ...UserOption) *domain.User {
	u := &domain.User{
		ID:       nextID(),
		Username: username,
		Email:    username + "@example.com",
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Notification options
type NotificationOption func(*domain.Notification)

func Read() NotificationOption {
	return func(n *domain.Notification) {
		n.IsRead = true
	}
}

func ForRequest(id int) NotificationOption {
	return func(n *domain.Notification) {
		n.PurchaseRequestID = id
	}
}

func NewTestNotification(message string, opts ...NotificationOption) domain.Notification {
	n := domain.Notification{
		ID:        nextID(),
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

package domain

import "time"

// Notification is created server-side and delivered either by the initial
// fetch or as a single JSON object per websocket message. The client never
// creates one; the only client-side mutation is flipping IsRead.
type Notification struct {
	ID                int       `json:"id"`
	Message           string    `json:"message"`
	IsRead            bool      `json:"is_read"`
	CreatedAt         time.Time `json:"created_at"`
	PurchaseRequestID int       `json:"purchase_request_id"`
}

package domain

import "time"

// LineItem is one row of a purchase request. Items are owned by their parent
// request and have no identity of their own until the server persists them;
// in a draft they are addressed purely by position.
type LineItem struct {
	ID                int    `json:"id,omitempty"`
	ItemTitle         string `json:"item_title"`
	ItemQuantity      int    `json:"item_quantity"`
	ItemCode          string `json:"item_code"`
	UnitOfMeasurement string `json:"unit_of_measurement"`
	Description       string `json:"description"`
}

// PurchaseRequest is the core workflow entity. The list endpoint returns it
// without Items; the single-record endpoint includes them.
type PurchaseRequest struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	Department      string     `json:"department"`
	PurchaseType    string     `json:"purchase_type"`
	Status          Status     `json:"status"`
	Approver        int        `json:"approver,omitempty"`
	InitiatorName   string     `json:"initiator_name"`
	CreatedAt       time.Time  `json:"created_at"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	Items           []LineItem `json:"items,omitempty"`
}

// CanModify reports whether the given user may still edit this request.
// A request that has left PENDING is frozen for everyone but a head of
// department. Derived, never stored.
func (p *PurchaseRequest) CanModify(u *User) bool {
	if u != nil && u.IsHOD {
		return true
	}
	return p.Status == StatusPending
}

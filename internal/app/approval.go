package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/domain"
)

// ErrReasonRequired is returned by ConfirmReject when the rejection reason is
// empty after trimming. No network call is made in that case.
var ErrReasonRequired = errors.New("rejection reason is required")

// ApprovalMode is the sub-mode of the open detail view.
type ApprovalMode int

const (
	// ModeViewing shows the record read-only with the action buttons.
	ModeViewing ApprovalMode = iota
	// ModeRejecting shows the rejection-reason entry.
	ModeRejecting
)

// ApprovalController drives the approve/reject flow for one open record.
// It holds no state across records: Open resets everything.
type ApprovalController struct {
	svc RequestService

	record  *domain.PurchaseRequest
	mode    ApprovalMode
	reason  string
	errText string
}

// NewApprovalController creates an idle controller; call Open with a loaded
// record before using it.
func NewApprovalController(svc RequestService) *ApprovalController {
	return &ApprovalController{svc: svc}
}

// Open binds the controller to a record, resetting the sub-mode, the
// rejection draft, and any error text.
func (a *ApprovalController) Open(record *domain.PurchaseRequest) {
	a.record = record
	a.mode = ModeViewing
	a.reason = ""
	a.errText = ""
}

// Close releases the open record and clears all draft state.
func (a *ApprovalController) Close() {
	a.record = nil
	a.mode = ModeViewing
	a.reason = ""
	a.errText = ""
}

// Record returns the open record, or nil.
func (a *ApprovalController) Record() *domain.PurchaseRequest {
	return a.record
}

// Mode returns the current sub-mode.
func (a *ApprovalController) Mode() ApprovalMode {
	return a.mode
}

// ErrText returns the user-facing error for the last failed action.
func (a *ApprovalController) ErrText() string {
	return a.errText
}

// Reason returns the rejection draft text.
func (a *ApprovalController) Reason() string {
	return a.reason
}

// SetReason updates the rejection draft text.
func (a *ApprovalController) SetReason(reason string) {
	a.reason = reason
}

// CanAct reports whether approve/reject are offered: only while the open
// record is still PENDING. Terminal records are read-only except for close.
func (a *ApprovalController) CanAct() bool {
	return a.record != nil && a.record.Status == domain.StatusPending
}

// StartReject switches to the rejection-reason entry and clears the error.
func (a *ApprovalController) StartReject() {
	if a.mode != ModeViewing || !a.CanAct() {
		return
	}
	a.mode = ModeRejecting
	a.errText = ""
}

// CancelReject abandons the rejection and clears the draft text.
func (a *ApprovalController) CancelReject() {
	if a.mode != ModeRejecting {
		return
	}
	a.mode = ModeViewing
	a.reason = ""
}

// ConfirmApprove submits the APPROVED transition. Valid only in VIEWING with
// a PENDING record. On success the detail state is cleared and the updated
// record returned; the caller reloads the list. On failure the controller
// stays in its sub-mode with the error text set.
func (a *ApprovalController) ConfirmApprove(ctx context.Context) (*domain.PurchaseRequest, error) {
	if a.mode != ModeViewing || !a.CanAct() {
		return nil, nil
	}
	return a.submit(ctx, api.StatusUpdate{Status: domain.StatusApproved})
}

// ConfirmReject submits the REJECTED transition with the trimmed reason.
// Valid only in REJECTING. An empty reason sets a validation error and stays
// in REJECTING without touching the network.
func (a *ApprovalController) ConfirmReject(ctx context.Context) (*domain.PurchaseRequest, error) {
	if a.mode != ModeRejecting || a.record == nil {
		return nil, nil
	}
	reason := strings.TrimSpace(a.reason)
	if reason == "" {
		a.errText = "Please provide a reason for rejection"
		return nil, ErrReasonRequired
	}
	return a.submit(ctx, api.StatusUpdate{Status: domain.StatusRejected, RejectionReason: reason})
}

func (a *ApprovalController) submit(ctx context.Context, update api.StatusUpdate) (*domain.PurchaseRequest, error) {
	a.errText = ""
	updated, err := a.svc.UpdateStatus(ctx, a.record.ID, update)
	if err != nil {
		a.errText = api.Detail(err, "Failed to update purchase request")
		return nil, err
	}
	a.Close()
	return updated, nil
}

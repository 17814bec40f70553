package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ValidationError reports client-side draft validation failures. No network
// call is made when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ItemDraft is one editable line item row. Quantity stays a string until
// submit, when it is coerced to an integer.
type ItemDraft struct {
	ItemTitle         string `validate:"required"`
	ItemQuantity      string `validate:"required"`
	ItemCode          string
	UnitOfMeasurement string
	Description       string
}

// Draft is the editable state of the create/update form.
type Draft struct {
	Title        string `validate:"required"`
	Department   string `validate:"required"`
	Approver     string `validate:"required"`
	PurchaseType string `validate:"required"`
	Status       domain.Status
	Items        []ItemDraft `validate:"dive"`
}

// blankItem returns an empty line item row.
func blankItem() ItemDraft {
	return ItemDraft{}
}

// Editor owns a purchase-request draft for create or full update. The draft
// survives a failed submit so nothing is re-typed; it resets only after a
// successful create.
type Editor struct {
	svc       RequestService
	validate  *validator.Validate
	strictQty bool

	draft         Draft
	requestID     int
	initialStatus domain.Status
	user          *domain.User
}

// NewEditor creates an editor in create mode with a single blank item row.
// strictQuantity turns a non-numeric quantity into a validation error
// instead of coercing it to zero.
func NewEditor(svc RequestService, strictQuantity bool) *Editor {
	return &Editor{
		svc:       svc,
		validate:  validator.New(),
		strictQty: strictQuantity,
		draft:     Draft{Items: []ItemDraft{blankItem()}},
	}
}

// LoadForUpdate switches the editor to update mode, pre-populating the draft
// from the server record. user determines the can-modify gate.
func (e *Editor) LoadForUpdate(ctx context.Context, id int, user *domain.User) error {
	record, err := e.svc.GetRequest(ctx, id)
	if err != nil {
		return err
	}

	items := make([]ItemDraft, 0, len(record.Items))
	for _, it := range record.Items {
		items = append(items, ItemDraft{
			ItemTitle:         it.ItemTitle,
			ItemQuantity:      strconv.Itoa(it.ItemQuantity),
			ItemCode:          it.ItemCode,
			UnitOfMeasurement: it.UnitOfMeasurement,
			Description:       it.Description,
		})
	}

	e.requestID = record.ID
	e.initialStatus = record.Status
	e.user = user
	e.draft = Draft{
		Title:        record.Title,
		Department:   record.Department,
		Approver:     strconv.Itoa(record.Approver),
		PurchaseType: record.PurchaseType,
		Status:       record.Status,
		Items:        items,
	}
	return nil
}

// Approvers fetches the eligible head-of-department users.
func (e *Editor) Approvers(ctx context.Context) ([]domain.HODUser, error) {
	return e.svc.HODUsers(ctx)
}

// Draft returns the current draft state.
func (e *Editor) Draft() Draft {
	return e.draft
}

// IsUpdate reports whether the editor is bound to an existing record.
func (e *Editor) IsUpdate() bool {
	return e.requestID != 0
}

// CanModify reports whether the form is editable: heads of department
// always, everyone else only while the loaded record was still PENDING.
// Create mode is always editable.
func (e *Editor) CanModify() bool {
	if !e.IsUpdate() {
		return true
	}
	if e.user != nil && e.user.IsHOD {
		return true
	}
	return e.initialStatus == domain.StatusPending
}

// AddItem appends one blank item row. Append-only; there is no positional
// insert.
func (e *Editor) AddItem() {
	e.draft.Items = append(e.draft.Items, blankItem())
}

// RemoveItem deletes the row at index. Removing the last remaining row is
// permitted and leaves the draft with zero items, as the source system does.
func (e *Editor) RemoveItem(index int) error {
	if index < 0 || index >= len(e.draft.Items) {
		return fmt.Errorf("no item at index %d", index)
	}
	e.draft.Items = append(e.draft.Items[:index], e.draft.Items[index+1:]...)
	return nil
}

// SetField updates one header field by its wire name.
func (e *Editor) SetField(name, value string) error {
	switch name {
	case "title":
		e.draft.Title = value
	case "department":
		e.draft.Department = value
	case "approver":
		e.draft.Approver = value
	case "purchase_type":
		e.draft.PurchaseType = value
	case "status":
		e.draft.Status = domain.Status(value)
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// SetItemField updates one field of the item at index by its wire name.
func (e *Editor) SetItemField(index int, name, value string) error {
	if index < 0 || index >= len(e.draft.Items) {
		return fmt.Errorf("no item at index %d", index)
	}
	item := &e.draft.Items[index]
	switch name {
	case "item_title":
		item.ItemTitle = value
	case "item_quantity":
		item.ItemQuantity = value
	case "item_code":
		item.ItemCode = value
	case "unit_of_measurement":
		item.UnitOfMeasurement = value
	case "description":
		item.Description = value
	default:
		return fmt.Errorf("unknown item field %q", name)
	}
	return nil
}

// Submit validates the draft, coerces approver and quantities to integers,
// and issues the create POST or full-update PUT. The draft is preserved on
// any failure; after a successful create it resets to a fresh blank form.
func (e *Editor) Submit(ctx context.Context) (*domain.PurchaseRequest, error) {
	if e.IsUpdate() && !e.CanModify() {
		return nil, &ValidationError{Message: "this request can no longer be modified"}
	}

	payload, err := e.buildPayload()
	if err != nil {
		return nil, err
	}

	if e.IsUpdate() {
		return e.svc.UpdateRequest(ctx, e.requestID, *payload)
	}

	created, err := e.svc.CreateRequest(ctx, *payload)
	if err != nil {
		return nil, err
	}
	e.draft = Draft{Items: []ItemDraft{blankItem()}}
	return created, nil
}

// buildPayload validates and coerces the draft into the wire shape.
func (e *Editor) buildPayload() (*api.RequestPayload, error) {
	if err := e.validate.Struct(e.draft); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			return nil, &ValidationError{Message: friendlyFieldError(invalid[0])}
		}
		return nil, err
	}

	approver, err := strconv.Atoi(e.draft.Approver)
	if err != nil {
		return nil, &ValidationError{Message: "select an approver"}
	}

	items := make([]domain.LineItem, 0, len(e.draft.Items))
	for i, it := range e.draft.Items {
		qty, err := strconv.Atoi(it.ItemQuantity)
		if err != nil {
			if e.strictQty {
				return nil, &ValidationError{
					Message: fmt.Sprintf("item %d: quantity must be a number", i+1),
				}
			}
			qty = 0
		}
		items = append(items, domain.LineItem{
			ItemTitle:         it.ItemTitle,
			ItemQuantity:      qty,
			ItemCode:          it.ItemCode,
			UnitOfMeasurement: it.UnitOfMeasurement,
			Description:       it.Description,
		})
	}

	return &api.RequestPayload{
		Title:        e.draft.Title,
		Department:   e.draft.Department,
		Approver:     approver,
		PurchaseType: e.draft.PurchaseType,
		Status:       e.draft.Status,
		Items:        items,
	}, nil
}

func friendlyFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "Title":
		return "title is required"
	case "Department":
		return "department is required"
	case "Approver":
		return "select an approver"
	case "PurchaseType":
		return "purchase type is required"
	case "ItemTitle":
		return "every item needs a title"
	case "ItemQuantity":
		return "every item needs a quantity"
	}
	return fmt.Sprintf("%s is required", fe.Field())
}

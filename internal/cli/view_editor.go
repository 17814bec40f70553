package cli

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/app"
	"github.com/dagimg/prdesk/internal/cli/formatter"
	"github.com/dagimg/prdesk/internal/domain"
)

// editorFields holds form-bound values for the request editor wizard. huh
// binds to these strings; done() writes them back into the editor draft.
type editorFields struct {
	title        string
	department   string
	approver     string
	purchaseType string
	status       string
	items        []itemFields
	addItem      bool
}

type itemFields struct {
	title    string
	quantity string
	code     string
	unit     string
	desc     string
}

// pushEditorView builds the editor wizard and pushes it. id zero means
// create; otherwise the record is loaded for a full update. Construction
// happens inside the command goroutine because it fetches the approver list
// (and the record, for updates) from the server.
func pushEditorView(state *SharedState, id int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		ed := app.NewEditor(state.App.Requests, state.App.Config.StrictQuantity)

		title := "New Request"
		if id != 0 {
			if err := ed.LoadForUpdate(ctx, id, state.App.Sessions.Current()); err != nil {
				return cmdOutputMsg{output: formatter.StyleRed.Render(
					api.Detail(err, "Failed to fetch purchase request"))}
			}
			if !ed.CanModify() {
				return cmdOutputMsg{output: formatter.StyleRed.Render(
					fmt.Sprintf("Request #%d can no longer be modified", id))}
			}
			title = fmt.Sprintf("Edit #%d", id)
		}

		approvers, err := ed.Approvers(ctx)
		if err != nil {
			return cmdOutputMsg{output: formatter.StyleRed.Render(
				api.Detail(err, "Failed to fetch approvers"))}
		}
		if len(approvers) == 0 {
			return cmdOutputMsg{output: formatter.StyleRed.Render(
				"No heads of department available to approve")}
		}

		return pushViewMsg{view: newEditorFormView(state, ed, approvers, title, "")}
	}
}

// newEditorFormView builds one wizard pass over the editor draft. The final
// confirm can loop back with an extra blank item row appended; after a
// failed submit the form is rebuilt over the same editor with notice set,
// so nothing the user typed is lost.
func newEditorFormView(state *SharedState, ed *app.Editor, approvers []domain.HODUser, title, notice string) View {
	draft := ed.Draft()
	f := &editorFields{
		title:        draft.Title,
		department:   draft.Department,
		approver:     draft.Approver,
		purchaseType: draft.PurchaseType,
		status:       string(draft.Status),
	}
	for _, it := range draft.Items {
		f.items = append(f.items, itemFields{
			title:    it.ItemTitle,
			quantity: it.ItemQuantity,
			code:     it.ItemCode,
			unit:     it.UnitOfMeasurement,
			desc:     it.Description,
		})
	}

	approverOptions := make([]huh.Option[string], 0, len(approvers))
	for _, h := range approvers {
		approverOptions = append(approverOptions, huh.NewOption(h.DisplayName(), strconv.Itoa(h.ID)))
	}

	departmentOptions := make([]huh.Option[string], 0, len(domain.DepartmentOptions))
	for _, d := range domain.DepartmentOptions {
		departmentOptions = append(departmentOptions, huh.NewOption(d, d))
	}

	typeOptions := make([]huh.Option[string], 0, len(domain.PurchaseTypeOptions))
	for _, t := range domain.PurchaseTypeOptions {
		typeOptions = append(typeOptions, huh.NewOption(t, t))
	}

	headerFields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Value(&f.title).
			Validate(validateRequired("title")),
		huh.NewSelect[string]().
			Title("Department").
			Options(departmentOptions...).
			Value(&f.department),
		huh.NewSelect[string]().
			Title("Approver").
			Options(approverOptions...).
			Value(&f.approver),
		huh.NewSelect[string]().
			Title("Purchase Type").
			Options(typeOptions...).
			Value(&f.purchaseType),
	}

	// Heads of department may set the status directly on update.
	user := state.App.Sessions.Current()
	if ed.IsUpdate() && user != nil && user.IsHOD {
		headerFields = append(headerFields, huh.NewSelect[string]().
			Title("Status").
			Options(
				huh.NewOption("Pending", string(domain.StatusPending)),
				huh.NewOption("Approved", string(domain.StatusApproved)),
				huh.NewOption("Rejected", string(domain.StatusRejected)),
			).
			Value(&f.status))
	}

	groups := []*huh.Group{huh.NewGroup(headerFields...)}

	strict := state.App.Config.StrictQuantity
	for i := range f.items {
		item := &f.items[i]
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Item %d — Title", i+1)).
				Value(&item.title).
				Validate(validateRequired("item title")),
			huh.NewInput().
				Title("Quantity").
				Value(&item.quantity).
				Validate(validateQuantity(strict)),
			huh.NewInput().
				Title("Item Code").
				Placeholder("optional").
				Value(&item.code),
			huh.NewInput().
				Title("Unit of Measurement").
				Placeholder("optional").
				Value(&item.unit),
			huh.NewInput().
				Title("Description").
				Placeholder("optional").
				Value(&item.desc),
		))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewConfirm().
			Title("Add another item?").
			Affirmative("Yes").
			Negative("Submit").
			Value(&f.addItem),
	))

	form := huh.NewForm(groups...).WithTheme(prdeskHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return func() tea.Msg {
			if err := f.applyTo(ed); err != nil {
				return pushViewMsg{view: newEditorFormView(state, ed, approvers, title, err.Error())}
			}

			if f.addItem {
				ed.AddItem()
				return pushViewMsg{view: newEditorFormView(state, ed, approvers, title, "")}
			}

			record, err := ed.Submit(context.Background())
			if err != nil {
				// The editor keeps the draft; re-open the form over it with
				// the failure shown instead of dropping back to the list.
				return pushViewMsg{view: newEditorFormView(state, ed, approvers, title,
					api.Detail(err, err.Error()))}
			}

			verb := "Created"
			if ed.IsUpdate() {
				verb = "Updated"
			}
			return mutationDoneMsg{output: fmt.Sprintf("%s %s #%d %s %s",
				formatter.StyleGreen.Render("✔"), verb, record.ID,
				formatter.Bold(record.Title), formatter.StatusPill(record.Status))}
		}
	}

	v := newWizardView(state, title, form, done)
	v.notice = notice
	return v
}

// applyTo writes the form-bound values back into the editor draft.
func (f *editorFields) applyTo(ed *app.Editor) error {
	for name, value := range map[string]string{
		"title":         f.title,
		"department":    f.department,
		"approver":      f.approver,
		"purchase_type": f.purchaseType,
	} {
		if err := ed.SetField(name, value); err != nil {
			return err
		}
	}
	if f.status != "" {
		if err := ed.SetField("status", f.status); err != nil {
			return err
		}
	}
	for i, item := range f.items {
		for name, value := range map[string]string{
			"item_title":          item.title,
			"item_quantity":       item.quantity,
			"item_code":           item.code,
			"unit_of_measurement": item.unit,
			"description":         item.desc,
		} {
			if err := ed.SetItemField(i, name, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// pushDeleteConfirm asks before deleting, then reloads the list.
func pushDeleteConfirm(state *SharedState, record domain.PurchaseRequest) tea.Cmd {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", record.Title)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		),
	).WithTheme(prdeskHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return func() tea.Msg {
			if !confirmed {
				return cmdOutputMsg{output: formatter.Dim("Kept.")}
			}
			if err := state.List.Delete(context.Background(), record.ID); err != nil {
				return cmdOutputMsg{output: formatter.StyleRed.Render(
					api.Detail(err, "Failed to delete purchase request"))}
			}
			return mutationDoneMsg{output: fmt.Sprintf("%s Deleted %s",
				formatter.StyleGreen.Render("✔"), formatter.Bold(record.Title))}
		}
	}

	return pushView(newWizardView(state, "Delete", form, done))
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dagimg/prdesk/internal/app"
	"github.com/dagimg/prdesk/internal/cli/formatter"
	"github.com/dagimg/prdesk/internal/domain"
)

// approvalDoneMsg signals the outcome of an approve or reject submit.
type approvalDoneMsg struct {
	updated *domain.PurchaseRequest
	err     error
}

// requestDetailView shows one record and drives the approve/reject flow
// through the shared approval controller.
type requestDetailView struct {
	state       *SharedState
	approval    *app.ApprovalController
	reasonInput textinput.Model
	submitting  bool
}

func newRequestDetailView(state *SharedState) *requestDetailView {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "rejection reason"
	ti.CharLimit = 300

	return &requestDetailView{
		state:       state,
		approval:    state.Approval,
		reasonInput: ti,
	}
}

func (v *requestDetailView) ID() ViewID { return ViewRequestDetail }

func (v *requestDetailView) Title() string {
	if r := v.approval.Record(); r != nil {
		return fmt.Sprintf("#%d", r.ID)
	}
	return "Detail"
}

func (v *requestDetailView) ShortHelp() []key.Binding {
	if v.approval.Mode() == app.ModeRejecting {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm reject")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	if v.approval.CanAct() {
		return []key.Binding{
			key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "approve")),
			key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reject")),
		}
	}
	return nil
}

func (v *requestDetailView) Init() tea.Cmd { return nil }

func (v *requestDetailView) submitApprove() tea.Cmd {
	approval := v.approval
	return func() tea.Msg {
		updated, err := approval.ConfirmApprove(context.Background())
		return approvalDoneMsg{updated: updated, err: err}
	}
}

func (v *requestDetailView) submitReject() tea.Cmd {
	approval := v.approval
	return func() tea.Msg {
		updated, err := approval.ConfirmReject(context.Background())
		return approvalDoneMsg{updated: updated, err: err}
	}
}

func (v *requestDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case approvalDoneMsg:
		v.submitting = false
		if msg.err != nil {
			// The controller keeps the record open with its error text set.
			return v, nil
		}
		if msg.updated == nil {
			return v, nil
		}
		banner := fmt.Sprintf("%s %s %s",
			formatter.StyleGreen.Render("✔"),
			formatter.Bold(msg.updated.Title),
			formatter.StatusPill(msg.updated.Status))
		return v, tea.Batch(popView(), refreshViews(), showOutput(banner))

	case tea.KeyMsg:
		if v.submitting {
			return v, nil
		}
		if v.approval.Mode() == app.ModeRejecting {
			return v.updateRejecting(msg)
		}
		switch msg.String() {
		case "a":
			if v.approval.CanAct() {
				v.submitting = true
				return v, v.submitApprove()
			}
		case "x":
			if v.approval.CanAct() {
				v.approval.StartReject()
				v.reasonInput.SetValue(v.approval.Reason())
				return v, v.reasonInput.Focus()
			}
		}
	}
	return v, nil
}

func (v *requestDetailView) updateRejecting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.approval.SetReason(v.reasonInput.Value())
		v.submitting = true
		return v, v.submitReject()
	case tea.KeyEsc:
		v.approval.CancelReject()
		v.reasonInput.SetValue("")
		v.reasonInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.reasonInput, cmd = v.reasonInput.Update(msg)
	return v, cmd
}

func (v *requestDetailView) View() string {
	record := v.approval.Record()
	if record == nil {
		return "\n  " + formatter.Dim("No record open.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(formatter.FormatRequestDetail(record))

	if v.submitting {
		b.WriteString("\n  " + formatter.Dim("Submitting...") + "\n")
	}

	if v.approval.Mode() == app.ModeRejecting {
		b.WriteString("\n  " + formatter.StyleHeader.Render("REJECT") + "\n")
		b.WriteString("  " + v.reasonInput.View() + "\n")
	}

	if errText := v.approval.ErrText(); errText != "" {
		b.WriteString("\n  " + formatter.StyleRed.Render(errText) + "\n")
	}

	return b.String()
}

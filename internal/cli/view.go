package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dagimg/prdesk/internal/app"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewRequestList ViewID = iota
	ViewRequestDetail
	ViewForm
	ViewNotifications
	ViewDashboard
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// viewCapturesInput reports whether the active view owns the keyboard
// (search input, rejection reason entry, huh forms) and should receive every
// key event, bypassing the global shortcuts.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewForm:
		return true
	case ViewRequestList:
		lv, ok := v.(*requestListView)
		return ok && lv.searching
	case ViewRequestDetail:
		dv, ok := v.(*requestDetailView)
		return ok && dv.approval.Mode() == app.ModeRejecting
	}
	return false
}

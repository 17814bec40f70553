package cli

import (
	"github.com/dagimg/prdesk/internal/app"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Controllers shared by the views. The list controller keeps its filter
	// and page state while detail and form views sit above it; the center
	// keeps the unread count shown in the header.
	List     *app.ListController
	Approval *app.ApprovalController
	Center   *app.Center

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(a *App) *SharedState {
	return &SharedState{
		App:      a,
		List:     app.NewListController(a.Requests),
		Approval: app.NewApprovalController(a.Requests),
		Center:   app.NewCenter(a.Notify),
	}
}

// ContentHeight returns the available height for view content, accounting
// for the header (2 lines) and the status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}

package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dagimg/prdesk/internal/domain"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// replaceViewMsg replaces the current top view with a new one.
type replaceViewMsg struct {
	view View
}

// refreshViewMsg tells every view on the stack to reload its data after a
// mutation made elsewhere (form submit, approval, delete, stream push).
type refreshViewMsg struct{}

// cmdOutputMsg carries transient text output (success and error banners)
// shown above the active view.
type cmdOutputMsg struct {
	output string
}

// mutationDoneMsg reports a successful server mutation: the banner is shown
// and every view on the stack reloads. Failed or cancelled actions use
// cmdOutputMsg instead so nothing is refetched.
type mutationDoneMsg struct {
	output string
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// streamMsg delivers one pushed notification from the websocket feed.
// closed is set when the feed channel is closed (sign-out or shutdown).
type streamMsg struct {
	notification domain.Notification
	closed       bool
}

// sessionInvalidMsg is fired by the session invalidation listener when any
// component observes an authentication failure. The shell quits with the
// session-expired message.
type sessionInvalidMsg struct{}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// replaceView returns a tea.Cmd that replaces the top view.
func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

// refreshViews returns a tea.Cmd that broadcasts a reload to the stack.
func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}

// showOutput returns a tea.Cmd that displays a transient banner.
func showOutput(text string) tea.Cmd {
	return func() tea.Msg { return cmdOutputMsg{output: text} }
}

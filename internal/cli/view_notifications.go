package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/cli/formatter"
)

// notificationsLoadedMsg signals that the center finished a reload.
type notificationsLoadedMsg struct {
	err error
}

// notificationMarkedMsg signals the outcome of a mark-read call.
type notificationMarkedMsg struct {
	err error
}

// notificationsView lists the bell feed, newest first, and marks entries
// read. Pushed notifications appear live through the shared center.
type notificationsView struct {
	state   *SharedState
	cursor  int
	loading bool
	err     error
}

func newNotificationsView(state *SharedState) *notificationsView {
	return &notificationsView{state: state, loading: true}
}

func (v *notificationsView) ID() ViewID    { return ViewNotifications }
func (v *notificationsView) Title() string { return "Notifications" }

func (v *notificationsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "mark read")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *notificationsView) Init() tea.Cmd {
	return v.load()
}

func (v *notificationsView) load() tea.Cmd {
	center := v.state.Center
	return func() tea.Msg {
		return notificationsLoadedMsg{err: center.Load(context.Background())}
	}
}

func (v *notificationsView) markRead(id int) tea.Cmd {
	center := v.state.Center
	return func() tea.Msg {
		return notificationMarkedMsg{err: center.MarkRead(context.Background(), id)}
	}
}

func (v *notificationsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notificationsLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.clampCursor()
		return v, nil

	case notificationMarkedMsg:
		if msg.err != nil {
			// Unread state is untouched on failure; surface and move on.
			return v, showOutput(formatter.StyleRed.Render(
				api.Detail(msg.err, "Failed to mark notification read")))
		}
		return v, nil

	case refreshViewMsg:
		// Live pushes already landed in the center; just re-render.
		v.clampCursor()
		return v, nil

	case tea.KeyMsg:
		list := v.state.Center.Notifications()
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(list)-1 {
				v.cursor++
			}
		case "enter":
			if v.cursor < len(list) && !list[v.cursor].IsRead {
				return v, v.markRead(list[v.cursor].ID)
			}
		case "r":
			v.loading = true
			return v, v.load()
		}
	}
	return v, nil
}

func (v *notificationsView) clampCursor() {
	n := len(v.state.Center.Notifications())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *notificationsView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading notifications...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render(
			api.Detail(v.err, "Failed to fetch notifications"))
	}

	list := v.state.Center.Notifications()
	if len(list) == 0 {
		return "\n  " + formatter.Dim("No notifications.")
	}

	out := "\n"
	if unread := v.state.Center.Unread(); unread > 0 {
		out += "  " + formatter.StyleYellow.Render(fmt.Sprintf("%d unread", unread)) + "\n\n"
	}
	for i, n := range list {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		out += cursor + formatter.FormatNotificationRow(n) + "\n"
	}
	return out
}

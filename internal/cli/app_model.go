package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dagimg/prdesk/internal/cli/formatter"
	"github.com/dagimg/prdesk/internal/domain"
)

// appModel is the root bubbletea Model for the shell. It manages a view
// stack below a persistent header and above a key-hint bar, and folds
// pushed notifications into the shared notification center.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	// sessionExpired is set when the session store fires its invalidation
	// listener; the shell quits and the runner prints the expiry message.
	sessionExpired bool

	// notifCh delivers websocket pushes. Nil when no stream is attached.
	notifCh <-chan domain.Notification

	// Transient output banner from the last action.
	lastOutput string
}

func newAppModel(a *App, notifCh <-chan domain.Notification) appModel {
	state := newSharedState(a)
	m := appModel{
		state:   state,
		notifCh: notifCh,
	}
	m.viewStack = []View{newRequestListView(state)}
	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// awaitNotification blocks on the push channel until the next notification
// or channel close.
func (m *appModel) awaitNotification() tea.Cmd {
	ch := m.notifCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return streamMsg{closed: true}
		}
		return streamMsg{notification: n}
	}
}

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadNotifications()}
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	if cmd := m.awaitNotification(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// loadNotifications seeds the notification center from the server.
func (m *appModel) loadNotifications() tea.Cmd {
	state := m.state
	return func() tea.Msg {
		// Seed failure is non-fatal, the bell just starts empty.
		_ = state.Center.Load(context.Background())
		return nil
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.lastOutput = ""
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case replaceViewMsg:
		m.lastOutput = ""
		if len(m.viewStack) > 0 {
			m.viewStack[len(m.viewStack)-1] = msg.view
		} else {
			m.viewStack = append(m.viewStack, msg.view)
		}
		return m, msg.view.Init()

	case refreshViewMsg:
		// Broadcast to ALL views in the stack so underlying views reload
		// data after mutations made in views above them.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case cmdOutputMsg:
		m.lastOutput = msg.output
		return m, nil

	case mutationDoneMsg:
		m.lastOutput = msg.output
		return m, refreshViews()

	case wizardCompleteMsg:
		// Atomically pop the wizard view and execute the follow-up command.
		// The follow-up decides whether anything reloads; a cancelled wizard
		// must not trigger a refetch.
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, msg.nextCmd

	case streamMsg:
		if msg.closed {
			m.notifCh = nil
			return m, nil
		}
		if m.state.Center.Apply(msg.notification) {
			return m, tea.Batch(m.awaitNotification(), refreshViews())
		}
		return m, m.awaitNotification()

	case sessionInvalidMsg:
		m.sessionExpired = true
		m.quitting = true
		return m, tea.Quit
	}

	// Forward other messages to the active view (load results, blinks).
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// A key dismisses the transient banner before anything else sees it.
	if m.lastOutput != "" {
		m.lastOutput = ""
	}

	// Views with their own text input receive all keys including q/n/d.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "n":
		if v := m.activeView(); v != nil && v.ID() != ViewNotifications {
			nv := newNotificationsView(m.state)
			m.viewStack = append(m.viewStack, nv)
			return m, nv.Init()
		}

	case "d":
		if v := m.activeView(); v != nil && v.ID() != ViewDashboard {
			dv := newDashboardView(m.state)
			m.viewStack = append(m.viewStack, dv)
			return m, dv.Init()
		}
	}

	if msg.Type == tea.KeyEsc && len(m.viewStack) > 1 {
		// Let the active view veto the pop (detail view in rejecting mode
		// handles esc itself through viewCapturesInput above).
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if m.lastOutput != "" {
		sections = append(sections, "\n  "+m.lastOutput)
	}
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("prdesk")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	header := title + breadcrumb

	if user := m.state.App.Sessions.Current(); user != nil {
		header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(user.Username) + formatter.Dim("]")
	}
	if unread := m.state.Center.Unread(); unread > 0 {
		header += "  " + formatter.StyleYellow.Render(fmt.Sprintf("● %d unread", unread))
	}

	sep := formatter.Dim(strings.Repeat("─", maxInt(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if len(m.viewStack) > 1 {
		hints = append(hints, formatter.Dim("esc: back"))
	}
	hints = append(hints, formatter.Dim("n: bell"), formatter.Dim("d: dashboard"), formatter.Dim("q: quit"))

	sep := formatter.Dim(strings.Repeat("─", maxInt(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

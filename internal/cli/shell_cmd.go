package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newShellCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(a)
		},
	}
}

// runShell starts the TUI: the view stack plus a live notification feed.
// The shell quits on its own when any call observes an expired session.
func runShell(a *App) error {
	if !a.Sessions.Authenticated() {
		return fmt.Errorf("not signed in, run 'prdesk login' first")
	}

	var notifCh <-chan domain.Notification
	var stream NotificationStream
	if a.NewStream != nil {
		if stream = a.NewStream(); stream != nil {
			notifCh = stream.Start(context.Background())
			defer stream.Close()
		}
	}

	model := newAppModel(a, notifCh)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Any component observing a 401 invalidates the session; the listener
	// ends the shell so the expiry message is not swallowed by the
	// alternate screen.
	a.Sessions.OnInvalidate(func() {
		p.Send(sessionInvalidMsg{})
	})

	final, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := final.(appModel); ok && m.sessionExpired {
		fmt.Println(api.Detail(api.ErrAuthExpired, ""))
	}
	return nil
}

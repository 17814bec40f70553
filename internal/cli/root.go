package cli

import (
	"context"

	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/app"
	"github.com/dagimg/prdesk/internal/config"
	"github.com/dagimg/prdesk/internal/domain"
	"github.com/dagimg/prdesk/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// AuthService covers account and profile operations. Implemented by
// *api.Client.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
	Register(ctx context.Context, in api.RegisterInput) error
	RequestPasswordReset(ctx context.Context, email string) error
	Profile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, fields map[string]any) (*domain.User, error)
}

// MetricsService serves the dashboard aggregates. Implemented by *api.Client.
type MetricsService interface {
	DashboardMetrics(ctx context.Context, period domain.MetricsPeriod) (*domain.DashboardMetrics, error)
}

// NotificationStream is the push side of the notification feed. Implemented
// by *stream.Client.
type NotificationStream interface {
	Start(ctx context.Context) <-chan domain.Notification
	Close()
}

// App holds references to everything CLI commands and TUI views need.
type App struct {
	Auth     AuthService
	Requests app.RequestService
	Notify   app.NotificationService
	Metrics  MetricsService
	Sessions *session.Store
	Config   config.Config
	Log      *logrus.Logger

	// NewStream builds a fresh push connection for the shell. Nil disables
	// live notifications (tests, non-interactive use).
	NewStream func() NotificationStream

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "prdesk" command and registers all
// subcommands against the provided App. Running it bare on a terminal opens
// the interactive shell.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "prdesk",
		Short: "Purchase-request approval workflow client",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.IsInteractive != nil && a.IsInteractive() {
				return runShell(a)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newRegisterCmd(a),
		newWhoamiCmd(a),
		newProfileCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newCreateCmd(a),
		newEditCmd(a),
		newApproveCmd(a),
		newRejectCmd(a),
		newDeleteCmd(a),
		newDashboardCmd(a),
		newNotificationsCmd(a),
		newShellCmd(a),
	)

	return root
}

package cli

import (
	"context"
	"fmt"

	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/cli/formatter"
	"github.com/dagimg/prdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newDashboardCmd(a *App) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show aggregate request metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := domain.MetricsPeriod(period)
			switch p {
			case domain.PeriodWeekly, domain.PeriodMonthly, domain.PeriodYearly:
			default:
				return fmt.Errorf("invalid period %q, use Weekly, Monthly or Yearly", period)
			}

			metrics, err := a.Metrics.DashboardMetrics(context.Background(), p)
			if err != nil {
				return fmt.Errorf("%s", api.Detail(err, "Failed to fetch dashboard metrics"))
			}
			fmt.Println(formatter.FormatMetrics(metrics))
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", string(domain.PeriodWeekly), "Aggregation period (Weekly|Monthly|Yearly)")

	return cmd
}

func newNotificationsCmd(a *App) *cobra.Command {
	var markRead int

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notifications or mark one read",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if markRead > 0 {
				if err := a.Notify.MarkNotificationRead(ctx, markRead); err != nil {
					return fmt.Errorf("%s", api.Detail(err, "Failed to mark notification read"))
				}
				fmt.Printf("Marked notification #%d read\n", markRead)
				return nil
			}

			list, err := a.Notify.Notifications(ctx)
			if err != nil {
				return fmt.Errorf("%s", api.Detail(err, "Failed to fetch notifications"))
			}
			if len(list) == 0 {
				fmt.Println("No notifications.")
				return nil
			}
			fmt.Println(formatter.FormatNotifications(list))
			return nil
		},
	}

	cmd.Flags().IntVar(&markRead, "mark-read", 0, "Mark the given notification ID read instead of listing")

	return cmd
}

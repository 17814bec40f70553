package cli

import (
	"context"
	"fmt"

	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/app"
	"github.com/dagimg/prdesk/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newApproveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "approve ID",
		Short: "Approve a pending purchase request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRequestID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			approval, err := openApproval(ctx, a, id)
			if err != nil {
				return err
			}
			if !approval.CanAct() {
				return fmt.Errorf("request #%d is %s and can no longer be acted on",
					id, approval.Record().Status)
			}

			updated, err := approval.ConfirmApprove(ctx)
			if err != nil {
				return fmt.Errorf("%s", approval.ErrText())
			}
			fmt.Printf("Approved %s %s\n", formatter.Bold(updated.Title), formatter.StatusPill(updated.Status))
			return nil
		},
	}
}

func newRejectCmd(a *App) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "reject ID",
		Short: "Reject a pending purchase request with a reason",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRequestID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			approval, err := openApproval(ctx, a, id)
			if err != nil {
				return err
			}
			if !approval.CanAct() {
				return fmt.Errorf("request #%d is %s and can no longer be acted on",
					id, approval.Record().Status)
			}

			approval.StartReject()
			approval.SetReason(reason)
			updated, err := approval.ConfirmReject(ctx)
			if err != nil {
				return fmt.Errorf("%s", approval.ErrText())
			}
			fmt.Printf("Rejected %s %s\n", formatter.Bold(updated.Title), formatter.StatusPill(updated.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Rejection reason shown to the initiator")

	return cmd
}

// openApproval fetches the record and binds it to a fresh approval
// controller.
func openApproval(ctx context.Context, a *App, id int) (*app.ApprovalController, error) {
	record, err := a.Requests.GetRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s", api.Detail(err, "Failed to fetch purchase request"))
	}
	approval := app.NewApprovalController(a.Requests)
	approval.Open(record)
	return approval, nil
}

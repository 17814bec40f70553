package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/app"
	"github.com/dagimg/prdesk/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func parseRequestID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid request ID %q", arg)
	}
	return id, nil
}

func newListCmd(a *App) *cobra.Command {
	var search, purchaseType string
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List purchase requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			list := app.NewListController(a.Requests)
			if err := list.Load(ctx); err != nil {
				return fmt.Errorf("%s", api.Detail(err, "Failed to fetch purchase requests"))
			}
			list.SetSearch(search)
			list.SetTypeFilter(purchaseType)
			list.SetPage(page)

			rows := list.Page()
			if len(rows) == 0 {
				fmt.Println("No purchase requests found.")
				return nil
			}

			fmt.Println(formatter.FormatRequestList(rows))
			if list.PageCount() > 1 {
				fmt.Println(formatter.Dim(fmt.Sprintf("page %d/%d — use --page to navigate",
					list.CurrentPage(), list.PageCount())))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by title or initiator substring")
	cmd.Flags().StringVar(&purchaseType, "type", "", "Filter by purchase type")
	cmd.Flags().IntVar(&page, "page", 1, "Page number (10 per page)")

	return cmd
}

func newShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one purchase request with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRequestID(args[0])
			if err != nil {
				return err
			}
			record, err := a.Requests.GetRequest(context.Background(), id)
			if err != nil {
				return fmt.Errorf("%s", api.Detail(err, "Failed to fetch purchase request"))
			}
			fmt.Println(formatter.FormatRequestDetail(record))
			return nil
		},
	}
}

func newDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a purchase request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRequestID(args[0])
			if err != nil {
				return err
			}
			if err := a.Requests.DeleteRequest(context.Background(), id); err != nil {
				return fmt.Errorf("%s", api.Detail(err, "Failed to delete purchase request"))
			}
			fmt.Printf("Deleted purchase request #%d\n", id)
			return nil
		},
	}
}

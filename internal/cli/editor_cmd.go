package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/app"
	"github.com/dagimg/prdesk/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// applyItemSpecs parses repeated --item values into the editor's draft.
// The format is "title|quantity[|code[|unit[|description]]]".
func applyItemSpecs(ed *app.Editor, specs []string) error {
	// Drop the blank starter row when explicit items were given.
	if len(specs) > 0 && len(ed.Draft().Items) == 1 && ed.Draft().Items[0].ItemTitle == "" {
		if err := ed.RemoveItem(0); err != nil {
			return err
		}
	}
	for _, spec := range specs {
		parts := strings.Split(spec, "|")
		if len(parts) < 2 {
			return fmt.Errorf("invalid --item %q, expected title|quantity[|code[|unit[|description]]]", spec)
		}
		ed.AddItem()
		idx := len(ed.Draft().Items) - 1
		fields := []string{"item_title", "item_quantity", "item_code", "unit_of_measurement", "description"}
		for i, value := range parts {
			if i >= len(fields) {
				break
			}
			if err := ed.SetItemField(idx, fields[i], strings.TrimSpace(value)); err != nil {
				return err
			}
		}
	}
	return nil
}

func newCreateCmd(a *App) *cobra.Command {
	var title, department, approver, purchaseType string
	var items []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a purchase request",
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := app.NewEditor(a.Requests, a.Config.StrictQuantity)
			for name, value := range map[string]string{
				"title":         title,
				"department":    department,
				"approver":      approver,
				"purchase_type": purchaseType,
			} {
				if err := ed.SetField(name, value); err != nil {
					return err
				}
			}
			if err := applyItemSpecs(ed, items); err != nil {
				return err
			}

			created, err := ed.Submit(context.Background())
			if err != nil {
				return fmt.Errorf("%s", api.Detail(err, err.Error()))
			}
			fmt.Printf("Created purchase request #%d %s %s\n",
				created.ID, formatter.Bold(created.Title), formatter.StatusPill(created.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Request title")
	cmd.Flags().StringVar(&department, "department", "", "Requesting department")
	cmd.Flags().StringVar(&approver, "approver", "", "Approver user ID (see 'prdesk shell' for the picker)")
	cmd.Flags().StringVar(&purchaseType, "type", "", "Purchase type")
	cmd.Flags().StringArrayVar(&items, "item", nil, "Line item as title|quantity[|code[|unit[|description]]] (repeatable)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("department")
	_ = cmd.MarkFlagRequired("approver")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newEditCmd(a *App) *cobra.Command {
	var title, department, approver, purchaseType, status string
	var items []string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update a purchase request (full replace)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRequestID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			ed := app.NewEditor(a.Requests, a.Config.StrictQuantity)
			if err := ed.LoadForUpdate(ctx, id, a.Sessions.Current()); err != nil {
				return fmt.Errorf("%s", api.Detail(err, "Failed to fetch purchase request"))
			}
			if !ed.CanModify() {
				return fmt.Errorf("request #%d can no longer be modified", id)
			}

			for name, value := range map[string]string{
				"title":         title,
				"department":    department,
				"approver":      approver,
				"purchase_type": purchaseType,
				"status":        status,
			} {
				if cmd.Flags().Changed(flagForField(name)) {
					if err := ed.SetField(name, value); err != nil {
						return err
					}
				}
			}
			if cmd.Flags().Changed("item") {
				for len(ed.Draft().Items) > 0 {
					if err := ed.RemoveItem(0); err != nil {
						return err
					}
				}
				if err := applyItemSpecs(ed, items); err != nil {
					return err
				}
			}

			updated, err := ed.Submit(ctx)
			if err != nil {
				return fmt.Errorf("%s", api.Detail(err, err.Error()))
			}
			fmt.Printf("Updated purchase request #%d %s %s\n",
				updated.ID, formatter.Bold(updated.Title), formatter.StatusPill(updated.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Request title")
	cmd.Flags().StringVar(&department, "department", "", "Requesting department")
	cmd.Flags().StringVar(&approver, "approver", "", "Approver user ID")
	cmd.Flags().StringVar(&purchaseType, "type", "", "Purchase type")
	cmd.Flags().StringVar(&status, "status", "", "Status (PENDING|APPROVED|REJECTED, heads of department only)")
	cmd.Flags().StringArrayVar(&items, "item", nil, "Replace all line items, same format as create (repeatable)")

	return cmd
}

// flagForField maps a draft field name to its CLI flag name.
func flagForField(name string) string {
	switch name {
	case "purchase_type":
		return "type"
	default:
		return name
	}
}

package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/dagimg/prdesk/internal/domain"
)

// FormatRequestRow renders one list line: id, status, title, type, initiator
// and age, sized to the terminal width.
func FormatRequestRow(r domain.PurchaseRequest, width int) string {
	titleWidth := 32
	if width > 100 {
		titleWidth = width - 68
	}

	return fmt.Sprintf("%s %s %s %s %s %s",
		Dim(fmt.Sprintf("#%-4d", r.ID)),
		StatusStyle(r.Status).Render(fmt.Sprintf("%-8s", r.Status)),
		StyleFg.Render(PadRight(r.Title, titleWidth)),
		StyleBlue.Render(PadRight(r.PurchaseType, 16)),
		Dim(PadRight(r.InitiatorName, 18)),
		Dim(RelativeTime(r.CreatedAt, time.Now())),
	)
}

// FormatRequestList renders the list rows for non-TUI output.
func FormatRequestList(requests []domain.PurchaseRequest) string {
	var b strings.Builder
	b.WriteString(Header("Purchase Requests"))
	b.WriteString("\n")
	for _, r := range requests {
		b.WriteString(FormatRequestRow(r, 0))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatRequestDetail renders one full record with its line items.
func FormatRequestDetail(r *domain.PurchaseRequest) string {
	var b strings.Builder

	b.WriteString("  " + StyleBold.Render(r.Title) + "  " + StatusPill(r.Status) + "\n\n")
	b.WriteString(detailLine("ID", fmt.Sprintf("#%d", r.ID)))
	b.WriteString(detailLine("Department", r.Department))
	b.WriteString(detailLine("Type", r.PurchaseType))
	b.WriteString(detailLine("Initiator", r.InitiatorName))
	if !r.CreatedAt.IsZero() {
		b.WriteString(detailLine("Created", r.CreatedAt.Format("2006-01-02 15:04")))
	}
	if r.Status == domain.StatusRejected && r.RejectionReason != "" {
		b.WriteString(detailLine("Reason", StyleRed.Render(r.RejectionReason)))
	}

	if len(r.Items) > 0 {
		b.WriteString("\n  " + Header("Items") + "\n")
		for i, item := range r.Items {
			line := fmt.Sprintf("  %s %s", Dim(fmt.Sprintf("%d.", i+1)), StyleFg.Render(item.ItemTitle))
			line += Dim(" ×") + StyleYellow.Render(fmt.Sprintf("%d", item.ItemQuantity))
			if item.UnitOfMeasurement != "" {
				line += " " + Dim(item.UnitOfMeasurement)
			}
			if item.ItemCode != "" {
				line += "  " + Dim("["+item.ItemCode+"]")
			}
			b.WriteString(line + "\n")
			if item.Description != "" {
				b.WriteString("     " + Dim(Truncate(item.Description, 70)) + "\n")
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatProfile renders the signed-in account details.
func FormatProfile(u *domain.User) string {
	var b strings.Builder
	b.WriteString(Header("Profile"))
	b.WriteString("\n")
	b.WriteString(detailLine("Name", u.FullName()))
	b.WriteString(detailLine("Username", u.Username))
	b.WriteString(detailLine("Email", u.Email))
	role := "requester"
	if u.IsHOD {
		role = "head of department"
	}
	b.WriteString(detailLine("Role", role))
	return strings.TrimRight(b.String(), "\n")
}

func detailLine(label, value string) string {
	return fmt.Sprintf("  %s %s\n", Dim(PadRight(label, 12)), value)
}

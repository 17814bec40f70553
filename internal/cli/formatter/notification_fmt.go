package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/dagimg/prdesk/internal/domain"
)

// FormatNotificationRow renders one bell entry. Unread entries carry a
// yellow dot and bright text; read ones are dimmed.
func FormatNotificationRow(n domain.Notification) string {
	marker := Dim("·")
	message := Dim(n.Message)
	if !n.IsRead {
		marker = StyleYellow.Render("●")
		message = StyleFg.Render(n.Message)
	}

	line := fmt.Sprintf("%s %s", marker, message)
	if n.PurchaseRequestID != 0 {
		line += " " + Dim(fmt.Sprintf("(#%d)", n.PurchaseRequestID))
	}
	if age := RelativeTime(n.CreatedAt, time.Now()); age != "" {
		line += "  " + Dim(age)
	}
	return line
}

// FormatNotifications renders the full feed for non-TUI output.
func FormatNotifications(list []domain.Notification) string {
	var b strings.Builder
	b.WriteString(Header("Notifications"))
	b.WriteString("\n")
	for _, n := range list {
		b.WriteString(FormatNotificationRow(n))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

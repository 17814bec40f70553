package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/dagimg/prdesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "long…", Truncate("longer text", 5))
	assert.Equal(t, "unbounded", Truncate("unbounded", 0))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", PadRight("ab", 4))
	assert.Equal(t, "abc…", PadRight("abcdef", 4))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, ""},
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-48 * time.Hour), "2d ago"},
		{"old", now.Add(-90 * 24 * time.Hour), "2026-06-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.t, now))
		})
	}
}

func TestFormatNotificationRow(t *testing.T) {
	unread := FormatNotificationRow(domain.Notification{
		ID: 1, Message: "Request approved", IsRead: false, PurchaseRequestID: 7,
	})
	assert.Contains(t, unread, "●")
	assert.Contains(t, unread, "Request approved")
	assert.Contains(t, unread, "(#7)")

	read := FormatNotificationRow(domain.Notification{ID: 2, Message: "Old news", IsRead: true})
	assert.Contains(t, read, "·")
	assert.NotContains(t, read, "●")
}

func TestFormatMetrics(t *testing.T) {
	out := FormatMetrics(&domain.DashboardMetrics{
		Period: domain.PeriodMonthly, TotalRequests: 10,
		Pending: 4, Approved: 5, Rejected: 1,
		ByType: map[string]int{"Services": 6, "Consumables": 4},
	})

	assert.Contains(t, out, "Monthly")
	assert.Contains(t, out, "10")
	assert.Contains(t, out, "Services")
	assert.Contains(t, out, "Consumables")
	// Largest type first.
	assert.Less(t, strings.Index(out, "Services"), strings.Index(out, "Consumables"))
}

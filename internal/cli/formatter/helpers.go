package formatter

import (
	"fmt"
	"time"
)

// Truncate shortens s to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

// PadRight pads s with spaces to width display runes, truncating when longer.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	for len([]rune(s)) < width {
		s += " "
	}
	return s
}

// RelativeTime renders t relative to now: "just now", "5m ago", "3h ago",
// "2d ago", falling back to the date for anything older than a month.
func RelativeTime(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

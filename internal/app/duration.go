package app

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration renders d as e.g. "1d 2h 3m 4s", falling back to
// milliseconds for sub-second durations
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	days := int(d / day)
	d -= time.Duration(days) * day
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := int(d / time.Second)
	d -= time.Duration(seconds) * time.Second

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dms", int(d/time.Millisecond)))
	}

	return strings.Join(parts, " ")
}

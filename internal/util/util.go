package util

import (
	"context"
	"fmt"
	"time"
)

// Wait blocks for d or until ctx is done, whichever comes first.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}

// Package view provides rendering helpers for the TUI.
package view

import "time"

// DateTimeLayout is the localized form used for booking dates.
const DateTimeLayout = "Mon, 02 Jan 2006 15:04"

// FormatDateTime renders t in the local zone, or raw when t is zero so a
// malformed server value is still shown as sent.
func FormatDateTime(t time.Time, raw string) string {
	if t.IsZero() {
		if raw == "" {
			return "—"
		}
		return raw
	}
	return t.Local().Format(DateTimeLayout)
}

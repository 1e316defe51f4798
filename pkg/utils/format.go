package utils

import (
	"fmt"
	"time"
)

// FormatRelative renders the distance from now to t the way due columns
// show it: "now" for anything already due, then the largest whole unit.
func FormatRelative(t, now time.Time) string {
	d := t.Sub(now)
	if d <= 0 {
		return "now"
	}

	switch {
	case d < time.Hour:
		m := int(d.Minutes())
		if m < 1 {
			m = 1
		}
		return fmt.Sprintf("%dm", m)
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy", int(d.Hours()/(24*365)))
	}
}

// Pluralize formats a count with its unit, adding "s" when the count
// is anything other than one.
func Pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

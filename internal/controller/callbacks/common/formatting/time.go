package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/calendar"
)

func FormatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 15:04")
}

// FormatDate renders "Mon, Mar 4"
func FormatDate(t time.Time) string {
	return t.Format("Mon, Jan 2")
}

// FormatLongDate renders "Monday, March 4, 2024"
func FormatLongDate(t time.Time) string {
	return t.Format(calendar.HumanDateLayout)
}

// FormatISODate renders a stored "YYYY-MM-DD" in long form; unparsable input is returned as is
func FormatISODate(value string, loc *time.Location) string {
	if d, ok := calendar.ParseLocalDate(value, loc); ok {
		return FormatLongDate(d)
	}
	return value
}

// FormatShortISODate renders a stored "YYYY-MM-DD" as "Mon, Mar 4"
func FormatShortISODate(value string, loc *time.Location) string {
	if d, ok := calendar.ParseLocalDate(value, loc); ok {
		return FormatDate(d)
	}
	return value
}

func FormatTimeRange(start, end string) string {
	return fmt.Sprintf("%s–%s", start, end)
}

func FormatMonth(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String(), year)
}

func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %d min", hours, mins)
}

// WeekdayShort returns a two-letter weekday, 0 = Sunday
func WeekdayShort(weekday int) string {
	names := []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}

// RelativeTime renders "5 min ago" style distances for sync timestamps
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d h ago", int(d.Hours()))
	default:
		return FormatDateTime(t)
	}
}

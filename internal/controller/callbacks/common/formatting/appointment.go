package formatting

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/calendar"
	"github.com/Freeeeeet/counseling_portal/internal/model"
)

// AppointmentLine renders a one-line summary: "✅ 09:00–10:00 Career planning · Ben Cruz"
func AppointmentLine(a *model.Appointment, viewer model.Role) string {
	status := calendar.StatusDisplay(a.Status)
	line := fmt.Sprintf("%s %s %s", status.Emoji, FormatTimeRange(a.StartTime, a.EndTime), html.EscapeString(a.Title()))
	if name := a.ParticipantName(viewer); name != "" {
		line += " · " + html.EscapeString(name)
	}
	return line
}

// AppointmentButton is the short label of an appointment button
func AppointmentButton(a *model.Appointment, withDate bool, loc *time.Location) string {
	label := a.StartTime + " " + a.Title()
	if withDate {
		label = FormatShortISODate(a.ScheduledDate, loc) + " " + label
	}
	return calendar.StatusDisplay(a.Status).Emoji + " " + label
}

// AppointmentDetails renders the details screen body
func AppointmentDetails(a *model.Appointment, viewer model.Role, loc *time.Location) string {
	var b strings.Builder

	status := calendar.StatusDisplay(a.Status)
	fmt.Fprintf(&b, "%s <b>%s</b>\n\n", status.Emoji, html.EscapeString(a.Title()))
	fmt.Fprintf(&b, "📅 %s\n", FormatISODate(a.ScheduledDate, loc))
	fmt.Fprintf(&b, "🕘 %s", FormatTimeRange(a.StartTime, a.EndTime))
	if a.EventType != nil && a.EventType.DurationMinutes > 0 {
		fmt.Fprintf(&b, " (%s)", FormatDuration(a.EventType.DurationMinutes))
	}
	b.WriteString("\n")

	if name := a.ParticipantName(viewer); name != "" {
		label := "Counselor"
		if viewer == model.RoleCounselor {
			label = "Student"
		}
		fmt.Fprintf(&b, "👤 %s: %s", label, html.EscapeString(name))
		if viewer == model.RoleCounselor && a.Student != nil && a.Student.IDNumber != "" {
			fmt.Fprintf(&b, " (%s)", html.EscapeString(a.Student.IDNumber))
		}
		b.WriteString("\n")
	}

	if loc := locationText(a); loc != "" {
		fmt.Fprintf(&b, "📍 %s\n", html.EscapeString(loc))
	}

	if category := a.Category(); category != "" {
		c := calendar.CategoryDisplay(category)
		fmt.Fprintf(&b, "🏷 %s %s\n", c.Emoji, c.Label)
	}

	fmt.Fprintf(&b, "📊 Status: %s\n", status.Label)

	if a.Notes != "" {
		fmt.Fprintf(&b, "\n📝 %s\n", html.EscapeString(a.Notes))
	}

	return strings.TrimRight(b.String(), "\n")
}

func locationText(a *model.Appointment) string {
	kind := strings.ReplaceAll(strings.TrimSpace(a.LocationType), "_", " ")
	if kind != "" {
		kind = strings.ToUpper(kind[:1]) + kind[1:]
	}
	switch {
	case kind != "" && a.LocationDetails != "":
		return kind + ": " + a.LocationDetails
	case kind != "":
		return kind
	default:
		return a.LocationDetails
	}
}

// DateGroups renders appointments grouped under date headings
func DateGroups(appointments []model.Appointment, viewer model.Role, loc *time.Location) string {
	var b strings.Builder
	for i, group := range calendar.GroupByDate(appointments) {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "<b>%s</b>\n", FormatISODate(group.Date, loc))
		for j := range group.Appointments {
			b.WriteString(AppointmentLine(&group.Appointments[j], viewer))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

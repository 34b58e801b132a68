package calendar

import (
	"strings"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/model"
)

const (
	TitlePendingAndConfirmed = "Pending & Confirmed"
	TitlePending             = "Pending"
	TitleConfirmed           = "Confirmed"
	TitleDefault             = "Appointments"
)

// HumanDateLayout is used for selected-date titles, e.g. "Monday, March 4, 2024"
const HumanDateLayout = "Monday, January 2, 2006"

// TitleFor titles the details panel: the selected date, or a summary of
// which statuses the aggregated list contains.
func TitleFor(selected *time.Time, appointments []model.Appointment) string {
	if selected != nil {
		return selected.Format(HumanDateLayout)
	}

	var hasPending, hasConfirmed bool
	for _, a := range appointments {
		switch a.Status {
		case model.AppointmentStatusPending:
			hasPending = true
		case model.AppointmentStatusConfirmed:
			hasConfirmed = true
		}
	}

	switch {
	case hasPending && hasConfirmed:
		return TitlePendingAndConfirmed
	case hasPending:
		return TitlePending
	case hasConfirmed:
		return TitleConfirmed
	default:
		return TitleDefault
	}
}

// Display is the badge presentation of a status
type Display struct {
	Label   string
	Color   string
	BgColor string
	Emoji   string
}

var statusDisplays = map[model.AppointmentStatus]Display{
	model.AppointmentStatusPending:   {"Pending", "#92400E", "#FEF3C7", "⏳"},
	model.AppointmentStatusConfirmed: {"Confirmed", "#065F46", "#D1FAE5", "✅"},
	model.AppointmentStatusCancelled: {"Cancelled", "#991B1B", "#FEE2E2", "❌"},
	model.AppointmentStatusCompleted: {"Completed", "#1E40AF", "#DBEAFE", "✔️"},
	model.AppointmentStatusNoShow:    {"No show", "#374151", "#F3F4F6", "🚫"},
}

var neutralDisplay = Display{Label: "Unknown", Color: "#4B5563", BgColor: "#F9FAFB", Emoji: "❔"}

// StatusDisplay looks up the badge for a status; statuses the backend adds
// later get the neutral badge with a humanized label.
func StatusDisplay(status model.AppointmentStatus) Display {
	if display, ok := statusDisplays[status]; ok {
		return display
	}
	display := neutralDisplay
	if label := humanize(string(status)); label != "" {
		display.Label = label
	}
	return display
}

// CategoryLabel is the presentation of an event type category
type CategoryLabel struct {
	Label string
	Emoji string
}

var categoryLabels = map[string]CategoryLabel{
	"academic":      {"Academic Counseling", "📘"},
	"career":        {"Career Guidance", "💼"},
	"personal":      {"Personal Counseling", "💬"},
	"mental_health": {"Mental Health", "🧠"},
	"group":         {"Group Session", "👥"},
}

var defaultCategory = CategoryLabel{Label: "General", Emoji: "📌"}

// CategoryDisplay looks up a category label with a "General" fallback
func CategoryDisplay(category string) CategoryLabel {
	if label, ok := categoryLabels[strings.ToLower(strings.TrimSpace(category))]; ok {
		return label
	}
	return defaultCategory
}

var studentStatusDisplays = map[model.StudentStatus]Display{
	model.StudentStatusActive:     {"Active", "#065F46", "#D1FAE5", "🟢"},
	model.StudentStatusMonitoring: {"Monitoring", "#92400E", "#FEF3C7", "🟡"},
	model.StudentStatusReferred:   {"Referred", "#5B21B6", "#EDE9FE", "🟣"},
	model.StudentStatusClosed:     {"Closed", "#374151", "#F3F4F6", "⚪️"},
}

// StudentStatusDisplay looks up the badge of a student case status
func StudentStatusDisplay(status model.StudentStatus) Display {
	if display, ok := studentStatusDisplays[status]; ok {
		return display
	}
	display := neutralDisplay
	if label := humanize(string(status)); label != "" {
		display.Label = label
	}
	return display
}

// DateGroup is a run of appointments sharing one scheduled date
type DateGroup struct {
	Date         string
	Appointments []model.Appointment
}

// GroupByDate groups appointments by ScheduledDate in chronological order
func GroupByDate(appointments []model.Appointment) []DateGroup {
	var groups []DateGroup
	for _, a := range SortAppointments(appointments) {
		if n := len(groups); n > 0 && groups[n-1].Date == a.ScheduledDate {
			groups[n-1].Appointments = append(groups[n-1].Appointments, a)
			continue
		}
		groups = append(groups, DateGroup{Date: a.ScheduledDate, Appointments: []model.Appointment{a}})
	}
	return groups
}

func humanize(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", " "))
	if value == "" {
		return ""
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

package formatting

import (
	"github.com/Freeeeeet/counseling_portal/internal/calendar"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/Freeeeeet/counseling_portal/internal/portalapi"
)

// AppointmentStatus renders "✅ Confirmed"
func AppointmentStatus(status model.AppointmentStatus) string {
	d := calendar.StatusDisplay(status)
	return d.Emoji + " " + d.Label
}

func StudentStatus(status model.StudentStatus) string {
	d := calendar.StudentStatusDisplay(status)
	return d.Emoji + " " + d.Label
}

// ActionDisplay holds the button label and toast of a status action
type ActionDisplay struct {
	Button string
	Done   string
}

func Action(action portalapi.AppointmentAction) ActionDisplay {
	switch action {
	case portalapi.ActionConfirm:
		return ActionDisplay{Button: "✅ Confirm", Done: "Appointment confirmed"}
	case portalapi.ActionCancel:
		return ActionDisplay{Button: "❌ Cancel appointment", Done: "Appointment cancelled"}
	case portalapi.ActionComplete:
		return ActionDisplay{Button: "✔️ Mark completed", Done: "Marked as completed"}
	default:
		return ActionDisplay{Button: string(action), Done: "Done"}
	}
}

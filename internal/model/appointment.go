package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"   // Waiting for the counselor
	AppointmentStatusConfirmed AppointmentStatus = "confirmed" // Confirmed by the counselor
	AppointmentStatusCancelled AppointmentStatus = "cancelled" // Cancelled by either side
	AppointmentStatusCompleted AppointmentStatus = "completed" // Session took place
	AppointmentStatusNoShow    AppointmentStatus = "no_show"   // Student did not come
)

// EventType is a counselor-defined appointment template
type EventType struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration"`
	Color           string `json:"color"`
	Category        string `json:"category"`
}

// Participant is the display info the backend attaches to an appointment
type Participant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IDNumber  string `json:"id_number"`
	AvatarURL string `json:"avatar_url"`
}

type Appointment struct {
	ID              string            `json:"id"`
	StudentID       string            `json:"student_id"`
	CounselorID     string            `json:"counselor_id"`
	EventType       *EventType        `json:"event_type,omitempty"`
	ScheduledDate   string            `json:"scheduled_date"` // YYYY-MM-DD
	StartTime       string            `json:"start_time"`     // HH:MM, viewer-local wall clock
	EndTime         string            `json:"end_time"`       // HH:MM
	Status          AppointmentStatus `json:"status"`
	LocationType    string            `json:"location_type"`
	LocationDetails string            `json:"location_details"`
	Notes           string            `json:"notes"`
	CreatedAt       time.Time         `json:"created_at"`

	// Display info, may be absent
	Student   *Participant `json:"student,omitempty"`
	Counselor *Participant `json:"counselor,omitempty"`
}

// IsActive reports whether the appointment is not cancelled
func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentStatusCancelled
}

// IsOpen reports whether the appointment still waits to happen
func (a *Appointment) IsOpen() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

// Title returns the event type name or a generic fallback
func (a *Appointment) Title() string {
	if a.EventType != nil && a.EventType.Name != "" {
		return a.EventType.Name
	}
	return "Counseling session"
}

// Category returns the event type category, empty when unknown
func (a *Appointment) Category() string {
	if a.EventType == nil {
		return ""
	}
	return a.EventType.Category
}

// ParticipantName returns the name of the other side for the given role
func (a *Appointment) ParticipantName(viewer Role) string {
	p := a.Student
	if viewer == RoleStudent {
		p = a.Counselor
	}
	if p == nil || p.Name == "" {
		return ""
	}
	return p.Name
}

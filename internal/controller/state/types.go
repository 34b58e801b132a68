package state

// UserState is the dialog step a user is in
type UserState string

const (
	StateNone UserState = "" // No active dialog

	// Login dialog
	StateLoginEmail    UserState = "login_email"
	StateLoginPassword UserState = "login_password"

	// Availability editor
	StateAvailabilitySlot UserState = "availability_slot"
	StateOverrideDate     UserState = "override_date"
	StateOverrideSlots    UserState = "override_slots"

	// Student notes
	StateAddNote UserState = "add_note"
)

// Data keys shared between callbacks and text dialogs
const (
	KeyLoginEmail        = "login_email"
	KeyAvailabilityDraft = "availability_draft"
	KeyAvailabilityDirty = "availability_dirty"
	KeyAvailabilityDay   = "availability_day"
	KeyOverrideDate      = "override_date"
	KeyNoteStudentID     = "note_student_id"
	KeyStudentSort       = "student_sort"
	KeyStudentPage       = "student_page"
)

// UserData holds the dialog state and its scratch values
type UserData struct {
	State UserState
	Data  map[string]interface{}
}

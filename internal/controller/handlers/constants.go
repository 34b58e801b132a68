package handlers

// Input limits of the text dialogs
const (
	EmailMaxLength = 254
	NoteMaxLength  = 4000
)

// ExportFilename is the name of the document sent by /export
const ExportFilename = "counseling-appointments.ics"

package model

import "time"

type StudentStatus string

const (
	StudentStatusActive     StudentStatus = "active"
	StudentStatusMonitoring StudentStatus = "monitoring"
	StudentStatusReferred   StudentStatus = "referred"
	StudentStatusClosed     StudentStatus = "closed"
)

// StudentStatuses lists the statuses a counselor can pick from
var StudentStatuses = []StudentStatus{
	StudentStatusActive,
	StudentStatusMonitoring,
	StudentStatusReferred,
	StudentStatusClosed,
}

// Student is a row of the counselor's student list
type Student struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	IDNumber        string        `json:"id_number"`
	Email           string        `json:"email"`
	Program         string        `json:"program"`
	YearLevel       int           `json:"year_level"`
	Status          StudentStatus `json:"status"`
	LastAppointment *time.Time    `json:"last_appointment,omitempty"`
}

// Note is a counselor note about a student
type Note struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	CounselorID string    `json:"counselor_id"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

package service

import (
	"context"

	"github.com/Freeeeeet/counseling_portal/internal/auth"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/Freeeeeet/counseling_portal/internal/portalapi"
	"github.com/google/uuid"
)

// IdentityProvider issues and refreshes portal sessions
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

type ClaimsParser interface {
	Parse(token string) (*auth.Claims, error)
}

type SessionStore interface {
	Upsert(ctx context.Context, s *model.PortalSession) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.PortalSession, error)
	UpdateTokens(ctx context.Context, s *model.PortalSession) error
	Delete(ctx context.Context, telegramID int64) error
	ListAll(ctx context.Context) ([]*model.PortalSession, error)
}

type AppointmentAPI interface {
	ListAppointments(ctx context.Context, token string) ([]model.Appointment, error)
	UpdateAppointment(ctx context.Context, token, id string, action portalapi.AppointmentAction) (*model.Appointment, error)
}

type AvailabilityAPI interface {
	GetAvailability(ctx context.Context, token string) (*model.Availability, error)
	PutAvailability(ctx context.Context, token string, availability *model.Availability) (*model.Availability, error)
}

type CalendarAPI interface {
	CalendarStatus(ctx context.Context, token string) (*model.CalendarSyncStatus, error)
	AuthorizeCalendar(ctx context.Context, token, returnURL string) (string, error)
	DisconnectCalendar(ctx context.Context, token string) error
	SyncCalendar(ctx context.Context, token string) error
}

type StudentAPI interface {
	ListStudents(ctx context.Context, token string) ([]model.Student, error)
	UpdateStudentStatus(ctx context.Context, token, studentID string, status model.StudentStatus) (*model.Student, error)
	ListNotes(ctx context.Context, token, studentID string) ([]model.Note, error)
	CreateNote(ctx context.Context, token, studentID, content string) (*model.Note, error)
}

type StateSigner interface {
	Sign(telegramID int64) (string, error)
	Verify(state string) (int64, error)
}

type CalendarViewStore interface {
	Get(ctx context.Context, telegramID int64) (*model.CalendarView, error)
	Save(ctx context.Context, view *model.CalendarView) error
}

type DigestStore interface {
	Claim(ctx context.Context, runID uuid.UUID, telegramID int64, date string, appointments int) (bool, error)
	Release(ctx context.Context, telegramID int64, date string) error
}

// Notifier delivers a plain message to a Telegram user
type Notifier interface {
	Notify(ctx context.Context, telegramID int64, text string) error
}

package callbacktypes

import (
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/service"
	"go.uber.org/zap"
)

// UserState is the dialog step a user is in
type UserState string

// StateManager keeps per-user dialog state
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	DeleteData(telegramID int64, key string)
	GetAllData(telegramID int64) map[string]interface{}
}

// Handler carries the dependencies shared by all callback handlers
type Handler struct {
	Sessions      *service.SessionService
	Appointments  *service.AppointmentService
	Availability  *service.AvailabilityService
	CalendarSync  *service.CalendarSyncService
	Students      *service.StudentService
	CalendarViews *service.CalendarViewService
	StateManager  StateManager
	Location      *time.Location
	Logger        *zap.Logger

	// Now is the clock used for "today"; time.Now when nil
	Now func() time.Time
}

// Today returns the current time in the viewer location
func (h *Handler) Today() time.Time {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	loc := h.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/calendar"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/Freeeeeet/counseling_portal/internal/portalapi"
	"go.uber.org/zap"
)

type AppointmentService struct {
	api      AppointmentAPI
	sessions *SessionService
	logger   *zap.Logger
}

func NewAppointmentService(api AppointmentAPI, sessions *SessionService, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{
		api:      api,
		sessions: sessions,
		logger:   logger,
	}
}

// List fetches every appointment visible to the session owner
func (s *AppointmentService) List(ctx context.Context, session *model.PortalSession) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := s.sessions.Call(ctx, session, func(token string) error {
		var err error
		appointments, err = s.api.ListAppointments(ctx, token)
		return err
	})
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// Upcoming returns the open appointments in chronological order
func (s *AppointmentService) Upcoming(ctx context.Context, session *model.PortalSession) ([]model.Appointment, error) {
	appointments, err := s.List(ctx, session)
	if err != nil {
		return nil, err
	}
	return calendar.UpcomingAppointments(appointments), nil
}

// History returns completed and no-show appointments, newest first
func (s *AppointmentService) History(ctx context.Context, session *model.PortalSession) ([]model.Appointment, error) {
	appointments, err := s.List(ctx, session)
	if err != nil {
		return nil, err
	}
	return calendar.History(appointments), nil
}

// ForDate returns the open appointments on the local date of day
func (s *AppointmentService) ForDate(ctx context.Context, session *model.PortalSession, day time.Time) ([]model.Appointment, error) {
	appointments, err := s.List(ctx, session)
	if err != nil {
		return nil, err
	}
	return calendar.AppointmentsForDate(day, appointments), nil
}

// Get finds a single appointment by ID
func (s *AppointmentService) Get(ctx context.Context, session *model.PortalSession, id string) (*model.Appointment, error) {
	appointments, err := s.List(ctx, session)
	if err != nil {
		return nil, err
	}
	for i := range appointments {
		if appointments[i].ID == id {
			return &appointments[i], nil
		}
	}
	return nil, ErrNotFound
}

// AllowedActions lists the status actions the viewer may take on the appointment
func AllowedActions(role model.Role, a *model.Appointment) []portalapi.AppointmentAction {
	switch {
	case role == model.RoleCounselor && a.Status == model.AppointmentStatusPending:
		return []portalapi.AppointmentAction{portalapi.ActionConfirm, portalapi.ActionCancel}
	case role == model.RoleCounselor && a.Status == model.AppointmentStatusConfirmed:
		return []portalapi.AppointmentAction{portalapi.ActionComplete, portalapi.ActionCancel}
	case role == model.RoleStudent && a.IsOpen():
		return []portalapi.AppointmentAction{portalapi.ActionCancel}
	default:
		return nil
	}
}

// Apply runs a status action after checking it is allowed for the viewer
func (s *AppointmentService) Apply(ctx context.Context, session *model.PortalSession, id string, action portalapi.AppointmentAction) (*model.Appointment, error) {
	current, err := s.Get(ctx, session, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, a := range AllowedActions(session.Role, current) {
		if a == action {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrActionForbidden
	}

	var updated *model.Appointment
	err = s.sessions.Call(ctx, session, func(token string) error {
		var err error
		updated, err = s.api.UpdateAppointment(ctx, token, id, action)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("apply %s: %w", action, err)
	}

	s.logger.Info("Appointment updated",
		zap.Int64("telegram_id", session.TelegramID),
		zap.String("appointment_id", id),
		zap.String("action", string(action)),
	)

	return updated, nil
}

package portalapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/counseling_portal/internal/model"
)

// AppointmentAction is a status mutation the backend exposes
type AppointmentAction string

const (
	ActionConfirm  AppointmentAction = "confirm"
	ActionCancel   AppointmentAction = "cancel"
	ActionComplete AppointmentAction = "complete"
)

// ListAppointments returns the appointments visible to the token owner
func (c *Client) ListAppointments(ctx context.Context, token string) ([]model.Appointment, error) {
	var appointments []model.Appointment
	if err := c.do(ctx, token, http.MethodGet, "/appointments", nil, &appointments); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

// UpdateAppointment applies a status action and returns the updated appointment
func (c *Client) UpdateAppointment(ctx context.Context, token, id string, action AppointmentAction) (*model.Appointment, error) {
	switch action {
	case ActionConfirm, ActionCancel, ActionComplete:
	default:
		return nil, fmt.Errorf("unsupported appointment action %q", action)
	}

	var appointment model.Appointment
	path := "/appointments/" + escape(id) + "/" + string(action)
	if err := c.do(ctx, token, http.MethodPost, path, nil, &appointment); err != nil {
		return nil, fmt.Errorf("%s appointment: %w", action, err)
	}
	return &appointment, nil
}

package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/Freeeeeet/counseling_portal/internal/portalapi"
	"go.uber.org/zap"
)

func TestAllowedActions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		role   model.Role
		status model.AppointmentStatus
		want   []portalapi.AppointmentAction
	}{
		{"counselor pending", model.RoleCounselor, model.AppointmentStatusPending, []portalapi.AppointmentAction{portalapi.ActionConfirm, portalapi.ActionCancel}},
		{"counselor confirmed", model.RoleCounselor, model.AppointmentStatusConfirmed, []portalapi.AppointmentAction{portalapi.ActionComplete, portalapi.ActionCancel}},
		{"counselor completed", model.RoleCounselor, model.AppointmentStatusCompleted, nil},
		{"student pending", model.RoleStudent, model.AppointmentStatusPending, []portalapi.AppointmentAction{portalapi.ActionCancel}},
		{"student confirmed", model.RoleStudent, model.AppointmentStatusConfirmed, []portalapi.AppointmentAction{portalapi.ActionCancel}},
		{"student cancelled", model.RoleStudent, model.AppointmentStatusCancelled, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := AllowedActions(tt.role, &model.Appointment{Status: tt.status})
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("AllowedActions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppointmentServiceApply(t *testing.T) {
	t.Parallel()

	session := counselorSession(1, "token")
	backend := &fakeBackend{
		valid: map[string]bool{"token": true},
		appointments: []model.Appointment{
			{ID: "a1", ScheduledDate: "2024-03-04", StartTime: "09:00", Status: model.AppointmentStatusPending},
			{ID: "a2", ScheduledDate: "2024-03-04", StartTime: "10:00", Status: model.AppointmentStatusCompleted},
		},
	}
	service := NewAppointmentService(backend, newTestSessions(&fakeIDP{}, newFakeSessionStore(session)), zap.NewNop())

	updated, err := service.Apply(context.Background(), &session, "a1", portalapi.ActionConfirm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != model.AppointmentStatusConfirmed {
		t.Fatalf("unexpected status %s", updated.Status)
	}

	if _, err := service.Apply(context.Background(), &session, "a2", portalapi.ActionCancel); !errors.Is(err, ErrActionForbidden) {
		t.Fatalf("expected ErrActionForbidden, got %v", err)
	}
	if _, err := service.Apply(context.Background(), &session, "missing", portalapi.ActionCancel); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(backend.updates) != 1 {
		t.Fatalf("expected a single backend update, got %v", backend.updates)
	}
}

func TestAppointmentServiceForDate(t *testing.T) {
	t.Parallel()

	session := counselorSession(1, "token")
	backend := &fakeBackend{
		valid: map[string]bool{"token": true},
		appointments: []model.Appointment{
			{ID: "late", ScheduledDate: "2024-03-04", StartTime: "15:00", Status: model.AppointmentStatusConfirmed},
			{ID: "early", ScheduledDate: "2024-03-04", StartTime: "09:00", Status: model.AppointmentStatusPending},
			{ID: "cancelled", ScheduledDate: "2024-03-04", StartTime: "11:00", Status: model.AppointmentStatusCancelled},
			{ID: "other", ScheduledDate: "2024-03-05", StartTime: "09:00", Status: model.AppointmentStatusPending},
		},
	}
	service := NewAppointmentService(backend, newTestSessions(&fakeIDP{}, newFakeSessionStore(session)), zap.NewNop())

	got, err := service.ForDate(context.Background(), &session, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "early" || got[1].ID != "late" {
		t.Fatalf("unexpected appointments %+v", got)
	}
}

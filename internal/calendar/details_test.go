package calendar

import (
	"testing"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/model"
)

func TestTitleFor(t *testing.T) {
	t.Parallel()

	selected := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	pending := appt("a", "2024-03-04", "09:00", model.AppointmentStatusPending)
	confirmed := appt("b", "2024-03-05", "09:00", model.AppointmentStatusConfirmed)

	tests := []struct {
		name     string
		selected *time.Time
		list     []model.Appointment
		want     string
	}{
		{name: "selected date", selected: &selected, list: []model.Appointment{pending}, want: "Monday, March 4, 2024"},
		{name: "pending and confirmed", list: []model.Appointment{pending, confirmed}, want: "Pending & Confirmed"},
		{name: "only pending", list: []model.Appointment{pending}, want: "Pending"},
		{name: "only confirmed", list: []model.Appointment{confirmed}, want: "Confirmed"},
		{name: "empty", want: "Appointments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := TitleFor(tt.selected, tt.list); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStatusDisplay(t *testing.T) {
	t.Parallel()

	if got := StatusDisplay(model.AppointmentStatusConfirmed); got.Label != "Confirmed" {
		t.Fatalf("unexpected confirmed display: %+v", got)
	}

	unknown := StatusDisplay("rescheduled")
	if unknown.Label != "Rescheduled" || unknown.BgColor != neutralDisplay.BgColor {
		t.Fatalf("expected neutral display with humanized label, got %+v", unknown)
	}
	if empty := StatusDisplay(""); empty != neutralDisplay {
		t.Fatalf("expected neutral display, got %+v", empty)
	}
}

func TestCategoryDisplay(t *testing.T) {
	t.Parallel()

	if got := CategoryDisplay("Career"); got.Label != "Career Guidance" {
		t.Fatalf("unexpected career label: %+v", got)
	}
	if got := CategoryDisplay("astrology"); got != defaultCategory {
		t.Fatalf("expected default category, got %+v", got)
	}
}

func TestStudentStatusDisplay(t *testing.T) {
	t.Parallel()

	if got := StudentStatusDisplay(model.StudentStatusReferred); got.Label != "Referred" {
		t.Fatalf("unexpected label: %+v", got)
	}
	if got := StudentStatusDisplay("on_leave"); got.Label != "On leave" {
		t.Fatalf("expected humanized fallback, got %+v", got)
	}
}

func TestGroupByDate(t *testing.T) {
	t.Parallel()

	groups := GroupByDate([]model.Appointment{
		appt("a", "2024-03-05", "09:00", model.AppointmentStatusPending),
		appt("b", "2024-03-04", "10:00", model.AppointmentStatusPending),
		appt("c", "2024-03-04", "08:00", model.AppointmentStatusPending),
	})

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Date != "2024-03-04" || len(groups[0].Appointments) != 2 || groups[0].Appointments[0].ID != "c" {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
}

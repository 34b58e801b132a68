package formatting

import (
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/model"
)

func TestAppointmentLine(t *testing.T) {
	t.Parallel()

	a := &model.Appointment{
		StartTime: "09:00",
		EndTime:   "10:00",
		Status:    model.AppointmentStatusConfirmed,
		EventType: &model.EventType{Name: "Career <planning>"},
		Student:   &model.Participant{Name: "Ben"},
		Counselor: &model.Participant{Name: "Dana"},
	}

	counselorView := AppointmentLine(a, model.RoleCounselor)
	if !strings.Contains(counselorView, "09:00–10:00 Career &lt;planning&gt; · Ben") {
		t.Fatalf("unexpected counselor line %q", counselorView)
	}
	if studentView := AppointmentLine(a, model.RoleStudent); !strings.HasSuffix(studentView, "· Dana") {
		t.Fatalf("unexpected student line %q", studentView)
	}
}

func TestAppointmentDetails(t *testing.T) {
	t.Parallel()

	a := &model.Appointment{
		ScheduledDate:   "2024-03-04",
		StartTime:       "09:00",
		EndTime:         "10:00",
		Status:          model.AppointmentStatusPending,
		LocationType:    "in_person",
		LocationDetails: "Room 204",
		EventType:       &model.EventType{Name: "Check-in", Category: "academic", DurationMinutes: 90},
		Student:         &model.Participant{Name: "Ben", IDNumber: "2021-001"},
	}

	text := AppointmentDetails(a, model.RoleCounselor, time.UTC)
	for _, want := range []string{"Monday, March 4, 2024", "09:00–10:00 (1 h 30 min)", "Student: Ben (2021-001)", "In person: Room 204", "Status: Pending"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in %q", want, text)
		}
	}
}

func TestDateGroups(t *testing.T) {
	t.Parallel()

	appointments := []model.Appointment{
		{ID: "b", ScheduledDate: "2024-03-05", StartTime: "09:00", EndTime: "10:00", Status: model.AppointmentStatusPending},
		{ID: "a", ScheduledDate: "2024-03-04", StartTime: "11:00", EndTime: "12:00", Status: model.AppointmentStatusConfirmed},
	}

	text := DateGroups(appointments, model.RoleStudent, time.UTC)
	first := strings.Index(text, "Monday, March 4, 2024")
	second := strings.Index(text, "Tuesday, March 5, 2024")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("expected chronological groups, got %q", text)
	}
}

func TestRelativeTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5 min ago"},
		{now.Add(-3 * time.Hour), "3 h ago"},
		{now.AddDate(0, 0, -2), "Mar 2, 2024 12:00"},
	}
	for _, tt := range tests {
		if got := RelativeTime(tt.at, now); got != tt.want {
			t.Fatalf("RelativeTime(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}

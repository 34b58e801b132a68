package calendar

import (
	"reflect"
	"testing"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/model"
)

func appt(id, date, start string, status model.AppointmentStatus) model.Appointment {
	return model.Appointment{ID: id, ScheduledDate: date, StartTime: start, Status: status}
}

func startTimes(appointments []model.Appointment) []string {
	times := make([]string, len(appointments))
	for i, a := range appointments {
		times[i] = a.StartTime
	}
	return times
}

func TestAppointmentsForDate_OrdersByStartTime(t *testing.T) {
	t.Parallel()

	appointments := []model.Appointment{
		appt("a", "2024-03-04", "09:00", model.AppointmentStatusConfirmed),
		appt("b", "2024-03-04", "08:30", model.AppointmentStatusPending),
		appt("c", "2024-03-04", "10:00", model.AppointmentStatusConfirmed),
	}

	got := AppointmentsForDate(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), appointments)
	want := []string{"08:30", "09:00", "10:00"}
	if !reflect.DeepEqual(startTimes(got), want) {
		t.Fatalf("expected %v, got %v", want, startTimes(got))
	}
}

func TestAppointmentsForDate_ExcludesCancelled(t *testing.T) {
	t.Parallel()

	appointments := []model.Appointment{
		appt("a", "2024-03-04", "09:00", model.AppointmentStatusCancelled),
		appt("b", "2024-03-04", "11:00", model.AppointmentStatusPending),
		appt("c", "2024-03-05", "09:00", model.AppointmentStatusPending),
	}

	got := AppointmentsForDate(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), appointments)
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected only appointment b, got %+v", got)
	}
}

func TestAppointmentsForDate_Idempotent(t *testing.T) {
	t.Parallel()

	appointments := []model.Appointment{
		appt("a", "2024-03-04", "09:00", model.AppointmentStatusConfirmed),
		appt("b", "2024-03-04", "09:00", model.AppointmentStatusPending),
		appt("c", "2024-03-04", "07:45", model.AppointmentStatusPending),
	}
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	first := AppointmentsForDate(date, appointments)
	second := AppointmentsForDate(date, appointments)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output, got %+v and %+v", first, second)
	}
	if first[1].ID != "a" || first[2].ID != "b" {
		t.Fatalf("expected ties to keep input order, got %+v", first)
	}
}

func TestAppointmentsForDate_LocalDateNotUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-7", -7*60*60)
	evening := time.Date(2024, 3, 4, 21, 0, 0, 0, loc)
	appointments := []model.Appointment{appt("a", "2024-03-04", "09:00", model.AppointmentStatusPending)}

	if got := AppointmentsForDate(evening, appointments); len(got) != 1 {
		t.Fatalf("expected appointment on local date, got %+v", got)
	}
}

func TestUpcomingAppointments_SortingLaw(t *testing.T) {
	t.Parallel()

	appointments := []model.Appointment{
		appt("a", "2024-03-05", "08:00", model.AppointmentStatusConfirmed),
		appt("b", "2024-03-04", "15:00", model.AppointmentStatusPending),
		appt("c", "2024-03-04", "09:00", model.AppointmentStatusConfirmed),
		appt("d", "2024-03-03", "10:00", model.AppointmentStatusCompleted),
		appt("e", "2024-03-02", "10:00", model.AppointmentStatusCancelled),
	}

	got := UpcomingAppointments(appointments)
	if len(got) != 3 {
		t.Fatalf("expected 3 open appointments, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if prev.ScheduledDate > cur.ScheduledDate {
			t.Fatalf("date order violated: %s before %s", prev.ScheduledDate, cur.ScheduledDate)
		}
		if prev.ScheduledDate == cur.ScheduledDate && prev.StartTime > cur.StartTime {
			t.Fatalf("time order violated: %s before %s", prev.StartTime, cur.StartTime)
		}
	}
}

func TestSortAppointments_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	appointments := []model.Appointment{
		appt("a", "2024-03-05", "08:00", model.AppointmentStatusPending),
		appt("b", "2024-03-04", "08:00", model.AppointmentStatusPending),
	}
	_ = SortAppointments(appointments)
	if appointments[0].ID != "a" {
		t.Fatalf("input slice was reordered")
	}
}

func TestAppointmentsInRangeAndCounts(t *testing.T) {
	t.Parallel()

	appointments := []model.Appointment{
		appt("a", "2024-03-01", "08:00", model.AppointmentStatusPending),
		appt("b", "2024-03-15", "08:00", model.AppointmentStatusConfirmed),
		appt("c", "2024-03-15", "09:00", model.AppointmentStatusConfirmed),
		appt("d", "2024-04-01", "08:00", model.AppointmentStatusPending),
		appt("e", "2024-03-15", "10:00", model.AppointmentStatusCancelled),
	}

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	if got := AppointmentsInRange(from, to, appointments); len(got) != 3 {
		t.Fatalf("expected 3 appointments in March, got %d", len(got))
	}

	counts := CountByDate(appointments)
	if counts["2024-03-15"] != 2 || counts["2024-03-01"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestHistory_NewestFirst(t *testing.T) {
	t.Parallel()

	appointments := []model.Appointment{
		appt("a", "2024-01-10", "09:00", model.AppointmentStatusCompleted),
		appt("b", "2024-02-10", "09:00", model.AppointmentStatusNoShow),
		appt("c", "2024-03-10", "09:00", model.AppointmentStatusPending),
	}

	got := History(appointments)
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("unexpected history: %+v", got)
	}
}

func TestFormatLocalISODate(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+13", 13*60*60)
	// Early morning local time is still the previous day in UTC
	early := time.Date(2024, 1, 1, 1, 0, 0, 0, loc)
	if got := FormatLocalISODate(early); got != "2024-01-01" {
		t.Fatalf("expected 2024-01-01, got %s", got)
	}
}

package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/model"
)

// FormatLocalISODate renders the local calendar fields of t as YYYY-MM-DD.
// It never converts to UTC first, so late-evening times stay on their own day.
func FormatLocalISODate(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ActiveAppointments drops cancelled appointments, keeping input order
func ActiveAppointments(appointments []model.Appointment) []model.Appointment {
	result := make([]model.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a.IsActive() {
			result = append(result, a)
		}
	}
	return result
}

// AppointmentsForDate returns the pending and confirmed appointments scheduled
// on the local calendar date of date, ordered by start time.
func AppointmentsForDate(date time.Time, appointments []model.Appointment) []model.Appointment {
	key := FormatLocalISODate(date)

	var result []model.Appointment
	for _, a := range ActiveAppointments(appointments) {
		if a.ScheduledDate != key || !a.IsOpen() {
			continue
		}
		result = append(result, a)
	}

	return SortAppointments(result)
}

// UpcomingAppointments is the no-selection view: every pending or confirmed
// appointment across all dates, ordered by date and start time.
func UpcomingAppointments(appointments []model.Appointment) []model.Appointment {
	var result []model.Appointment
	for _, a := range ActiveAppointments(appointments) {
		if a.IsOpen() {
			result = append(result, a)
		}
	}
	return SortAppointments(result)
}

// AppointmentsInRange returns open appointments with from <= date <= to (local dates)
func AppointmentsInRange(from, to time.Time, appointments []model.Appointment) []model.Appointment {
	lo, hi := FormatLocalISODate(from), FormatLocalISODate(to)

	var result []model.Appointment
	for _, a := range UpcomingAppointments(appointments) {
		if a.ScheduledDate >= lo && a.ScheduledDate <= hi {
			result = append(result, a)
		}
	}
	return result
}

// CountByDate counts open appointments per YYYY-MM-DD for grid markers
func CountByDate(appointments []model.Appointment) map[string]int {
	counts := make(map[string]int)
	for _, a := range UpcomingAppointments(appointments) {
		counts[a.ScheduledDate]++
	}
	return counts
}

// History returns completed and no-show appointments, most recent first
func History(appointments []model.Appointment) []model.Appointment {
	var result []model.Appointment
	for _, a := range appointments {
		if a.Status == model.AppointmentStatusCompleted || a.Status == model.AppointmentStatusNoShow {
			result = append(result, a)
		}
	}

	result = SortAppointments(result)
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}

// SortAppointments returns a copy ordered by ScheduledDate then StartTime.
// Both keys are zero-padded so string order is chronological; ties keep input order.
func SortAppointments(appointments []model.Appointment) []model.Appointment {
	sorted := make([]model.Appointment, len(appointments))
	copy(sorted, appointments)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ScheduledDate != sorted[j].ScheduledDate {
			return sorted[i].ScheduledDate < sorted[j].ScheduledDate
		}
		return sorted[i].StartTime < sorted[j].StartTime
	})

	return sorted
}

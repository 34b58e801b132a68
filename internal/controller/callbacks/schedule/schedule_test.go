package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/calendar"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/go-telegram/bot/models"
)

var testNow = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

func allCallbackData(kb *models.InlineKeyboardMarkup) []string {
	var data []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			data = append(data, btn.CallbackData)
		}
	}
	return data
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func testAppointments() []model.Appointment {
	return []model.Appointment{
		{ID: "a1", ScheduledDate: "2024-03-04", StartTime: "10:00", EndTime: "11:00", Status: model.AppointmentStatusConfirmed},
		{ID: "a2", ScheduledDate: "2024-03-12", StartTime: "09:00", EndTime: "10:00", Status: model.AppointmentStatusPending},
		{ID: "a3", ScheduledDate: "2024-03-12", StartTime: "13:00", EndTime: "14:00", Status: model.AppointmentStatusCancelled},
	}
}

func TestBuildCalendarScreen_Upcoming(t *testing.T) {
	t.Parallel()

	view := calendar.Project(calendar.NewViewState(testNow), testAppointments(), nil, testNow)
	text, kb := BuildCalendarScreen(view, model.RoleStudent, time.UTC)

	if !strings.Contains(text, "March 2024") {
		t.Fatalf("missing month title: %q", text)
	}
	data := allCallbackData(kb)
	for _, want := range []string{"cal:prev", "cal:next", "cal:today", "cal:select=2024-03-12", "appt:a1", "appt:a2", CalendarImage} {
		if !contains(data, want) {
			t.Fatalf("missing %q in %v", want, data)
		}
	}
	if contains(data, "appt:a3") {
		t.Fatal("cancelled appointment must not be listed")
	}
	if contains(data, "cal:clear") {
		t.Fatal("clear is offered only with a selection")
	}
	for _, row := range kb.InlineKeyboard[1:] {
		if len(row) > calendar.DaysInWeek {
			t.Fatalf("grid row wider than a week: %d", len(row))
		}
	}
}

func TestBuildCalendarScreen_SelectedWithAvailability(t *testing.T) {
	t.Parallel()

	availability := &calendar.AvailabilityData{
		Weekly: []model.WeeklyAvailability{{Day: "Tuesday", Available: true, Slots: []model.TimeSlot{{Start: "09:00", End: "12:00"}}}},
	}
	state := calendar.NewViewState(testNow).SelectDate(time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC))
	view := calendar.Project(state, testAppointments(), availability, testNow)

	text, kb := BuildCalendarScreen(view, model.RoleCounselor, time.UTC)
	if !strings.Contains(text, "Tuesday, March 12, 2024") {
		t.Fatalf("missing selected date: %q", text)
	}
	if !strings.Contains(text, "🟢 Available: 09:00–12:00") {
		t.Fatalf("missing availability line: %q", text)
	}
	data := allCallbackData(kb)
	if !contains(data, "cal:clear") || !contains(data, "appt:a2") || contains(data, "appt:a1") {
		t.Fatalf("unexpected buttons %v", data)
	}
}

func TestDayButton(t *testing.T) {
	t.Parallel()

	day := calendar.DayView{Cell: calendar.Cell{Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)}, IsToday: true, Appointments: 2}
	btn := dayButton(day)
	if btn.Text != "·4·•" || btn.CallbackData != "cal:select=2024-03-04" {
		t.Fatalf("unexpected button %+v", btn)
	}

	day.IsSelected = true
	if got := dayButton(day).Text; got != "[4]•" {
		t.Fatalf("selected label = %q", got)
	}

	if got := dayButton(calendar.DayView{}).CallbackData; got != "noop" {
		t.Fatalf("blank cell callback = %q", got)
	}
}

func TestBuildAppointmentScreen_Actions(t *testing.T) {
	t.Parallel()

	pending := &model.Appointment{ID: "a2", ScheduledDate: "2024-03-12", StartTime: "09:00", EndTime: "10:00", Status: model.AppointmentStatusPending}

	_, kb := BuildAppointmentScreen(pending, model.RoleCounselor, time.UTC)
	data := allCallbackData(kb)
	if !contains(data, "appt_do:confirm:a2") || !contains(data, "appt_ask:cancel:a2") {
		t.Fatalf("counselor actions missing: %v", data)
	}

	_, kb = BuildAppointmentScreen(pending, model.RoleStudent, time.UTC)
	data = allCallbackData(kb)
	if contains(data, "appt_do:confirm:a2") || !contains(data, "appt_ask:cancel:a2") {
		t.Fatalf("student actions wrong: %v", data)
	}

	_, kb = BuildConfirmActionScreen(pending, model.RoleStudent, "cancel", time.UTC)
	data = allCallbackData(kb)
	if !contains(data, "appt_do:cancel:a2") || !contains(data, "appt:a2") {
		t.Fatalf("confirmation buttons wrong: %v", data)
	}
}

func TestBuildListScreen_Pagination(t *testing.T) {
	t.Parallel()

	var appointments []model.Appointment
	for i := 0; i < ListPageSize+2; i++ {
		appointments = append(appointments, model.Appointment{
			ID:            string(rune('a' + i)),
			ScheduledDate: "2024-03-20",
			StartTime:     "09:00",
			EndTime:       "10:00",
			Status:        model.AppointmentStatusConfirmed,
		})
	}

	_, kb := BuildListScreen(ListUpcoming, appointments, 1, model.RoleStudent, time.UTC)
	data := allCallbackData(kb)
	if !contains(data, "up_page:0") || contains(data, "up_page:2") {
		t.Fatalf("unexpected pagination %v", data)
	}
	if !contains(data, "appt:g") || contains(data, "appt:a") {
		t.Fatalf("second page holds the wrong items: %v", data)
	}

	text, _ := BuildListScreen(ListHistory, nil, 5, model.RoleStudent, time.UTC)
	if !strings.Contains(text, "No past appointments yet.") {
		t.Fatalf("unexpected empty history text %q", text)
	}
}

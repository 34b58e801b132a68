package common

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/calendar"
	"github.com/Freeeeeet/counseling_portal/internal/model"
)

func TestGenerateMonthImage(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 2, 15, 9, 0, 0, 0, time.UTC)
	appointments := []model.Appointment{
		{ID: "a", ScheduledDate: "2024-02-15", StartTime: "10:00", EndTime: "11:00", Status: model.AppointmentStatusConfirmed},
	}
	availability := &calendar.AvailabilityData{
		Weekly: []model.WeeklyAvailability{{Day: "Thursday", Available: true, Slots: []model.TimeSlot{{Start: "09:00", End: "12:00"}}}},
	}

	view := calendar.Project(calendar.NewViewState(now).SelectDate(now), appointments, availability, now)

	data, err := GenerateMonthImage(view)
	if err != nil {
		t.Fatalf("GenerateMonthImage() error = %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	wantHeight := headerHeight + weekdayRow + len(view.Weeks)*cellHeight + legendHeight
	if got := img.Bounds().Dy(); got != wantHeight {
		t.Fatalf("height = %d, want %d", got, wantHeight)
	}
	if got := img.Bounds().Dx(); got != imageWidth {
		t.Fatalf("width = %d, want %d", got, imageWidth)
	}
}

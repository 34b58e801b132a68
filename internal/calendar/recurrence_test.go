package calendar

import (
	"testing"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/model"
)

func TestNextAvailableDates(t *testing.T) {
	t.Parallel()

	// Friday, March 1 2024
	from := time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC)
	overrides := []model.DateOverride{
		{Date: "2024-03-04", IsUnavailable: true},
		{Date: "2024-03-09", Slots: []model.TimeSlot{{Start: "10:00", End: "12:00"}}},
	}

	got := NextAvailableDates(from, 14, mondayMorning(), overrides)

	want := []string{"2024-03-09", "2024-03-11"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i, d := range got {
		if FormatLocalISODate(d) != want[i] {
			t.Fatalf("expected %s at %d, got %s", want[i], i, FormatLocalISODate(d))
		}
	}
}

func TestNextAvailableDates_NoRules(t *testing.T) {
	t.Parallel()

	if got := NextAvailableDates(time.Now(), 30, nil, nil); len(got) != 0 {
		t.Fatalf("expected no dates, got %v", got)
	}
	if got := NextAvailableDates(time.Now(), 0, mondayMorning(), nil); got != nil {
		t.Fatalf("expected nil for empty horizon")
	}
}

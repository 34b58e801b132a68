package calendar

import (
	"testing"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/model"
)

func mondayMorning() []model.WeeklyAvailability {
	return []model.WeeklyAvailability{
		{Day: "Monday", Available: true, Slots: []model.TimeSlot{{Start: "09:00", End: "12:00"}}},
		{Day: "Tuesday", Available: false},
	}
}

func TestResolveAvailability_WeeklyRule(t *testing.T) {
	t.Parallel()

	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	res := ResolveAvailability(monday, mondayMorning(), nil)

	if !res.IsAvailable || res.IsOverride || res.IsUnavailable {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	if len(res.Slots) != 1 || res.Slots[0].Start != "09:00" || res.Slots[0].End != "12:00" {
		t.Fatalf("unexpected slots: %+v", res.Slots)
	}
}

func TestResolveAvailability_UnavailableOverride(t *testing.T) {
	t.Parallel()

	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	overrides := []model.DateOverride{{Date: "2024-03-04", IsUnavailable: true}}

	res := ResolveAvailability(monday, mondayMorning(), overrides)
	if res.IsAvailable || !res.IsOverride || !res.IsUnavailable {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	if len(res.Slots) != 0 {
		t.Fatalf("override must not inherit weekly slots, got %+v", res.Slots)
	}
}

func TestResolveAvailability_OverrideReplacesSlots(t *testing.T) {
	t.Parallel()

	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	overrides := []model.DateOverride{{
		Date:  "2024-03-04",
		Slots: []model.TimeSlot{{Start: "14:00", End: "15:00"}},
	}}

	res := ResolveAvailability(monday, mondayMorning(), overrides)
	if !res.IsAvailable || !res.IsOverride {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	if len(res.Slots) != 1 || res.Slots[0].Start != "14:00" {
		t.Fatalf("expected only override slots, got %+v", res.Slots)
	}
}

func TestResolveAvailability_OverrideOpensUnavailableDay(t *testing.T) {
	t.Parallel()

	tuesday := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	overrides := []model.DateOverride{{
		Date:  "2024-03-05",
		Slots: []model.TimeSlot{{Start: "10:00", End: "11:00"}},
	}}

	res := ResolveAvailability(tuesday, mondayMorning(), overrides)
	if !res.IsAvailable || !res.IsOverride || res.IsUnavailable {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolveAvailability_EmptyOverrideIsUnavailable(t *testing.T) {
	t.Parallel()

	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	overrides := []model.DateOverride{{Date: "2024-03-04"}}

	res := ResolveAvailability(monday, mondayMorning(), overrides)
	if res.IsAvailable || !res.IsOverride {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolveAvailability_MissingData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		date   time.Time
		weekly []model.WeeklyAvailability
	}{
		{name: "weekday absent", date: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), weekly: mondayMorning()},
		{name: "no weekly data", date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{name: "explicitly unavailable", date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), weekly: mondayMorning()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := ResolveAvailability(tt.date, tt.weekly, nil)
			if res.IsAvailable || !res.IsUnavailable || res.IsOverride {
				t.Fatalf("unexpected resolution: %+v", res)
			}
			if res.Slots == nil {
				t.Fatalf("expected empty, non-nil slots")
			}
		})
	}
}

func TestResolveAvailability_CaseInsensitiveDay(t *testing.T) {
	t.Parallel()

	weekly := []model.WeeklyAvailability{{Day: "monday", Available: true, Slots: []model.TimeSlot{{Start: "09:00", End: "10:00"}}}}
	res := ResolveAvailability(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), weekly, nil)
	if !res.IsAvailable {
		t.Fatalf("expected lowercase day name to match, got %+v", res)
	}
}

func TestFindOverride_UsesLocalDate(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-5", -5*60*60)
	// 22:00 local on March 4 is already March 5 in UTC
	late := time.Date(2024, 3, 4, 22, 0, 0, 0, loc)
	overrides := []model.DateOverride{{Date: "2024-03-04", IsUnavailable: true}}

	if _, ok := FindOverride(late, overrides); !ok {
		t.Fatalf("expected override for local date 2024-03-04")
	}
}

func TestParseLocalDate(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+8", 8*60*60)
	got, ok := ParseLocalDate("2024-02-29", loc)
	if !ok {
		t.Fatalf("expected valid date")
	}
	if got.Location() != loc || got.Day() != 29 || got.Hour() != 0 {
		t.Fatalf("unexpected parsed date: %v", got)
	}

	if _, ok := ParseLocalDate("2024-13-01", loc); ok {
		t.Fatalf("expected invalid month to fail")
	}
}

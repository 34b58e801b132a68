package calendar

import (
	"strings"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/model"
)

// Resolution answers "is this date available, and with which slots"
type Resolution struct {
	IsAvailable   bool
	Slots         []model.TimeSlot
	IsOverride    bool
	IsUnavailable bool
}

// ResolveAvailability merges the weekly rule with date overrides for a single date.
// An override for the date wins outright; its slots are never mixed with the weekly ones.
// Missing data resolves to unavailable.
func ResolveAvailability(date time.Time, weekly []model.WeeklyAvailability, overrides []model.DateOverride) Resolution {
	if override, ok := FindOverride(date, overrides); ok {
		return Resolution{
			// An override with no slots counts as unavailable even if not flagged
			IsAvailable:   !override.IsUnavailable && len(override.Slots) > 0,
			Slots:         nonNilSlots(override.Slots),
			IsOverride:    true,
			IsUnavailable: override.IsUnavailable,
		}
	}

	dayName := model.WeekdayName(date.Weekday())
	for _, entry := range weekly {
		if !strings.EqualFold(entry.Day, dayName) {
			continue
		}
		return Resolution{
			IsAvailable:   entry.Available,
			Slots:         nonNilSlots(entry.Slots),
			IsUnavailable: !entry.Available,
		}
	}

	return Resolution{Slots: []model.TimeSlot{}, IsUnavailable: true}
}

// FindOverride looks up the override whose date equals the local calendar date of t
func FindOverride(t time.Time, overrides []model.DateOverride) (model.DateOverride, bool) {
	y, m, d := t.Date()
	for _, o := range overrides {
		oy, om, od, ok := parseISODate(o.Date)
		if !ok {
			continue
		}
		if oy == y && om == m && od == d {
			return o, true
		}
	}
	return model.DateOverride{}, false
}

// ParseLocalDate parses "YYYY-MM-DD" as midnight in loc
func ParseLocalDate(value string, loc *time.Location) (time.Time, bool) {
	y, m, d, ok := parseISODate(value)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(y, m, d, 0, 0, 0, 0, loc), true
}

func parseISODate(value string) (int, time.Month, int, bool) {
	// Parsing in UTC only extracts the fields, no conversion happens
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return 0, 0, 0, false
	}
	y, m, d := t.Date()
	return y, m, d, true
}

func nonNilSlots(slots []model.TimeSlot) []model.TimeSlot {
	if slots == nil {
		return []model.TimeSlot{}
	}
	return slots
}

package calendar

import (
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/teambition/rrule-go"
)

var ruleWeekdays = []rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// NextAvailableDates lists bookable dates in [from, from+horizonDays), each resolved
// through ResolveAvailability so overrides can both add and remove days.
func NextAvailableDates(from time.Time, horizonDays int, weekly []model.WeeklyAvailability, overrides []model.DateOverride) []time.Time {
	if horizonDays <= 0 {
		return nil
	}

	loc := from.Location()
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, horizonDays)

	set := &rrule.Set{}

	var byDay []rrule.Weekday
	for _, entry := range weekly {
		idx := model.WeekdayIndex(entry.Day)
		if idx < 0 || !entry.Available {
			continue
		}
		byDay = append(byDay, ruleWeekdays[idx])
	}
	if len(byDay) > 0 {
		rule, err := rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Dtstart:   start,
			Byweekday: byDay,
		})
		if err == nil {
			set.RRule(rule)
		}
	}

	for _, o := range overrides {
		if o.IsUnavailable || len(o.Slots) == 0 {
			continue
		}
		if date, ok := ParseLocalDate(o.Date, loc); ok {
			set.RDate(date)
		}
	}

	var dates []time.Time
	seen := make(map[string]bool)
	for _, candidate := range set.Between(start, end, true) {
		if !candidate.Before(end) {
			continue
		}
		key := FormatLocalISODate(candidate)
		if seen[key] {
			continue
		}
		seen[key] = true
		if ResolveAvailability(candidate, weekly, overrides).IsAvailable {
			dates = append(dates, candidate)
		}
	}

	return dates
}

package model

import (
	"strings"
	"time"
)

// TimeSlot is a wall-clock range, both ends in "HH:MM"
type TimeSlot struct {
	ID    string `json:"id,omitempty"`
	Start string `json:"start" validate:"required,hhmm"`
	End   string `json:"end" validate:"required,hhmm"`
}

// WeeklyAvailability is a recurring rule keyed by weekday name
type WeeklyAvailability struct {
	Day       string     `json:"day"`
	Available bool       `json:"available"`
	Slots     []TimeSlot `json:"slots"`
}

// DateOverride replaces the weekly rule for a single calendar date
type DateOverride struct {
	ID            string     `json:"id,omitempty"`
	Date          string     `json:"date" validate:"required,datetime=2006-01-02"` // YYYY-MM-DD
	Slots         []TimeSlot `json:"slots" validate:"dive"`
	IsUnavailable bool       `json:"is_unavailable"`
}

// WeeklySlot is the wire form of a weekly rule, one row per slot
type WeeklySlot struct {
	ID        string `json:"id,omitempty"`
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"` // 0 = Sunday, 6 = Saturday
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
}

// Availability is the GET/PUT /availability payload
type Availability struct {
	Weekly    []WeeklySlot   `json:"weekly" validate:"dive"`
	Overrides []DateOverride `json:"overrides" validate:"dive"`
}

// WeekdayNames are indexed by time.Weekday
var WeekdayNames = []string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// WeeklyFromSlots groups wire slots into seven weekday rules, Sunday first
func WeeklyFromSlots(slots []WeeklySlot) []WeeklyAvailability {
	weekly := make([]WeeklyAvailability, len(WeekdayNames))
	for i, name := range WeekdayNames {
		weekly[i] = WeeklyAvailability{Day: name, Slots: []TimeSlot{}}
	}

	for _, s := range slots {
		if s.DayOfWeek < 0 || s.DayOfWeek >= len(weekly) {
			continue
		}
		day := &weekly[s.DayOfWeek]
		day.Slots = append(day.Slots, TimeSlot{ID: s.ID, Start: s.StartTime, End: s.EndTime})
		day.Available = true
	}

	return weekly
}

// SlotsFromWeekly flattens weekday rules back into wire slots.
// Days marked unavailable contribute nothing.
func SlotsFromWeekly(weekly []WeeklyAvailability) []WeeklySlot {
	var slots []WeeklySlot
	for _, day := range weekly {
		if !day.Available {
			continue
		}
		idx := WeekdayIndex(day.Day)
		if idx < 0 {
			continue
		}
		for _, ts := range day.Slots {
			slots = append(slots, WeeklySlot{
				ID:        ts.ID,
				DayOfWeek: idx,
				StartTime: ts.Start,
				EndTime:   ts.End,
			})
		}
	}
	return slots
}

// WeekdayIndex returns the time.Weekday index for a day name, -1 if unknown
func WeekdayIndex(name string) int {
	for i, n := range WeekdayNames {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}

// WeekdayName returns the English name of the weekday
func WeekdayName(w time.Weekday) string {
	return WeekdayNames[int(w)%len(WeekdayNames)]
}

// Package export renders appointments as an iCalendar feed.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/calendar"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	ics "github.com/arran4/golang-ical"
)

const productID = "-//Counseling Portal//Telegram Bot//EN"

type Options struct {
	Name     string
	Location *time.Location
	Viewer   model.Role
	Now      time.Time
}

// Appointments serializes the active appointments into an .ics document.
// Appointments with unparsable dates or times are skipped.
func Appointments(appointments []model.Appointment, opts Options) ([]byte, int, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}
	cal.SetXWRTimezone(loc.String())

	exported := 0
	for _, a := range calendar.SortAppointments(calendar.ActiveAppointments(appointments)) {
		start, end, err := Bounds(a, loc)
		if err != nil {
			continue
		}

		event := cal.AddEvent(a.ID + "@counseling-portal")
		event.SetDtStampTime(now)
		if !a.CreatedAt.IsZero() {
			event.SetCreatedTime(a.CreatedAt)
		}
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(summary(a, opts.Viewer))
		if desc := description(a); desc != "" {
			event.SetDescription(desc)
		}
		if a.LocationDetails != "" {
			event.SetLocation(a.LocationDetails)
		}
		event.SetStatus(eventStatus(a.Status))
		if category := a.Category(); category != "" {
			event.AddProperty(ics.ComponentPropertyCategories, calendar.CategoryDisplay(category).Label)
		}
		exported++
	}

	return []byte(cal.Serialize()), exported, nil
}

// Bounds returns the absolute start and end of an appointment in loc
func Bounds(a model.Appointment, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", a.ScheduledDate+" "+a.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse start of %s: %w", a.ID, err)
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", a.ScheduledDate+" "+a.EndTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse end of %s: %w", a.ID, err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("appointment %s ends before it starts", a.ID)
	}
	return start, end, nil
}

func summary(a model.Appointment, viewer model.Role) string {
	title := a.Title()
	if name := a.ParticipantName(viewer); name != "" {
		return title + " with " + name
	}
	return title
}

func description(a model.Appointment) string {
	var lines []string
	lines = append(lines, "Status: "+calendar.StatusDisplay(a.Status).Label)
	if a.LocationType != "" {
		lines = append(lines, "Location type: "+a.LocationType)
	}
	if a.Notes != "" {
		lines = append(lines, "Notes: "+a.Notes)
	}
	return strings.Join(lines, "\n")
}

func eventStatus(status model.AppointmentStatus) ics.ObjectStatus {
	if status == model.AppointmentStatusPending {
		return ics.ObjectStatusTentative
	}
	return ics.ObjectStatusConfirmed
}

package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/model"
)

// ViewState is the calendar screen state: the visible month plus an optional
// selected date. The selection is independent of the visible month.
type ViewState struct {
	Year     int
	Month    time.Month
	Selected *time.Time
}

// NewViewState shows the month of now with nothing selected
func NewViewState(now time.Time) ViewState {
	return ViewState{Year: now.Year(), Month: now.Month()}
}

// PrevMonth moves the visible month back, rolling the year over
func (s ViewState) PrevMonth() ViewState {
	if s.Month == time.January {
		s.Month = time.December
		s.Year--
	} else {
		s.Month--
	}
	return s
}

// NextMonth moves the visible month forward, rolling the year over
func (s ViewState) NextMonth() ViewState {
	if s.Month == time.December {
		s.Month = time.January
		s.Year++
	} else {
		s.Month++
	}
	return s
}

// Today jumps to the month of now without touching the selection
func (s ViewState) Today(now time.Time) ViewState {
	s.Year, s.Month = now.Year(), now.Month()
	return s
}

// SelectDate selects d, normalized to local midnight
func (s ViewState) SelectDate(d time.Time) ViewState {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	s.Selected = &day
	return s
}

// ClearSelection closes the details panel
func (s ViewState) ClearSelection() ViewState {
	s.Selected = nil
	return s
}

// HasSelection reports whether a date is selected
func (s ViewState) HasSelection() bool {
	return s.Selected != nil
}

// ActionKind enumerates controller transitions
type ActionKind string

const (
	ActionPrev   ActionKind = "prev"
	ActionNext   ActionKind = "next"
	ActionToday  ActionKind = "today"
	ActionSelect ActionKind = "select"
	ActionClear  ActionKind = "clear"
)

// Action is a transition request, Date is set for ActionSelect only
type Action struct {
	Kind ActionKind
	Date string
}

// Encode renders the action as compact callback payload, e.g. "select=2024-02-15"
func (a Action) Encode() string {
	if a.Kind == ActionSelect {
		return string(a.Kind) + "=" + a.Date
	}
	return string(a.Kind)
}

// ParseAction decodes Action.Encode output
func ParseAction(raw string) (Action, error) {
	kind, date, _ := strings.Cut(raw, "=")
	switch ActionKind(kind) {
	case ActionPrev, ActionNext, ActionToday, ActionClear:
		return Action{Kind: ActionKind(kind)}, nil
	case ActionSelect:
		if _, _, _, ok := parseISODate(date); !ok {
			return Action{}, fmt.Errorf("invalid select date %q", date)
		}
		return Action{Kind: ActionSelect, Date: date}, nil
	default:
		return Action{}, fmt.Errorf("unknown calendar action %q", raw)
	}
}

// Reduce applies an action; dates are interpreted in the location of now
func Reduce(s ViewState, a Action, now time.Time) ViewState {
	switch a.Kind {
	case ActionPrev:
		return s.PrevMonth()
	case ActionNext:
		return s.NextMonth()
	case ActionToday:
		return s.Today(now)
	case ActionSelect:
		if d, ok := ParseLocalDate(a.Date, now.Location()); ok {
			return s.SelectDate(d)
		}
		return s
	case ActionClear:
		return s.ClearSelection()
	default:
		return s
	}
}

// DayView is one rendered grid cell
type DayView struct {
	Cell
	IsToday      bool
	IsSelected   bool
	Appointments int
	Availability *Resolution // nil when availability is not shown
}

// View is everything the calendar screen renders
type View struct {
	State        ViewState
	Weeks        [][]DayView
	Title        string
	Appointments []model.Appointment
	Month        []model.Appointment // open appointments inside the visible month
	Selected     *Resolution         // availability of the selected date, if known
}

// AvailabilityData carries the counselor rules when availability should be shown
type AvailabilityData struct {
	Weekly    []model.WeeklyAvailability
	Overrides []model.DateOverride
}

// Project composes the grid, the aggregated appointments and the optional
// availability into a View for the given state.
func Project(s ViewState, appointments []model.Appointment, availability *AvailabilityData, now time.Time) View {
	loc := now.Location()
	todayKey := FormatLocalISODate(now)
	selectedKey := ""
	if s.Selected != nil {
		selectedKey = FormatLocalISODate(*s.Selected)
	}

	counts := CountByDate(appointments)
	cells := BuildMonthGrid(s.Year, s.Month, loc)

	var weeks [][]DayView
	for _, row := range Weeks(cells) {
		days := make([]DayView, len(row))
		for i, cell := range row {
			days[i] = DayView{Cell: cell}
			if cell.IsBlank() {
				continue
			}
			key := FormatLocalISODate(cell.Date)
			days[i].IsToday = key == todayKey
			days[i].IsSelected = key == selectedKey
			days[i].Appointments = counts[key]
			if availability != nil {
				res := ResolveAvailability(cell.Date, availability.Weekly, availability.Overrides)
				days[i].Availability = &res
			}
		}
		weeks = append(weeks, days)
	}

	first := time.Date(s.Year, s.Month, 1, 0, 0, 0, 0, loc)
	view := View{
		State: s,
		Weeks: weeks,
		Month: AppointmentsInRange(first, first.AddDate(0, 1, -1), appointments),
	}
	if s.Selected != nil {
		view.Appointments = AppointmentsForDate(*s.Selected, appointments)
		if availability != nil {
			res := ResolveAvailability(*s.Selected, availability.Weekly, availability.Overrides)
			view.Selected = &res
		}
	} else {
		view.Appointments = UpcomingAppointments(appointments)
	}
	view.Title = TitleFor(s.Selected, view.Appointments)

	return view
}

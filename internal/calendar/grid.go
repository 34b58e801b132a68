package calendar

import "time"

// DaysInWeek is the width of the month grid
const DaysInWeek = 7

// Cell is a month grid cell; blank cells pad the first week
type Cell struct {
	Date time.Time
}

// IsBlank reports whether the cell is padding
func (c Cell) IsBlank() bool {
	return c.Date.IsZero()
}

// BuildMonthGrid returns leading blanks for the weekday of the 1st (Sunday = 0)
// followed by one cell per day of the month.
func BuildMonthGrid(year int, month time.Month, loc *time.Location) []Cell {
	if loc == nil {
		loc = time.Local
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	leading := int(first.Weekday())
	// Day 0 of the next month is the last day of this one
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()

	cells := make([]Cell, 0, leading+days)
	for i := 0; i < leading; i++ {
		cells = append(cells, Cell{})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{Date: time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, loc)})
	}

	return cells
}

// Weeks bands cells into rows of seven, padding the last row with blanks
func Weeks(cells []Cell) [][]Cell {
	var weeks [][]Cell
	for i := 0; i < len(cells); i += DaysInWeek {
		row := make([]Cell, DaysInWeek)
		copy(row, cells[i:min(i+DaysInWeek, len(cells))])
		weeks = append(weeks, row)
	}
	return weeks
}

package model

import "time"

// CalendarView is the persisted month/selection state of a user's calendar screen
type CalendarView struct {
	TelegramID   int64      `json:"telegram_id"`
	Year         int        `json:"year"`
	Month        time.Month `json:"month"`
	SelectedDate *string    `json:"selected_date"` // YYYY-MM-DD, nil when nothing selected
	UpdatedAt    time.Time  `json:"updated_at"`
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/Freeeeeet/counseling_portal/internal/repository/base"
	"github.com/jackc/pgx/v5/pgtype"
)

type CalendarViewRepository struct {
	*base.Repository
}

func NewCalendarViewRepository(db base.DB) *CalendarViewRepository {
	return &CalendarViewRepository{Repository: base.NewRepository(db)}
}

// Get returns nil, nil when the user never opened the calendar
func (r *CalendarViewRepository) Get(ctx context.Context, telegramID int64) (*model.CalendarView, error) {
	query := `
		SELECT telegram_id, year, month, selected_date, updated_at
		FROM calendar_views
		WHERE telegram_id = $1
	`

	var (
		view     model.CalendarView
		month    int
		selected pgtype.Date
	)
	err := r.QueryRow(ctx, query, telegramID).Scan(
		&view.TelegramID,
		&view.Year,
		&month,
		&selected,
		&view.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get calendar view: %w", err)
	}

	view.Month = time.Month(month)
	if selected.Valid {
		date := selected.Time.Format("2006-01-02")
		view.SelectedDate = &date
	}

	return &view, nil
}

// Save stores the visible month and selection
func (r *CalendarViewRepository) Save(ctx context.Context, view *model.CalendarView) error {
	query := `
		INSERT INTO calendar_views (telegram_id, year, month, selected_date)
		VALUES ($1, $2, $3, $4::date)
		ON CONFLICT (telegram_id) DO UPDATE SET
			year = EXCLUDED.year,
			month = EXCLUDED.month,
			selected_date = EXCLUDED.selected_date,
			updated_at = now()
		RETURNING updated_at
	`

	err := r.QueryRow(ctx, query, view.TelegramID, view.Year, int(view.Month), view.SelectedDate).Scan(&view.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save calendar view: %w", err)
	}

	return nil
}

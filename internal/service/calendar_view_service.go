package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/calendar"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"go.uber.org/zap"
)

// CalendarViewService keeps each user's calendar screen state between updates
type CalendarViewService struct {
	store  CalendarViewStore
	loc    *time.Location
	logger *zap.Logger
}

func NewCalendarViewService(store CalendarViewStore, loc *time.Location, logger *zap.Logger) *CalendarViewService {
	return &CalendarViewService{
		store:  store,
		loc:    loc,
		logger: logger,
	}
}

// Load returns the stored state or the current month when there is none
func (s *CalendarViewService) Load(ctx context.Context, telegramID int64, now time.Time) (calendar.ViewState, error) {
	now = now.In(s.loc)

	view, err := s.store.Get(ctx, telegramID)
	if err != nil {
		return calendar.NewViewState(now), fmt.Errorf("load calendar view: %w", err)
	}
	if view == nil {
		return calendar.NewViewState(now), nil
	}

	return ViewStateFromModel(view, s.loc), nil
}

// Apply loads the state, reduces the action and stores the result.
// When the stored state cannot be read the action is applied to the current
// month for display only and nothing is saved.
func (s *CalendarViewService) Apply(ctx context.Context, telegramID int64, action calendar.Action, now time.Time) (calendar.ViewState, error) {
	now = now.In(s.loc)

	state, err := s.Load(ctx, telegramID, now)
	if err != nil {
		s.logger.Warn("Calendar view not loaded, keeping the stored one",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		return calendar.Reduce(state, action, now), err
	}

	state = calendar.Reduce(state, action, now)

	if err := s.store.Save(ctx, ViewStateToModel(telegramID, state)); err != nil {
		return state, fmt.Errorf("save calendar view: %w", err)
	}
	return state, nil
}

// Reset drops the selection and returns to the current month
func (s *CalendarViewService) Reset(ctx context.Context, telegramID int64, now time.Time) (calendar.ViewState, error) {
	state := calendar.NewViewState(now.In(s.loc))
	if err := s.store.Save(ctx, ViewStateToModel(telegramID, state)); err != nil {
		return state, fmt.Errorf("save calendar view: %w", err)
	}
	return state, nil
}

func (s *CalendarViewService) Location() *time.Location {
	return s.loc
}

func ViewStateFromModel(view *model.CalendarView, loc *time.Location) calendar.ViewState {
	state := calendar.ViewState{Year: view.Year, Month: view.Month}
	if state.Month < time.January || state.Month > time.December {
		state.Month = time.January
	}
	if view.SelectedDate != nil {
		if d, ok := calendar.ParseLocalDate(*view.SelectedDate, loc); ok {
			state.Selected = &d
		}
	}
	return state
}

func ViewStateToModel(telegramID int64, state calendar.ViewState) *model.CalendarView {
	view := &model.CalendarView{TelegramID: telegramID, Year: state.Year, Month: state.Month}
	if state.Selected != nil {
		date := calendar.FormatLocalISODate(*state.Selected)
		view.SelectedDate = &date
	}
	return view
}

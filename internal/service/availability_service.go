package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/calendar"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var hhmmRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// NewValidator returns a validator that knows the "hhmm" tag
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmRegex.MatchString(fl.Field().String())
	})
	return v
}

// AvailabilityDraft is a counselor's availability being edited in the bot
type AvailabilityDraft struct {
	Weekly    []model.WeeklyAvailability
	Overrides []model.DateOverride
}

// NewAvailabilityDraft converts the wire form into seven weekday rules
func NewAvailabilityDraft(a *model.Availability) *AvailabilityDraft {
	draft := &AvailabilityDraft{Weekly: model.WeeklyFromSlots(nil)}
	if a == nil {
		return draft
	}
	draft.Weekly = model.WeeklyFromSlots(a.Weekly)
	draft.Overrides = append([]model.DateOverride(nil), a.Overrides...)
	draft.sortOverrides()
	return draft
}

// Wire converts the draft back into the PUT payload
func (d *AvailabilityDraft) Wire() *model.Availability {
	return &model.Availability{
		Weekly:    model.SlotsFromWeekly(d.Weekly),
		Overrides: d.Overrides,
	}
}

// ToggleDay flips the availability of a weekday (0 = Sunday)
func (d *AvailabilityDraft) ToggleDay(day int) error {
	if day < 0 || day >= len(d.Weekly) {
		return fmt.Errorf("%w: weekday %d", ErrInvalidDate, day)
	}
	d.Weekly[day].Available = !d.Weekly[day].Available
	return nil
}

// AddSlot adds a slot to a weekday and marks the day available
func (d *AvailabilityDraft) AddSlot(day int, slot model.TimeSlot) error {
	if day < 0 || day >= len(d.Weekly) {
		return fmt.Errorf("%w: weekday %d", ErrInvalidDate, day)
	}
	entry := &d.Weekly[day]
	if err := checkOverlap(entry.Slots, slot); err != nil {
		return err
	}
	entry.Slots = sortSlots(append(entry.Slots, slot))
	entry.Available = true
	return nil
}

// RemoveSlot drops the i-th slot of a weekday; a day without slots becomes unavailable
func (d *AvailabilityDraft) RemoveSlot(day, index int) error {
	if day < 0 || day >= len(d.Weekly) {
		return fmt.Errorf("%w: weekday %d", ErrInvalidDate, day)
	}
	entry := &d.Weekly[day]
	if index < 0 || index >= len(entry.Slots) {
		return ErrNotFound
	}
	entry.Slots = append(entry.Slots[:index:index], entry.Slots[index+1:]...)
	if len(entry.Slots) == 0 {
		entry.Available = false
	}
	return nil
}

// SetOverride stores an override, replacing any existing one for the same date
func (d *AvailabilityDraft) SetOverride(o model.DateOverride) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.IsUnavailable {
		o.Slots = []model.TimeSlot{}
	}
	for i := range d.Overrides {
		if d.Overrides[i].Date == o.Date {
			d.Overrides[i] = o
			return
		}
	}
	d.Overrides = append(d.Overrides, o)
	d.sortOverrides()
}

// RemoveOverride deletes the override of a date
func (d *AvailabilityDraft) RemoveOverride(date string) error {
	for i := range d.Overrides {
		if d.Overrides[i].Date == date {
			d.Overrides = append(d.Overrides[:i:i], d.Overrides[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Resolve answers availability for a date with the draft rules
func (d *AvailabilityDraft) Resolve(date time.Time) calendar.Resolution {
	return calendar.ResolveAvailability(date, d.Weekly, d.Overrides)
}

// NextOpenDates previews the next bookable dates under the draft rules
func (d *AvailabilityDraft) NextOpenDates(from time.Time, days int) []time.Time {
	return calendar.NextAvailableDates(from, days, d.Weekly, d.Overrides)
}

func (d *AvailabilityDraft) sortOverrides() {
	sort.SliceStable(d.Overrides, func(i, j int) bool {
		return d.Overrides[i].Date < d.Overrides[j].Date
	})
}

// ParseSlot parses "HH:MM-HH:MM"
func ParseSlot(text string) (model.TimeSlot, error) {
	start, end, ok := strings.Cut(strings.ReplaceAll(strings.TrimSpace(text), " ", ""), "-")
	if !ok {
		return model.TimeSlot{}, fmt.Errorf("%w: expected HH:MM-HH:MM", ErrInvalidSlot)
	}
	slot := model.TimeSlot{ID: uuid.NewString(), Start: normalizeHHMM(start), End: normalizeHHMM(end)}
	if !hhmmRegex.MatchString(slot.Start) || !hhmmRegex.MatchString(slot.End) {
		return model.TimeSlot{}, fmt.Errorf("%w: expected HH:MM-HH:MM", ErrInvalidSlot)
	}
	if slot.Start >= slot.End {
		return model.TimeSlot{}, fmt.Errorf("%w: start must be before end", ErrInvalidSlot)
	}
	return slot, nil
}

// ParseSlots parses a comma separated list of slots
func ParseSlots(text string) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	for _, part := range strings.Split(text, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		slot, err := ParseSlot(part)
		if err != nil {
			return nil, err
		}
		if err := checkOverlap(slots, slot); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: no slots given", ErrInvalidSlot)
	}
	return sortSlots(slots), nil
}

// "9:00" -> "09:00"
func normalizeHHMM(value string) string {
	if len(value) == 4 && value[1] == ':' {
		return "0" + value
	}
	return value
}

func checkOverlap(existing []model.TimeSlot, slot model.TimeSlot) error {
	for _, s := range existing {
		if slot.Start < s.End && s.Start < slot.End {
			return fmt.Errorf("%w: %s-%s overlaps %s-%s", ErrInvalidSlot, slot.Start, slot.End, s.Start, s.End)
		}
	}
	return nil
}

func sortSlots(slots []model.TimeSlot) []model.TimeSlot {
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Start < slots[j].Start })
	return slots
}

type AvailabilityService struct {
	api      AvailabilityAPI
	sessions *SessionService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewAvailabilityService(api AvailabilityAPI, sessions *SessionService, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		api:      api,
		sessions: sessions,
		validate: NewValidator(),
		logger:   logger,
	}
}

// Load fetches the counselor's availability as an editable draft
func (s *AvailabilityService) Load(ctx context.Context, session *model.PortalSession) (*AvailabilityDraft, error) {
	if !session.IsCounselor() {
		return nil, ErrNotCounselor
	}

	var availability *model.Availability
	err := s.sessions.Call(ctx, session, func(token string) error {
		var err error
		availability, err = s.api.GetAvailability(ctx, token)
		return err
	})
	if err != nil {
		return nil, err
	}

	return NewAvailabilityDraft(availability), nil
}

// Validate checks the payload shape and that every slot ends after it starts
func (s *AvailabilityService) Validate(a *model.Availability) error {
	if err := s.validate.Struct(a); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}

	var errs []error
	for _, w := range a.Weekly {
		if w.StartTime >= w.EndTime {
			errs = append(errs, fmt.Errorf("%w: %s %s-%s", ErrInvalidSlot, model.WeekdayNames[w.DayOfWeek], w.StartTime, w.EndTime))
		}
	}
	seen := make(map[string]bool)
	for _, o := range a.Overrides {
		if seen[o.Date] {
			errs = append(errs, fmt.Errorf("%w: duplicate override for %s", ErrInvalidDate, o.Date))
		}
		seen[o.Date] = true
		for _, slot := range o.Slots {
			if slot.Start >= slot.End {
				errs = append(errs, fmt.Errorf("%w: %s %s-%s", ErrInvalidSlot, o.Date, slot.Start, slot.End))
			}
		}
	}
	return errors.Join(errs...)
}

// Save validates and replaces the counselor's availability
func (s *AvailabilityService) Save(ctx context.Context, session *model.PortalSession, draft *AvailabilityDraft) (*AvailabilityDraft, error) {
	if !session.IsCounselor() {
		return nil, ErrNotCounselor
	}

	payload := draft.Wire()
	if err := s.Validate(payload); err != nil {
		return nil, err
	}

	var saved *model.Availability
	err := s.sessions.Call(ctx, session, func(token string) error {
		var err error
		saved, err = s.api.PutAvailability(ctx, token, payload)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Availability saved",
		zap.Int64("telegram_id", session.TelegramID),
		zap.Int("weekly_slots", len(payload.Weekly)),
		zap.Int("overrides", len(payload.Overrides)),
	)

	return NewAvailabilityDraft(saved), nil
}

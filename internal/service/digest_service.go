package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/calendar"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DigestService sends each linked user a morning summary of the day's appointments
type DigestService struct {
	sessions     *SessionService
	appointments *AppointmentService
	store        DigestStore
	notifier     Notifier
	loc          *time.Location
	logger       *zap.Logger
}

func NewDigestService(
	sessions *SessionService,
	appointments *AppointmentService,
	store DigestStore,
	notifier Notifier,
	loc *time.Location,
	logger *zap.Logger,
) *DigestService {
	return &DigestService{
		sessions:     sessions,
		appointments: appointments,
		store:        store,
		notifier:     notifier,
		loc:          loc,
		logger:       logger,
	}
}

// Run delivers the digest for the local date of now. A user gets at most one
// digest per date; failed sends are released so the next run retries them.
func (s *DigestService) Run(ctx context.Context, now time.Time) (int, error) {
	now = now.In(s.loc)
	date := calendar.FormatLocalISODate(now)
	runID := uuid.New()

	sessions, err := s.sessions.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list sessions: %w", err)
	}

	sent := 0
	var errs []error
	for _, session := range sessions {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		ok, err := s.deliver(ctx, runID, session, now, date)
		if err != nil {
			errs = append(errs, err)
			s.logger.Warn("Digest not delivered",
				zap.Int64("telegram_id", session.TelegramID),
				zap.Error(err))
			continue
		}
		if ok {
			sent++
		}
	}

	s.logger.Info("Daily digest finished",
		zap.String("run_id", runID.String()),
		zap.String("date", date),
		zap.Int("sessions", len(sessions)),
		zap.Int("sent", sent),
	)

	return sent, errors.Join(errs...)
}

func (s *DigestService) deliver(ctx context.Context, runID uuid.UUID, session *model.PortalSession, now time.Time, date string) (bool, error) {
	// Sessions whose refresh fails are unlinked by Call, nothing to send then
	appointments, err := s.appointments.ForDate(ctx, session, now)
	if errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrNotLoggedIn) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("list appointments: %w", err)
	}
	if len(appointments) == 0 {
		return false, nil
	}

	claimed, err := s.store.Claim(ctx, runID, session.TelegramID, date, len(appointments))
	if err != nil {
		return false, fmt.Errorf("claim digest: %w", err)
	}
	if !claimed {
		return false, nil
	}

	if err := s.notifier.Notify(ctx, session.TelegramID, DigestText(session.Role, now, appointments)); err != nil {
		if rerr := s.store.Release(ctx, session.TelegramID, date); rerr != nil {
			s.logger.Error("Failed to release digest claim", zap.Error(rerr))
		}
		return false, fmt.Errorf("notify: %w", err)
	}

	return true, nil
}

// DigestText renders the morning message for a day's appointments
func DigestText(viewer model.Role, day time.Time, appointments []model.Appointment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "☀️ <b>%s</b>\n", day.Format(calendar.HumanDateLayout))
	if len(appointments) == 1 {
		b.WriteString("You have 1 appointment today:\n\n")
	} else {
		fmt.Fprintf(&b, "You have %d appointments today:\n\n", len(appointments))
	}

	for i := range appointments {
		a := &appointments[i]
		status := calendar.StatusDisplay(a.Status)
		fmt.Fprintf(&b, "%s %s–%s %s", status.Emoji, a.StartTime, a.EndTime, html.EscapeString(a.Title()))
		if name := a.ParticipantName(viewer); name != "" {
			fmt.Fprintf(&b, " · %s", html.EscapeString(name))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

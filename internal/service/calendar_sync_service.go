package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Freeeeeet/counseling_portal/internal/model"
	"go.uber.org/zap"
)

// CalendarSyncService manages the Google Calendar link of a counselor
type CalendarSyncService struct {
	api       CalendarAPI
	sessions  *SessionService
	signer    StateSigner
	returnURL string
	logger    *zap.Logger
}

func NewCalendarSyncService(api CalendarAPI, sessions *SessionService, signer StateSigner, returnURL string, logger *zap.Logger) *CalendarSyncService {
	return &CalendarSyncService{
		api:       api,
		sessions:  sessions,
		signer:    signer,
		returnURL: returnURL,
		logger:    logger,
	}
}

func (s *CalendarSyncService) Status(ctx context.Context, session *model.PortalSession) (*model.CalendarSyncStatus, error) {
	var status *model.CalendarSyncStatus
	err := s.sessions.Call(ctx, session, func(token string) error {
		var err error
		status, err = s.api.CalendarStatus(ctx, token)
		return err
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// ConnectURL starts the OAuth flow. When a public return URL is configured it
// carries a signed state so the landing page can notify the right chat.
func (s *CalendarSyncService) ConnectURL(ctx context.Context, session *model.PortalSession) (string, error) {
	if !session.IsCounselor() {
		return "", ErrNotCounselor
	}

	returnURL, err := s.buildReturnURL(session.TelegramID)
	if err != nil {
		return "", err
	}

	var authURL string
	err = s.sessions.Call(ctx, session, func(token string) error {
		var err error
		authURL, err = s.api.AuthorizeCalendar(ctx, token, returnURL)
		return err
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("Calendar authorization started", zap.Int64("telegram_id", session.TelegramID))
	return authURL, nil
}

func (s *CalendarSyncService) buildReturnURL(telegramID int64) (string, error) {
	if s.returnURL == "" || s.signer == nil {
		return "", nil
	}

	state, err := s.signer.Sign(telegramID)
	if err != nil {
		// Without a secret the flow still works, the user just is not notified
		s.logger.Warn("OAuth state not signed", zap.Error(err))
		return s.returnURL, nil
	}

	u, err := url.Parse(s.returnURL)
	if err != nil {
		return "", fmt.Errorf("parse return url: %w", err)
	}
	q := u.Query()
	q.Set("state", state)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// CompleteOAuth resolves the Telegram user a signed return state belongs to
func (s *CalendarSyncService) CompleteOAuth(state string) (int64, error) {
	if s.signer == nil {
		return 0, fmt.Errorf("state signing is not configured")
	}
	return s.signer.Verify(state)
}

func (s *CalendarSyncService) Disconnect(ctx context.Context, session *model.PortalSession) error {
	if !session.IsCounselor() {
		return ErrNotCounselor
	}
	err := s.sessions.Call(ctx, session, func(token string) error {
		return s.api.DisconnectCalendar(ctx, token)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Calendar disconnected", zap.Int64("telegram_id", session.TelegramID))
	return nil
}

func (s *CalendarSyncService) SyncNow(ctx context.Context, session *model.PortalSession) error {
	if !session.IsCounselor() {
		return ErrNotCounselor
	}
	return s.sessions.Call(ctx, session, func(token string) error {
		return s.api.SyncCalendar(ctx, token)
	})
}

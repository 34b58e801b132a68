package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/Freeeeeet/counseling_portal/internal/portalapi"
	"go.uber.org/zap"
)

// refreshSkew refreshes tokens slightly before they actually expire
const refreshSkew = time.Minute

type SessionService struct {
	idp    IdentityProvider
	parser ClaimsParser
	store  SessionStore
	logger *zap.Logger
	now    func() time.Time

	refreshMu sync.Mutex
}

func NewSessionService(idp IdentityProvider, parser ClaimsParser, store SessionStore, logger *zap.Logger) *SessionService {
	return &SessionService{
		idp:    idp,
		parser: parser,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Login signs in with portal credentials and links the Telegram account
func (s *SessionService) Login(ctx context.Context, telegramID int64, email, password string) (*model.PortalSession, error) {
	email = strings.TrimSpace(email)

	authSession, err := s.idp.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	claims, err := s.parser.Parse(authSession.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	session := &model.PortalSession{
		TelegramID:   telegramID,
		UserID:       claims.Subject,
		Email:        claims.Email,
		Role:         claims.PortalRole(),
		DisplayName:  claims.DisplayName(),
		AccessToken:  authSession.AccessToken,
		RefreshToken: authSession.RefreshToken,
		ExpiresAt:    authSession.Expiry(s.now()),
	}
	if session.Email == "" {
		session.Email = email
	}

	if err := s.store.Upsert(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("Portal account linked",
		zap.Int64("telegram_id", telegramID),
		zap.String("user_id", session.UserID),
		zap.String("role", string(session.Role)),
	)

	return session, nil
}

// Logout revokes the session at the provider (best effort) and unlinks the account
func (s *SessionService) Logout(ctx context.Context, telegramID int64) error {
	session, err := s.store.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return ErrNotLoggedIn
	}

	if err := s.idp.SignOut(ctx, session.AccessToken); err != nil {
		s.logger.Warn("Failed to revoke portal session",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}

	if err := s.store.Delete(ctx, telegramID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.logger.Info("Portal account unlinked", zap.Int64("telegram_id", telegramID))
	return nil
}

// Get returns a session with a usable access token, refreshing it when close to expiry
func (s *SessionService) Get(ctx context.Context, telegramID int64) (*model.PortalSession, error) {
	session, err := s.store.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, ErrNotLoggedIn
	}

	if session.ExpiresWithin(s.now(), refreshSkew) {
		return s.refresh(ctx, session)
	}
	return session, nil
}

// ListAll returns every linked session
func (s *SessionService) ListAll(ctx context.Context) ([]*model.PortalSession, error) {
	return s.store.ListAll(ctx)
}

// Call runs fn with the session token. A 401 from the backend triggers one
// refresh and one retry; the session is updated in place.
func (s *SessionService) Call(ctx context.Context, session *model.PortalSession, fn func(token string) error) error {
	err := fn(session.AccessToken)
	if !portalapi.IsUnauthorized(err) {
		return err
	}

	refreshed, rerr := s.refresh(ctx, session)
	if rerr != nil {
		return rerr
	}
	*session = *refreshed

	return fn(session.AccessToken)
}

func (s *SessionService) refresh(ctx context.Context, session *model.PortalSession) (*model.PortalSession, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	// Another update may have refreshed it while we waited
	current, err := s.store.GetByTelegramID(ctx, session.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("reload session: %w", err)
	}
	if current == nil {
		return nil, ErrNotLoggedIn
	}
	if current.AccessToken != session.AccessToken && !current.ExpiresWithin(s.now(), refreshSkew) {
		return current, nil
	}

	authSession, err := s.idp.Refresh(ctx, current.RefreshToken)
	if err != nil {
		s.logger.Warn("Session refresh failed, unlinking account",
			zap.Int64("telegram_id", current.TelegramID),
			zap.Error(err))
		if derr := s.store.Delete(ctx, current.TelegramID); derr != nil {
			s.logger.Error("Failed to delete expired session", zap.Error(derr))
		}
		return nil, errors.Join(ErrSessionExpired, err)
	}

	current.AccessToken = authSession.AccessToken
	if authSession.RefreshToken != "" {
		current.RefreshToken = authSession.RefreshToken
	}
	current.ExpiresAt = authSession.Expiry(s.now())

	if err := s.store.UpdateTokens(ctx, current); err != nil {
		return nil, fmt.Errorf("store refreshed session: %w", err)
	}

	s.logger.Debug("Session refreshed", zap.Int64("telegram_id", current.TelegramID))
	return current, nil
}

package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const stateIssuer = "counseling-portal-bot"

// StateSigner signs the OAuth return state so the landing endpoint can tell
// which Telegram user finished the calendar authorization.
type StateSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewStateSigner(secret string, ttl time.Duration) *StateSigner {
	return &StateSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Enabled reports whether a secret is configured
func (s *StateSigner) Enabled() bool {
	return len(s.secret) > 0
}

func (s *StateSigner) Sign(telegramID int64) (string, error) {
	if !s.Enabled() {
		return "", errors.New("state secret is not configured")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    stateIssuer,
		Subject:   strconv.FormatInt(telegramID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign state: %w", err)
	}
	return signed, nil
}

// Verify returns the Telegram ID the state was issued for
func (s *StateSigner) Verify(state string) (int64, error) {
	if !s.Enabled() {
		return 0, errors.New("state secret is not configured")
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(state, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(stateIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, fmt.Errorf("verify state: %w", err)
	}

	telegramID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse state subject: %w", err)
	}
	return telegramID, nil
}

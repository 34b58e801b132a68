package model

import "time"

type Role string

const (
	RoleStudent   Role = "student"
	RoleCounselor Role = "counselor"
)

// PortalSession links a Telegram account to an identity provider session
type PortalSession struct {
	TelegramID   int64     `json:"telegram_id"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	DisplayName  string    `json:"display_name"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsCounselor checks if the session belongs to a counselor
func (s *PortalSession) IsCounselor() bool {
	return s.Role == RoleCounselor
}

// ExpiresWithin reports whether the access token expires before now+d
func (s *PortalSession) ExpiresWithin(now time.Time, d time.Duration) bool {
	return !s.ExpiresAt.After(now.Add(d))
}

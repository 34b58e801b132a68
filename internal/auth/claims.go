package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

// UserMetadata is the profile the portal stores in the identity provider
type UserMetadata struct {
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	Name     string `json:"name"`
}

// Claims are the Supabase access token claims the bot relies on
type Claims struct {
	jwt.RegisteredClaims
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

// PortalRole maps user_metadata.role to a portal role, defaulting to student
func (c *Claims) PortalRole() model.Role {
	if strings.EqualFold(c.UserMetadata.Role, string(model.RoleCounselor)) {
		return model.RoleCounselor
	}
	return model.RoleStudent
}

// DisplayName picks the best available human name
func (c *Claims) DisplayName() string {
	switch {
	case c.UserMetadata.FullName != "":
		return c.UserMetadata.FullName
	case c.UserMetadata.Name != "":
		return c.UserMetadata.Name
	default:
		return c.Email
	}
}

// TokenParser reads access token claims. With a secret the HS256 signature and
// expiry are verified, without one the claims are only decoded.
type TokenParser struct {
	secret []byte
}

func NewTokenParser(secret string) *TokenParser {
	p := &TokenParser{}
	if secret != "" {
		p.secret = []byte(secret)
	}
	return p
}

func (p *TokenParser) Parse(tokenStr string) (*Claims, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return nil, errors.New("empty access token")
	}

	claims := &Claims{}
	if p.secret == nil {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
			return nil, fmt.Errorf("decode access token: %w", err)
		}
	} else {
		_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return p.secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
		if err != nil {
			return nil, fmt.Errorf("verify access token: %w", err)
		}
	}

	if claims.Subject == "" {
		return nil, errors.New("access token has no subject")
	}

	return claims, nil
}

package common

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/Freeeeeet/counseling_portal/internal/auth"
	"github.com/Freeeeeet/counseling_portal/internal/portalapi"
	"github.com/Freeeeeet/counseling_portal/internal/service"
)

var (
	ErrNotCounselor  = service.ErrNotCounselor
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrNoDraft       = errors.New("availability draft not found")
)

// ErrorMessage turns an error into text for the user
func ErrorMessage(err error) string {
	var apiErr *portalapi.APIError

	switch {
	case errors.Is(err, service.ErrSessionExpired):
		return "🔒 Your portal session expired. Please /login again."
	case errors.Is(err, service.ErrNotLoggedIn):
		return "🔒 Link your portal account first: /login"
	case errors.Is(err, ErrNotCounselor):
		return "❌ This is available to counselors only."
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "❌ Wrong email or password."
	case errors.Is(err, service.ErrActionForbidden):
		return "❌ This action is no longer possible for the appointment."
	case errors.Is(err, service.ErrNotFound):
		return "❌ Not found. It may have been removed."
	case errors.Is(err, service.ErrInvalidSlot), errors.Is(err, service.ErrInvalidDate):
		return "❌ " + capitalize(err.Error())
	case errors.Is(err, service.ErrEmptyNote):
		return "❌ The note is empty."
	case errors.Is(err, ErrNoDraft):
		return "❌ The editor expired. Open /availability again."
	case errors.Is(err, ErrNoMessage):
		return "❌ Could not process the message."
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Invalid data."
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return "❌ " + capitalize(apiErr.Message)
		}
		return "❌ The portal is unavailable right now. Please try again."
	default:
		return "❌ Something went wrong. Please try again."
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

package service

import "errors"

var (
	ErrNotLoggedIn     = errors.New("telegram account is not linked to the portal")
	ErrSessionExpired  = errors.New("portal session expired")
	ErrNotCounselor    = errors.New("action requires a counselor account")
	ErrActionForbidden = errors.New("action is not allowed for this appointment")
	ErrNotFound        = errors.New("not found")
	ErrInvalidSlot     = errors.New("invalid time slot")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyNote       = errors.New("note is empty")
)

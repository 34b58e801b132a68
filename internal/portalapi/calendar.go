package portalapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/counseling_portal/internal/model"
)

// CalendarStatus returns the Google Calendar link of the token owner
func (c *Client) CalendarStatus(ctx context.Context, token string) (*model.CalendarSyncStatus, error) {
	var status model.CalendarSyncStatus
	if err := c.do(ctx, token, http.MethodGet, "/calendar/status", nil, &status); err != nil {
		return nil, fmt.Errorf("get calendar status: %w", err)
	}
	return &status, nil
}

// AuthorizeCalendar starts the OAuth flow and returns the provider URL to open
func (c *Client) AuthorizeCalendar(ctx context.Context, token, returnURL string) (string, error) {
	request := struct {
		ReturnURL string `json:"return_url,omitempty"`
	}{ReturnURL: returnURL}

	var response struct {
		AuthorizationURL string `json:"authorization_url"`
	}
	if err := c.do(ctx, token, http.MethodPost, "/calendar/oauth/authorize", request, &response); err != nil {
		return "", fmt.Errorf("authorize calendar: %w", err)
	}
	if response.AuthorizationURL == "" {
		return "", errors.New("authorize calendar: empty authorization url")
	}
	return response.AuthorizationURL, nil
}

func (c *Client) DisconnectCalendar(ctx context.Context, token string) error {
	if err := c.do(ctx, token, http.MethodPost, "/calendar/disconnect", nil, nil); err != nil {
		return fmt.Errorf("disconnect calendar: %w", err)
	}
	return nil
}

func (c *Client) SyncCalendar(ctx context.Context, token string) error {
	if err := c.do(ctx, token, http.MethodPost, "/calendar/sync-now", nil, nil); err != nil {
		return fmt.Errorf("sync calendar: %w", err)
	}
	return nil
}

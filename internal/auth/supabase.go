package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned when the identity provider rejects a login
var ErrInvalidCredentials = errors.New("invalid login credentials")

// ProviderError is a non-2xx identity provider response
type ProviderError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider returned %d: %s", e.StatusCode, e.Message)
}

// Session is a GoTrue token response
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         struct {
		ID           string       `json:"id"`
		Email        string       `json:"email"`
		UserMetadata UserMetadata `json:"user_metadata"`
	} `json:"user"`
}

// Expiry returns the absolute access token expiry
func (s *Session) Expiry(now time.Time) time.Time {
	if s.ExpiresAt > 0 {
		return time.Unix(s.ExpiresAt, 0)
	}
	return now.Add(time.Duration(s.ExpiresIn) * time.Second)
}

// SupabaseClient talks to the GoTrue REST API of a Supabase project
type SupabaseClient struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewSupabaseClient(baseURL, anonKey string, timeout time.Duration, logger *zap.Logger) *SupabaseClient {
	return &SupabaseClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SignInWithPassword exchanges email and password for a session
func (c *SupabaseClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var session Session
	err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &session)
	if err != nil {
		var perr *ProviderError
		if errors.As(err, &perr) && (perr.StatusCode == http.StatusBadRequest || perr.Code == "invalid_grant") {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}

	return &session, nil
}

// Refresh exchanges a refresh token for a new session
func (c *SupabaseClient) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]string{"refresh_token": refreshToken}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", "", body, &session); err != nil {
		return nil, fmt.Errorf("refresh session: %w", err)
	}

	return &session, nil
}

// SignOut revokes the refresh tokens of the access token owner
func (c *SupabaseClient) SignOut(ctx context.Context, accessToken string) error {
	if err := c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

func (c *SupabaseClient) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Identity provider error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return decodeProviderError(resp.StatusCode, payload)
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// GoTrue answers with either the OAuth error shape or its own msg shape
func decodeProviderError(statusCode int, payload []byte) error {
	var body struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Code             any    `json:"code"`
		ErrorCode        string `json:"error_code"`
	}
	perr := &ProviderError{StatusCode: statusCode}
	if err := json.Unmarshal(payload, &body); err == nil {
		perr.Code = body.Error
		if perr.Code == "" {
			perr.Code = body.ErrorCode
		}
		perr.Message = body.ErrorDescription
		if perr.Message == "" {
			perr.Message = body.Msg
		}
	}
	if perr.Message == "" {
		perr.Message = strings.TrimSpace(string(payload))
	}
	return perr
}

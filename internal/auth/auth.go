// Package auth exchanges stored refresh tokens for resource-scoped access
// tokens against the Microsoft identity platform.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAuthority = "https://login.microsoftonline.com"

	// First-party CLI app registration used when a profile does not carry
	// its own client ID.
	defaultClientID = "31359c7f-bd7e-475c-86db-fdb8c937548e"
	defaultTenantID = "common"
)

// DefaultClientID exposes the app registration used unless the profile
// overrides it.
func DefaultClientID() string {
	return defaultClientID
}

// DefaultTenantID exposes the tenant used unless the profile overrides it.
func DefaultTenantID() string {
	return defaultTenantID
}

// Config configures the token service.
type Config struct {
	HTTPClient *http.Client
	Authority  string
	TenantID   string
	ClientID   string
}

// Service requests access tokens via the OAuth2 refresh-token grant. It
// never initiates an interactive login and never renews the stored refresh
// token itself.
type Service struct {
	http *http.Client
	cfg  Config
}

// NewService constructs a Service with production-safe defaults.
func NewService(cfg Config) *Service {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second, //nolint:mnd // default HTTP client timeout
		}
	}
	if cfg.Authority == "" {
		cfg.Authority = defaultAuthority
	}
	if cfg.TenantID == "" {
		cfg.TenantID = defaultTenantID
	}
	if cfg.ClientID == "" {
		cfg.ClientID = defaultClientID
	}
	return &Service{cfg: cfg, http: httpClient}
}

// Error represents a structured error returned by the token endpoint.
type Error struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
	Status      int    `json:"-"`
}

func (e *Error) Error() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Code
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Resource    string `json:"resource"`
}

// AccessToken requests a bearer token for the given resource using the
// stored refresh token. Endpoint failures surface verbatim as *Error.
func (s *Service) AccessToken(ctx context.Context, resource, refreshToken string) (string, error) {
	if resource == "" {
		return "", errors.New("resource cannot be empty")
	}
	if refreshToken == "" {
		return "", errors.New("refresh token cannot be empty")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", s.cfg.ClientID)
	form.Set("refresh_token", refreshToken)
	form.Set("resource", resource)

	endpoint := fmt.Sprintf("%s/%s/oauth2/token", strings.TrimSuffix(s.cfg.Authority, "/"), s.cfg.TenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}

	body, readErr := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if readErr != nil {
		return "", fmt.Errorf("read token response: %w", errors.Join(readErr, closeErr))
	}
	if closeErr != nil {
		return "", fmt.Errorf("close token response: %w", closeErr)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", decodeTokenError(resp.StatusCode, body)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", errors.New("token endpoint returned no access token")
	}
	return token.AccessToken, nil
}

func decodeTokenError(status int, body []byte) error {
	ae := &Error{Status: status}
	if err := json.Unmarshal(body, ae); err != nil || (ae.Code == "" && ae.Description == "") {
		ae.Code = http.StatusText(status)
		ae.Description = string(body)
	}
	return ae
}

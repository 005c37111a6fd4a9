// Package spo provides an authenticated SharePoint Online REST client used by spoctl.
package spo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	acceptNoMetadata = "application/json;odata=nometadata"

	limiterRatePerSecond = 3
	limiterBurstTokens   = 6

	userAgent = "spoctl/0.1"
)

// ClientConfig configures the SharePoint client.
type ClientConfig struct {
	HTTPClient *http.Client
	Token      string
}

// Client performs authenticated requests against SharePoint site endpoints.
// Requests are paced by a limiter but never retried: each API call issues
// exactly one HTTP request.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	cfg     ClientConfig
}

// NewClient constructs a Client with production-safe defaults.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second, //nolint:mnd // default HTTP client timeout
		}
	}

	return &Client{
		cfg:     cfg,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(limiterRatePerSecond), limiterBurstTokens),
	}
}

// Do exposes the low-level request helper for advanced use-cases. The target
// must be an absolute URL; SharePoint endpoints are addressed per site, so
// the client carries no base URL.
func (c *Client) Do(ctx context.Context, method, target string, body any, out any) error {
	if err := validateTarget(target); err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := c.prepareRequest(ctx, method, target, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("request context: %w", ctxErr)
		}
		return fmt.Errorf("do request: %w", err)
	}
	return c.consumeResponse(resp, out)
}

// do is retained for internal callers to avoid recursive wrappers.
func (c *Client) do(ctx context.Context, method, target string, body any, out any) error {
	return c.Do(ctx, method, target, body, out)
}

func (c *Client) prepareRequest(ctx context.Context, method, target string, body any) (*http.Request, error) {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = encoded
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.ContentLength = int64(len(payload))
		req.Header.Set("Content-Type", acceptNoMetadata)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", acceptNoMetadata)
	req.Header.Set("User-Agent", userAgent)

	return req, nil
}

func (c *Client) consumeResponse(resp *http.Response, out any) error {
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}

	var decodeErr error
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			decodeErr = fmt.Errorf("decode response: %w", err)
		}
	}

	if closeErr := resp.Body.Close(); closeErr != nil {
		return errors.Join(decodeErr, fmt.Errorf("close response body: %w", closeErr))
	}
	return decodeErr
}

func validateTarget(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("parse target %q: %w", target, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("target %q is not an absolute URL", target)
	}
	return nil
}

// WithLimiter allows overriding the rate limiter (used by tests).
func (c *Client) WithLimiter(l *rate.Limiter) {
	if l != nil {
		c.limiter = l
	}
}

// SetToken updates the bearer token.
func (c *Client) SetToken(token string) {
	c.cfg.Token = token
}

// Token returns the configured bearer token.
func (c *Client) Token() string {
	return c.cfg.Token
}

// Package commercetools is a thin HTTP client for the commercetools
// platform API, authenticated with OAuth2 client credentials.
package commercetools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ct-storefront/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"
)

const defaultTimeout = 15 * time.Second

// Config holds the API client credentials for one project.
type Config struct {
	ClientID     string
	ClientSecret string
	ProjectKey   string
	AuthURL      string
	APIURL       string
	Scopes       []string
}

// Client issues project-scoped requests. It is safe for concurrent use; the
// underlying token source caches and refreshes the access token.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *zap.Logger
}

// New builds a Client. ctx bounds token fetches for the lifetime of the
// client and should not be request scoped.
func New(ctx context.Context, cfg Config, logger *zap.Logger) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     strings.TrimRight(cfg.AuthURL, "/") + "/oauth/token",
		Scopes:       cfg.Scopes,
	}
	httpClient := cc.Client(ctx)
	httpClient.Timeout = defaultTimeout
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.APIURL, "/") + "/" + url.PathEscape(cfg.ProjectKey),
		logger:  logger,
	}
}

// ErrorObject is a single entry of a platform error response.
type ErrorObject struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIError is a non-2xx platform response.
type APIError struct {
	StatusCode int           `json:"statusCode"`
	Message    string        `json:"message"`
	Errors     []ErrorObject `json:"errors"`
}

func (e *APIError) Error() string {
	if code := e.Code(); code != "" {
		return fmt.Sprintf("commercetools: %d %s: %s", e.StatusCode, code, e.Message)
	}
	return fmt.Sprintf("commercetools: %d: %s", e.StatusCode, e.Message)
}

// Code returns the first error code, if any.
func (e *APIError) Code() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Code
}

// Is maps platform failures onto the domain error sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrNotFound:
		return e.kind() == domain.ErrNotFound
	case domain.ErrConflict:
		return e.kind() == domain.ErrConflict
	case domain.ErrInvalidCredentials:
		return e.kind() == domain.ErrInvalidCredentials
	case domain.ErrUpstream:
		return e.kind() == domain.ErrUpstream
	}
	return false
}

func (e *APIError) kind() error {
	switch {
	case e.Code() == "ConcurrentModification" || e.StatusCode == http.StatusConflict:
		return domain.ErrConflict
	case e.Code() == "InvalidCredentials":
		return domain.ErrInvalidCredentials
	case e.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return domain.ErrUpstream
	}
}

// Get fetches path relative to the project and decodes the body into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("commercetools request failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("commercetools request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		apiErr.StatusCode = resp.StatusCode
		if !errors.Is(apiErr, domain.ErrNotFound) {
			c.logger.Warn("commercetools error response",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.String("code", apiErr.Code()),
				zap.String("message", apiErr.Message),
			)
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
	}
	return nil
}

// API is the subset of Client the repositories depend on.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
	Post(ctx context.Context, path string, query url.Values, body, out interface{}) error
}

var _ API = (*Client)(nil)

package scoop

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultGitHubAPI is the releases-list API base.
	DefaultGitHubAPI = "https://api.github.com"
	// DefaultSourceForgeBase hosts the per-project RSS feeds.
	DefaultSourceForgeBase = "https://sourceforge.net"
	// DefaultUserAgent is sent when neither the manifest nor the
	// configuration declares one.
	DefaultUserAgent = "ladle/1.0"
	// DefaultTimeout bounds every check fetch.
	DefaultTimeout = 30 * time.Second
)

// Checker resolves an app's latest upstream version from its CheckConfig.
type Checker struct {
	httpClient      *http.Client
	githubAPI       string
	sourceforgeBase string
	userAgent       string
	githubToken     string
}

// CheckerOption customizes a Checker.
type CheckerOption func(*Checker)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) CheckerOption {
	return func(ch *Checker) { ch.httpClient = c }
}

// WithGitHubAPI overrides the releases API base URL.
func WithGitHubAPI(base string) CheckerOption {
	return func(ch *Checker) { ch.githubAPI = strings.TrimSuffix(base, "/") }
}

// WithSourceForgeBase overrides the SourceForge base URL.
func WithSourceForgeBase(base string) CheckerOption {
	return func(ch *Checker) { ch.sourceforgeBase = strings.TrimSuffix(base, "/") }
}

// WithUserAgent sets the default User-Agent for check fetches.
func WithUserAgent(ua string) CheckerOption {
	return func(ch *Checker) {
		if ua != "" {
			ch.userAgent = ua
		}
	}
}

// WithGitHubToken attaches an Authorization header to releases API calls.
func WithGitHubToken(token string) CheckerOption {
	return func(ch *Checker) { ch.githubToken = token }
}

// NewChecker creates a Checker with default endpoints and timeout.
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		httpClient:      &http.Client{Timeout: DefaultTimeout},
		githubAPI:       DefaultGitHubAPI,
		sourceforgeBase: DefaultSourceForgeBase,
		userAgent:       DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// fetch performs a GET and returns the body. userAgent falls back to the
// checker default when empty.
func (c *Checker) fetch(ctx context.Context, url, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if userAgent == "" {
		userAgent = c.userAgent
	}
	req.Header.Set("User-Agent", userAgent)

	if c.githubToken != "" && strings.HasPrefix(url, c.githubAPI) {
		req.Header.Set("Authorization", "Bearer "+c.githubToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// Package session answers whether the user currently has an authenticated
// session with the file service. Uploads are refused without one.
package session

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fileforge/fileforge/internal/constants"
	"github.com/fileforge/fileforge/internal/logging"
)

// Checker reports whether an authenticated session exists.
type Checker interface {
	// Active returns true when the user is signed in. An error means the
	// check itself failed, not that the session is absent.
	Active(ctx context.Context) (bool, error)
}

// StaticChecker always reports the same answer. Used when no auth service
// is configured, and in tests.
type StaticChecker struct {
	SignedIn bool
}

func (s StaticChecker) Active(_ context.Context) (bool, error) {
	return s.SignedIn, nil
}

// retryLogger implements the retryablehttp.LeveledLogger interface,
// forwarding retry warnings to the component logger.
type retryLogger struct {
	logger *logging.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Msgf("%s %v", msg, keysAndValues)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	// Only log errors and warnings, not all info
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	// Only log errors and warnings
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Msgf("%s %v", msg, keysAndValues)
}

// HTTPChecker probes an auth endpoint over HTTPS. A 2xx response means
// the session is active; 401 and 403 mean it is not.
type HTTPChecker struct {
	client   *nethttp.Client
	endpoint string
	token    string
	logger   *logging.Logger
}

// NewHTTPChecker creates a checker for the given session endpoint.
// token may be empty for cookie-based deployments behind a proxy.
func NewHTTPChecker(endpoint, token string) *HTTPChecker {
	logger := logging.NewLogger("session")

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.HTTPRetryMax
	retryClient.RetryWaitMin = constants.HTTPRetryWaitMin
	retryClient.RetryWaitMax = constants.HTTPRetryWaitMax
	retryClient.Logger = &retryLogger{logger: logger}

	return &HTTPChecker{
		client:   retryClient.StandardClient(),
		endpoint: endpoint,
		token:    token,
		logger:   logger,
	}
}

// Active probes the session endpoint. The request is bounded by the
// session check timeout regardless of the caller's context.
func (c *HTTPChecker) Active(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.SessionCheckTimeout)
	defer cancel()

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, c.endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build session request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("session check failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("session check")

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode == nethttp.StatusUnauthorized || resp.StatusCode == nethttp.StatusForbidden:
		return false, nil
	default:
		return false, fmt.Errorf("session endpoint returned status %d", resp.StatusCode)
	}
}

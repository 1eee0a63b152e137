// Package netx holds the outbound HTTP plumbing shared by the remote
// key-value client and the profile client: a logging round tripper that
// stamps X-Request-Id on every call and a small GET helper.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/postkeeper/internal/common"
	"github.com/dmitrijs2005/postkeeper/internal/logging"
)

// DefaultTimeout bounds a single outbound request when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of a response body is read into memory.
const maxBodySize = 1 << 20

type Config struct {
	Timeout time.Duration
	Logger  logging.Logger
}

type loggingRoundTripper struct {
	inner  http.RoundTripper
	logger logging.Logger
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID := req.Header.Get(common.RequestIDHeaderName)
	if requestID == "" {
		requestID = uuid.NewString()
		// RoundTrip must not modify the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set(common.RequestIDHeaderName, requestID)
	}

	resp, err := l.inner.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		l.logger.Error(req.Context(), "http request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"duration", duration.String(),
			"request_id", requestID,
			"error", err.Error(),
		)
		return nil, err
	}

	l.logger.Debug(req.Context(), "http request done",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration", duration.String(),
		"request_id", requestID,
	)
	return resp, nil
}

// New builds an http.Client with the logging transport.
func New(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingRoundTripper{inner: http.DefaultTransport, logger: logger},
	}
}

// Get performs a GET to rawURL and returns the body of a 2xx response.
// Network failures and non-2xx statuses are reported as common.ErrTransport.
func Get(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", common.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", common.ErrTransport, err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("%w: response body exceeds %d bytes", common.ErrTransport, maxBodySize)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", common.ErrTransport, resp.Status)
	}
	return body, nil
}

package backend

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/me/vertexdash/internal/logging"
)

// RequestIDHeader carries the dashboard request ID to the backend.
const RequestIDHeader = "X-Request-ID"

// loggingRoundTripper logs every outbound call and forwards the request ID.
type loggingRoundTripper struct {
	inner  http.RoundTripper
	logger *slog.Logger
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	if id := logging.RequestID(req.Context()); id != "" && req.Header.Get(RequestIDHeader) == "" {
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, id)
	}

	logger := logging.FromContext(req.Context(), l.logger)
	resp, err := l.inner.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		logger.Warn("backend request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration", duration,
			"error", err,
		)
		return nil, err
	}

	logger.Debug("backend request",
		"method", req.Method,
		"path", req.URL.Path,
		"query", req.URL.RawQuery,
		"status", resp.StatusCode,
		"duration", duration,
	)
	return resp, nil
}

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/armory/internal/domain"
	"github.com/iho/armory/internal/infrastructure/metrics"
	"github.com/iho/armory/internal/usecase"
)

// Request bodies larger than this are logged without a payload.
const maxLoggedBodyBytes = 64 * 1024

// RequestLogMiddleware persists an audit record for every mutating request.
// Records are written asynchronously so a slow or failing audit store never
// blocks the request path.
type RequestLogMiddleware struct {
	repo    usecase.RequestLogRepository
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewRequestLogMiddleware creates a new RequestLogMiddleware.
func NewRequestLogMiddleware(repo usecase.RequestLogRepository, m *metrics.Metrics, logger zerolog.Logger) *RequestLogMiddleware {
	return &RequestLogMiddleware{repo: repo, metrics: m, logger: logger}
}

// Wrap wraps an http.Handler with audit logging.
func (m *RequestLogMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		var body map[string]any
		if r.Body != nil {
			raw, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes+1))
			if err == nil {
				r.Body = io.NopCloser(bytes.NewReader(raw))
				if len(raw) <= maxLoggedBodyBytes {
					json.Unmarshal(raw, &body)
				}
			}
		}

		wrapped := &auditRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		entry := &domain.RequestLog{
			Method: r.Method,
			Path:   r.URL.Path,
			Status: wrapped.statusCode,
			Body:   scrubSecrets(body),
		}
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			entry.UserID = claims.UserID
		}

		go m.persist(entry)
	})
}

func (m *RequestLogMiddleware) persist(entry *domain.RequestLog) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.repo.Create(ctx, entry); err != nil {
		m.logger.Warn().Err(err).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Msg("failed to persist request log")
		return
	}

	if m.metrics != nil {
		m.metrics.RequestLogsCreated.Inc()
	}
}

// scrubSecrets strips credential fields before the body is persisted.
func scrubSecrets(body map[string]any) map[string]any {
	if body == nil {
		return nil
	}
	for _, field := range []string{"password", "token"} {
		if _, ok := body[field]; ok {
			body[field] = "[redacted]"
		}
	}
	return body
}

type auditRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *auditRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

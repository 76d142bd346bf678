package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"battlecards/internal/logger"
	"battlecards/internal/metrics"

	"github.com/google/uuid"
)

// RequestIDKey: тип ключа для хранения ID запроса в контексте.
type RequestIDKey string

const (
	// RequestIDHeader: имя заголовка для ID запроса.
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey: ключ контекста для ID запроса.
	RequestIDContextKey RequestIDKey = "request_id"
)

// RequestID возвращает ID запроса из контекста.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDContextKey).(string)
	return id
}

// RequestIDMiddleware берёт ID из заголовка или генерирует новый и кладёт его в контекст и ответ.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoggingMiddleware логирует каждый запрос и, если m не nil, пишет метрики.
func LoggingMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			if m != nil {
				m.HTTPRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rw.statusCode)).Inc()
				m.HTTPRequestDuration.WithLabelValues(r.Method).Observe(duration.Seconds())
			}
			logger.Log.WithFields(logger.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rw.statusCode,
				"duration":    duration,
				"request_id":  RequestID(r.Context()),
				"remote_addr": r.RemoteAddr,
			}).Info("Request processed")
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/afjrotc/logistics/internal/auth"
	"github.com/afjrotc/logistics/internal/logistics"
	"github.com/afjrotc/logistics/internal/metrics"
)

type ctxKeyWorkspace struct{}
type ctxKeyRequestID struct{}

// AuthMiddleware validates the bearer token, resolves its workspace and adds
// it to the context.
func AuthMiddleware(svc *logistics.Service, secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	res := responder{log: logger}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				res.jsonError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}

			claims, err := auth.ValidateToken(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				res.jsonError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ws, err := svc.Workspace(r.Context(), claims.SessionID)
			if err != nil {
				if errors.Is(err, logistics.ErrUnauthenticated) {
					res.jsonError(w, http.StatusUnauthorized, "session ended")
					return
				}
				res.writeError(w, err)
				return
			}
			if _, ok := svc.User(ws); !ok {
				res.jsonError(w, http.StatusUnauthorized, "session ended")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyWorkspace{}, ws)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetWorkspace retrieves the authenticated workspace from the context.
func GetWorkspace(ctx context.Context) *logistics.Workspace {
	ws, _ := ctx.Value(ctxKeyWorkspace{}).(*logistics.Workspace)
	return ws
}

// RequestID reads X-Request-ID or generates one, and echoes it back.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", rid)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request id set by RequestID.
func GetRequestID(ctx context.Context) string {
	rid, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return rid
}

// LoggingMiddleware logs HTTP requests with method, path, status, and
// duration, and counts them in m when it is non-nil.
func LoggingMiddleware(logger *zap.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			if m != nil {
				m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
				m.HTTPDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
			}

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.RequestURI()),
				zap.Int("status", status),
				zap.Duration("duration", elapsed.Round(time.Millisecond)),
				zap.String("request_id", GetRequestID(r.Context())),
			)
		})
	}
}

package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jackyeh168/channel_points/src/internal/infrastructure/metrics"
)

// Limiter 限流器（*ratelimit.Limiter）
type Limiter interface {
	Allow(ctx context.Context, ident string) (bool, error)
}

// recordMetrics 依路由樣板記錄請求數（避免把 ID 放進標籤）
func recordMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}

// rateLimitByParam 以路徑參數為單位限流；限流器出錯時放行
func rateLimitByParam(limiter Limiter, param, route string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := chi.URLParam(r, param)

			allowed, err := limiter.Allow(r.Context(), route+":"+ident)
			if err != nil {
				logger.Warn("rate limiter unavailable", "route", route, "error", err)
			}
			if !allowed {
				metrics.RateLimited.WithLabelValues(route).Inc()
				writeError(w, http.StatusTooManyRequests, "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

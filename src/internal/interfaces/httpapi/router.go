package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options 路由設定
type Options struct {
	UseCases UseCases

	// RedeemLimiter 為 nil 時兌換不限流
	RedeemLimiter Limiter

	// Overlay 為 nil 時不掛載 /overlay/ws
	Overlay http.Handler

	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter 建立 chi router
func NewRouter(opts Options) http.Handler {
	h := NewHandler(opts.UseCases, opts.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(recordMetrics)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: len(opts.AllowedOrigins) > 0,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	if opts.Overlay != nil {
		r.Get("/overlay/ws", opts.Overlay.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/leaderboard", h.Leaderboard)
		r.Get("/categories", h.ListCategories)

		r.Route("/users", func(r chi.Router) {
			r.Post("/ensure", h.EnsureUser)

			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", h.GetUser)
				r.Get("/balance", h.GetBalance)
				r.Get("/history", h.GetHistory)
				r.Get("/rewards", h.ListRewardsForUser)
				r.Get("/redemptions", h.UserRedemptions)

				r.Group(func(r chi.Router) {
					if opts.RedeemLimiter != nil {
						r.Use(rateLimitByParam(opts.RedeemLimiter, "userID", "redeem", h.logger))
					}
					r.Post("/redemptions", h.Redeem)
				})
			})
		})

		// 管理員路由：呼叫者身分由前端代理驗證
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			r.Get("/users", h.ListUsers)
			r.Patch("/users/{userID}/roles", h.UpdateRoles)
			r.Post("/users/{userID}/points/give", h.GivePoints)
			r.Post("/users/{userID}/points/remove", h.RemovePoints)
			r.Post("/users/{userID}/points/set", h.SetPoints)

			r.Post("/points/transfer", h.TransferPoints)
			r.Post("/points/bulk", h.BulkUpdatePoints)
			r.Post("/points/by-name", h.AddPointsByName)

			r.Get("/redemptions/pending", h.PendingRedemptions)
			r.Patch("/redemptions/{redemptionID}/status", h.UpdateRedemptionStatus)

			r.Get("/rewards", h.ListRewards)
			r.Post("/rewards", h.CreateReward)
			r.Put("/rewards/{rewardID}", h.UpdateReward)
			r.Post("/rewards/validate-config", h.ValidateActionConfig)

			r.Post("/categories", h.CreateCategory)
		})
	})

	return r
}

// NewServer 建立 *http.Server
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

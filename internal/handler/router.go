package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-market/internal/auth"
	"github.com/BuzzLyutic/task-market/pkg/respond"
)

type RouterConfig struct {
	Tasks          *TaskHandler
	Moderation     *ModerationHandler
	Content        *ContentHandler
	Verifier       *auth.Verifier
	Logger         *zap.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cfg.Verifier.Middleware)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", cfg.Tasks.List)
			r.Post("/moderate", cfg.Moderation.Moderate)
			r.Get("/{id}", cfg.Tasks.Get)
			r.Post("/{id}/accept", cfg.Tasks.Accept)
			r.Patch("/{id}/status", cfg.Tasks.UpdateStatus)
		})

		r.Get("/moderation/banner", cfg.Moderation.Banner)
		r.Get("/header", cfg.Content.Header)
		r.Get("/legal/{doc}", cfg.Content.Legal)
		r.Get("/wallet", cfg.Content.Wallet)
	})

	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)),
			)
		})
	}
}

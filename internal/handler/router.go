package handler

import (
	"net/http"
	"time"

	"github.com/acadsharsh/mockera12/internal/middleware"
	"github.com/acadsharsh/mockera12/internal/service"
	"github.com/acadsharsh/mockera12/pkg/auth"
	"github.com/acadsharsh/mockera12/pkg/logger"
	"github.com/acadsharsh/mockera12/pkg/metrics"
)

// RouterConfig carries everything the HTTP surface needs. Logger and Metrics
// are optional; throttle defaults apply when the knobs are zero.
type RouterConfig struct {
	AuthService       service.AuthService
	TestService       service.TestService
	SubmissionService service.SubmissionService
	StatsService      service.StatsService

	TokenValidator auth.TokenValidator

	Logger  *logger.Logger
	Metrics *metrics.Metrics

	ThrottleMaxRequests int
	ThrottlePeriod      time.Duration
}

// NewRouter wires handlers and middleware into the service's HTTP surface.
func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.AuthService)
	testHandler := NewTestHandler(cfg.TestService)
	submissionHandler := NewSubmissionHandler(cfg.SubmissionService)
	statsHandler := NewStatsHandler(cfg.StatsService)

	authMW := middleware.AuthMiddleware(cfg.TokenValidator)
	creatorMW := middleware.RequireRole("creator")

	maxRequests := cfg.ThrottleMaxRequests
	if maxRequests <= 0 {
		maxRequests = 120
	}
	period := cfg.ThrottlePeriod
	if period <= 0 {
		period = time.Minute
	}
	throttleMW := middleware.ThrottleMiddleware(maxRequests, period)

	protected := func(h http.HandlerFunc) http.Handler {
		return authMW(throttleMW(h))
	}

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Authenticated routes
	mux.Handle("GET /api/student/tests", protected(testHandler.List))
	mux.Handle("GET /api/test/{id}", protected(testHandler.Get))
	mux.Handle("POST /api/student/submit", protected(submissionHandler.Submit))
	mux.Handle("GET /api/student/result/{submissionId}", protected(submissionHandler.Result))

	// Creator routes
	mux.Handle("GET /api/creator/stats", authMW(creatorMW(throttleMW(http.HandlerFunc(statsHandler.Overview)))))

	var root http.Handler = mux
	if cfg.Metrics != nil {
		root = cfg.Metrics.Middleware(root)
	}
	if cfg.Logger != nil {
		root = middleware.LoggingMiddleware(cfg.Logger)(root)
	}
	root = middleware.CORSMiddleware(root)

	return root
}

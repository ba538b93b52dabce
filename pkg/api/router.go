package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/registryops/eppproxy/internal/logger"
	"github.com/registryops/eppproxy/internal/proxy"
	"github.com/registryops/eppproxy/pkg/api/auth"
	"github.com/registryops/eppproxy/pkg/api/handlers"
	apiMiddleware "github.com/registryops/eppproxy/pkg/api/middleware"
	"github.com/registryops/eppproxy/pkg/auditlog"
)

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//
// Routes:
//   - GET /health - Liveness probe
//   - GET /health/ready - Readiness probe
//   - POST /auth/login - API authentication
//   - GET /api/v1/registries - Session status for every registry
//   - GET /api/v1/registries/{id} - One registry's session status
//   - POST /api/v1/... - One route per command (domains, hosts,
//     contacts, poll, balance, maintenance, nominet, eurid, marks, dac)
//   - GET /api/v1/poll/stream - Websocket poll delivery with inline acks
//
// When no API users are configured the /api/v1 routes are served without
// authentication; jwtService and users may then be nil.
func NewRouter(p *proxy.Proxy, audit auditlog.Store, jwtService *auth.JWTService, users *auth.UserStore, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	healthHandler := handlers.NewHealthHandler(p, audit)

	// Health routes - unauthenticated
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	authenticated := users != nil && !users.Empty() && jwtService != nil
	if authenticated {
		authHandler := handlers.NewAuthHandler(users, jwtService)
		r.Post("/auth/login", authHandler.Login)
	}

	registriesHandler := handlers.NewRegistriesHandler(p)
	commandsHandler := handlers.NewCommandsHandler(p)
	streamHandler := handlers.NewStreamHandler(p)

	r.Route("/api/v1", func(r chi.Router) {
		if authenticated {
			r.Use(apiMiddleware.JWTAuth(jwtService))
		}

		r.Get("/registries", registriesHandler.List)
		r.Get("/registries/{id}", registriesHandler.Get)
		r.Get("/poll/stream", streamHandler.Stream)

		commandsHandler.Routes(r)
	})

	return r
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
//   - Healthcheck requests are logged at DEBUG level to reduce noise
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logArgs := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		}

		// Log healthcheck requests at DEBUG to avoid polluting logs in k8s
		if isHealthPath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
		} else {
			logger.Info("API request completed", logArgs...)
		}
	})
}

func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

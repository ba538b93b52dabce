// Package api provides the HTTP facade over the proxy: health probes,
// token issuance, session status and one route per registry command.
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/registryops/eppproxy/internal/logger"
	"github.com/registryops/eppproxy/internal/proxy"
	"github.com/registryops/eppproxy/pkg/api/auth"
	"github.com/registryops/eppproxy/pkg/auditlog"
)

// Server provides the HTTP server for the REST API.
//
// The server supports graceful shutdown with configurable timeout.
type Server struct {
	server       *http.Server
	config       APIConfig
	shutdownOnce sync.Once
}

// NewServer creates a new API HTTP server.
//
// The server is created in a stopped state. Call Start() to begin
// serving requests.
//
// When config.Users is non-empty a JWT service is created internally
// and every /api/v1 route requires a bearer token; the JWT secret must
// then be at least 32 characters. With no users configured the API is
// served unauthenticated, which only makes sense on a loopback bind.
func NewServer(config APIConfig, p *proxy.Proxy, audit auditlog.Store) (*Server, error) {
	config.ApplyDefaults()

	var jwtService *auth.JWTService
	users := auth.NewUserStore(nil)
	if len(config.Users) > 0 {
		hashes := make(map[string]string, len(config.Users))
		for _, u := range config.Users {
			hashes[u.Username] = u.PasswordHash
		}
		users = auth.NewUserStore(hashes)

		var err error
		jwtService, err = auth.NewJWTService(auth.JWTConfig{
			Secret:              config.JWT.Secret,
			AccessTokenDuration: config.JWT.AccessTokenDuration,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT service: %w", err)
		}
	} else {
		logger.Warn("api has no users configured; serving unauthenticated", "host", config.Host)
	}

	router := NewRouter(p, audit, jwtService, users, config.RequestTimeout)

	server := &http.Server{
		Addr:         net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{server: server, config: config}, nil
}

// Start starts the API HTTP server and blocks until the context is
// cancelled or an error occurs.
//
// When the context is cancelled, Start initiates graceful shutdown and
// returns nil on success.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("API server listening", "addr", s.server.Addr)

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
				// Context was cancelled, error is not needed
			}
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("API server shutdown signal received")
		// Create new context with timeout for graceful shutdown
		// Don't use the cancelled ctx as it would cause immediate shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("API server failed: %w", err)
	}
}

// Stop initiates graceful shutdown of the API server.
//
// Stop is safe to call multiple times and safe to call concurrently
// with Start().
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		logger.Debug("API server shutdown initiated")

		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("API server shutdown error: %w", err)
			logger.Error("API server shutdown error", "error", err)
		} else {
			logger.Info("API server stopped gracefully")
		}
	})
	return shutdownErr
}

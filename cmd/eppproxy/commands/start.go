package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/registryops/eppproxy/internal/dac"
	"github.com/registryops/eppproxy/internal/epp"
	"github.com/registryops/eppproxy/internal/logger"
	"github.com/registryops/eppproxy/internal/proxy"
	"github.com/registryops/eppproxy/internal/router"
	"github.com/registryops/eppproxy/internal/session"
	"github.com/registryops/eppproxy/internal/sysutil"
	"github.com/registryops/eppproxy/internal/telemetry"
	"github.com/registryops/eppproxy/pkg/api"
	"github.com/registryops/eppproxy/pkg/auditlog"
	"github.com/registryops/eppproxy/pkg/config"
	"github.com/registryops/eppproxy/pkg/metrics"
	"github.com/registryops/eppproxy/pkg/tlsconf"

	// Import prometheus metrics to register init() functions
	_ "github.com/registryops/eppproxy/pkg/metrics/prometheus"
)

var (
	foreground bool
	pidFile    string
	logFile    string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the eppproxy server",
	Long: `Start the eppproxy server with the specified configuration.

By default, the server runs in the background (daemon mode). Use --foreground
to run in the foreground for debugging or when managed by a process supervisor.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/eppproxy/config.yaml. Registry
connections are read from the registries.d directory next to it.

Examples:
  # Start in background (default)
  eppproxy start

  # Start in foreground
  eppproxy start --foreground

  # Start with custom config file
  eppproxy start --config /etc/eppproxy/config.yaml

  # Start with environment variable overrides
  EPPPROXY_LOGGING_LEVEL=DEBUG eppproxy start --foreground`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "Run in foreground (default: background/daemon mode)")
	startCmd.Flags().StringVar(&pidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/eppproxy/eppproxy.pid)")
	startCmd.Flags().StringVar(&logFile, "log-file", "", "Path to log file for daemon mode (default: $XDG_STATE_HOME/eppproxy/eppproxy.log)")
}

func runStart(cmd *cobra.Command, args []string) error {
	// Handle daemon mode (background)
	if !foreground {
		return startDaemon()
	}

	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry (if enabled)
	telemetryCfg := telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "eppproxy",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	}
	telemetryShutdown, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	// Initialize Pyroscope profiling (if enabled)
	profilingCfg := telemetry.ProfilingConfig{
		Enabled:        cfg.Telemetry.Profiling.Enabled,
		ServiceName:    "eppproxy",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Profiling.Endpoint,
		ProfileTypes:   cfg.Telemetry.Profiling.ProfileTypes,
	}
	profilingShutdown, err := telemetry.InitProfiling(profilingCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize profiling: %w", err)
	}
	defer func() {
		if err := profilingShutdown(); err != nil {
			logger.Error("profiling shutdown error", "error", err)
		}
	}()

	fmt.Println("eppproxy - EPP registry connection proxy")
	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()), "registries", len(cfg.Registries))

	if limit, err := sysutil.RaiseFileLimit(); err != nil {
		logger.Warn("Could not raise open file limit", "error", err)
	} else if limit > 0 {
		logger.Debug("Open file limit", "limit", limit)
	}

	// Initialize metrics (if enabled)
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		logger.Info("Metrics enabled", "port", cfg.Metrics.Port)
	} else {
		logger.Info("Metrics collection disabled")
	}

	// Audit sink: every EPP frame in both directions.
	audit, err := auditlog.New(cfg.Audit)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer func() {
		if err := audit.Close(); err != nil {
			logger.Error("audit log close error", "error", err)
		}
	}()
	logger.Info("Audit log configured", "backend", cfg.Audit.Backend)

	// Shared PKCS#11 module for hardware-held client keys.
	hsm, err := tlsconf.OpenHSM(cfg.HSM)
	if err != nil {
		return fmt.Errorf("failed to open HSM: %w", err)
	}
	if hsm != nil {
		defer func() {
			if err := hsm.Close(); err != nil {
				logger.Error("hsm close error", "error", err)
			}
		}()
		logger.Info("HSM opened", "module", cfg.HSM.ModulePath)
	}

	// Build one session per registry and a DAC client where configured.
	rt := router.New()
	dacs := make(map[string]*dac.Client)
	sessions := make([]*session.Session, 0, len(cfg.Registries))
	for _, reg := range cfg.Registries {
		tlsCfg, err := tlsconf.Build(reg.TLS, reg.Host, hsm)
		if err != nil {
			return fmt.Errorf("registry %s: %w", reg.ID, err)
		}

		sessCfg := session.Config{
			RegistryID:        reg.ID,
			Host:              reg.Host,
			SourceAddress:     reg.SourceAddress,
			TLS:               tlsCfg,
			Username:          reg.Username,
			Password:          reg.Password,
			NewPassword:       reg.NewPassword,
			Pipeline:          reg.Pipeline,
			Errata:            reg.Errata,
			Zones:             reg.Zones,
			TagListSession:    reg.NominetTagSession,
			QueueDepth:        reg.QueueDepth,
			KeepaliveInterval: reg.KeepaliveInterval,
			ResponseTimeout:   reg.ResponseTimeout,
			ReconnectDelay:    reg.ReconnectDelay,
			MaxFrame:          uint32(reg.MaxFrame),
			HandshakeTimeout:  cfg.TLSHandshakeTimeout,
		}
		if reg.Type == "tmch" {
			sessCfg.LoginObjects = []string{epp.NSTMCH}
		}

		sess := session.New(sessCfg, audit, metrics.NewSessionMetrics())
		if err := rt.Register(sess); err != nil {
			return fmt.Errorf("registry %s: %w", reg.ID, err)
		}
		sessions = append(sessions, sess)
		logger.Info("Registry configured",
			"registry", reg.ID, "host", reg.Host, "zones", reg.Zones, "pipeline", reg.Pipeline)

		if reg.DAC.Enabled() {
			dacs[reg.ID] = dac.New(dac.Config{
				RealTimeAddr:  reg.DAC.RealTimeAddr,
				TimeDelayAddr: reg.DAC.TimeDelayAddr,
				SourceAddress: reg.SourceAddress,
				Timeout:       reg.DAC.Timeout,
			})
			logger.Info("DAC configured", "registry", reg.ID, "real_time", reg.DAC.RealTimeAddr)
		}
	}
	defer func() {
		for id, client := range dacs {
			if err := client.Close(); err != nil {
				logger.Error("dac close error", "registry", id, "error", err)
			}
		}
	}()

	p := proxy.New(rt, dacs)

	// Run every session; each keeps its own reconnect loop.
	sessionsDone := make(chan struct{})
	go func() {
		defer close(sessionsDone)
		runSessions(ctx, sessions)
	}()

	// Metrics HTTP server (if enabled)
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsServer = &http.Server{
			Addr:              ":" + strconv.Itoa(cfg.Metrics.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server error", "error", err)
			}
		}()
	}

	// HTTP API server (if enabled)
	var apiServer *api.Server
	if cfg.API.IsEnabled() {
		apiServer, err = api.NewServer(cfg.API, p, audit)
		if err != nil {
			return fmt.Errorf("failed to create API server: %w", err)
		}
		go func() {
			if err := apiServer.Start(ctx); err != nil {
				logger.Error("API server error", "error", err)
			}
		}()
		logger.Info("API server configured", "host", cfg.API.Host, "port", cfg.API.Port)
	}

	// Re-apply runtime-safe settings when the config file changes.
	if err := config.Watch(GetConfigFile(), func(updated *config.Config) {
		if updated.Logging.Level != cfg.Logging.Level {
			logger.SetLevel(updated.Logging.Level)
			logger.Info("Log level changed", "level", updated.Logging.Level)
		}
		logger.Warn("Configuration changed on disk; registry and API changes require a restart")
	}); err != nil {
		logger.Warn("Config watch unavailable", "error", err)
	}

	// Write PID file if specified
	if pidFile != "" {
		if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d", os.Getpid())), 0o644); err != nil {
			return fmt.Errorf("failed to write PID file: %w", err)
		}
		defer func() { _ = os.Remove(pidFile) }()
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	<-sigChan
	signal.Stop(sigChan)
	logger.Info("Shutdown signal received, initiating graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if apiServer != nil {
		if err := apiServer.Stop(shutdownCtx); err != nil {
			logger.Error("API server shutdown error", "error", err)
		}
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", "error", err)
		}
	}

	// Log out of every ready session first so registries see a clean end
	// of session instead of a dropped connection, then cancel to stop
	// the remaining loops.
	logoutSessions(shutdownCtx, sessions)
	cancel()
	select {
	case <-sessionsDone:
		logger.Info("Server stopped gracefully")
	case <-shutdownCtx.Done():
		logger.Warn("Shutdown timeout exceeded, abandoning sessions")
	}

	return nil
}

// logoutSessions sends a logout on every ready session and waits for
// the confirmations, bounded by ctx.
func logoutSessions(ctx context.Context, sessions []*session.Session) {
	var wg sync.WaitGroup
	for _, sess := range sessions {
		if sess.State() != session.StateReady {
			continue
		}
		wg.Add(1)
		go func(s *session.Session) {
			defer wg.Done()
			if err := s.Logout(ctx); err != nil {
				logger.Warn("logout on shutdown failed",
					"registry", s.RegistryID(), "error", err)
			}
		}(sess)
	}
	wg.Wait()
}

// runSessions runs every session loop and returns when all have exited.
func runSessions(ctx context.Context, sessions []*session.Session) {
	done := make(chan string, len(sessions))
	for _, sess := range sessions {
		go func(s *session.Session) {
			if err := s.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("session exited", "registry", s.RegistryID(), "error", err)
			}
			done <- s.RegistryID()
		}(sess)
	}
	for range sessions {
		<-done
	}
}

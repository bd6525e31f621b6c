package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/AgentOS/desktop/internal/api/http"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/api/ws"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/desktop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/theme"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/window"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/storage"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	cfg     *config.Config
	logger  *logging.Logger
	desktop *desktop.Desktop
	hub     *ws.Hub
	router  *gin.Engine
	http    *http.Server
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	store, err := openStore(cfg.Storage.Dir, logger.Component("storage"))
	if err != nil {
		return nil, err
	}
	if cfg.Storage.Dir == "" {
		logger.Warn("No storage directory configured, desktop state will not survive restarts")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := monitoring.NewMetrics(reg)

	d, err := desktop.New(desktop.Options{
		Store:       store,
		Logger:      logger.Component("desktop"),
		Metrics:     metrics,
		Theme:       theme.Mode(cfg.Desktop.Theme),
		Viewport:    window.Viewport{Width: cfg.Desktop.ViewportWidth, Height: cfg.Desktop.ViewportHeight},
		ManifestDir: cfg.Registry.ManifestDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build desktop: %w", err)
	}

	hub := ws.NewHub(d, logger.Component("ws"), metrics)

	routerCfg := apihttp.RouterConfig{
		Logger:   logger.Component("http"),
		Metrics:  metrics,
		Gatherer: reg,
		CORS:     corsConfig(cfg.Server.CORSOrigins),
		Stream:   hub.HandleConnection,
	}
	if cfg.RateLimit.Enabled {
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		routerCfg.RateLimit = &rl
	}
	router := apihttp.NewRouter(d, routerCfg)

	return &Server{
		cfg:     cfg,
		logger:  logger,
		desktop: d,
		hub:     hub,
		router:  router,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// openStore returns a guarded file store, or a memory store when dir is empty
func openStore(dir string, logger *zap.Logger) (storage.Store, error) {
	if dir == "" {
		return storage.NewMemoryStore(), nil
	}
	fs, err := storage.NewFileStore(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	logger.Info("Persisting desktop state", zap.String("dir", fs.Dir()))
	return storage.NewGuarded(fs, storage.GuardSettings{
		MaxFailures: 5,
		Cooldown:    30 * time.Second,
		OnStateChange: func(from, to storage.GuardState) {
			logger.Warn("Storage write circuit changed",
				zap.String("from", from.String()), zap.String("to", to.String()))
		},
	}), nil
}

// Handler exposes the router (tests)
func (s *Server) Handler() http.Handler {
	return s.router
}

// Desktop exposes the composed desktop
func (s *Server) Desktop() *desktop.Desktop {
	return s.desktop
}

// Run serves until Shutdown is called
func (s *Server) Run() error {
	s.logger.Info("Starting desktop server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains HTTP requests and disconnects WebSocket clients. State is
// already durable because every change is persisted as it happens.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	s.logger.Info("Desktop server stopped")
	return nil
}

func corsConfig(origins string) middleware.CORSConfig {
	c := middleware.DefaultCORSConfig()
	c.Origins = middleware.ParseOrigins(origins)
	return c
}

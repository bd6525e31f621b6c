package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/desktop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
)

// RouterConfig wires the cross-cutting pieces of the router
type RouterConfig struct {
	Logger    *zap.Logger
	Metrics   *monitoring.Metrics
	Gatherer  prometheus.Gatherer // serves /metrics when set
	CORS      middleware.CORSConfig
	RateLimit *middleware.RateLimitConfig // nil disables limiting
	Stream    gin.HandlerFunc             // serves /stream when set
}

// NewRouter builds the gin engine with every desktop route registered
func NewRouter(d *desktop.Desktop, cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(middleware.Recovery(logger), middleware.RequestID(), middleware.Logger(logger))
	if cfg.Metrics != nil {
		router.Use(monitoring.Middleware(cfg.Metrics))
	}
	router.Use(middleware.CORS(cfg.CORS))
	if cfg.RateLimit != nil {
		router.Use(middleware.RateLimit(*cfg.RateLimit))
	}

	h := NewHandlers(d)

	router.GET("/health", h.Health)
	router.GET("/snapshot", h.Snapshot)
	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	// Window management
	windows := router.Group("/windows")
	windows.GET("", h.ListWindows)
	windows.POST("", h.OpenApp)
	windows.GET("/:id", h.GetWindow)
	windows.POST("/:id/focus", h.FocusWindow)
	windows.POST("/:id/move", h.MoveWindow)
	windows.POST("/:id/resize", h.ResizeWindow)
	windows.POST("/:id/split", h.SplitWindow)
	windows.DELETE("/:id", h.CloseWindow)
	router.PUT("/viewport", h.SetViewport)

	// Virtual file system
	fs := router.Group("/vfs")
	fs.GET("/nodes", h.ListNodes)
	fs.GET("/nodes/:id", h.GetNode)
	fs.GET("/nodes/:id/children", h.GetChildren)
	fs.PUT("/nodes/:id", h.UpdateNode)
	fs.DELETE("/nodes/:id", h.DeleteNode)
	fs.GET("/path", h.FindByPath)
	fs.GET("/glob", h.Glob)
	fs.POST("/files", h.CreateFile)
	fs.POST("/folders", h.CreateFolder)
	fs.POST("/open/:id", h.OpenFile)

	// Collaborators
	router.GET("/theme", h.GetTheme)
	router.PUT("/theme", h.SetTheme)
	router.GET("/notes", h.ListNotes)
	router.POST("/notes", h.CreateNote)
	router.PUT("/notes/:id", h.UpdateNote)
	router.DELETE("/notes/:id", h.DeleteNote)
	router.GET("/apps", h.ListApps)
	router.GET("/apps/:id", h.GetApp)

	if cfg.Stream != nil {
		router.GET("/stream", cfg.Stream)
	}

	return router
}

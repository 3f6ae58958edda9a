package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	handlers "github.com/GriffinCanCode/todolists/internal/api/http"
	"github.com/GriffinCanCode/todolists/internal/api/middleware"
	"github.com/GriffinCanCode/todolists/internal/domain/session"
	"github.com/GriffinCanCode/todolists/internal/infrastructure/config"
	"github.com/GriffinCanCode/todolists/internal/infrastructure/logging"
	"github.com/GriffinCanCode/todolists/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/todolists/internal/infrastructure/tracing"
)

const readHeaderTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	handler http.Handler
	store   *session.Store
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer

	stopSweeper context.CancelFunc
	sweeperDone chan struct{}
	closeOnce   sync.Once
}

// NewServer creates a new server instance and starts its session sweeper.
// Call Close (or Run) to release it.
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)
	}

	logger.Info("Initializing todo lists server",
		zap.String("addr", cfg.Server.Addr()),
		zap.Duration("session_idle_ttl", cfg.Session.IdleTTL),
	)

	// Initialize metrics first (needed by other components)
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(reg)

	tracer := tracing.New("todolists", logger.Logger)

	store := session.NewStore(cfg.Session.IdleTTL).
		WithMetrics(metrics).
		WithLogger(logger.Logger)

	tmpl, err := handlers.LoadTemplates()
	if err != nil {
		tracer.Close()
		return nil, err
	}

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	h := handlers.NewHandlers(store, metrics, logger.Logger)
	handlers.RegisterRoutes(router, h,
		middleware.Session(store, middleware.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		}),
		middleware.CORS(middleware.CORSConfigFor(cfg.CORS.AllowOrigins)),
	)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	handler, err := compress(router, cfg.Server.GzipMinSize)
	if err != nil {
		tracer.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		router:      router,
		handler:     handler,
		store:       store,
		logger:      logger,
		config:      cfg,
		metrics:     metrics,
		tracer:      tracer,
		stopSweeper: cancel,
		sweeperDone: make(chan struct{}),
	}

	go func() {
		defer close(s.sweeperDone)
		store.Run(ctx, cfg.Session.SweepInterval)
	}()

	logger.Info("Server initialized successfully")
	return s, nil
}

// compress wraps h with gzip for clients that accept it. Responses smaller
// than minSize are sent as is.
func compress(h http.Handler, minSize int) (http.Handler, error) {
	if minSize <= 0 {
		return gzhttp.GzipHandler(h), nil
	}
	wrapper, err := gzhttp.NewWrapper(gzhttp.MinSize(minSize))
	if err != nil {
		return nil, fmt.Errorf("failed to build gzip wrapper: %w", err)
	}
	return wrapper(h), nil
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Store returns the session store
func (s *Server) Store() *session.Store {
	return s.store
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()

	srv := &http.Server{
		Addr:              s.config.Server.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	l, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
	}
	if limit := s.config.Server.MaxConnections; limit > 0 {
		l = netutil.LimitListener(l, limit)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server",
			zap.String("addr", srv.Addr),
			zap.Int("max_connections", s.config.Server.MaxConnections),
		)
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Graceful shutdown failed", zap.Error(err))
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// Close stops the session sweeper and the span collector
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		s.stopSweeper()
		<-s.sweeperDone
		s.tracer.Close()

		s.logger.Info("Server stopped", zap.Int("sessions", s.store.Len()))
		_ = s.logger.Sync()
	})
}

package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-edge-service/internal/app/edge"
	"github.com/preston-bernstein/nba-edge-service/internal/app/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/app/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/config"
	httpserver "github.com/preston-bernstein/nba-edge-service/internal/http"
	"github.com/preston-bernstein/nba-edge-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
	"github.com/preston-bernstein/nba-edge-service/internal/model"
	"github.com/preston-bernstein/nba-edge-service/internal/poller"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
	"github.com/preston-bernstein/nba-edge-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	schedule      *schedule.Service
	edge          *edge.Service
	teams         *teams.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	syncer        Syncer
	closers       []io.Closer
	metricsStop   func(context.Context) error
}

// components lets tests replace the upstream collaborators. Nil fields are built from config.
type components struct {
	provider  providers.Provider
	schedules []providers.ScheduleProvider
	recorder  *metrics.Recorder
}

// New constructs a server with default provider, cache, poller and snapshot wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServer(cfg, logger, components{})
}

func newServer(cfg config.Config, logger *slog.Logger, c components) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, c.recorder)
	factory := newProviderFactory(logger, recorder)

	provider := c.provider
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}
	sources := factory.buildSchedule(cfg)
	if len(c.schedules) > 0 {
		sources = factory.wrapSchedule(c.schedules)
	}

	priors, cacheCloser := buildPriorCache(cfg, logger)
	var closers []io.Closer
	if cacheCloser != nil {
		closers = append(closers, cacheCloser)
	}

	memoryStore := store.NewMemoryStore()
	scheduleSvc := schedule.NewService(memoryStore, nil, logger, recorder, sources...)
	edgeSvc := edge.NewService(provider, priors, buildModel(cfg, logger), logger, recorder)
	teamSvc := teams.NewService(nil)

	snaps := buildSnapshots(cfg, scheduleSvc, logger, recorder)
	plr := poller.New(scheduleSvc, snaps.pollerWriter(cfg), logger, recorder, cfg.PollInterval)

	handler := handlers.NewHandler(handlers.Options{
		Schedule:  scheduleSvc,
		Teams:     teamSvc,
		Edge:      edgeSvc,
		Snapshots: snaps.store,
		Status:    plr.Status,
		Logger:    logger,
	})
	var admin *handlers.AdminHandler
	if cfg.Snapshots.AdminToken != "" {
		admin = handlers.NewAdminHandler(snaps.syncer, cfg.Snapshots.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, httpserver.RouterOptions{
		Logger:      logger,
		Metrics:     recorder,
		CORSOrigins: cfg.CORSOrigins,
		Admin:       admin,
	})

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		schedule:      scheduleSvc,
		edge:          edgeSvc,
		teams:         teamSvc,
		httpServer:    buildHTTPServer(cfg, router),
		metricsServer: metricsSrv,
		poller:        plr,
		syncer:        snaps.syncer,
		closers:       closers,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject lifecycle components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller, syncer Syncer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
		syncer:     syncer,
	}
}

// buildModel loads tuned parameters, falling back to the defaults when the file is unusable.
func buildModel(cfg config.Config, logger *slog.Logger) *model.Model {
	params, err := config.LoadModelParams(cfg.ModelParamsFile)
	if err != nil {
		logging.Warn(logger, "model params unusable, using defaults", "err", err, "file", cfg.ModelParamsFile)
	}
	return model.New(params)
}

func buildHTTPServer(cfg config.Config, handler http.Handler) httpServer {
	return netHTTPServer{srv: &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}}
}

// Run starts the servers, poller and snapshot syncer, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)
	if s.syncer != nil {
		if err := s.syncer.Start(ctx); err != nil {
			logging.Warn(s.logger, "snapshot sync failed to start", "err", err)
		}
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "err", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "err", err)
		}
	}

	if s.syncer != nil {
		if err := s.syncer.Stop(); err != nil {
			logging.Warn(s.logger, "snapshot sync stop failed", "err", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			logging.Warn(s.logger, "close failed", "err", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "err", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

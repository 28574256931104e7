package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/kilianp07/socest/config"
	coremetrics "github.com/kilianp07/socest/core/metrics"
	"github.com/kilianp07/socest/core/monitoring"
	"github.com/kilianp07/socest/core/soc"
	"github.com/kilianp07/socest/infra/logger"
	"github.com/kilianp07/socest/infra/metrics"
	inframon "github.com/kilianp07/socest/infra/monitoring"
	"github.com/kilianp07/socest/internal/eventbus"
	"github.com/kilianp07/socest/web"
)

// Service wires the estimator, the web UI and the metrics pipeline.
type Service struct {
	Estimator *soc.Estimator
	cfg       *config.Config
	bus       *eventbus.TypedBus[coremetrics.EstimateEvent]
	sink      coremetrics.MetricsSink
	srv       *http.Server
	log       logger.Logger
	collector *sync.WaitGroup
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	mon, err := inframon.NewSentryMonitor(cfg.Sentry, cfg.Estimator.Model)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	monitoring.Init(mon)

	est, err := cfg.Estimator.NewEstimator()
	if err != nil {
		return nil, fmt.Errorf("estimator: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	bus := eventbus.NewTyped[coremetrics.EstimateEvent]()
	handler := web.NewServer(est, cfg.UI,
		web.WithPublisher(bus),
		web.WithLogger(logger.New("web")),
	).Handler()

	low, high := est.Range()
	logg.Infow("estimator ready", map[string]any{
		"model":    est.Table().Model(),
		"points":   est.Table().Len(),
		"low_v":    low,
		"high_v":   high,
		"rounding": est.Rounding().String(),
		"sinks":    coremetrics.MetricsSinkTypes(),
	})
	return &Service{
		Estimator: est,
		cfg:       cfg,
		bus:       bus,
		sink:      sink,
		srv:       &http.Server{Addr: cfg.HTTP.Address, Handler: handler, ReadHeaderTimeout: 5 * time.Second},
		log:       logg,
	}, nil
}

// Handler returns the HTTP handler served by Run.
func (s *Service) Handler() http.Handler { return s.srv.Handler }

// Run serves the UI and blocks until the context is cancelled or the
// server fails.
func (s *Service) Run(ctx context.Context) error {
	s.collector = metrics.StartEventCollector(ctx, s.bus, s.sink, logger.New("metrics"))
	if addr := s.cfg.Metrics.PrometheusAddress; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("http server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	s.log.Infof("shutting down http server")
	timeout := time.Duration(s.cfg.HTTP.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close stops the event pipeline and flushes the error monitor.
func (s *Service) Close() error {
	s.bus.Close()
	if s.collector != nil {
		s.collector.Wait()
	}
	if d := s.bus.Dropped(); d > 0 {
		s.log.Warnf("%d estimate events dropped by the metrics pipeline", d)
	}
	monitoring.Flush(2 * time.Second)
	return nil
}

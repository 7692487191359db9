package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	apischedule "github.com/Kirankkt/Construction-Scheduler-2/api/schedule"
	"github.com/Kirankkt/Construction-Scheduler-2/config"
	"github.com/Kirankkt/Construction-Scheduler-2/core/analysis"
	"github.com/Kirankkt/Construction-Scheduler-2/core/cpm"
	"github.com/Kirankkt/Construction-Scheduler-2/core/events"
	"github.com/Kirankkt/Construction-Scheduler-2/core/leveler"
	coremetrics "github.com/Kirankkt/Construction-Scheduler-2/core/metrics"
	"github.com/Kirankkt/Construction-Scheduler-2/core/model"
	"github.com/Kirankkt/Construction-Scheduler-2/core/monitoring"
	"github.com/Kirankkt/Construction-Scheduler-2/core/suggest"
	"github.com/Kirankkt/Construction-Scheduler-2/infra/logger"
	"github.com/Kirankkt/Construction-Scheduler-2/infra/metrics"
	sentrymon "github.com/Kirankkt/Construction-Scheduler-2/infra/monitoring"
	"github.com/Kirankkt/Construction-Scheduler-2/ingest"
	"github.com/Kirankkt/Construction-Scheduler-2/internal/eventbus"
)

// Service loads a working set once and serves scheduling runs over it.
type Service struct {
	cfg  *config.Config
	log  logger.Logger
	bus  eventbus.EventBus
	sink coremetrics.RunSink

	tasks    []model.Task
	warnings []string
	base     cpm.Baseline
}

// New builds a Service from the configuration: it parses the plan CSV,
// computes the baseline once and wires the configured metrics sinks.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	mon := monitoring.Monitor(monitoring.NopMonitor{})
	if cfg.Sentry.DSN != "" {
		m, err := sentrymon.NewSentryMonitor(cfg.Sentry)
		if err != nil {
			return nil, fmt.Errorf("sentry monitor: %w", err)
		}
		mon = m
	}
	monitoring.Init(mon)

	res, err := ingest.ParseCSV(cfg.Ingest.CSVPath, ingest.Options{AutoChain: cfg.Scenario.AutoChain})
	if err != nil {
		monitoring.CaptureException(err, map[string]string{"stage": "ingest"})
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	logg.Infof("ingested %d tasks (batch %s, %d warnings)", len(res.Tasks), res.BatchID, len(res.Warnings))
	for _, w := range res.Warnings {
		logg.Warnf("ingest: %s", w)
	}

	base := cpm.Compute(res.Tasks)
	if base.HasCycle {
		logg.Warnf("dependency cycle detected; affected tasks scheduled in ID order")
	}

	if err := metrics.RegisterSinks(); err != nil {
		return nil, fmt.Errorf("register sinks: %w", err)
	}
	sink, err := coremetrics.NewRunSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	return &Service{
		cfg:      cfg,
		log:      logg,
		bus:      eventbus.New(),
		sink:     sink,
		tasks:    res.Tasks,
		warnings: res.Warnings,
		base:     base,
	}, nil
}

// Baseline returns the unconstrained critical-path numbers.
func (s *Service) Baseline() cpm.Baseline { return s.base }

// Tasks returns the ingested working set.
func (s *Service) Tasks() []model.Task { return s.tasks }

// Warnings returns the non-fatal ingestion warnings.
func (s *Service) Warnings() []string { return s.warnings }

// Scenario returns the active scenario parameters.
func (s *Service) Scenario() config.ScenarioConfig { return s.cfg.Scenario }

func (s *Service) level() model.Schedule {
	sc := s.cfg.Scenario
	return leveler.Level(s.tasks, s.base, sc.PoolByCategory, model.CapacityMap(sc.Capacities))
}

// Schedule levels the working set under the configured scenario. Each call
// is a fresh run and publishes a run event.
func (s *Service) Schedule() (model.Schedule, analysis.ProjectMetrics, []string) {
	sc := s.cfg.Scenario

	start := time.Now()
	sched := s.level()
	elapsed := time.Since(start)

	m := analysis.ComputeMetrics(sched, sc.HoursPerDay)

	warnings := append([]string(nil), s.warnings...)
	if sc.EnforceTarget && m.DurationDays > sc.TargetDays {
		warnings = append(warnings, fmt.Sprintf(
			"leveled duration %.2f days exceeds target %.2f days", m.DurationDays, sc.TargetDays))
	}

	s.bus.Publish(events.RunEvent{
		RunID:        uuid.NewString(),
		Tasks:        len(s.tasks),
		Pooled:       sc.PoolByCategory,
		HasCycle:     s.base.HasCycle,
		DurationDays: m.DurationDays,
		LevelingTime: elapsed,
		Time:         time.Now(),
	})
	s.log.Debugw("schedule run", map[string]any{
		"tasks":         len(s.tasks),
		"pooled":        sc.PoolByCategory,
		"duration_days": m.DurationDays,
		"leveling":      elapsed.String(),
	})
	return sched, m, warnings
}

// Bottlenecks aggregates contention indicators over a fresh leveling run.
func (s *Service) Bottlenecks() (analysis.Bottlenecks, analysis.DelaySummary) {
	sched := s.level()
	return analysis.AnalyzeBottlenecks(s.tasks, s.base, sched), analysis.SummarizeDelays(sched)
}

// Suggest searches for category capacities that meet the target duration and
// publishes a suggest event with the outcome. Zero arguments fall back to
// the scenario's target and step budget; nil capacities start from the
// scenario's.
func (s *Service) Suggest(targetDays float64, maxSteps int, initial map[string]int) suggest.Result {
	sc := s.cfg.Scenario
	if targetDays <= 0 {
		targetDays = sc.TargetDays
	}
	if maxSteps <= 0 {
		maxSteps = sc.MaxSuggestSteps
	}
	if initial == nil {
		initial = sc.Capacities
	}
	res := suggest.Suggest(s.tasks, s.base, suggest.Config{
		HoursPerDay:    sc.HoursPerDay,
		TargetDays:     targetDays,
		PoolByCategory: sc.PoolByCategory,
		MaxSteps:       maxSteps,
	}, model.CapacityMap(initial))

	s.bus.Publish(events.SuggestEvent{
		RunID:        uuid.NewString(),
		TargetDays:   targetDays,
		DurationDays: res.DurationDays,
		Steps:        res.Steps,
		Time:         time.Now(),
	})
	return res
}

// Run serves the HTTP control surface and blocks until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	metrics.StartEventCollector(ctx, s.bus, s.sink)

	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:    s.cfg.API.Addr,
		Handler: apischedule.NewHandler(s, s.log),
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("api listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	monitoring.Flush(2 * time.Second)
	return nil
}

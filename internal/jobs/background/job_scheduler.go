// Package background runs the periodic work the host process owns: the
// monthly recurrence sweep and a dashboard metrics warm-up.
package background

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"rentledger/internal/metrics"
	"rentledger/internal/store"
)

// JobScheduler owns the gocron scheduler and the registered jobs.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	store      *store.Store
	metricsSvc *metrics.Service
	logger     zerolog.Logger

	mu   sync.RWMutex
	jobs map[string]gocron.Job
}

// NewJobScheduler registers the recurring jobs; Start begins execution.
// sweepInterval is how often the sweep tick fires; the sweep itself is
// idempotent per calendar month, so a short interval only costs a no-op.
func NewJobScheduler(st *store.Store, metricsSvc *metrics.Service, sweepInterval time.Duration, logger zerolog.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		store:      st,
		metricsSvc: metricsSvc,
		logger:     logger,
		jobs:       make(map[string]gocron.Job),
	}
	js.registerJobs(sweepInterval)
	return js, nil
}

func (js *JobScheduler) Start() {
	js.logger.Info().Msg("starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	js.logger.Info().Msg("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs(sweepInterval time.Duration) {
	sweepJob, err := js.scheduler.NewJob(
		gocron.DurationJob(sweepInterval),
		gocron.NewTask(js.runSweep, context.Background()),
		gocron.WithName("monthly-recurrence-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		js.logger.Error().Err(err).Msg("failed to create sweep job")
	} else {
		js.setJob("sweep", sweepJob)
	}

	warmupJob, err := js.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(js.warmMetrics, context.Background()),
		gocron.WithName("metrics-warmup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		js.logger.Error().Err(err).Msg("failed to create metrics warmup job")
	} else {
		js.setJob("metrics", warmupJob)
	}
}

func (js *JobScheduler) setJob(name string, job gocron.Job) {
	js.mu.Lock()
	js.jobs[name] = job
	js.mu.Unlock()
}

func (js *JobScheduler) runSweep(ctx context.Context) {
	if !js.store.Initialized() {
		return
	}
	res, err := js.store.RunMonthlySweep(ctx, time.Now())
	if err != nil {
		js.logger.Error().Err(err).Msg("scheduled sweep failed")
		return
	}
	if !res.Skipped {
		js.logger.Info().
			Str("month", res.MonthKey).
			Int("payments", res.PaymentsCreated).
			Int("expenses", res.ExpensesCreated).
			Msg("scheduled sweep completed")
	}
}

// warmMetrics precomputes the dashboard figures so the first UI request of
// the interval hits the cache.
func (js *JobScheduler) warmMetrics(ctx context.Context) {
	if !js.store.Initialized() {
		return
	}
	now := time.Now().UTC()
	if _, err := js.metricsSvc.RentRoll(ctx, now); err != nil {
		js.logger.Warn().Err(err).Msg("rent roll warmup failed")
	}
	if _, err := js.metricsSvc.Occupancy(ctx, now); err != nil {
		js.logger.Warn().Err(err).Msg("occupancy warmup failed")
	}
}

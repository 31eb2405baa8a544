// Package runner executes one batch of geocode jobs per invocation: it is
// the only component that moves jobs through their lifecycle.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/ergomap/geocoder/internal/backoff"
	"github.com/ergomap/geocoder/internal/config"
	"github.com/ergomap/geocoder/internal/geocoding"
	"github.com/ergomap/geocoder/internal/models"
	"github.com/rs/zerolog"
)

// JobStore is the slice of the job repository the runner drives.
type JobStore interface {
	ListQueued(ctx context.Context, limit int) ([]models.GeocodeJob, error)
	MarkProcessing(ctx context.Context, id uint) (bool, error)
	MarkDone(ctx context.Context, id uint) error
	MarkFailed(ctx context.Context, id uint, tries int, msg string) error
	Requeue(ctx context.Context, id uint, tries int) error
	RequeueStaleProcessing(ctx context.Context, olderThan time.Duration) (int64, error)
}

// LocationStore applies successful geocode results.
type LocationStore interface {
	ApplyGeocode(ctx context.Context, id uint, lon, lat float64, placeName string, bbox []float64) error
}

// AddressResolver is the provider-fallback chain; nil means every provider
// missed.
type AddressResolver interface {
	Resolve(ctx context.Context, address string) *geocoding.Result
}

// Report aggregates one batch invocation. Jobs skipped because their backoff
// has not elapsed appear in none of the counters.
type Report struct {
	Processed  int
	Successful int
	Failed     int
}

type Runner struct {
	jobs       JobStore
	locations  LocationStore
	resolver   AddressResolver
	batchSize  int
	staleAfter time.Duration
	now        func() time.Time
	log        zerolog.Logger
}

type Option func(*Runner)

// WithClock overrides the runner's time source in tests.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

func New(jobs JobStore, locations LocationStore, resolver AddressResolver,
	batchSize int, staleAfter time.Duration, log zerolog.Logger, opts ...Option) *Runner {
	r := &Runner{
		jobs:       jobs,
		locations:  locations,
		resolver:   resolver,
		batchSize:  batchSize,
		staleAfter: staleAfter,
		now:        time.Now,
		log:        log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one batch. Jobs are handled sequentially to keep provider
// load bounded and predictable; per-job failures are absorbed into job state
// and never abort the batch. Only failing to fetch the batch itself is an
// error.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	if recovered, err := r.jobs.RequeueStaleProcessing(ctx, r.staleAfter); err != nil {
		r.log.Error().Err(err).Msg("failed to recover stale processing jobs")
	} else if recovered > 0 {
		r.log.Info().Int64("count", recovered).Msg("requeued stale processing jobs")
	}

	jobs, err := r.jobs.ListQueued(ctx, r.batchSize)
	if err != nil {
		return Report{}, fmt.Errorf("fetch queued jobs: %w", err)
	}

	var report Report
	for i := range jobs {
		job := &jobs[i]

		if !backoff.IsEligible(job.Tries, job.CreatedAt, r.now()) {
			continue
		}

		acquired, err := r.jobs.MarkProcessing(ctx, job.ID)
		if err != nil {
			r.log.Error().Err(err).Uint("job_id", job.ID).Msg("failed to acquire job")
			continue
		}
		if !acquired {
			// Lost the race against a concurrent runner or a cancellation.
			continue
		}

		report.Processed++
		if r.processJob(ctx, job) {
			report.Successful++
		} else if job.Status == config.JobStatusFailed {
			report.Failed++
		}
	}

	r.log.Info().
		Int("processed", report.Processed).
		Int("successful", report.Successful).
		Int("failed", report.Failed).
		Msg("geocode batch finished")

	return report, nil
}

// processJob runs one acquired job to a terminal or requeued state and
// reports whether it succeeded. Panics are converted into a terminal failure
// so one poisoned job cannot take down the batch.
func (r *Runner) processJob(ctx context.Context, job *models.GeocodeJob) (succeeded bool) {
	defer func() {
		if rec := recover(); rec != nil {
			msg := fmt.Sprintf("panic: %v", rec)
			r.log.Error().Uint("job_id", job.ID).Str("cause", msg).Msg("job processing panicked")
			if err := r.jobs.MarkFailed(ctx, job.ID, job.Tries, msg); err != nil {
				r.log.Error().Err(err).Uint("job_id", job.ID).Msg("failed to record job failure")
			}
			job.Status = config.JobStatusFailed
			succeeded = false
		}
	}()

	result := r.resolver.Resolve(ctx, job.FullAddress)

	if result == nil {
		tries := job.Tries + 1
		job.Tries = tries

		if tries >= backoff.MaxTries {
			job.Status = config.JobStatusFailed
			if err := r.jobs.MarkFailed(ctx, job.ID, tries, config.ErrMaxRetries); err != nil {
				r.log.Error().Err(err).Uint("job_id", job.ID).Msg("failed to mark job failed")
			}
			return false
		}

		job.Status = config.JobStatusQueued
		if err := r.jobs.Requeue(ctx, job.ID, tries); err != nil {
			r.log.Error().Err(err).Uint("job_id", job.ID).Msg("failed to requeue job")
		}
		return false
	}

	if err := r.locations.ApplyGeocode(ctx, job.LocationID,
		result.Longitude, result.Latitude, result.PlaceName, result.BBox); err != nil {
		// Applying the result is not retried: the usual cause is a location
		// that no longer exists.
		job.Status = config.JobStatusFailed
		if ferr := r.jobs.MarkFailed(ctx, job.ID, job.Tries, err.Error()); ferr != nil {
			r.log.Error().Err(ferr).Uint("job_id", job.ID).Msg("failed to record apply failure")
		}
		return false
	}

	job.Status = config.JobStatusDone
	if err := r.jobs.MarkDone(ctx, job.ID); err != nil {
		r.log.Error().Err(err).Uint("job_id", job.ID).Msg("failed to mark job done")
	}
	return true
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ergomap/geocoder/internal/config"
	"github.com/ergomap/geocoder/internal/models"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new geocode job. Returns an error if the database
// operation fails.
func (r *JobRepository) Create(ctx context.Context, job *models.GeocodeJob) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// Get retrieves a single job by id.
func (r *JobRepository) Get(ctx context.Context, id uint) (*models.GeocodeJob, error) {
	var job models.GeocodeJob
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}

// ListQueued fetches up to limit queued jobs, oldest first. FIFO order keeps
// long-waiting addresses from being starved by fresh ones.
func (r *JobRepository) ListQueued(ctx context.Context, limit int) ([]models.GeocodeJob, error) {
	var jobs []models.GeocodeJob
	if err := r.db.WithContext(ctx).
		Where("status = ?", config.JobStatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list queued jobs: %w", err)
	}
	return jobs, nil
}

// ListByLocation returns every job ever created for a location, newest
// first. Terminal jobs are kept as an audit trail, so this includes them.
func (r *JobRepository) ListByLocation(ctx context.Context, locationID uint) ([]models.GeocodeJob, error) {
	var jobs []models.GeocodeJob
	if err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs by location: %w", err)
	}
	return jobs, nil
}

// MarkProcessing attempts the queued -> processing transition as a single
// conditional update. It reports false when the job was not in the queued
// state anymore, which is how concurrent runners and a racing cancellation
// are kept from double-handling a job.
func (r *JobRepository) MarkProcessing(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.GeocodeJob{}).
		Where("id = ? AND status = ?", id, config.JobStatusQueued).
		Update("status", config.JobStatusProcessing)
	if res.Error != nil {
		return false, fmt.Errorf("mark processing: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// MarkDone transitions a processing job to its terminal done state.
func (r *JobRepository) MarkDone(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Model(&models.GeocodeJob{}).
		Where("id = ? AND status = ?", id, config.JobStatusProcessing).
		Update("status", config.JobStatusDone).Error; err != nil {
		return fmt.Errorf("mark done: %w", err)
	}
	return nil
}

// MarkFailed records a terminal failure together with the final tries count
// and the error message.
func (r *JobRepository) MarkFailed(ctx context.Context, id uint, tries int, msg string) error {
	if err := r.db.WithContext(ctx).Model(&models.GeocodeJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": config.JobStatusFailed,
			"tries":  tries,
			"error":  msg,
		}).Error; err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	return nil
}

// Requeue puts a missed job back in the queue with its incremented tries
// count; eligibility for the next attempt is decided by the backoff table.
func (r *JobRepository) Requeue(ctx context.Context, id uint, tries int) error {
	if err := r.db.WithContext(ctx).Model(&models.GeocodeJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": config.JobStatusQueued,
			"tries":  tries,
		}).Error; err != nil {
		return fmt.Errorf("requeue job: %w", err)
	}
	return nil
}

// CancelQueuedByLocation cancels every still-queued job for a location. The
// status condition makes it safe against a runner picking the job up
// concurrently: whoever updates first wins, the other sees zero rows.
func (r *JobRepository) CancelQueuedByLocation(ctx context.Context, locationID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.GeocodeJob{}).
		Where("location_id = ? AND status = ?", locationID, config.JobStatusQueued).
		Update("status", config.JobStatusCancelled)
	if res.Error != nil {
		return 0, fmt.Errorf("cancel queued jobs: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// RequeueStaleProcessing returns to the queue any job stuck in processing
// longer than olderThan, which happens when a runner crashed between the
// coordinate write and the done transition.
func (r *JobRepository) RequeueStaleProcessing(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res := r.db.WithContext(ctx).Model(&models.GeocodeJob{}).
		Where("status = ? AND updated_at < ?", config.JobStatusProcessing, cutoff).
		Update("status", config.JobStatusQueued)
	if res.Error != nil {
		return 0, fmt.Errorf("requeue stale processing jobs: %w", res.Error)
	}
	return res.RowsAffected, nil
}

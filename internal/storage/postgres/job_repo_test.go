package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/ergomap/geocoder/internal/config"
	"github.com/ergomap/geocoder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueuedJob(t *testing.T, repo *JobRepository, locationID uint, fullAddress string) *models.GeocodeJob {
	t.Helper()
	job := &models.GeocodeJob{
		LocationID:  locationID,
		FullAddress: fullAddress,
		Status:      config.JobStatusQueued,
	}
	require.NoError(t, repo.Create(context.Background(), job))
	return job
}

func TestJobRepository_CreateAndGet(t *testing.T) {
	repo := NewJobRepository(SetupTestDB(t))

	job := newQueuedJob(t, repo, 7, "Rue Neuve 1, 1000 Bruxelles, BE")
	require.NotZero(t, job.ID)

	got, err := repo.Get(context.Background(), job.ID)
	require.NoError(t, err)

	assert.Equal(t, uint(7), got.LocationID)
	assert.Equal(t, "Rue Neuve 1, 1000 Bruxelles, BE", got.FullAddress)
	assert.Equal(t, config.JobStatusQueued, got.Status)
	assert.Equal(t, 0, got.Tries)
}

func TestJobRepository_ListQueued_FIFOAndLimit(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewJobRepository(db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		job := &models.GeocodeJob{
			LocationID:  uint(i + 1),
			FullAddress: "addr",
			Status:      config.JobStatusQueued,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(job).Error)
	}
	// A done job must never be fetched.
	require.NoError(t, db.Create(&models.GeocodeJob{
		LocationID: 99, FullAddress: "addr", Status: config.JobStatusDone,
		CreatedAt: base.Add(-time.Hour),
	}).Error)

	jobs, err := repo.ListQueued(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, jobs, 3)
	assert.Equal(t, uint(1), jobs[0].LocationID)
	assert.Equal(t, uint(2), jobs[1].LocationID)
	assert.Equal(t, uint(3), jobs[2].LocationID)
}

func TestJobRepository_MarkProcessing_CAS(t *testing.T) {
	repo := NewJobRepository(SetupTestDB(t))
	job := newQueuedJob(t, repo, 1, "addr")

	acquired, err := repo.MarkProcessing(context.Background(), job.ID)
	require.NoError(t, err)
	assert.True(t, acquired)

	// Second acquisition of the same job must lose.
	acquired, err = repo.MarkProcessing(context.Background(), job.ID)
	require.NoError(t, err)
	assert.False(t, acquired)

	got, err := repo.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, config.JobStatusProcessing, got.Status)
}

func TestJobRepository_MarkProcessing_CancelledJobNotAcquired(t *testing.T) {
	repo := NewJobRepository(SetupTestDB(t))
	job := newQueuedJob(t, repo, 1, "addr")

	n, err := repo.CancelQueuedByLocation(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	acquired, err := repo.MarkProcessing(context.Background(), job.ID)
	require.NoError(t, err)
	assert.False(t, acquired, "a cancelled job must not be picked up")
}

func TestJobRepository_CancelQueuedByLocation_LeavesOtherStates(t *testing.T) {
	repo := NewJobRepository(SetupTestDB(t))

	queued := newQueuedJob(t, repo, 5, "addr")
	processing := newQueuedJob(t, repo, 5, "addr")
	_, err := repo.MarkProcessing(context.Background(), processing.ID)
	require.NoError(t, err)

	n, err := repo.CancelQueuedByLocation(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, _ := repo.Get(context.Background(), queued.ID)
	assert.Equal(t, config.JobStatusCancelled, got.Status)

	got, _ = repo.Get(context.Background(), processing.ID)
	assert.Equal(t, config.JobStatusProcessing, got.Status,
		"an in-flight job runs to completion, cancellation only hits queued jobs")
}

func TestJobRepository_RequeueAndFail(t *testing.T) {
	repo := NewJobRepository(SetupTestDB(t))
	job := newQueuedJob(t, repo, 1, "addr")

	_, err := repo.MarkProcessing(context.Background(), job.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Requeue(context.Background(), job.ID, 1))
	got, _ := repo.Get(context.Background(), job.ID)
	assert.Equal(t, config.JobStatusQueued, got.Status)
	assert.Equal(t, 1, got.Tries)

	require.NoError(t, repo.MarkFailed(context.Background(), job.ID, 5, config.ErrMaxRetries))
	got, _ = repo.Get(context.Background(), job.ID)
	assert.Equal(t, config.JobStatusFailed, got.Status)
	assert.Equal(t, 5, got.Tries)
	assert.Equal(t, config.ErrMaxRetries, got.Error)
}

func TestJobRepository_MarkDone(t *testing.T) {
	repo := NewJobRepository(SetupTestDB(t))
	job := newQueuedJob(t, repo, 1, "addr")

	_, err := repo.MarkProcessing(context.Background(), job.ID)
	require.NoError(t, err)
	require.NoError(t, repo.MarkDone(context.Background(), job.ID))

	got, _ := repo.Get(context.Background(), job.ID)
	assert.Equal(t, config.JobStatusDone, got.Status)
}

func TestJobRepository_RequeueStaleProcessing(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewJobRepository(db)

	stale := newQueuedJob(t, repo, 1, "addr")
	_, err := repo.MarkProcessing(context.Background(), stale.ID)
	require.NoError(t, err)
	// Age the job past the stale window behind gorm's back.
	require.NoError(t, db.Model(&models.GeocodeJob{}).
		Where("id = ?", stale.ID).
		UpdateColumn("updated_at", time.Now().Add(-2*time.Hour)).Error)

	fresh := newQueuedJob(t, repo, 2, "addr")
	_, err = repo.MarkProcessing(context.Background(), fresh.ID)
	require.NoError(t, err)

	n, err := repo.RequeueStaleProcessing(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, _ := repo.Get(context.Background(), stale.ID)
	assert.Equal(t, config.JobStatusQueued, got.Status)

	got, _ = repo.Get(context.Background(), fresh.ID)
	assert.Equal(t, config.JobStatusProcessing, got.Status)
}

func TestJobRepository_ListByLocation(t *testing.T) {
	repo := NewJobRepository(SetupTestDB(t))

	newQueuedJob(t, repo, 3, "old addr")
	newQueuedJob(t, repo, 3, "new addr")
	newQueuedJob(t, repo, 4, "other")

	jobs, err := repo.ListByLocation(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

package mocks

import (
	"context"
	"time"

	"github.com/ergomap/geocoder/internal/models"
	"github.com/stretchr/testify/mock"
)

type JobRepoMock struct {
	mock.Mock
}

func (m *JobRepoMock) Create(ctx context.Context, job *models.GeocodeJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *JobRepoMock) Get(ctx context.Context, id uint) (*models.GeocodeJob, error) {
	args := m.Called(ctx, id)

	job, _ := args.Get(0).(*models.GeocodeJob)
	return job, args.Error(1)
}

func (m *JobRepoMock) ListQueued(ctx context.Context, limit int) ([]models.GeocodeJob, error) {
	args := m.Called(ctx, limit)

	jobs, _ := args.Get(0).([]models.GeocodeJob)
	return jobs, args.Error(1)
}

func (m *JobRepoMock) ListByLocation(ctx context.Context, locationID uint) ([]models.GeocodeJob, error) {
	args := m.Called(ctx, locationID)

	jobs, _ := args.Get(0).([]models.GeocodeJob)
	return jobs, args.Error(1)
}

func (m *JobRepoMock) MarkProcessing(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *JobRepoMock) MarkDone(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *JobRepoMock) MarkFailed(ctx context.Context, id uint, tries int, msg string) error {
	args := m.Called(ctx, id, tries, msg)
	return args.Error(0)
}

func (m *JobRepoMock) Requeue(ctx context.Context, id uint, tries int) error {
	args := m.Called(ctx, id, tries)
	return args.Error(0)
}

func (m *JobRepoMock) CancelQueuedByLocation(ctx context.Context, locationID uint) (int64, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *JobRepoMock) RequeueStaleProcessing(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

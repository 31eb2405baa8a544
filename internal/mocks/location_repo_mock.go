package mocks

import (
	"context"

	"github.com/ergomap/geocoder/internal/address"
	"github.com/ergomap/geocoder/internal/models"
	"github.com/stretchr/testify/mock"
)

type LocationRepoMock struct {
	mock.Mock
}

func (m *LocationRepoMock) Create(ctx context.Context, loc *models.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}

func (m *LocationRepoMock) Get(ctx context.Context, id uint) (*models.Location, error) {
	args := m.Called(ctx, id)

	loc, _ := args.Get(0).(*models.Location)
	return loc, args.Error(1)
}

func (m *LocationRepoMock) ApplyGeocode(ctx context.Context, id uint, lon, lat float64, placeName string, bbox []float64) error {
	args := m.Called(ctx, id, lon, lat, placeName, bbox)
	return args.Error(0)
}

func (m *LocationRepoMock) UpdateAddress(ctx context.Context, id uint, f address.Fields) error {
	args := m.Called(ctx, id, f)
	return args.Error(0)
}

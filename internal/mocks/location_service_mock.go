package mocks

import (
	"context"

	"github.com/ergomap/geocoder/internal/dto"
	"github.com/stretchr/testify/mock"
)

type LocationServiceMock struct {
	mock.Mock
}

func (m *LocationServiceMock) Create(ctx context.Context, req *dto.LocationCreateDTO) (*dto.LocationResponseDTO, error) {
	args := m.Called(ctx, req)

	resp, _ := args.Get(0).(*dto.LocationResponseDTO)
	return resp, args.Error(1)
}

func (m *LocationServiceMock) GetByID(ctx context.Context, id uint) (*dto.LocationResponseDTO, error) {
	args := m.Called(ctx, id)

	resp, _ := args.Get(0).(*dto.LocationResponseDTO)
	return resp, args.Error(1)
}

func (m *LocationServiceMock) UpdateAddress(ctx context.Context, id uint, req *dto.AddressUpdateDTO) (*dto.LocationResponseDTO, error) {
	args := m.Called(ctx, id, req)

	resp, _ := args.Get(0).(*dto.LocationResponseDTO)
	return resp, args.Error(1)
}

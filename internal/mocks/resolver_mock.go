package mocks

import (
	"context"

	"github.com/ergomap/geocoder/internal/geocoding"
	"github.com/stretchr/testify/mock"
)

type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) Resolve(ctx context.Context, address string) *geocoding.Result {
	args := m.Called(ctx, address)

	result, _ := args.Get(0).(*geocoding.Result)
	return result
}

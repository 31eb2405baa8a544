package location

import (
	"context"

	"github.com/ergomap/geocoder/internal/address"
	"github.com/ergomap/geocoder/internal/dto"
	"github.com/ergomap/geocoder/internal/models"
	"github.com/gin-gonic/gin"
)

// JobRepoInterface is the slice of the job store the location service needs:
// enqueueing fresh work and cancelling superseded work.
type JobRepoInterface interface {
	Create(ctx context.Context, job *models.GeocodeJob) error
	CancelQueuedByLocation(ctx context.Context, locationID uint) (int64, error)
}

// LocationRepoInterface defines the contract for location persistence.
type LocationRepoInterface interface {
	Create(ctx context.Context, loc *models.Location) error
	Get(ctx context.Context, id uint) (*models.Location, error)
	UpdateAddress(ctx context.Context, id uint, f address.Fields) error
}

// ServiceInterface defines the contract for location business logic.
type ServiceInterface interface {
	Create(ctx context.Context, req *dto.LocationCreateDTO) (*dto.LocationResponseDTO, error)
	GetByID(ctx context.Context, id uint) (*dto.LocationResponseDTO, error)
	UpdateAddress(ctx context.Context, id uint, req *dto.AddressUpdateDTO) (*dto.LocationResponseDTO, error)
}

// HandlerInterface defines the contract for the HTTP handlers.
type HandlerInterface interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	UpdateAddress(c *gin.Context)
}

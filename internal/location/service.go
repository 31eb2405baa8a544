package location

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ergomap/geocoder/common"
	"github.com/ergomap/geocoder/internal/address"
	"github.com/ergomap/geocoder/internal/config"
	"github.com/ergomap/geocoder/internal/dto"
	"github.com/ergomap/geocoder/internal/models"
	"github.com/ergomap/geocoder/internal/storage/postgres"
)

// Service owns the location side of the pipeline: creating records, queueing
// geocode work for the ones without coordinates, and invalidating jobs and
// coordinates when an address changes.
type Service struct {
	locations LocationRepoInterface
	jobs      JobRepoInterface
}

func NewService(locations LocationRepoInterface, jobs JobRepoInterface) *Service {
	return &Service{locations: locations, jobs: jobs}
}

var _ ServiceInterface = (*Service)(nil)

// Create persists a new location. When both coordinates are supplied the
// record is written as already geocoded and the async pipeline is bypassed;
// otherwise a queued job with a snapshot of the formatted address is created.
func (s *Service) Create(ctx context.Context, req *dto.LocationCreateDTO) (*dto.LocationResponseDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request canceled or timed out")
	}

	if (req.Longitude == nil) != (req.Latitude == nil) {
		return nil, common.Errf(http.StatusBadRequest,
			"longitude and latitude must be provided together")
	}

	loc := models.Location{
		Street:      req.Street,
		HouseNumber: req.HouseNumber,
		PostalCode:  req.PostalCode,
		City:        req.City,
		Country:     req.Country,
	}

	if req.Longitude != nil && req.Latitude != nil {
		loc.Longitude = req.Longitude
		loc.Latitude = req.Latitude
		loc.Geom = models.WKTPoint(*req.Longitude, *req.Latitude)
	}

	if err := s.locations.Create(ctx, &loc); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to create location")
	}

	if !loc.Geocoded() {
		job := models.GeocodeJob{
			LocationID:  loc.ID,
			FullAddress: address.Format(s.fields(&loc)),
			Status:      config.JobStatusQueued,
		}
		if err := s.jobs.Create(ctx, &job); err != nil {
			return nil, common.Errf(http.StatusInternalServerError, "failed to queue geocode job")
		}
	}

	return toResponse(&loc), nil
}

// GetByID retrieves a location by its id.
func (s *Service) GetByID(ctx context.Context, id uint) (*dto.LocationResponseDTO, error) {
	loc, err := s.locations.Get(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrLocationNotFound) {
			return nil, common.Errf(http.StatusNotFound, "location not found")
		}
		return nil, common.Errf(http.StatusInternalServerError, "failed to get location")
	}
	return toResponse(loc), nil
}

// UpdateAddress applies an address edit. Identical structured fields are a
// no-op. A real change cancels any queued job, clears the now-stale
// coordinates and queues a fresh job with the new address snapshot, so at
// most one live job exists per location.
func (s *Service) UpdateAddress(ctx context.Context, id uint, req *dto.AddressUpdateDTO) (*dto.LocationResponseDTO, error) {
	loc, err := s.locations.Get(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrLocationNotFound) {
			return nil, common.Errf(http.StatusNotFound, "location not found")
		}
		return nil, common.Errf(http.StatusInternalServerError, "failed to get location")
	}

	newFields := address.Fields{
		Street:      req.Street,
		HouseNumber: req.HouseNumber,
		PostalCode:  req.PostalCode,
		City:        req.City,
		Country:     req.Country,
	}

	if s.fields(loc).Equal(newFields) {
		return toResponse(loc), nil
	}

	if _, err := s.jobs.CancelQueuedByLocation(ctx, id); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to cancel queued jobs")
	}

	if err := s.locations.UpdateAddress(ctx, id, newFields); err != nil {
		if errors.Is(err, postgres.ErrLocationNotFound) {
			return nil, common.Errf(http.StatusNotFound, "location not found")
		}
		return nil, common.Errf(http.StatusInternalServerError, "failed to update address")
	}

	job := models.GeocodeJob{
		LocationID:  id,
		FullAddress: address.Format(newFields),
		Status:      config.JobStatusQueued,
	}
	if err := s.jobs.Create(ctx, &job); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to queue geocode job")
	}

	updated, err := s.locations.Get(ctx, id)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to reload location")
	}
	return toResponse(updated), nil
}

func (s *Service) fields(loc *models.Location) address.Fields {
	return address.Fields{
		Street:      loc.Street,
		HouseNumber: loc.HouseNumber,
		PostalCode:  loc.PostalCode,
		City:        loc.City,
		Country:     loc.Country,
	}
}

func toResponse(loc *models.Location) *dto.LocationResponseDTO {
	resp := &dto.LocationResponseDTO{
		ID:          loc.ID,
		Street:      loc.Street,
		HouseNumber: loc.HouseNumber,
		PostalCode:  loc.PostalCode,
		City:        loc.City,
		Country:     loc.Country,
		Longitude:   loc.Longitude,
		Latitude:    loc.Latitude,
		Geom:        loc.Geom,
		PlaceName:   loc.PlaceName,
		Geocoded:    loc.Geocoded(),
		CreatedAt:   loc.CreatedAt,
		UpdatedAt:   loc.UpdatedAt,
	}
	if len(loc.BoundingBox) > 0 {
		resp.BoundingBox = json.RawMessage(loc.BoundingBox)
	}
	return resp
}

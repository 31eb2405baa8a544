package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ergomap/geocoder/internal/address"
	"github.com/ergomap/geocoder/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrLocationNotFound is returned when an update or read targets a location
// that no longer exists.
var ErrLocationNotFound = errors.New("location not found")

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, loc *models.Location) error {
	if err := r.db.WithContext(ctx).Create(loc).Error; err != nil {
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

func (r *LocationRepository) Get(ctx context.Context, id uint) (*models.Location, error) {
	var loc models.Location
	if err := r.db.WithContext(ctx).First(&loc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &loc, nil
}

// ApplyGeocode writes a successful geocode result in a single update:
// coordinates, the derived WKT point and the optional place metadata always
// land together, never partially.
func (r *LocationRepository) ApplyGeocode(ctx context.Context, id uint, lon, lat float64, placeName string, bbox []float64) error {
	updates := map[string]any{
		"longitude":  lon,
		"latitude":   lat,
		"geom":       models.WKTPoint(lon, lat),
		"place_name": placeName,
	}

	if len(bbox) > 0 {
		raw, err := json.Marshal(bbox)
		if err != nil {
			return fmt.Errorf("marshal bounding box: %w", err)
		}
		updates["bounding_box"] = datatypes.JSON(raw)
	}

	res := r.db.WithContext(ctx).Model(&models.Location{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("apply geocode: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrLocationNotFound
	}
	return nil
}

// UpdateAddress replaces the structured address fields and clears the
// coordinates in the same update; stale coordinates must never survive an
// address change.
func (r *LocationRepository) UpdateAddress(ctx context.Context, id uint, f address.Fields) error {
	res := r.db.WithContext(ctx).Model(&models.Location{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"street":       f.Street,
			"house_number": f.HouseNumber,
			"postal_code":  f.PostalCode,
			"city":         f.City,
			"country":      f.Country,
			"longitude":    nil,
			"latitude":     nil,
			"geom":         "",
			"place_name":   "",
			"bounding_box": nil,
		})
	if res.Error != nil {
		return fmt.Errorf("update address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrLocationNotFound
	}
	return nil
}

package models

import (
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// Location is a practice address owned by the profile-management side of the
// directory. The geocoding pipeline only ever writes the coordinate fields.
// Longitude, Latitude and Geom are either all set (location is geocoded) or
// all empty (pending); they are never partially populated.
type Location struct {
	ID          uint           `gorm:"primaryKey"`
	Street      string         `gorm:"type:varchar(255);not null"`
	HouseNumber string         `gorm:"type:varchar(20);not null"`
	PostalCode  string         `gorm:"type:varchar(10);not null"`
	City        string         `gorm:"type:varchar(100);not null"`
	Country     string         `gorm:"type:varchar(2);not null"`
	Longitude   *float64
	Latitude    *float64
	Geom        string         `gorm:"type:text"`
	PlaceName   string         `gorm:"type:varchar(255)"`
	BoundingBox datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

// Geocoded reports whether the location has resolved coordinates.
func (l *Location) Geocoded() bool {
	return l.Longitude != nil && l.Latitude != nil && l.Geom != ""
}

// WKTPoint renders a lon/lat pair as the extended well-known-text form
// stored in the geom column, e.g. "SRID=4326;POINT(4.352 50.847)".
func WKTPoint(lon, lat float64) string {
	return "SRID=4326;POINT(" +
		strconv.FormatFloat(lon, 'f', -1, 64) + " " +
		strconv.FormatFloat(lat, 'f', -1, 64) + ")"
}

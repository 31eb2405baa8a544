package dto

import (
	"encoding/json"
	"time"
)

// LocationCreateDTO carries a new practice address. Coordinates are optional:
// when both are present (e.g. resolved client-side via a map pin) the
// location is stored as already geocoded and no job is queued.
type LocationCreateDTO struct {
	Street      string   `json:"street" validate:"required"`
	HouseNumber string   `json:"house_number" validate:"required"`
	PostalCode  string   `json:"postal_code" validate:"required"`
	City        string   `json:"city" validate:"required"`
	Country     string   `json:"country" validate:"required,len=2"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
}

// AddressUpdateDTO carries edited address fields for an existing location.
type AddressUpdateDTO struct {
	Street      string `json:"street" validate:"required"`
	HouseNumber string `json:"house_number" validate:"required"`
	PostalCode  string `json:"postal_code" validate:"required"`
	City        string `json:"city" validate:"required"`
	Country     string `json:"country" validate:"required,len=2"`
}

type LocationResponseDTO struct {
	ID          uint            `json:"id"`
	Street      string          `json:"street"`
	HouseNumber string          `json:"house_number"`
	PostalCode  string          `json:"postal_code"`
	City        string          `json:"city"`
	Country     string          `json:"country"`
	Longitude   *float64        `json:"longitude,omitempty"`
	Latitude    *float64        `json:"latitude,omitempty"`
	Geom        string          `json:"geom,omitempty"`
	PlaceName   string          `json:"place_name,omitempty"`
	BoundingBox json.RawMessage `json:"bounding_box,omitempty"`
	Geocoded    bool            `json:"geocoded"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

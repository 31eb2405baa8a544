package models

import (
	"time"

	"github.com/ergomap/geocoder/internal/config"
)

// GeocodeJob is one pending unit of address-to-coordinate resolution work.
// FullAddress is a snapshot taken when the job is created; an address edit
// cancels the job and enqueues a fresh one rather than mutating it.
type GeocodeJob struct {
	ID          uint             `gorm:"primaryKey"`
	LocationID  uint             `gorm:"index;not null"`
	FullAddress string           `gorm:"type:text;not null"`
	Tries       int              `gorm:"not null;default:0"`
	Status      config.JobStatus `gorm:"type:varchar(20);not null;default:'queued';index"`
	Error       string           `gorm:"type:text"`
	CreatedAt   time.Time        `gorm:"autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime"`
}

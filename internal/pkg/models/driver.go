package models

import (
	"time"

	"github.com/google/uuid"
)

// Driver is the availability projection of a driver as the dispatch core sees it.
// The full driver profile lives in the directory service; this record carries
// only what candidate lookup and the accept path need.
type Driver struct {
	ID           uuid.UUID    `json:"driver_id" db:"driver_id"`
	IsOnline     bool         `json:"is_online" db:"is_online"`
	IsAvailable  bool         `json:"is_available" db:"is_available"`
	VehicleClass VehicleClass `json:"vehicle_class" db:"vehicle_class"`
	Location     Location     `json:"location"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}

// NearbyDriver is a candidate returned by the driver pool locator
type NearbyDriver struct {
	ID         string   `json:"driver_id"`
	Location   Location `json:"location"`
	DistanceKm float64  `json:"distance_km"`
}

// DriverStatusRequest is the payload for a driver going online or offline
type DriverStatusRequest struct {
	DriverID string    `json:"driver_id"`
	IsOnline bool      `json:"is_online"`
	Location *Location `json:"location,omitempty"`
}

// DriverLocationRequest is the payload for a driver location update
type DriverLocationRequest struct {
	DriverID string   `json:"driver_id"`
	Location Location `json:"location"`
}

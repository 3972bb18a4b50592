package models

import "time"

// Location represents a geographical coordinate
type Location struct {
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// IsZero reports whether the location carries no coordinates.
// EcoPath has no service area at (0,0), so the zero value doubles
// as "coordinates missing" during request validation.
func (l Location) IsZero() bool {
	return l.Latitude == 0 && l.Longitude == 0
}

// Point represents a named trip endpoint: a street address plus its coordinates
type Point struct {
	Address     string   `json:"address"`
	Coordinates Location `json:"coordinates"`
	Landmark    string   `json:"landmark,omitempty"`
}

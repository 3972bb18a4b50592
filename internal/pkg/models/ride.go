package models

import (
	"time"

	"github.com/google/uuid"
)

// VehicleClass identifies the class of vehicle a ride is requested for
type VehicleClass string

const (
	VehicleClassCycle    VehicleClass = "cycle"
	VehicleClassElectric VehicleClass = "electric-vehicle"
)

// Valid reports whether the vehicle class is one of the known classes
func (v VehicleClass) Valid() bool {
	return v == VehicleClassCycle || v == VehicleClassElectric
}

// RideStatus represents the status of a ride request
type RideStatus string

const (
	RideStatusPending        RideStatus = "pending"
	RideStatusAccepted       RideStatus = "accepted"
	RideStatusDriverArriving RideStatus = "driver-arriving"
	RideStatusInProgress     RideStatus = "in-progress"
	RideStatusCompleted      RideStatus = "completed"
	RideStatusCancelled      RideStatus = "cancelled"
)

// Terminal reports whether the status permits no further transitions
func (s RideStatus) Terminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// Cancellable reports whether a ride in this status may still be cancelled.
// Once a ride is underway it must run to completion.
func (s RideStatus) Cancellable() bool {
	return s == RideStatusPending || s == RideStatusAccepted || s == RideStatusDriverArriving
}

// DiscountType distinguishes percentage discounts from fixed-amount ones
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// Discount describes a promo discount applied to a fare
type Discount struct {
	Type   DiscountType `json:"type"`
	Amount float64      `json:"amount"`
	Code   string       `json:"code,omitempty"`
}

// TimelineEntry records one status transition on a ride
type TimelineEntry struct {
	Status    RideStatus `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	Note      string     `json:"note,omitempty"`
}

// RaterRole identifies which party submitted a rating
type RaterRole string

const (
	RaterRolePassenger RaterRole = "passenger"
	RaterRoleDriver    RaterRole = "driver"
)

// Valid reports whether the rater role is known
func (r RaterRole) Valid() bool {
	return r == RaterRolePassenger || r == RaterRoleDriver
}

// Rating is one party's rating of the other for a completed ride
type Rating struct {
	Rating  int       `json:"rating"`
	Review  string    `json:"review,omitempty"`
	RatedAt time.Time `json:"rated_at"`
}

// RideRatings holds the per-role ratings for a ride. Each role may rate once.
type RideRatings struct {
	ByPassenger *Rating `json:"by_passenger,omitempty"`
	ByDriver    *Rating `json:"by_driver,omitempty"`
}

// Cancellation records who cancelled a ride, when and why
type Cancellation struct {
	CancelledBy uuid.UUID `json:"cancelled_by"`
	Reason      string    `json:"reason,omitempty"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// RideRequest represents one passenger trip from request through completion
type RideRequest struct {
	ID              uuid.UUID       `json:"ride_id" db:"ride_id"`
	PassengerID     uuid.UUID       `json:"passenger_id" db:"passenger_id"`
	DriverID        *uuid.UUID      `json:"driver_id,omitempty" db:"driver_id"`
	Pickup          Point           `json:"pickup"`
	Destination     Point           `json:"destination"`
	VehicleClass    VehicleClass    `json:"vehicle_class" db:"vehicle_class"`
	Status          RideStatus      `json:"status" db:"status"`
	EstimatedFare   float64         `json:"estimated_fare" db:"estimated_fare"`
	ActualFare      *float64        `json:"actual_fare,omitempty" db:"actual_fare"`
	DistanceKm      float64         `json:"distance_km" db:"distance_km"`
	DurationMinutes int             `json:"duration_minutes" db:"duration_minutes"`
	SurgeMultiplier float64         `json:"surge_multiplier" db:"surge_multiplier"`
	Discount        *Discount       `json:"discount,omitempty"`
	Timeline        []TimelineEntry `json:"timeline"`
	Ratings         RideRatings     `json:"ratings"`
	Cancellation    *Cancellation   `json:"cancellation,omitempty"`
	StartTime       *time.Time      `json:"start_time,omitempty" db:"start_time"`
	EndTime         *time.Time      `json:"end_time,omitempty" db:"end_time"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// AssignedTo reports whether the given driver holds the ride assignment
func (r *RideRequest) AssignedTo(driverID uuid.UUID) bool {
	return r.DriverID != nil && *r.DriverID == driverID
}

// RideCreateRequest is the payload for requesting a new ride
type RideCreateRequest struct {
	PassengerID     string       `json:"passenger_id"`
	Pickup          Point        `json:"pickup"`
	Destination     Point        `json:"destination"`
	VehicleClass    VehicleClass `json:"vehicle_class"`
	SurgeMultiplier float64      `json:"surge_multiplier,omitempty"`
	Discount        *Discount    `json:"discount,omitempty"`
}

// RideCompleteRequest is the payload for completing a ride
type RideCompleteRequest struct {
	RideID          string   `json:"ride_id"`
	DriverID        string   `json:"driver_id"`
	ActualFare      *float64 `json:"actual_fare,omitempty"`
	DistanceKm      float64  `json:"distance_km"`
	DurationMinutes int      `json:"duration_minutes"`
}

// RideCancelRequest is the payload for cancelling a ride
type RideCancelRequest struct {
	RideID  string `json:"ride_id"`
	ActorID string `json:"actor_id"`
	Reason  string `json:"reason,omitempty"`
}

// RideRatingRequest is the payload for rating a completed ride
type RideRatingRequest struct {
	RideID string    `json:"ride_id"`
	Role   RaterRole `json:"role"`
	Rating int       `json:"rating"`
	Review string    `json:"review,omitempty"`
}

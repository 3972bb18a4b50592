package models

// RideEventType identifies a ride lifecycle event on the dispatch bus
type RideEventType string

const (
	RideEventOffered   RideEventType = "ride-request-offered"
	RideEventNoDrivers RideEventType = "no-drivers-available"
	RideEventAccepted  RideEventType = "ride-accepted"
	RideEventArriving  RideEventType = "driver-arriving"
	RideEventStarted   RideEventType = "ride-started"
	RideEventCompleted RideEventType = "ride-completed"
	RideEventCancelled RideEventType = "ride-cancelled"
)

// RideEvent is the envelope for every ride lifecycle event. All events for a
// ride travel on a single subject so each recipient observes them in the order
// the lifecycle emitted them.
type RideEvent struct {
	Type          RideEventType `json:"type"`
	RequestID     string        `json:"request_id"`
	PassengerID   string        `json:"passenger_id"`
	DriverID      string        `json:"driver_id,omitempty"`
	CandidateIDs  []string      `json:"candidate_ids,omitempty"`
	Pickup        *Point        `json:"pickup,omitempty"`
	Destination   *Point        `json:"destination,omitempty"`
	VehicleClass  VehicleClass  `json:"vehicle_class,omitempty"`
	EstimatedFare float64       `json:"estimated_fare,omitempty"`
	ActualFare    float64       `json:"actual_fare,omitempty"`
	ETAMinutes    int           `json:"eta_minutes,omitempty"`
	Reason        string        `json:"reason,omitempty"`
}

// SettlementEvent is the settlement intent emitted when a ride completes.
// Wallet balances are owned by the billing service; this core only signals
// what should be debited and paid out.
type SettlementEvent struct {
	RequestID    string  `json:"request_id"`
	PassengerID  string  `json:"passenger_id"`
	DriverID     string  `json:"driver_id"`
	Amount       float64 `json:"amount"`
	DriverPayout float64 `json:"driver_payout"`
}

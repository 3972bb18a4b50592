package constants

// WebSocket event types pushed to clients
const (
	EventError = "error"

	// Driver-facing events
	EventNewRideRequest = "new-ride-request"
	EventRideTaken      = "ride-taken"

	// Passenger-facing events
	EventRideAccepted   = "ride-accepted"
	EventDriverArriving = "driver-arriving"
	EventRideStarted    = "ride-started"
	EventRideCompleted  = "ride-completed"
	EventRideCancelled  = "ride-cancelled"
	EventNoDrivers      = "no-drivers-available"
)

// WebSocket event types received from clients
const (
	EventRideRequest  = "ride-request"
	EventAcceptRide   = "accept-ride"
	EventArriveRide   = "arrive-ride"
	EventStartRide    = "start-ride"
	EventCompleteRide = "complete-ride"
	EventCancelRide   = "cancel-ride"
	EventBeaconUpdate = "beacon-update"
)

// WebSocket error codes
const (
	ErrorInvalidFormat    = "invalid_format"
	ErrorValidationFailed = "validation_failed"
	ErrorUnauthorized     = "unauthorized"
	ErrorInternalError    = "internal_error"
	ErrorRideUnavailable  = "ride_unavailable"
)

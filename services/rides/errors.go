package rides

import "errors"

// Business error taxonomy for the ride lifecycle. Handlers map these onto
// HTTP statuses; everything else that bubbles out of the usecase is an
// infrastructure fault.
var (
	// ErrValidation marks malformed or out-of-range input
	ErrValidation = errors.New("validation failed")

	// ErrRideNotFound marks a ride ID that does not exist
	ErrRideNotFound = errors.New("ride not found")

	// ErrRideUnavailable marks an accept attempt on a ride that is no longer
	// pending, typically because another driver won the race
	ErrRideUnavailable = errors.New("ride no longer available")

	// ErrDriverNotAvailable marks an accept attempt by a driver who is
	// offline or already assigned
	ErrDriverNotAvailable = errors.New("driver not available")

	// ErrForbidden marks an operation by an actor who is neither the ride's
	// passenger nor its assigned driver
	ErrForbidden = errors.New("actor not authorized for this ride")

	// ErrInvalidTransition marks a lifecycle operation against a ride whose
	// current status does not permit it
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyRated marks a second rating attempt by the same role
	ErrAlreadyRated = errors.New("ride already rated by this role")
)

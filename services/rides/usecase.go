package rides

import (
	"context"

	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/google/uuid"
)

// RideUC defines the interface for the ride lifecycle
type RideUC interface {
	// RequestRide validates and persists a new ride request, then dispatches
	// it to nearby drivers
	RequestRide(ctx context.Context, req models.RideCreateRequest) (*models.RideRequest, error)

	// AcceptRide resolves the accept race: at most one driver wins a pending
	// ride, and the winner must still be available
	AcceptRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.RideRequest, error)

	// ArriveRide marks the assigned driver as arriving at the pickup point
	ArriveRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.RideRequest, error)

	// StartRide begins the trip once the driver has picked up the passenger
	StartRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.RideRequest, error)

	// CompleteRide ends the trip, settles the fare and frees the driver
	CompleteRide(ctx context.Context, req models.RideCompleteRequest) (*models.RideRequest, error)

	// CancelRide cancels a not-yet-started ride on behalf of its passenger
	// or assigned driver
	CancelRide(ctx context.Context, req models.RideCancelRequest) (*models.RideRequest, error)

	// RateRide records one party's rating of the other for a completed ride
	RateRide(ctx context.Context, raterID uuid.UUID, req models.RideRatingRequest) (*models.RideRequest, error)

	GetRide(ctx context.Context, rideID uuid.UUID) (*models.RideRequest, error)
	ListRides(ctx context.Context, actorID uuid.UUID, limit int) ([]*models.RideRequest, error)
}

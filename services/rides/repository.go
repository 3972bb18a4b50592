package rides

import (
	"context"

	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/google/uuid"
)

// RideRepo defines the interface for ride persistence. Every status change is
// a conditional update keyed on the expected current status; implementations
// must never read-modify-write.
type RideRepo interface {
	CreateRide(ctx context.Context, ride *models.RideRequest) error
	GetRide(ctx context.Context, rideID uuid.UUID) (*models.RideRequest, error)
	ListRidesByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]*models.RideRequest, error)

	// AcceptRide transitions pending -> accepted and assigns the driver in
	// one conditional update. Returns false when the ride was not pending.
	AcceptRide(ctx context.Context, rideID, driverID uuid.UUID, note string) (bool, error)

	// UpdateStatus transitions from -> to for the given ride, appending a
	// timeline entry. Returns false when the ride was not in the from status.
	UpdateStatus(ctx context.Context, rideID uuid.UUID, from, to models.RideStatus, note string) (bool, error)

	// CompleteRide transitions in-progress -> completed, recording the final
	// fare and trip measurements. Returns false when the ride was not
	// in progress.
	CompleteRide(ctx context.Context, rideID uuid.UUID, actualFare float64, distanceKm float64, durationMinutes int) (bool, error)

	// CancelRide transitions any cancellable status -> cancelled and clears
	// the driver assignment. Returns the driver who held the assignment, if
	// any, so the caller can release them; ok is false when the ride was not
	// cancellable.
	CancelRide(ctx context.Context, rideID uuid.UUID, cancellation models.Cancellation) (prevDriver *uuid.UUID, ok bool, err error)

	// SaveRating stores one role's rating if that role has not rated yet.
	// Returns false when the role already rated.
	SaveRating(ctx context.Context, rideID uuid.UUID, role models.RaterRole, rating models.Rating) (bool, error)

	// StoreCandidates records the drivers a pending ride was offered to
	StoreCandidates(ctx context.Context, rideID uuid.UUID, driverIDs []string) error

	// GetCandidates returns the drivers a ride was offered to
	GetCandidates(ctx context.Context, rideID uuid.UUID) ([]string, error)

	// ClearCandidates drops the offer set once the ride leaves pending
	ClearCandidates(ctx context.Context, rideID uuid.UUID) error
}

package drivers

import (
	"context"

	"github.com/ecopath/dispatch/internal/pkg/models"
)

// DriverRepo defines the interface for driver availability data access
type DriverRepo interface {
	GetDriver(ctx context.Context, driverID string) (*models.Driver, error)
	SetOnline(ctx context.Context, driverID string, online bool, location *models.Location) (*models.Driver, error)
	UpdateLocation(ctx context.Context, driverID string, location *models.Location) error

	// FindNearbyAvailable returns online, available drivers of the given
	// class within radiusKm of the location, nearest first.
	FindNearbyAvailable(ctx context.Context, location *models.Location, class models.VehicleClass, radiusKm float64) ([]*models.NearbyDriver, error)

	// ReserveDriver atomically flips an online, available driver to
	// unavailable. Returns false when the driver went offline or was already
	// reserved, without touching any state.
	ReserveDriver(ctx context.Context, driverID string) (bool, error)

	// ReleaseDriver returns a driver to the available pool if they are still
	// online
	ReleaseDriver(ctx context.Context, driverID string) error
}

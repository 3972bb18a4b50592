package drivers

import (
	"context"

	"github.com/ecopath/dispatch/internal/pkg/models"
)

// DriverUC defines the interface for driver pool business logic
type DriverUC interface {
	SetStatus(ctx context.Context, req models.DriverStatusRequest) (*models.Driver, error)
	UpdateLocation(ctx context.Context, req models.DriverLocationRequest) error
	GetDriver(ctx context.Context, driverID string) (*models.Driver, error)

	// FindCandidates returns at most max candidate drivers for a pickup,
	// nearest first with ties broken by driver ID. An empty result is not an
	// error: it means no driver matched.
	FindCandidates(ctx context.Context, pickup models.Location, class models.VehicleClass, max int) ([]*models.NearbyDriver, error)

	Reserve(ctx context.Context, driverID string) (bool, error)
	Release(ctx context.Context, driverID string) error
}

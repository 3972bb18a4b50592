package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/ecopath/dispatch/internal/pkg/logger"
	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/ecopath/dispatch/services/drivers"
)

// DriverUC implements the driver pool business logic
type DriverUC struct {
	cfg        *models.Config
	driverRepo drivers.DriverRepo
	driverGW   drivers.DriverGW
}

// NewDriverUC creates a new driver usecase
func NewDriverUC(
	cfg *models.Config,
	driverRepo drivers.DriverRepo,
	driverGW drivers.DriverGW,
) *DriverUC {
	return &DriverUC{
		cfg:        cfg,
		driverRepo: driverRepo,
		driverGW:   driverGW,
	}
}

// SetStatus flips a driver online or offline and publishes the pool change
func (uc *DriverUC) SetStatus(ctx context.Context, req models.DriverStatusRequest) (*models.Driver, error) {
	if req.DriverID == "" {
		return nil, fmt.Errorf("driver ID is required")
	}

	driver, err := uc.driverRepo.SetOnline(ctx, req.DriverID, req.IsOnline, req.Location)
	if err != nil {
		return nil, err
	}

	if err := uc.driverGW.PublishDriverStatus(ctx, req.DriverID, driver.IsOnline, driver.IsAvailable); err != nil {
		logger.Warn("Failed to publish driver status change",
			logger.String("driver_id", req.DriverID),
			logger.ErrorField(err))
	}

	return driver, nil
}

// UpdateLocation records a driver's current position
func (uc *DriverUC) UpdateLocation(ctx context.Context, req models.DriverLocationRequest) error {
	if req.DriverID == "" {
		return fmt.Errorf("driver ID is required")
	}
	if req.Location.IsZero() {
		return fmt.Errorf("location is required")
	}

	return uc.driverRepo.UpdateLocation(ctx, req.DriverID, &req.Location)
}

// GetDriver retrieves a driver availability record
func (uc *DriverUC) GetDriver(ctx context.Context, driverID string) (*models.Driver, error) {
	return uc.driverRepo.GetDriver(ctx, driverID)
}

// FindCandidates returns at most max candidates near the pickup, nearest
// first. Equal distances are ordered by driver ID so repeated lookups over the
// same pool produce the same candidate list.
func (uc *DriverUC) FindCandidates(ctx context.Context, pickup models.Location, class models.VehicleClass, max int) ([]*models.NearbyDriver, error) {
	candidates, err := uc.driverRepo.FindNearbyAvailable(ctx, &pickup, class, uc.cfg.Dispatch.SearchRadiusKm)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].DistanceKm != candidates[j].DistanceKm {
			return candidates[i].DistanceKm < candidates[j].DistanceKm
		}
		return candidates[i].ID < candidates[j].ID
	})

	if max > 0 && len(candidates) > max {
		candidates = candidates[:max]
	}

	return candidates, nil
}

// Reserve atomically claims a driver for a ride
func (uc *DriverUC) Reserve(ctx context.Context, driverID string) (bool, error) {
	reserved, err := uc.driverRepo.ReserveDriver(ctx, driverID)
	if err != nil {
		return false, err
	}

	if reserved {
		if err := uc.driverGW.PublishDriverStatus(ctx, driverID, true, false); err != nil {
			logger.Warn("Failed to publish driver reservation",
				logger.String("driver_id", driverID),
				logger.ErrorField(err))
		}
	}

	return reserved, nil
}

// Release returns a driver to the available pool
func (uc *DriverUC) Release(ctx context.Context, driverID string) error {
	if err := uc.driverRepo.ReleaseDriver(ctx, driverID); err != nil {
		return err
	}

	if err := uc.driverGW.PublishDriverStatus(ctx, driverID, true, true); err != nil {
		logger.Warn("Failed to publish driver release",
			logger.String("driver_id", driverID),
			logger.ErrorField(err))
	}

	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/ecopath/dispatch/internal/pkg/constants"
	"github.com/ecopath/dispatch/internal/pkg/database"
	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// DriverRepo implements the driver repository interface. Authoritative
// availability lives in Postgres so the accept path can compare-and-set it;
// Redis carries a per-class geo index of the available pool for candidate
// lookup.
type DriverRepo struct {
	cfg         *models.Config
	db          *sqlx.DB
	redisClient *database.RedisClient
}

// NewDriverRepository creates a new driver repository
func NewDriverRepository(
	cfg *models.Config,
	db *sqlx.DB,
	redisClient *database.RedisClient,
) *DriverRepo {
	return &DriverRepo{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
	}
}

// GetDriver retrieves a driver availability record by ID
func (r *DriverRepo) GetDriver(ctx context.Context, driverID string) (*models.Driver, error) {
	query := `
		SELECT driver_id, is_online, is_available, vehicle_class,
		       latitude, longitude, updated_at
		FROM drivers
		WHERE driver_id = $1
	`

	var driver models.Driver
	err := r.db.QueryRowContext(ctx, query, driverID).Scan(
		&driver.ID, &driver.IsOnline, &driver.IsAvailable, &driver.VehicleClass,
		&driver.Location.Latitude, &driver.Location.Longitude, &driver.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	return &driver, nil
}

// SetOnline flips a driver's online flag. Going online makes the driver
// available and indexes them for candidate lookup, unless they hold an
// active ride assignment; going offline removes them from the pool.
func (r *DriverRepo) SetOnline(ctx context.Context, driverID string, online bool, location *models.Location) (*models.Driver, error) {
	query := `
		UPDATE drivers
		SET is_online = $2,
		    is_available = $2 AND NOT EXISTS (
		        SELECT 1 FROM rides
		        WHERE rides.driver_id = drivers.driver_id
		          AND rides.status IN ('accepted', 'driver-arriving', 'in-progress')
		    ),
		    latitude = COALESCE($3, latitude),
		    longitude = COALESCE($4, longitude),
		    updated_at = $5
		WHERE driver_id = $1
		RETURNING driver_id, is_online, is_available, vehicle_class, latitude, longitude, updated_at
	`

	var lat, lng interface{}
	if location != nil {
		lat, lng = location.Latitude, location.Longitude
	}

	var driver models.Driver
	err := r.db.QueryRowContext(ctx, query, driverID, online, lat, lng, time.Now()).Scan(
		&driver.ID, &driver.IsOnline, &driver.IsAvailable, &driver.VehicleClass,
		&driver.Location.Latitude, &driver.Location.Longitude, &driver.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update driver status: %w", err)
	}

	switch {
	case driver.IsOnline && driver.IsAvailable:
		if err := r.addToPool(ctx, &driver); err != nil {
			return nil, err
		}
	case !driver.IsOnline:
		if err := r.removeFromPool(ctx, &driver); err != nil {
			return nil, err
		}
	default:
		// Online mid-assignment: the reservation already removed the driver
		// from the dispatch pool, and ReleaseDriver re-adds them.
	}

	return &driver, nil
}

// UpdateLocation records a driver's current position and refreshes the geo
// index when they are in the available pool
func (r *DriverRepo) UpdateLocation(ctx context.Context, driverID string, location *models.Location) error {
	query := `
		UPDATE drivers
		SET latitude = $2, longitude = $3, updated_at = $4
		WHERE driver_id = $1
		RETURNING is_online, is_available, vehicle_class
	`

	var isOnline, isAvailable bool
	var class models.VehicleClass
	err := r.db.QueryRowContext(ctx, query, driverID, location.Latitude, location.Longitude, time.Now()).
		Scan(&isOnline, &isAvailable, &class)
	if err != nil {
		return fmt.Errorf("failed to update driver location: %w", err)
	}

	locationKey := fmt.Sprintf(constants.KeyDriverLocation, driverID)
	locationData := map[string]interface{}{
		constants.FieldLatitude:  location.Latitude,
		constants.FieldLongitude: location.Longitude,
		constants.FieldTimestamp: time.Now().Unix(),
	}
	if err := r.redisClient.HMSet(ctx, locationKey, locationData); err != nil {
		return fmt.Errorf("failed to store driver location: %w", err)
	}

	if isOnline && isAvailable {
		geoKey := fmt.Sprintf(constants.KeyDriverGeo, class)
		if err := r.redisClient.GeoAdd(ctx, geoKey, location.Longitude, location.Latitude, driverID); err != nil {
			return fmt.Errorf("failed to refresh geo index: %w", err)
		}
	}

	return nil
}

// FindNearbyAvailable finds available drivers of the class within the radius
func (r *DriverRepo) FindNearbyAvailable(ctx context.Context, location *models.Location, class models.VehicleClass, radiusKm float64) ([]*models.NearbyDriver, error) {
	geoKey := fmt.Sprintf(constants.KeyDriverGeo, class)
	results, err := r.redisClient.GeoRadius(
		ctx,
		geoKey,
		location.Longitude,
		location.Latitude,
		radiusKm,
		"km",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby drivers: %w", err)
	}

	nearby := make([]*models.NearbyDriver, 0, len(results))
	for _, result := range results {
		// The geo index can lag behind an availability flip, so membership
		// in the available set is re-checked before offering.
		isMember, err := r.redisClient.SIsMember(ctx, constants.KeyAvailableDrivers, result.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check driver availability: %w", err)
		}
		if !isMember {
			continue
		}

		nearby = append(nearby, &models.NearbyDriver{
			ID: result.Name,
			Location: models.Location{
				Latitude:  result.Latitude,
				Longitude: result.Longitude,
				Timestamp: time.Now(),
			},
			DistanceKm: result.Dist,
		})
	}

	return nearby, nil
}

// ReserveDriver atomically claims an online, available driver for a ride.
// The conditional UPDATE is the arbiter: of two concurrent reservations only
// one sees is_available = TRUE.
func (r *DriverRepo) ReserveDriver(ctx context.Context, driverID string) (bool, error) {
	query := `
		UPDATE drivers
		SET is_available = FALSE, updated_at = $2
		WHERE driver_id = $1 AND is_online AND is_available
		RETURNING vehicle_class
	`

	var class models.VehicleClass
	err := r.db.QueryRowContext(ctx, query, driverID, time.Now()).Scan(&class)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to reserve driver: %w", err)
	}

	if err := r.removeFromGeoIndex(ctx, driverID, class); err != nil {
		return false, err
	}

	return true, nil
}

// ReleaseDriver returns a driver to the available pool. Drivers who went
// offline while assigned stay out of the pool.
func (r *DriverRepo) ReleaseDriver(ctx context.Context, driverID string) error {
	query := `
		UPDATE drivers
		SET is_available = TRUE, updated_at = $2
		WHERE driver_id = $1 AND is_online
		RETURNING vehicle_class, latitude, longitude
	`

	var class models.VehicleClass
	var lat, lng float64
	err := r.db.QueryRowContext(ctx, query, driverID, time.Now()).Scan(&class, &lat, &lng)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to release driver: %w", err)
	}

	driver := &models.Driver{
		VehicleClass: class,
		Location:     models.Location{Latitude: lat, Longitude: lng},
	}
	driver.ID, err = parseDriverID(driverID)
	if err != nil {
		return err
	}

	return r.addToPool(ctx, driver)
}

// addToPool indexes a driver as available for dispatch
func (r *DriverRepo) addToPool(ctx context.Context, driver *models.Driver) error {
	driverID := driver.ID.String()
	geoKey := fmt.Sprintf(constants.KeyDriverGeo, driver.VehicleClass)

	if err := r.redisClient.GeoAdd(ctx, geoKey, driver.Location.Longitude, driver.Location.Latitude, driverID); err != nil {
		return fmt.Errorf("failed to add to geo index: %w", err)
	}

	if err := r.redisClient.SAdd(ctx, constants.KeyAvailableDrivers, driverID); err != nil {
		return fmt.Errorf("failed to add to available set: %w", err)
	}

	locationKey := fmt.Sprintf(constants.KeyDriverLocation, driverID)
	locationData := map[string]interface{}{
		constants.FieldLatitude:  driver.Location.Latitude,
		constants.FieldLongitude: driver.Location.Longitude,
		constants.FieldTimestamp: time.Now().Unix(),
	}
	if err := r.redisClient.HMSet(ctx, locationKey, locationData); err != nil {
		return fmt.Errorf("failed to store location: %w", err)
	}

	return nil
}

// removeFromPool removes a driver from the dispatch pool entirely
func (r *DriverRepo) removeFromPool(ctx context.Context, driver *models.Driver) error {
	driverID := driver.ID.String()
	if err := r.removeFromGeoIndex(ctx, driverID, driver.VehicleClass); err != nil {
		return err
	}

	locationKey := fmt.Sprintf(constants.KeyDriverLocation, driverID)
	if err := r.redisClient.Delete(ctx, locationKey); err != nil {
		return fmt.Errorf("failed to remove location data: %w", err)
	}

	return nil
}

// removeFromGeoIndex drops a driver from the candidate lookup structures
func (r *DriverRepo) removeFromGeoIndex(ctx context.Context, driverID string, class models.VehicleClass) error {
	geoKey := fmt.Sprintf(constants.KeyDriverGeo, class)
	if err := r.redisClient.ZRem(ctx, geoKey, driverID); err != nil {
		return fmt.Errorf("failed to remove from geo index: %w", err)
	}

	if err := r.redisClient.SRem(ctx, constants.KeyAvailableDrivers, driverID); err != nil {
		return fmt.Errorf("failed to remove from available set: %w", err)
	}

	return nil
}

// GetDriverLocation retrieves a driver's last known location from Redis,
// falling back to the database row
func (r *DriverRepo) GetDriverLocation(ctx context.Context, driverID string) (models.Location, error) {
	locationKey := fmt.Sprintf(constants.KeyDriverLocation, driverID)
	fields, err := r.redisClient.HGetAll(ctx, locationKey)
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to get location from Redis: %w", err)
	}

	if len(fields) > 0 {
		var lat, lng float64
		var timestamp int64

		if latStr, ok := fields[constants.FieldLatitude]; ok {
			lat, _ = strconv.ParseFloat(latStr, 64)
		}
		if lngStr, ok := fields[constants.FieldLongitude]; ok {
			lng, _ = strconv.ParseFloat(lngStr, 64)
		}
		if tsStr, ok := fields[constants.FieldTimestamp]; ok {
			timestamp, _ = strconv.ParseInt(tsStr, 10, 64)
		}

		return models.Location{
			Latitude:  lat,
			Longitude: lng,
			Timestamp: time.Unix(timestamp, 0),
		}, nil
	}

	driver, err := r.GetDriver(ctx, driverID)
	if err != nil {
		return models.Location{}, err
	}

	return driver.Location, nil
}

func parseDriverID(driverID string) (id uuid.UUID, err error) {
	id, err = uuid.Parse(driverID)
	if err != nil {
		err = fmt.Errorf("invalid driver ID format: %w", err)
	}
	return id, err
}

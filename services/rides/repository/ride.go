package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecopath/dispatch/internal/pkg/constants"
	"github.com/ecopath/dispatch/internal/pkg/database"
	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/ecopath/dispatch/services/rides"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// candidateSetTTL bounds how long an unanswered offer set lingers in Redis
const candidateSetTTL = 30 * time.Minute

// RideRepo implements ride persistence on Postgres. Every status transition
// is a single conditional UPDATE whose WHERE clause names the expected
// current status; the affected row count is the race verdict. Candidate
// offer sets live in Redis since they die with the pending phase.
type RideRepo struct {
	cfg         *models.Config
	db          *sqlx.DB
	redisClient *database.RedisClient
}

// NewRideRepository creates a new ride repository
func NewRideRepository(
	cfg *models.Config,
	db *sqlx.DB,
	redisClient *database.RedisClient,
) *RideRepo {
	return &RideRepo{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
	}
}

// rideRow is the database shape of a ride, with document fields as raw JSON
type rideRow struct {
	ID              uuid.UUID       `db:"ride_id"`
	PassengerID     uuid.UUID       `db:"passenger_id"`
	DriverID        uuid.NullUUID   `db:"driver_id"`
	Pickup          json.RawMessage `db:"pickup"`
	Destination     json.RawMessage `db:"destination"`
	VehicleClass    string          `db:"vehicle_class"`
	Status          string          `db:"status"`
	EstimatedFare   float64         `db:"estimated_fare"`
	ActualFare      sql.NullFloat64 `db:"actual_fare"`
	DistanceKm      float64         `db:"distance_km"`
	DurationMinutes int             `db:"duration_minutes"`
	SurgeMultiplier float64         `db:"surge_multiplier"`
	Discount        json.RawMessage `db:"discount"`
	Timeline        json.RawMessage `db:"timeline"`
	Ratings         json.RawMessage `db:"ratings"`
	Cancellation    json.RawMessage `db:"cancellation"`
	StartTime       sql.NullTime    `db:"start_time"`
	EndTime         sql.NullTime    `db:"end_time"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

const rideColumns = `ride_id, passenger_id, driver_id, pickup, destination,
	vehicle_class, status, estimated_fare, actual_fare, distance_km,
	duration_minutes, surge_multiplier, discount, timeline, ratings,
	cancellation, start_time, end_time, created_at, updated_at`

// CreateRide persists a new pending ride
func (r *RideRepo) CreateRide(ctx context.Context, ride *models.RideRequest) error {
	pickup, err := json.Marshal(ride.Pickup)
	if err != nil {
		return fmt.Errorf("failed to marshal pickup: %w", err)
	}
	destination, err := json.Marshal(ride.Destination)
	if err != nil {
		return fmt.Errorf("failed to marshal destination: %w", err)
	}
	timeline, err := json.Marshal(ride.Timeline)
	if err != nil {
		return fmt.Errorf("failed to marshal timeline: %w", err)
	}
	var discount []byte
	if ride.Discount != nil {
		if discount, err = json.Marshal(ride.Discount); err != nil {
			return fmt.Errorf("failed to marshal discount: %w", err)
		}
	}

	query := `
		INSERT INTO rides (
			ride_id, passenger_id, pickup, destination, vehicle_class, status,
			estimated_fare, distance_km, duration_minutes, surge_multiplier,
			discount, timeline, ratings, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, '{}', $13, $14)
	`
	_, err = r.db.ExecContext(ctx, query,
		ride.ID, ride.PassengerID, pickup, destination, ride.VehicleClass,
		ride.Status, ride.EstimatedFare, ride.DistanceKm, ride.DurationMinutes,
		ride.SurgeMultiplier, nullableJSON(discount), timeline,
		ride.CreatedAt, ride.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}
	return nil
}

// GetRide retrieves a ride by ID
func (r *RideRepo) GetRide(ctx context.Context, rideID uuid.UUID) (*models.RideRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM rides WHERE ride_id = $1`, rideColumns)

	var row rideRow
	if err := r.db.GetContext(ctx, &row, query, rideID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("ride %s: %w", rideID, rides.ErrRideNotFound)
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	return row.toModel()
}

// ListRidesByActor returns rides where the actor is passenger or driver,
// newest first
func (r *RideRepo) ListRidesByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]*models.RideRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`
		SELECT %s FROM rides
		WHERE passenger_id = $1 OR driver_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, rideColumns)

	var rows []rideRow
	if err := r.db.SelectContext(ctx, &rows, query, actorID, limit); err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}

	result := make([]*models.RideRequest, 0, len(rows))
	for i := range rows {
		ride, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		result = append(result, ride)
	}
	return result, nil
}

// AcceptRide assigns the driver and moves pending -> accepted in one
// conditional update. The row count is the race verdict: zero means another
// driver already holds the ride or it left pending.
func (r *RideRepo) AcceptRide(ctx context.Context, rideID, driverID uuid.UUID, note string) (bool, error) {
	entry, err := timelineEntry(models.RideStatusAccepted, note)
	if err != nil {
		return false, err
	}

	query := `
		UPDATE rides
		SET status = $2, driver_id = $3,
		    timeline = timeline || $4::jsonb,
		    updated_at = $5
		WHERE ride_id = $1 AND status = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		rideID, models.RideStatusAccepted, driverID, entry, time.Now(),
		models.RideStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("failed to accept ride: %w", err)
	}
	return oneRowAffected(res)
}

// UpdateStatus moves from -> to in one conditional update, stamping
// start_time when the trip begins
func (r *RideRepo) UpdateStatus(ctx context.Context, rideID uuid.UUID, from, to models.RideStatus, note string) (bool, error) {
	entry, err := timelineEntry(to, note)
	if err != nil {
		return false, err
	}

	query := `
		UPDATE rides
		SET status = $2,
		    timeline = timeline || $3::jsonb,
		    start_time = CASE WHEN $2 = 'in-progress' THEN $4 ELSE start_time END,
		    updated_at = $4
		WHERE ride_id = $1 AND status = $5
	`
	res, err := r.db.ExecContext(ctx, query, rideID, to, entry, time.Now(), from)
	if err != nil {
		return false, fmt.Errorf("failed to update ride status: %w", err)
	}
	return oneRowAffected(res)
}

// CompleteRide moves in-progress -> completed, recording the settled fare
// and measured trip
func (r *RideRepo) CompleteRide(ctx context.Context, rideID uuid.UUID, actualFare float64, distanceKm float64, durationMinutes int) (bool, error) {
	entry, err := timelineEntry(models.RideStatusCompleted, "Ride completed")
	if err != nil {
		return false, err
	}

	query := `
		UPDATE rides
		SET status = $2, actual_fare = $3, distance_km = $4,
		    duration_minutes = $5, end_time = $6,
		    timeline = timeline || $7::jsonb,
		    updated_at = $6
		WHERE ride_id = $1 AND status = $8
	`
	res, err := r.db.ExecContext(ctx, query,
		rideID, models.RideStatusCompleted, actualFare, distanceKm,
		durationMinutes, time.Now(), entry, models.RideStatusInProgress,
	)
	if err != nil {
		return false, fmt.Errorf("failed to complete ride: %w", err)
	}
	return oneRowAffected(res)
}

// CancelRide moves any cancellable status -> cancelled, clears the driver
// assignment and returns whoever held it. The self-join snapshot captures
// the pre-update driver_id in the same statement.
func (r *RideRepo) CancelRide(ctx context.Context, rideID uuid.UUID, cancellation models.Cancellation) (*uuid.UUID, bool, error) {
	entry, err := timelineEntry(models.RideStatusCancelled, "Ride cancelled")
	if err != nil {
		return nil, false, err
	}
	cancelDoc, err := json.Marshal(cancellation)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal cancellation: %w", err)
	}

	query := `
		UPDATE rides r
		SET status = $2, driver_id = NULL,
		    cancellation = $3::jsonb,
		    timeline = r.timeline || $4::jsonb,
		    updated_at = $5
		FROM (SELECT driver_id AS prev_driver_id FROM rides WHERE ride_id = $1 FOR UPDATE) prev
		WHERE r.ride_id = $1 AND r.status = ANY($6)
		RETURNING prev.prev_driver_id
	`
	cancellable := []string{
		string(models.RideStatusPending),
		string(models.RideStatusAccepted),
		string(models.RideStatusDriverArriving),
	}

	var prevDriver uuid.NullUUID
	err = r.db.QueryRowContext(ctx, query,
		rideID, models.RideStatusCancelled, cancelDoc, entry, time.Now(),
		pqStringArray(cancellable),
	).Scan(&prevDriver)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to cancel ride: %w", err)
	}

	if prevDriver.Valid {
		id := prevDriver.UUID
		return &id, true, nil
	}
	return nil, true, nil
}

// SaveRating writes one role's rating into the ratings document if that role
// has not rated yet. The absence check rides in the WHERE clause so two
// concurrent submissions cannot both land.
func (r *RideRepo) SaveRating(ctx context.Context, rideID uuid.UUID, role models.RaterRole, rating models.Rating) (bool, error) {
	key := ratingKey(role)
	doc, err := json.Marshal(rating)
	if err != nil {
		return false, fmt.Errorf("failed to marshal rating: %w", err)
	}

	query := `
		UPDATE rides
		SET ratings = jsonb_set(COALESCE(ratings, '{}'::jsonb), $2, $3::jsonb),
		    updated_at = $4
		WHERE ride_id = $1
		  AND status = $5
		  AND NOT (COALESCE(ratings, '{}'::jsonb) ? $6)
	`
	res, err := r.db.ExecContext(ctx, query,
		rideID, pqStringArray([]string{key}), doc, time.Now(),
		models.RideStatusCompleted, key,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save rating: %w", err)
	}
	return oneRowAffected(res)
}

// StoreCandidates records the drivers a pending ride was offered to
func (r *RideRepo) StoreCandidates(ctx context.Context, rideID uuid.UUID, driverIDs []string) error {
	if len(driverIDs) == 0 {
		return nil
	}
	key := fmt.Sprintf(constants.KeyRideCandidates, rideID)

	members := make([]interface{}, len(driverIDs))
	for i, id := range driverIDs {
		members[i] = id
	}
	if err := r.redisClient.SAdd(ctx, key, members...); err != nil {
		return fmt.Errorf("failed to store ride candidates: %w", err)
	}
	if err := r.redisClient.Expire(ctx, key, candidateSetTTL); err != nil {
		return fmt.Errorf("failed to expire ride candidates: %w", err)
	}
	return nil
}

// GetCandidates returns the drivers a ride was offered to
func (r *RideRepo) GetCandidates(ctx context.Context, rideID uuid.UUID) ([]string, error) {
	key := fmt.Sprintf(constants.KeyRideCandidates, rideID)
	members, err := r.redisClient.SMembers(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get ride candidates: %w", err)
	}
	return members, nil
}

// ClearCandidates drops the offer set once the ride leaves pending
func (r *RideRepo) ClearCandidates(ctx context.Context, rideID uuid.UUID) error {
	key := fmt.Sprintf(constants.KeyRideCandidates, rideID)
	if err := r.redisClient.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to clear ride candidates: %w", err)
	}
	return nil
}

// toModel converts a database row to the domain model
func (row *rideRow) toModel() (*models.RideRequest, error) {
	ride := &models.RideRequest{
		ID:              row.ID,
		PassengerID:     row.PassengerID,
		VehicleClass:    models.VehicleClass(row.VehicleClass),
		Status:          models.RideStatus(row.Status),
		EstimatedFare:   row.EstimatedFare,
		DistanceKm:      row.DistanceKm,
		DurationMinutes: row.DurationMinutes,
		SurgeMultiplier: row.SurgeMultiplier,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}

	if row.DriverID.Valid {
		id := row.DriverID.UUID
		ride.DriverID = &id
	}
	if row.ActualFare.Valid {
		fare := row.ActualFare.Float64
		ride.ActualFare = &fare
	}
	if row.StartTime.Valid {
		t := row.StartTime.Time
		ride.StartTime = &t
	}
	if row.EndTime.Valid {
		t := row.EndTime.Time
		ride.EndTime = &t
	}

	if err := json.Unmarshal(row.Pickup, &ride.Pickup); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pickup: %w", err)
	}
	if err := json.Unmarshal(row.Destination, &ride.Destination); err != nil {
		return nil, fmt.Errorf("failed to unmarshal destination: %w", err)
	}
	if len(row.Timeline) > 0 {
		if err := json.Unmarshal(row.Timeline, &ride.Timeline); err != nil {
			return nil, fmt.Errorf("failed to unmarshal timeline: %w", err)
		}
	}
	if len(row.Ratings) > 0 {
		if err := json.Unmarshal(row.Ratings, &ride.Ratings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ratings: %w", err)
		}
	}
	if len(row.Discount) > 0 {
		if err := json.Unmarshal(row.Discount, &ride.Discount); err != nil {
			return nil, fmt.Errorf("failed to unmarshal discount: %w", err)
		}
	}
	if len(row.Cancellation) > 0 {
		if err := json.Unmarshal(row.Cancellation, &ride.Cancellation); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cancellation: %w", err)
		}
	}

	return ride, nil
}

// timelineEntry marshals a single-entry JSON array for appending to the
// timeline document
func timelineEntry(status models.RideStatus, note string) ([]byte, error) {
	entry := []models.TimelineEntry{{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Note:      note,
	}}
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timeline entry: %w", err)
	}
	return data, nil
}

// ratingKey maps a rater role to its ratings document key
func ratingKey(role models.RaterRole) string {
	if role == models.RaterRoleDriver {
		return "by_driver"
	}
	return "by_passenger"
}

// nullableJSON converts empty JSON to a SQL NULL
func nullableJSON(data []byte) interface{} {
	if len(data) == 0 {
		return nil
	}
	return data
}

// pqStringArray adapts a string slice to a Postgres text[] parameter
func pqStringArray(vals []string) interface{} {
	return pq.Array(vals)
}

func oneRowAffected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

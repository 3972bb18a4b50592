package usecase

import (
	"context"
	"fmt"

	"github.com/ecopath/dispatch/internal/pkg/logger"
	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/ecopath/dispatch/internal/utils"
	"github.com/ecopath/dispatch/services/drivers"
	"github.com/ecopath/dispatch/services/fare"
	"github.com/ecopath/dispatch/services/rides"
	"github.com/google/uuid"
)

// RideUC implements the ride lifecycle state machine. All status transitions
// go through conditional updates in the repository; this layer decides which
// transition to attempt and classifies failures against the current row.
type RideUC struct {
	cfg      *models.Config
	rideRepo rides.RideRepo
	rideGW   rides.RideGW
	driverUC drivers.DriverUC
}

// NewRideUC creates a new ride usecase
func NewRideUC(
	cfg *models.Config,
	rideRepo rides.RideRepo,
	rideGW rides.RideGW,
	driverUC drivers.DriverUC,
) *RideUC {
	return &RideUC{
		cfg:      cfg,
		rideRepo: rideRepo,
		rideGW:   rideGW,
		driverUC: driverUC,
	}
}

// RequestRide validates the request, computes the fare estimate and persists
// the ride as pending, then dispatches it to nearby drivers.
func (uc *RideUC) RequestRide(ctx context.Context, req models.RideCreateRequest) (*models.RideRequest, error) {
	passengerID, err := uuid.Parse(req.PassengerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid passenger ID", rides.ErrValidation)
	}
	if err := validateRideRequest(&req); err != nil {
		return nil, err
	}

	surge := req.SurgeMultiplier
	if surge < 1.0 {
		surge = 1.0
	}

	distanceKm := utils.CalculateDistanceKm(req.Pickup.Coordinates, req.Destination.Coordinates)
	estimatedFare := fare.Estimate(distanceKm, req.VehicleClass, surge, req.Discount)
	durationMin := fare.ETAMinutes(distanceKm, req.VehicleClass)

	now := models.Now()
	ride := &models.RideRequest{
		ID:              uuid.New(),
		PassengerID:     passengerID,
		Pickup:          req.Pickup,
		Destination:     req.Destination,
		VehicleClass:    req.VehicleClass,
		Status:          models.RideStatusPending,
		EstimatedFare:   estimatedFare,
		DistanceKm:      distanceKm,
		DurationMinutes: durationMin,
		SurgeMultiplier: surge,
		Discount:        req.Discount,
		Timeline: []models.TimelineEntry{
			{Status: models.RideStatusPending, Timestamp: now, Note: "Ride requested"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.rideRepo.CreateRide(ctx, ride); err != nil {
		return nil, err
	}

	logger.Info("Ride requested",
		logger.String("ride_id", ride.ID.String()),
		logger.String("passenger_id", passengerID.String()),
		logger.String("vehicle_class", string(ride.VehicleClass)),
		logger.String("pickup_area", utils.EncodeLocation(req.Pickup.Coordinates, 6)),
		logger.Float64("estimated_fare", estimatedFare))

	if err := uc.dispatchRide(ctx, ride); err != nil {
		// The ride stays pending; dispatch failure is surfaced but does not
		// undo the request.
		logger.Error("Failed to dispatch ride",
			logger.String("ride_id", ride.ID.String()),
			logger.ErrorField(err))
	}

	return ride, nil
}

// dispatchRide finds candidate drivers for a pending ride and offers it to
// them. With no candidates the passenger is told immediately.
func (uc *RideUC) dispatchRide(ctx context.Context, ride *models.RideRequest) error {
	candidates, err := uc.driverUC.FindCandidates(ctx, ride.Pickup.Coordinates, ride.VehicleClass, uc.cfg.Dispatch.MaxCandidates)
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		return uc.rideGW.PublishRideEvent(ctx, models.RideEvent{
			Type:        models.RideEventNoDrivers,
			RequestID:   ride.ID.String(),
			PassengerID: ride.PassengerID.String(),
		})
	}

	candidateIDs := make([]string, len(candidates))
	for i, c := range candidates {
		candidateIDs[i] = c.ID
	}

	if err := uc.rideRepo.StoreCandidates(ctx, ride.ID, candidateIDs); err != nil {
		return err
	}

	return uc.rideGW.PublishRideEvent(ctx, models.RideEvent{
		Type:          models.RideEventOffered,
		RequestID:     ride.ID.String(),
		PassengerID:   ride.PassengerID.String(),
		CandidateIDs:  candidateIDs,
		Pickup:        &ride.Pickup,
		Destination:   &ride.Destination,
		VehicleClass:  ride.VehicleClass,
		EstimatedFare: ride.EstimatedFare,
	})
}

// AcceptRide claims a pending ride for a driver. The driver's availability
// row is reserved first, then the ride row is transitioned with a conditional
// update; losing either race leaves no lasting state change.
func (uc *RideUC) AcceptRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.RideRequest, error) {
	reserved, err := uc.driverUC.Reserve(ctx, driverID.String())
	if err != nil {
		return nil, err
	}
	if !reserved {
		return nil, rides.ErrDriverNotAvailable
	}

	accepted, err := uc.rideRepo.AcceptRide(ctx, rideID, driverID, "Ride accepted by driver")
	if err != nil {
		uc.releaseDriver(ctx, driverID)
		return nil, err
	}
	if !accepted {
		// Another driver won, or the ride was cancelled. Undo the
		// reservation so this driver stays dispatchable.
		uc.releaseDriver(ctx, driverID)
		return nil, rides.ErrRideUnavailable
	}

	ride, err := uc.rideRepo.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	etaMinutes := uc.estimateArrival(ctx, driverID, ride)

	losers, err := uc.rideRepo.GetCandidates(ctx, rideID)
	if err != nil {
		logger.Warn("Failed to load ride candidates",
			logger.String("ride_id", rideID.String()),
			logger.ErrorField(err))
	}
	losingIDs := make([]string, 0, len(losers))
	for _, id := range losers {
		if id != driverID.String() {
			losingIDs = append(losingIDs, id)
		}
	}
	if err := uc.rideRepo.ClearCandidates(ctx, rideID); err != nil {
		logger.Warn("Failed to clear ride candidates",
			logger.String("ride_id", rideID.String()),
			logger.ErrorField(err))
	}

	if err := uc.rideGW.PublishRideEvent(ctx, models.RideEvent{
		Type:         models.RideEventAccepted,
		RequestID:    rideID.String(),
		PassengerID:  ride.PassengerID.String(),
		DriverID:     driverID.String(),
		CandidateIDs: losingIDs,
		ETAMinutes:   etaMinutes,
	}); err != nil {
		logger.Error("Failed to publish ride accepted",
			logger.String("ride_id", rideID.String()),
			logger.ErrorField(err))
	}

	logger.Info("Ride accepted",
		logger.String("ride_id", rideID.String()),
		logger.String("driver_id", driverID.String()),
		logger.Int("eta_minutes", etaMinutes))

	return ride, nil
}

// estimateArrival computes the driver's ETA to the pickup from their last
// known position. A missing position yields zero, not an error.
func (uc *RideUC) estimateArrival(ctx context.Context, driverID uuid.UUID, ride *models.RideRequest) int {
	driver, err := uc.driverUC.GetDriver(ctx, driverID.String())
	if err != nil || driver.Location.IsZero() {
		return 0
	}

	distanceKm := utils.CalculateDistanceKm(driver.Location, ride.Pickup.Coordinates)
	return fare.ETAMinutes(distanceKm, ride.VehicleClass)
}

// ArriveRide marks the assigned driver as arriving at the pickup point
func (uc *RideUC) ArriveRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.RideRequest, error) {
	return uc.driverTransition(ctx, rideID, driverID,
		[]models.RideStatus{models.RideStatusAccepted},
		models.RideStatusDriverArriving,
		"Driver arriving at pickup", models.RideEventArriving)
}

// StartRide begins the trip. Only the assigned driver may start it. The
// arriving announcement is optional, so the trip starts from accepted or
// from driver-arriving.
func (uc *RideUC) StartRide(ctx context.Context, rideID, driverID uuid.UUID) (*models.RideRequest, error) {
	return uc.driverTransition(ctx, rideID, driverID,
		[]models.RideStatus{models.RideStatusAccepted, models.RideStatusDriverArriving},
		models.RideStatusInProgress,
		"Ride started", models.RideEventStarted)
}

// driverTransition performs a driver-initiated conditional status transition,
// attempting the CAS once per permitted prior status. A miss on every
// permitted status is an invalid transition.
func (uc *RideUC) driverTransition(ctx context.Context, rideID, driverID uuid.UUID, froms []models.RideStatus, to models.RideStatus, note string, eventType models.RideEventType) (*models.RideRequest, error) {
	ride, err := uc.rideRepo.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !ride.AssignedTo(driverID) {
		return nil, rides.ErrForbidden
	}

	var ok bool
	for _, from := range froms {
		ok, err = uc.rideRepo.UpdateStatus(ctx, rideID, from, to, note)
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
	}
	if !ok {
		return nil, rides.ErrInvalidTransition
	}

	ride, err = uc.rideRepo.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if err := uc.rideGW.PublishRideEvent(ctx, models.RideEvent{
		Type:        eventType,
		RequestID:   rideID.String(),
		PassengerID: ride.PassengerID.String(),
		DriverID:    driverID.String(),
	}); err != nil {
		logger.Error("Failed to publish ride event",
			logger.String("ride_id", rideID.String()),
			logger.String("event", string(eventType)),
			logger.ErrorField(err))
	}

	return ride, nil
}

// CompleteRide ends an in-progress trip. The actual fare falls back to the
// estimate, the driver returns to the pool, and a settlement intent is
// emitted.
func (uc *RideUC) CompleteRide(ctx context.Context, req models.RideCompleteRequest) (*models.RideRequest, error) {
	rideID, err := uuid.Parse(req.RideID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ride ID", rides.ErrValidation)
	}
	driverID, err := uuid.Parse(req.DriverID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid driver ID", rides.ErrValidation)
	}

	ride, err := uc.rideRepo.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !ride.AssignedTo(driverID) {
		return nil, rides.ErrForbidden
	}

	actualFare := ride.EstimatedFare
	if req.ActualFare != nil {
		if *req.ActualFare < 0 {
			return nil, fmt.Errorf("%w: actual fare must not be negative", rides.ErrValidation)
		}
		actualFare = *req.ActualFare
	}
	distanceKm := ride.DistanceKm
	if req.DistanceKm > 0 {
		distanceKm = req.DistanceKm
	}
	durationMin := ride.DurationMinutes
	if req.DurationMinutes > 0 {
		durationMin = req.DurationMinutes
	}

	ok, err := uc.rideRepo.CompleteRide(ctx, rideID, actualFare, distanceKm, durationMin)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, rides.ErrInvalidTransition
	}

	uc.releaseDriver(ctx, driverID)

	if err := uc.rideGW.PublishRideEvent(ctx, models.RideEvent{
		Type:        models.RideEventCompleted,
		RequestID:   rideID.String(),
		PassengerID: ride.PassengerID.String(),
		DriverID:    driverID.String(),
		ActualFare:  actualFare,
	}); err != nil {
		logger.Error("Failed to publish ride completed",
			logger.String("ride_id", rideID.String()),
			logger.ErrorField(err))
	}

	if err := uc.rideGW.PublishSettlement(ctx, models.SettlementEvent{
		RequestID:    rideID.String(),
		PassengerID:  ride.PassengerID.String(),
		DriverID:     driverID.String(),
		Amount:       actualFare,
		DriverPayout: actualFare * uc.cfg.Fare.DriverPayoutShare,
	}); err != nil {
		logger.Error("Failed to publish settlement intent",
			logger.String("ride_id", rideID.String()),
			logger.ErrorField(err))
	}

	logger.Info("Ride completed",
		logger.String("ride_id", rideID.String()),
		logger.String("driver_id", driverID.String()),
		logger.Float64("actual_fare", actualFare))

	return uc.rideRepo.GetRide(ctx, rideID)
}

// CancelRide cancels a ride that has not started. The passenger or the
// assigned driver may cancel; a previously assigned driver is freed.
func (uc *RideUC) CancelRide(ctx context.Context, req models.RideCancelRequest) (*models.RideRequest, error) {
	rideID, err := uuid.Parse(req.RideID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ride ID", rides.ErrValidation)
	}
	actorID, err := uuid.Parse(req.ActorID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid actor ID", rides.ErrValidation)
	}

	ride, err := uc.rideRepo.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.PassengerID != actorID && !ride.AssignedTo(actorID) {
		return nil, rides.ErrForbidden
	}

	cancellation := models.Cancellation{
		CancelledBy: actorID,
		Reason:      req.Reason,
		CancelledAt: models.Now(),
	}

	prevDriver, ok, err := uc.rideRepo.CancelRide(ctx, rideID, cancellation)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, rides.ErrInvalidTransition
	}

	if prevDriver != nil {
		uc.releaseDriver(ctx, *prevDriver)
	}
	if err := uc.rideRepo.ClearCandidates(ctx, rideID); err != nil {
		logger.Warn("Failed to clear ride candidates",
			logger.String("ride_id", rideID.String()),
			logger.ErrorField(err))
	}

	event := models.RideEvent{
		Type:        models.RideEventCancelled,
		RequestID:   rideID.String(),
		PassengerID: ride.PassengerID.String(),
		Reason:      req.Reason,
	}
	if prevDriver != nil {
		event.DriverID = prevDriver.String()
	}
	if err := uc.rideGW.PublishRideEvent(ctx, event); err != nil {
		logger.Error("Failed to publish ride cancelled",
			logger.String("ride_id", rideID.String()),
			logger.ErrorField(err))
	}

	logger.Info("Ride cancelled",
		logger.String("ride_id", rideID.String()),
		logger.String("cancelled_by", actorID.String()))

	return uc.rideRepo.GetRide(ctx, rideID)
}

// RateRide records one party's rating of the other. Only the ride's
// passenger or assigned driver may rate, matching their role, and each role
// rates once.
func (uc *RideUC) RateRide(ctx context.Context, raterID uuid.UUID, req models.RideRatingRequest) (*models.RideRequest, error) {
	rideID, err := uuid.Parse(req.RideID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ride ID", rides.ErrValidation)
	}
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown rater role %q", rides.ErrValidation, req.Role)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", rides.ErrValidation)
	}

	ride, err := uc.rideRepo.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	switch req.Role {
	case models.RaterRolePassenger:
		if ride.PassengerID != raterID {
			return nil, rides.ErrForbidden
		}
	case models.RaterRoleDriver:
		if !ride.AssignedTo(raterID) {
			return nil, rides.ErrForbidden
		}
	}

	if ride.Status != models.RideStatusCompleted {
		return nil, rides.ErrInvalidTransition
	}

	rating := models.Rating{
		Rating:  req.Rating,
		Review:  req.Review,
		RatedAt: models.Now(),
	}

	ok, err := uc.rideRepo.SaveRating(ctx, rideID, req.Role, rating)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, rides.ErrAlreadyRated
	}

	return uc.rideRepo.GetRide(ctx, rideID)
}

// GetRide retrieves a single ride
func (uc *RideUC) GetRide(ctx context.Context, rideID uuid.UUID) (*models.RideRequest, error) {
	return uc.rideRepo.GetRide(ctx, rideID)
}

// ListRides returns the ride history where the actor was passenger or driver
func (uc *RideUC) ListRides(ctx context.Context, actorID uuid.UUID, limit int) ([]*models.RideRequest, error) {
	return uc.rideRepo.ListRidesByActor(ctx, actorID, limit)
}

// releaseDriver best-effort returns a driver to the pool
func (uc *RideUC) releaseDriver(ctx context.Context, driverID uuid.UUID) {
	if err := uc.driverUC.Release(ctx, driverID.String()); err != nil {
		logger.Error("Failed to release driver",
			logger.String("driver_id", driverID.String()),
			logger.ErrorField(err))
	}
}

// validateRideRequest checks coordinates and enum fields on a new request
func validateRideRequest(req *models.RideCreateRequest) error {
	if !req.VehicleClass.Valid() {
		return fmt.Errorf("%w: unknown vehicle class %q", rides.ErrValidation, req.VehicleClass)
	}
	if err := validateCoordinates(req.Pickup.Coordinates, "pickup"); err != nil {
		return err
	}
	if err := validateCoordinates(req.Destination.Coordinates, "destination"); err != nil {
		return err
	}
	if req.Pickup.Coordinates.Latitude == req.Destination.Coordinates.Latitude &&
		req.Pickup.Coordinates.Longitude == req.Destination.Coordinates.Longitude {
		return fmt.Errorf("%w: pickup and destination must differ", rides.ErrValidation)
	}
	if req.Discount != nil {
		switch req.Discount.Type {
		case models.DiscountTypePercentage:
			if req.Discount.Amount < 0 || req.Discount.Amount > 100 {
				return fmt.Errorf("%w: percentage discount must be between 0 and 100", rides.ErrValidation)
			}
		case models.DiscountTypeFixed:
			if req.Discount.Amount < 0 {
				return fmt.Errorf("%w: fixed discount must not be negative", rides.ErrValidation)
			}
		default:
			return fmt.Errorf("%w: unknown discount type %q", rides.ErrValidation, req.Discount.Type)
		}
	}
	return nil
}

func validateCoordinates(loc models.Location, field string) error {
	if loc.IsZero() {
		return fmt.Errorf("%w: %s coordinates are required", rides.ErrValidation, field)
	}
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return fmt.Errorf("%w: %s latitude out of range", rides.ErrValidation, field)
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("%w: %s longitude out of range", rides.ErrValidation, field)
	}
	return nil
}

package usecase

import (
	"context"
	"testing"

	"github.com/ecopath/dispatch/internal/pkg/models"
	driverMocks "github.com/ecopath/dispatch/services/drivers/mocks"
	"github.com/ecopath/dispatch/services/rides"
	"github.com/ecopath/dispatch/services/rides/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *models.Config {
	cfg := &models.Config{}
	cfg.Dispatch.SearchRadiusKm = 5.0
	cfg.Dispatch.MaxCandidates = 5
	cfg.Fare.DriverPayoutShare = 0.8
	return cfg
}

func testFixture(t *testing.T) (*RideUC, *mocks.MockRideRepo, *mocks.MockRideGW, *driverMocks.MockDriverUC) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockRideRepo(ctrl)
	mockGW := mocks.NewMockRideGW(ctrl)
	mockDrivers := driverMocks.NewMockDriverUC(ctrl)

	uc := NewRideUC(testConfig(), mockRepo, mockGW, mockDrivers)
	return uc, mockRepo, mockGW, mockDrivers
}

func validCreateRequest(passengerID uuid.UUID) models.RideCreateRequest {
	return models.RideCreateRequest{
		PassengerID: passengerID.String(),
		Pickup: models.Point{
			Address:     "Connaught Place",
			Coordinates: models.Location{Latitude: 28.6315, Longitude: 77.2167},
		},
		Destination: models.Point{
			Address:     "Hauz Khas",
			Coordinates: models.Location{Latitude: 28.5494, Longitude: 77.2001},
		},
		VehicleClass: models.VehicleClassCycle,
	}
}

func TestRequestRide_Success(t *testing.T) {
	// Arrange
	uc, mockRepo, mockGW, mockDrivers := testFixture(t)

	passengerID := uuid.New()
	req := validCreateRequest(passengerID)

	var created *models.RideRequest
	mockRepo.EXPECT().
		CreateRide(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ride *models.RideRequest) error {
			assert.Equal(t, passengerID, ride.PassengerID)
			assert.Equal(t, models.RideStatusPending, ride.Status)
			assert.Greater(t, ride.EstimatedFare, 0.0)
			assert.Greater(t, ride.DistanceKm, 0.0)
			assert.Equal(t, 1.0, ride.SurgeMultiplier)
			require.Len(t, ride.Timeline, 1)
			assert.Equal(t, models.RideStatusPending, ride.Timeline[0].Status)
			created = ride
			return nil
		})

	candidates := []*models.NearbyDriver{
		{ID: uuid.New().String(), DistanceKm: 0.8},
		{ID: uuid.New().String(), DistanceKm: 1.4},
	}
	mockDrivers.EXPECT().
		FindCandidates(gomock.Any(), req.Pickup.Coordinates, models.VehicleClassCycle, 5).
		Return(candidates, nil)

	mockRepo.EXPECT().
		StoreCandidates(gomock.Any(), gomock.Any(), []string{candidates[0].ID, candidates[1].ID}).
		Return(nil)

	mockGW.EXPECT().
		PublishRideEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event models.RideEvent) error {
			assert.Equal(t, models.RideEventOffered, event.Type)
			assert.Equal(t, []string{candidates[0].ID, candidates[1].ID}, event.CandidateIDs)
			return nil
		})

	// Act
	ride, err := uc.RequestRide(context.Background(), req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, created.ID, ride.ID)
}

func TestRequestRide_NoDriversAvailable(t *testing.T) {
	// Arrange
	uc, mockRepo, mockGW, mockDrivers := testFixture(t)

	passengerID := uuid.New()
	req := validCreateRequest(passengerID)

	mockRepo.EXPECT().CreateRide(gomock.Any(), gomock.Any()).Return(nil)
	mockDrivers.EXPECT().
		FindCandidates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	mockGW.EXPECT().
		PublishRideEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event models.RideEvent) error {
			assert.Equal(t, models.RideEventNoDrivers, event.Type)
			assert.Equal(t, passengerID.String(), event.PassengerID)
			return nil
		})

	// Act
	ride, err := uc.RequestRide(context.Background(), req)

	// Assert: the ride still exists as pending
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusPending, ride.Status)
}

func TestRequestRide_ValidationErrors(t *testing.T) {
	uc, _, _, _ := testFixture(t)
	passengerID := uuid.New()

	tests := []struct {
		name   string
		mutate func(*models.RideCreateRequest)
	}{
		{"unknown vehicle class", func(r *models.RideCreateRequest) { r.VehicleClass = "rocket" }},
		{"missing pickup", func(r *models.RideCreateRequest) { r.Pickup.Coordinates = models.Location{} }},
		{"latitude out of range", func(r *models.RideCreateRequest) { r.Pickup.Coordinates.Latitude = 91 }},
		{"longitude out of range", func(r *models.RideCreateRequest) { r.Destination.Coordinates.Longitude = -181 }},
		{"identical endpoints", func(r *models.RideCreateRequest) { r.Destination.Coordinates = r.Pickup.Coordinates }},
		{"discount over 100 percent", func(r *models.RideCreateRequest) {
			r.Discount = &models.Discount{Type: models.DiscountTypePercentage, Amount: 120}
		}},
		{"negative fixed discount", func(r *models.RideCreateRequest) {
			r.Discount = &models.Discount{Type: models.DiscountTypeFixed, Amount: -5}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest(passengerID)
			tt.mutate(&req)

			_, err := uc.RequestRide(context.Background(), req)

			assert.ErrorIs(t, err, rides.ErrValidation)
		})
	}
}

func TestAcceptRide_Success(t *testing.T) {
	// Arrange
	uc, mockRepo, mockGW, mockDrivers := testFixture(t)

	rideID := uuid.New()
	driverID := uuid.New()
	passengerID := uuid.New()
	loserID := uuid.New().String()

	mockDrivers.EXPECT().Reserve(gomock.Any(), driverID.String()).Return(true, nil)
	mockRepo.EXPECT().
		AcceptRide(gomock.Any(), rideID, driverID, gomock.Any()).
		Return(true, nil)

	accepted := &models.RideRequest{
		ID:          rideID,
		PassengerID: passengerID,
		DriverID:    &driverID,
		Status:      models.RideStatusAccepted,
		Pickup: models.Point{
			Coordinates: models.Location{Latitude: 28.6315, Longitude: 77.2167},
		},
		VehicleClass: models.VehicleClassCycle,
	}
	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(accepted, nil)

	mockDrivers.EXPECT().
		GetDriver(gomock.Any(), driverID.String()).
		Return(&models.Driver{
			ID:       driverID,
			Location: models.Location{Latitude: 28.6400, Longitude: 77.2200},
		}, nil)

	mockRepo.EXPECT().
		GetCandidates(gomock.Any(), rideID).
		Return([]string{driverID.String(), loserID}, nil)
	mockRepo.EXPECT().ClearCandidates(gomock.Any(), rideID).Return(nil)

	mockGW.EXPECT().
		PublishRideEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event models.RideEvent) error {
			assert.Equal(t, models.RideEventAccepted, event.Type)
			assert.Equal(t, driverID.String(), event.DriverID)
			// Only losing candidates get the taken notice
			assert.Equal(t, []string{loserID}, event.CandidateIDs)
			assert.Greater(t, event.ETAMinutes, 0)
			return nil
		})

	// Act
	ride, err := uc.AcceptRide(context.Background(), rideID, driverID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusAccepted, ride.Status)
}

func TestAcceptRide_DriverNotAvailable(t *testing.T) {
	// Arrange
	uc, _, _, mockDrivers := testFixture(t)

	rideID := uuid.New()
	driverID := uuid.New()

	mockDrivers.EXPECT().Reserve(gomock.Any(), driverID.String()).Return(false, nil)

	// Act
	_, err := uc.AcceptRide(context.Background(), rideID, driverID)

	// Assert
	assert.ErrorIs(t, err, rides.ErrDriverNotAvailable)
}

func TestAcceptRide_LostRace(t *testing.T) {
	// Arrange
	uc, mockRepo, _, mockDrivers := testFixture(t)

	rideID := uuid.New()
	driverID := uuid.New()

	mockDrivers.EXPECT().Reserve(gomock.Any(), driverID.String()).Return(true, nil)
	mockRepo.EXPECT().
		AcceptRide(gomock.Any(), rideID, driverID, gomock.Any()).
		Return(false, nil)
	// The reservation must be rolled back so the loser stays dispatchable
	mockDrivers.EXPECT().Release(gomock.Any(), driverID.String()).Return(nil)

	// Act
	_, err := uc.AcceptRide(context.Background(), rideID, driverID)

	// Assert
	assert.ErrorIs(t, err, rides.ErrRideUnavailable)
}

func TestStartRide_Forbidden(t *testing.T) {
	// Arrange
	uc, mockRepo, _, _ := testFixture(t)

	rideID := uuid.New()
	assignedDriver := uuid.New()
	otherDriver := uuid.New()

	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(&models.RideRequest{
		ID:       rideID,
		DriverID: &assignedDriver,
		Status:   models.RideStatusDriverArriving,
	}, nil)

	// Act
	_, err := uc.StartRide(context.Background(), rideID, otherDriver)

	// Assert
	assert.ErrorIs(t, err, rides.ErrForbidden)
}

func TestStartRide_FromAccepted(t *testing.T) {
	// Arrange: the arriving announcement is optional, an accepted ride
	// starts directly
	uc, mockRepo, mockGW, _ := testFixture(t)

	rideID := uuid.New()
	driverID := uuid.New()
	passengerID := uuid.New()

	accepted := &models.RideRequest{
		ID:          rideID,
		PassengerID: passengerID,
		DriverID:    &driverID,
		Status:      models.RideStatusAccepted,
	}
	inProgress := &models.RideRequest{
		ID:          rideID,
		PassengerID: passengerID,
		DriverID:    &driverID,
		Status:      models.RideStatusInProgress,
	}

	gomock.InOrder(
		mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(accepted, nil),
		mockRepo.EXPECT().
			UpdateStatus(gomock.Any(), rideID, models.RideStatusAccepted, models.RideStatusInProgress, gomock.Any()).
			Return(true, nil),
		mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(inProgress, nil),
	)
	mockGW.EXPECT().
		PublishRideEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event models.RideEvent) error {
			assert.Equal(t, models.RideEventStarted, event.Type)
			return nil
		})

	// Act
	ride, err := uc.StartRide(context.Background(), rideID, driverID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusInProgress, ride.Status)
}

func TestStartRide_FromDriverArriving(t *testing.T) {
	// Arrange: the accepted CAS misses, the driver-arriving one lands
	uc, mockRepo, mockGW, _ := testFixture(t)

	rideID := uuid.New()
	driverID := uuid.New()
	passengerID := uuid.New()

	arriving := &models.RideRequest{
		ID:          rideID,
		PassengerID: passengerID,
		DriverID:    &driverID,
		Status:      models.RideStatusDriverArriving,
	}
	inProgress := &models.RideRequest{
		ID:          rideID,
		PassengerID: passengerID,
		DriverID:    &driverID,
		Status:      models.RideStatusInProgress,
	}

	gomock.InOrder(
		mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(arriving, nil),
		mockRepo.EXPECT().
			UpdateStatus(gomock.Any(), rideID, models.RideStatusAccepted, models.RideStatusInProgress, gomock.Any()).
			Return(false, nil),
		mockRepo.EXPECT().
			UpdateStatus(gomock.Any(), rideID, models.RideStatusDriverArriving, models.RideStatusInProgress, gomock.Any()).
			Return(true, nil),
		mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(inProgress, nil),
	)
	mockGW.EXPECT().PublishRideEvent(gomock.Any(), gomock.Any()).Return(nil)

	// Act
	ride, err := uc.StartRide(context.Background(), rideID, driverID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusInProgress, ride.Status)
}

func TestStartRide_InvalidTransition(t *testing.T) {
	// Arrange: a completed ride misses every permitted prior status
	uc, mockRepo, _, _ := testFixture(t)

	rideID := uuid.New()
	driverID := uuid.New()

	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(&models.RideRequest{
		ID:       rideID,
		DriverID: &driverID,
		Status:   models.RideStatusCompleted,
	}, nil)
	mockRepo.EXPECT().
		UpdateStatus(gomock.Any(), rideID, models.RideStatusAccepted, models.RideStatusInProgress, gomock.Any()).
		Return(false, nil)
	mockRepo.EXPECT().
		UpdateStatus(gomock.Any(), rideID, models.RideStatusDriverArriving, models.RideStatusInProgress, gomock.Any()).
		Return(false, nil)

	// Act
	_, err := uc.StartRide(context.Background(), rideID, driverID)

	// Assert
	assert.ErrorIs(t, err, rides.ErrInvalidTransition)
}

func TestArriveRide_Success(t *testing.T) {
	// Arrange
	uc, mockRepo, mockGW, _ := testFixture(t)

	rideID := uuid.New()
	driverID := uuid.New()
	passengerID := uuid.New()

	before := &models.RideRequest{
		ID:          rideID,
		PassengerID: passengerID,
		DriverID:    &driverID,
		Status:      models.RideStatusAccepted,
	}
	after := &models.RideRequest{
		ID:          rideID,
		PassengerID: passengerID,
		DriverID:    &driverID,
		Status:      models.RideStatusDriverArriving,
	}

	gomock.InOrder(
		mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(before, nil),
		mockRepo.EXPECT().
			UpdateStatus(gomock.Any(), rideID, models.RideStatusAccepted, models.RideStatusDriverArriving, gomock.Any()).
			Return(true, nil),
		mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(after, nil),
	)

	mockGW.EXPECT().
		PublishRideEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event models.RideEvent) error {
			assert.Equal(t, models.RideEventArriving, event.Type)
			return nil
		})

	// Act
	ride, err := uc.ArriveRide(context.Background(), rideID, driverID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusDriverArriving, ride.Status)
}

func TestCompleteRide_FareFallsBackToEstimate(t *testing.T) {
	// Arrange
	uc, mockRepo, mockGW, mockDrivers := testFixture(t)

	rideID := uuid.New()
	driverID := uuid.New()
	passengerID := uuid.New()

	inProgress := &models.RideRequest{
		ID:            rideID,
		PassengerID:   passengerID,
		DriverID:      &driverID,
		Status:        models.RideStatusInProgress,
		EstimatedFare: 62.5,
		DistanceKm:    12.5,
	}
	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(inProgress, nil)

	mockRepo.EXPECT().
		CompleteRide(gomock.Any(), rideID, 62.5, 12.5, gomock.Any()).
		Return(true, nil)

	mockDrivers.EXPECT().Release(gomock.Any(), driverID.String()).Return(nil)

	mockGW.EXPECT().
		PublishRideEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event models.RideEvent) error {
			assert.Equal(t, models.RideEventCompleted, event.Type)
			assert.Equal(t, 62.5, event.ActualFare)
			return nil
		})

	mockGW.EXPECT().
		PublishSettlement(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event models.SettlementEvent) error {
			assert.Equal(t, 62.5, event.Amount)
			assert.InDelta(t, 50.0, event.DriverPayout, 0.0001)
			return nil
		})

	actualFare := 62.5
	completed := &models.RideRequest{
		ID:          rideID,
		PassengerID: passengerID,
		DriverID:    &driverID,
		Status:      models.RideStatusCompleted,
		ActualFare:  &actualFare,
	}
	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(completed, nil)

	// Act
	ride, err := uc.CompleteRide(context.Background(), models.RideCompleteRequest{
		RideID:   rideID.String(),
		DriverID: driverID.String(),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusCompleted, ride.Status)
}

func TestCompleteRide_DoubleComplete(t *testing.T) {
	// Arrange
	uc, mockRepo, _, _ := testFixture(t)

	rideID := uuid.New()
	driverID := uuid.New()

	completed := &models.RideRequest{
		ID:       rideID,
		DriverID: &driverID,
		Status:   models.RideStatusCompleted,
	}
	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(completed, nil)
	mockRepo.EXPECT().
		CompleteRide(gomock.Any(), rideID, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, nil)

	// Act
	_, err := uc.CompleteRide(context.Background(), models.RideCompleteRequest{
		RideID:   rideID.String(),
		DriverID: driverID.String(),
	})

	// Assert
	assert.ErrorIs(t, err, rides.ErrInvalidTransition)
}

func TestCancelRide_PendingNeedsNoDriverRelease(t *testing.T) {
	// Arrange
	uc, mockRepo, mockGW, _ := testFixture(t)

	rideID := uuid.New()
	passengerID := uuid.New()

	pending := &models.RideRequest{
		ID:          rideID,
		PassengerID: passengerID,
		Status:      models.RideStatusPending,
	}
	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(pending, nil)
	mockRepo.EXPECT().
		CancelRide(gomock.Any(), rideID, gomock.Any()).
		Return(nil, true, nil)
	mockRepo.EXPECT().ClearCandidates(gomock.Any(), rideID).Return(nil)
	mockGW.EXPECT().
		PublishRideEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event models.RideEvent) error {
			assert.Equal(t, models.RideEventCancelled, event.Type)
			assert.Empty(t, event.DriverID)
			return nil
		})
	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(pending, nil)

	// Act: no Release expectation on the driver usecase, a pending ride has
	// no driver to free
	_, err := uc.CancelRide(context.Background(), models.RideCancelRequest{
		RideID:  rideID.String(),
		ActorID: passengerID.String(),
		Reason:  "changed plans",
	})

	// Assert
	require.NoError(t, err)
}

func TestCancelRide_ReleasesAssignedDriver(t *testing.T) {
	// Arrange
	uc, mockRepo, mockGW, mockDrivers := testFixture(t)

	rideID := uuid.New()
	passengerID := uuid.New()
	driverID := uuid.New()

	accepted := &models.RideRequest{
		ID:          rideID,
		PassengerID: passengerID,
		DriverID:    &driverID,
		Status:      models.RideStatusAccepted,
	}
	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(accepted, nil)
	mockRepo.EXPECT().
		CancelRide(gomock.Any(), rideID, gomock.Any()).
		Return(&driverID, true, nil)
	mockDrivers.EXPECT().Release(gomock.Any(), driverID.String()).Return(nil)
	mockRepo.EXPECT().ClearCandidates(gomock.Any(), rideID).Return(nil)
	mockGW.EXPECT().PublishRideEvent(gomock.Any(), gomock.Any()).Return(nil)
	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(accepted, nil)

	// Act
	_, err := uc.CancelRide(context.Background(), models.RideCancelRequest{
		RideID:  rideID.String(),
		ActorID: passengerID.String(),
	})

	// Assert
	require.NoError(t, err)
}

func TestCancelRide_Forbidden(t *testing.T) {
	// Arrange
	uc, mockRepo, _, _ := testFixture(t)

	rideID := uuid.New()
	stranger := uuid.New()

	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(&models.RideRequest{
		ID:          rideID,
		PassengerID: uuid.New(),
		Status:      models.RideStatusPending,
	}, nil)

	// Act
	_, err := uc.CancelRide(context.Background(), models.RideCancelRequest{
		RideID:  rideID.String(),
		ActorID: stranger.String(),
	})

	// Assert
	assert.ErrorIs(t, err, rides.ErrForbidden)
}

func TestCancelRide_FromTerminalStatus(t *testing.T) {
	// Arrange
	uc, mockRepo, _, _ := testFixture(t)

	rideID := uuid.New()
	passengerID := uuid.New()

	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(&models.RideRequest{
		ID:          rideID,
		PassengerID: passengerID,
		Status:      models.RideStatusCompleted,
	}, nil)
	mockRepo.EXPECT().
		CancelRide(gomock.Any(), rideID, gomock.Any()).
		Return(nil, false, nil)

	// Act
	_, err := uc.CancelRide(context.Background(), models.RideCancelRequest{
		RideID:  rideID.String(),
		ActorID: passengerID.String(),
	})

	// Assert
	assert.ErrorIs(t, err, rides.ErrInvalidTransition)
}

func TestRateRide_Success(t *testing.T) {
	// Arrange
	uc, mockRepo, _, _ := testFixture(t)

	rideID := uuid.New()
	passengerID := uuid.New()
	driverID := uuid.New()

	completed := &models.RideRequest{
		ID:          rideID,
		PassengerID: passengerID,
		DriverID:    &driverID,
		Status:      models.RideStatusCompleted,
	}
	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(completed, nil)
	mockRepo.EXPECT().
		SaveRating(gomock.Any(), rideID, models.RaterRolePassenger, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _ models.RaterRole, rating models.Rating) (bool, error) {
			assert.Equal(t, 5, rating.Rating)
			return true, nil
		})
	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(completed, nil)

	// Act
	_, err := uc.RateRide(context.Background(), passengerID, models.RideRatingRequest{
		RideID: rideID.String(),
		Role:   models.RaterRolePassenger,
		Rating: 5,
		Review: "smooth ride",
	})

	// Assert
	require.NoError(t, err)
}

func TestRateRide_DuplicateRole(t *testing.T) {
	// Arrange
	uc, mockRepo, _, _ := testFixture(t)

	rideID := uuid.New()
	passengerID := uuid.New()
	driverID := uuid.New()

	completed := &models.RideRequest{
		ID:          rideID,
		PassengerID: passengerID,
		DriverID:    &driverID,
		Status:      models.RideStatusCompleted,
	}
	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(completed, nil)
	mockRepo.EXPECT().
		SaveRating(gomock.Any(), rideID, models.RaterRoleDriver, gomock.Any()).
		Return(false, nil)

	// Act
	_, err := uc.RateRide(context.Background(), driverID, models.RideRatingRequest{
		RideID: rideID.String(),
		Role:   models.RaterRoleDriver,
		Rating: 4,
	})

	// Assert
	assert.ErrorIs(t, err, rides.ErrAlreadyRated)
}

func TestRateRide_NotCompleted(t *testing.T) {
	// Arrange
	uc, mockRepo, _, _ := testFixture(t)

	rideID := uuid.New()
	passengerID := uuid.New()

	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(&models.RideRequest{
		ID:          rideID,
		PassengerID: passengerID,
		Status:      models.RideStatusInProgress,
	}, nil)

	// Act
	_, err := uc.RateRide(context.Background(), passengerID, models.RideRatingRequest{
		RideID: rideID.String(),
		Role:   models.RaterRolePassenger,
		Rating: 3,
	})

	// Assert
	assert.ErrorIs(t, err, rides.ErrInvalidTransition)
}

func TestRateRide_OutOfRange(t *testing.T) {
	uc, _, _, _ := testFixture(t)

	_, err := uc.RateRide(context.Background(), uuid.New(), models.RideRatingRequest{
		RideID: uuid.New().String(),
		Role:   models.RaterRolePassenger,
		Rating: 6,
	})

	assert.ErrorIs(t, err, rides.ErrValidation)
}

package usecase

import (
	"context"
	"testing"

	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/ecopath/dispatch/services/drivers/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *models.Config {
	cfg := &models.Config{}
	cfg.Dispatch.SearchRadiusKm = 5.0
	cfg.Dispatch.MaxCandidates = 5
	return cfg
}

func testFixture(t *testing.T) (*DriverUC, *mocks.MockDriverRepo, *mocks.MockDriverGW) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockDriverRepo(ctrl)
	mockGW := mocks.NewMockDriverGW(ctrl)
	uc := NewDriverUC(testConfig(), mockRepo, mockGW)
	return uc, mockRepo, mockGW
}

func TestFindCandidates_NearestFirst(t *testing.T) {
	// Arrange
	uc, mockRepo, _ := testFixture(t)

	pickup := models.Location{Latitude: 28.6315, Longitude: 77.2167}
	nearby := []*models.NearbyDriver{
		{ID: "driver-c", DistanceKm: 2.4},
		{ID: "driver-a", DistanceKm: 0.7},
		{ID: "driver-b", DistanceKm: 1.1},
	}
	mockRepo.EXPECT().
		FindNearbyAvailable(gomock.Any(), &pickup, models.VehicleClassCycle, 5.0).
		Return(nearby, nil)

	// Act
	candidates, err := uc.FindCandidates(context.Background(), pickup, models.VehicleClassCycle, 5)

	// Assert
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, "driver-a", candidates[0].ID)
	assert.Equal(t, "driver-b", candidates[1].ID)
	assert.Equal(t, "driver-c", candidates[2].ID)
}

func TestFindCandidates_TieBreaksByDriverID(t *testing.T) {
	// Arrange
	uc, mockRepo, _ := testFixture(t)

	pickup := models.Location{Latitude: 28.6315, Longitude: 77.2167}
	nearby := []*models.NearbyDriver{
		{ID: "driver-z", DistanceKm: 1.0},
		{ID: "driver-a", DistanceKm: 1.0},
		{ID: "driver-m", DistanceKm: 1.0},
	}
	mockRepo.EXPECT().
		FindNearbyAvailable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nearby, nil)

	// Act
	candidates, err := uc.FindCandidates(context.Background(), pickup, models.VehicleClassCycle, 5)

	// Assert: equal distances order deterministically by ID
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, "driver-a", candidates[0].ID)
	assert.Equal(t, "driver-m", candidates[1].ID)
	assert.Equal(t, "driver-z", candidates[2].ID)
}

func TestFindCandidates_CapsAtMax(t *testing.T) {
	// Arrange
	uc, mockRepo, _ := testFixture(t)

	pickup := models.Location{Latitude: 28.6315, Longitude: 77.2167}
	nearby := []*models.NearbyDriver{
		{ID: "d1", DistanceKm: 0.5},
		{ID: "d2", DistanceKm: 1.0},
		{ID: "d3", DistanceKm: 1.5},
		{ID: "d4", DistanceKm: 2.0},
	}
	mockRepo.EXPECT().
		FindNearbyAvailable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nearby, nil)

	// Act
	candidates, err := uc.FindCandidates(context.Background(), pickup, models.VehicleClassCycle, 2)

	// Assert: nearest two only
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "d1", candidates[0].ID)
	assert.Equal(t, "d2", candidates[1].ID)
}

func TestFindCandidates_EmptyPoolIsNotAnError(t *testing.T) {
	// Arrange
	uc, mockRepo, _ := testFixture(t)

	mockRepo.EXPECT().
		FindNearbyAvailable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	// Act
	candidates, err := uc.FindCandidates(context.Background(), models.Location{Latitude: 1, Longitude: 1}, models.VehicleClassElectric, 5)

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSetStatus_PublishesPoolChange(t *testing.T) {
	// Arrange
	uc, mockRepo, mockGW := testFixture(t)

	driverID := uuid.New()
	location := &models.Location{Latitude: 28.6, Longitude: 77.2}
	req := models.DriverStatusRequest{
		DriverID: driverID.String(),
		IsOnline: true,
		Location: location,
	}

	mockRepo.EXPECT().
		SetOnline(gomock.Any(), driverID.String(), true, location).
		Return(&models.Driver{ID: driverID, IsOnline: true, IsAvailable: true}, nil)
	mockGW.EXPECT().
		PublishDriverStatus(gomock.Any(), driverID.String(), true, true).
		Return(nil)

	// Act
	driver, err := uc.SetStatus(context.Background(), req)

	// Assert
	require.NoError(t, err)
	assert.True(t, driver.IsAvailable)
}

func TestReserve_WinnerPublishes(t *testing.T) {
	// Arrange
	uc, mockRepo, mockGW := testFixture(t)

	driverID := uuid.New().String()
	mockRepo.EXPECT().ReserveDriver(gomock.Any(), driverID).Return(true, nil)
	mockGW.EXPECT().PublishDriverStatus(gomock.Any(), driverID, true, false).Return(nil)

	// Act
	reserved, err := uc.Reserve(context.Background(), driverID)

	// Assert
	require.NoError(t, err)
	assert.True(t, reserved)
}

func TestReserve_LoserStaysSilent(t *testing.T) {
	// Arrange
	uc, mockRepo, _ := testFixture(t)

	driverID := uuid.New().String()
	mockRepo.EXPECT().ReserveDriver(gomock.Any(), driverID).Return(false, nil)

	// Act: no publish expectation, a failed reservation changes nothing
	reserved, err := uc.Reserve(context.Background(), driverID)

	// Assert
	require.NoError(t, err)
	assert.False(t, reserved)
}

func TestUpdateLocation_RequiresCoordinates(t *testing.T) {
	uc, _, _ := testFixture(t)

	err := uc.UpdateLocation(context.Background(), models.DriverLocationRequest{
		DriverID: uuid.New().String(),
	})

	assert.Error(t, err)
}

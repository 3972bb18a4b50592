package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*DriverRepo, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	repo := NewDriverRepository(&models.Config{}, db, nil)
	return repo, mock
}

func TestGetDriver_Success(t *testing.T) {
	repo, mock := setupMockDB(t)

	driverID := uuid.New()
	rows := sqlmock.NewRows([]string{
		"driver_id", "is_online", "is_available", "vehicle_class",
		"latitude", "longitude", "updated_at",
	}).AddRow(driverID.String(), true, true, "cycle", 28.6315, 77.2167, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT driver_id, is_online, is_available")).
		WithArgs(driverID.String()).
		WillReturnRows(rows)

	driver, err := repo.GetDriver(context.Background(), driverID.String())
	require.NoError(t, err)
	assert.Equal(t, driverID, driver.ID)
	assert.True(t, driver.IsAvailable)
	assert.Equal(t, models.VehicleClassCycle, driver.VehicleClass)
}

func TestReserveDriver_AlreadyReserved(t *testing.T) {
	repo, mock := setupMockDB(t)

	driverID := uuid.New().String()

	// The conditional update misses when the driver is offline or already
	// holds an assignment; no state is touched.
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE drivers")).
		WithArgs(driverID, sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	reserved, err := repo.ReserveDriver(context.Background(), driverID)
	assert.NoError(t, err)
	assert.False(t, reserved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseDriver_OfflineDriverStaysOut(t *testing.T) {
	repo, mock := setupMockDB(t)

	driverID := uuid.New().String()

	// A driver who went offline while assigned does not rejoin the pool
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE drivers")).
		WithArgs(driverID, sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	err := repo.ReleaseDriver(context.Background(), driverID)
	assert.NoError(t, err)
}

func TestGetDriver_QueryError(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT driver_id")).
		WithArgs("some-driver").
		WillReturnError(assert.AnError)

	_, err := repo.GetDriver(context.Background(), "some-driver")
	assert.Error(t, err)
}

func TestSetOnline_ActiveAssignmentStaysUnavailable(t *testing.T) {
	repo, mock := setupMockDB(t)

	driverID := uuid.New()

	// A driver re-sending online while holding an active ride stays
	// unavailable: the availability flip is guarded against assignments.
	rows := sqlmock.NewRows([]string{
		"driver_id", "is_online", "is_available", "vehicle_class",
		"latitude", "longitude", "updated_at",
	}).AddRow(driverID.String(), true, false, "cycle", 28.6315, 77.2167, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE drivers")).
		WithArgs(driverID.String(), true, nil, nil, sqlmock.AnyArg()).
		WillReturnRows(rows)

	// No Redis expectations: a driver mid-assignment must not rejoin the
	// dispatch pool (a nil redis client would panic if the repo tried).
	driver, err := repo.SetOnline(context.Background(), driverID.String(), true, nil)
	require.NoError(t, err)
	assert.True(t, driver.IsOnline)
	assert.False(t, driver.IsAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

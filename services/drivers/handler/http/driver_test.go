package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/ecopath/dispatch/services/drivers/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder, uuid.UUID) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	driverID := uuid.New()
	c.Set("user_id", driverID)
	return c, rec, driverID
}

func TestSetStatus_Success(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockUC := mocks.NewMockDriverUC(ctrl)
	h := NewDriverHandler(mockUC)

	c, rec, driverID := testContext(t, http.MethodPut, "/drivers/status", `{"is_online":true}`)

	mockUC.EXPECT().
		SetStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req models.DriverStatusRequest) (*models.Driver, error) {
			// The session identity overrides whatever the payload claims
			assert.Equal(t, driverID.String(), req.DriverID)
			return &models.Driver{ID: driverID, IsOnline: true, IsAvailable: true}, nil
		})

	// Act
	require.NoError(t, h.SetStatus(c))

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetStatus_ValidationErrorIsBadRequest(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockUC := mocks.NewMockDriverUC(ctrl)
	h := NewDriverHandler(mockUC)

	c, rec, _ := testContext(t, http.MethodPut, "/drivers/status", `{"is_online":true}`)

	mockUC.EXPECT().
		SetStatus(gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	// Act
	require.NoError(t, h.SetStatus(c))

	// Assert: a rejected status change maps to 400, not 500
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetStatus_MissingSessionIsUnauthorized(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	h := NewDriverHandler(mocks.NewMockDriverUC(ctrl))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/drivers/status", strings.NewReader(`{"is_online":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Act
	require.NoError(t, h.SetStatus(c))

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

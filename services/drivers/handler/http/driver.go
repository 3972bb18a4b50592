package http

import (
	"net/http"

	"github.com/ecopath/dispatch/internal/pkg/middleware"
	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/ecopath/dispatch/internal/utils"
	"github.com/ecopath/dispatch/services/drivers"
	"github.com/labstack/echo/v4"
)

// DriverHandler exposes the driver pool REST endpoints
type DriverHandler struct {
	driverUC drivers.DriverUC
}

// NewDriverHandler creates a new driver handler
func NewDriverHandler(driverUC drivers.DriverUC) *DriverHandler {
	return &DriverHandler{driverUC: driverUC}
}

// RegisterRoutes registers the driver endpoints on the authenticated group
func (h *DriverHandler) RegisterRoutes(g *echo.Group) {
	g.PUT("/drivers/status", h.SetStatus)
	g.PUT("/drivers/location", h.UpdateLocation)
	g.GET("/drivers/me", h.GetDriver)
}

// SetStatus handles a driver going online or offline
func (h *DriverHandler) SetStatus(c echo.Context) error {
	driverID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "invalid session")
	}

	var req models.DriverStatusRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request format")
	}
	req.DriverID = driverID.String()

	driver, err := h.driverUC.SetStatus(c.Request().Context(), req)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Driver status updated", driver)
}

// UpdateLocation handles a driver location beacon
func (h *DriverHandler) UpdateLocation(c echo.Context) error {
	driverID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "invalid session")
	}

	var req models.DriverLocationRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request format")
	}
	req.DriverID = driverID.String()

	if err := h.driverUC.UpdateLocation(c.Request().Context(), req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Location updated", nil)
}

// GetDriver returns the caller's availability record
func (h *DriverHandler) GetDriver(c echo.Context) error {
	driverID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "invalid session")
	}

	driver, err := h.driverUC.GetDriver(c.Request().Context(), driverID.String())
	if err != nil {
		return utils.NotFoundResponse(c, "driver not found")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Driver retrieved", driver)
}

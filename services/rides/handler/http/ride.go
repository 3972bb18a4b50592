package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ecopath/dispatch/internal/pkg/middleware"
	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/ecopath/dispatch/internal/utils"
	"github.com/ecopath/dispatch/services/rides"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RideHandler exposes the ride lifecycle REST endpoints
type RideHandler struct {
	rideUC rides.RideUC
}

// NewRideHandler creates a new ride handler
func NewRideHandler(rideUC rides.RideUC) *RideHandler {
	return &RideHandler{rideUC: rideUC}
}

// RegisterRoutes registers the ride endpoints on the authenticated group
func (h *RideHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/rides", h.RequestRide)
	g.GET("/rides", h.ListRides)
	g.GET("/rides/:id", h.GetRide)
	g.POST("/rides/:id/accept", h.AcceptRide)
	g.POST("/rides/:id/arrive", h.ArriveRide)
	g.POST("/rides/:id/start", h.StartRide)
	g.POST("/rides/:id/complete", h.CompleteRide)
	g.POST("/rides/:id/cancel", h.CancelRide)
	g.POST("/rides/:id/rating", h.RateRide)
}

// RequestRide handles a new ride request from a passenger
func (h *RideHandler) RequestRide(c echo.Context) error {
	passengerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "invalid session")
	}

	var req models.RideCreateRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request format")
	}
	req.PassengerID = passengerID.String()

	ride, err := h.rideUC.RequestRide(c.Request().Context(), req)
	if err != nil {
		return rideErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Ride requested", ride)
}

// GetRide returns a single ride
func (h *RideHandler) GetRide(c echo.Context) error {
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid ride ID")
	}

	ride, err := h.rideUC.GetRide(c.Request().Context(), rideID)
	if err != nil {
		return rideErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ride retrieved", ride)
}

// ListRides returns the caller's ride history
func (h *RideHandler) ListRides(c echo.Context) error {
	actorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "invalid session")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.rideUC.ListRides(c.Request().Context(), actorID, limit)
	if err != nil {
		return rideErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Rides retrieved", result)
}

// AcceptRide handles a driver claiming a pending ride
func (h *RideHandler) AcceptRide(c echo.Context) error {
	driverID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "invalid session")
	}
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid ride ID")
	}

	ride, err := h.rideUC.AcceptRide(c.Request().Context(), rideID, driverID)
	if err != nil {
		return rideErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ride accepted", ride)
}

// ArriveRide handles the assigned driver announcing arrival
func (h *RideHandler) ArriveRide(c echo.Context) error {
	driverID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "invalid session")
	}
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid ride ID")
	}

	ride, err := h.rideUC.ArriveRide(c.Request().Context(), rideID, driverID)
	if err != nil {
		return rideErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Driver arriving", ride)
}

// StartRide handles the assigned driver starting the trip
func (h *RideHandler) StartRide(c echo.Context) error {
	driverID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "invalid session")
	}
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid ride ID")
	}

	ride, err := h.rideUC.StartRide(c.Request().Context(), rideID, driverID)
	if err != nil {
		return rideErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ride started", ride)
}

// CompleteRide handles the assigned driver completing the trip
func (h *RideHandler) CompleteRide(c echo.Context) error {
	driverID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "invalid session")
	}

	var req models.RideCompleteRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request format")
	}
	req.RideID = c.Param("id")
	req.DriverID = driverID.String()

	ride, err := h.rideUC.CompleteRide(c.Request().Context(), req)
	if err != nil {
		return rideErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ride completed", ride)
}

// CancelRide handles a cancellation by the passenger or assigned driver
func (h *RideHandler) CancelRide(c echo.Context) error {
	actorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "invalid session")
	}

	var req models.RideCancelRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request format")
	}
	req.RideID = c.Param("id")
	req.ActorID = actorID.String()

	ride, err := h.rideUC.CancelRide(c.Request().Context(), req)
	if err != nil {
		return rideErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ride cancelled", ride)
}

// RateRide handles a post-completion rating submission
func (h *RideHandler) RateRide(c echo.Context) error {
	raterID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "invalid session")
	}

	var req models.RideRatingRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request format")
	}
	req.RideID = c.Param("id")

	ride, err := h.rideUC.RateRide(c.Request().Context(), raterID, req)
	if err != nil {
		return rideErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ride rated", ride)
}

// rideErrorResponse maps the business error taxonomy onto HTTP statuses
func rideErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, rides.ErrValidation):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, rides.ErrForbidden):
		return utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, rides.ErrRideNotFound):
		return utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, rides.ErrRideUnavailable),
		errors.Is(err, rides.ErrDriverNotAvailable),
		errors.Is(err, rides.ErrInvalidTransition),
		errors.Is(err, rides.ErrAlreadyRated):
		return utils.ConflictResponse(c, err.Error())
	default:
		return utils.InternalServerErrorResponse(c, "internal error")
	}
}

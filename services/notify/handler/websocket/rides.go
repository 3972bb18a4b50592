package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ecopath/dispatch/internal/pkg/constants"
	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/ecopath/dispatch/services/rides"
	"github.com/google/uuid"
)

// rideActionPayload identifies the ride a driver-side event acts on
type rideActionPayload struct {
	RideID string `json:"ride_id"`
}

// handleRideRequest processes a ride request submitted over the socket
func (m *WebSocketManager) handleRideRequest(client *models.WebSocketClient, data json.RawMessage) error {
	var req models.RideCreateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return m.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "Invalid ride request format")
	}
	req.PassengerID = client.UserID

	ride, err := m.rideUC.RequestRide(context.Background(), req)
	if err != nil {
		return m.sendRideError(client, err)
	}

	return m.manager.SendMessage(client, constants.EventRideRequest, ride)
}

// handleAcceptRide processes a driver claiming an offered ride. The usecase
// resolves the race; a loser gets a ride-taken notice right here instead of
// an error.
func (m *WebSocketManager) handleAcceptRide(client *models.WebSocketClient, data json.RawMessage) error {
	rideID, driverID, err := m.parseRideAction(client, data)
	if err != nil {
		return m.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "Invalid accept payload")
	}

	ride, err := m.rideUC.AcceptRide(context.Background(), rideID, driverID)
	if err != nil {
		if errors.Is(err, rides.ErrRideUnavailable) || errors.Is(err, rides.ErrDriverNotAvailable) {
			return m.manager.SendMessage(client, constants.EventRideTaken, rideActionPayload{RideID: rideID.String()})
		}
		return m.sendRideError(client, err)
	}

	return m.manager.SendMessage(client, constants.EventRideAccepted, ride)
}

// handleArriveRide processes a driver announcing arrival at the pickup
func (m *WebSocketManager) handleArriveRide(client *models.WebSocketClient, data json.RawMessage) error {
	rideID, driverID, err := m.parseRideAction(client, data)
	if err != nil {
		return m.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "Invalid arrive payload")
	}

	ride, err := m.rideUC.ArriveRide(context.Background(), rideID, driverID)
	if err != nil {
		return m.sendRideError(client, err)
	}

	return m.manager.SendMessage(client, constants.EventDriverArriving, ride)
}

// handleStartRide processes a driver starting the trip
func (m *WebSocketManager) handleStartRide(client *models.WebSocketClient, data json.RawMessage) error {
	rideID, driverID, err := m.parseRideAction(client, data)
	if err != nil {
		return m.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "Invalid start payload")
	}

	ride, err := m.rideUC.StartRide(context.Background(), rideID, driverID)
	if err != nil {
		return m.sendRideError(client, err)
	}

	return m.manager.SendMessage(client, constants.EventRideStarted, ride)
}

// handleCompleteRide processes a driver completing the trip
func (m *WebSocketManager) handleCompleteRide(client *models.WebSocketClient, data json.RawMessage) error {
	var req models.RideCompleteRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return m.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "Invalid complete payload")
	}
	req.DriverID = client.UserID

	ride, err := m.rideUC.CompleteRide(context.Background(), req)
	if err != nil {
		return m.sendRideError(client, err)
	}

	return m.manager.SendMessage(client, constants.EventRideCompleted, ride)
}

// handleCancelRide processes a cancellation from either party
func (m *WebSocketManager) handleCancelRide(client *models.WebSocketClient, data json.RawMessage) error {
	var req models.RideCancelRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return m.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "Invalid cancel payload")
	}
	req.ActorID = client.UserID

	ride, err := m.rideUC.CancelRide(context.Background(), req)
	if err != nil {
		return m.sendRideError(client, err)
	}

	return m.manager.SendMessage(client, constants.EventRideCancelled, ride)
}

// parseRideAction extracts the ride ID from a driver action payload
func (m *WebSocketManager) parseRideAction(client *models.WebSocketClient, data json.RawMessage) (uuid.UUID, uuid.UUID, error) {
	var payload rideActionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	rideID, err := uuid.Parse(payload.RideID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	driverID, err := uuid.Parse(client.UserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return rideID, driverID, nil
}

// sendRideError maps lifecycle errors onto websocket error codes
func (m *WebSocketManager) sendRideError(client *models.WebSocketClient, err error) error {
	switch {
	case errors.Is(err, rides.ErrValidation):
		return m.manager.SendErrorMessage(client, constants.ErrorValidationFailed, err.Error())
	case errors.Is(err, rides.ErrForbidden):
		return m.manager.SendErrorMessage(client, constants.ErrorUnauthorized, err.Error())
	case errors.Is(err, rides.ErrRideUnavailable),
		errors.Is(err, rides.ErrDriverNotAvailable),
		errors.Is(err, rides.ErrInvalidTransition),
		errors.Is(err, rides.ErrAlreadyRated):
		return m.manager.SendErrorMessage(client, constants.ErrorRideUnavailable, err.Error())
	default:
		return m.manager.SendErrorMessage(client, constants.ErrorInternalError, "internal error")
	}
}

package websocket

import (
	"context"
	"encoding/json"

	"github.com/ecopath/dispatch/internal/pkg/constants"
	"github.com/ecopath/dispatch/internal/pkg/models"
)

// handleBeaconUpdate processes a driver position beacon
func (m *WebSocketManager) handleBeaconUpdate(client *models.WebSocketClient, data json.RawMessage) error {
	var location models.Location
	if err := json.Unmarshal(data, &location); err != nil {
		return m.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "Invalid beacon format")
	}

	req := models.DriverLocationRequest{
		DriverID: client.UserID,
		Location: location,
	}
	if err := m.driverUC.UpdateLocation(context.Background(), req); err != nil {
		return m.manager.SendErrorMessage(client, constants.ErrorValidationFailed, err.Error())
	}

	return nil
}

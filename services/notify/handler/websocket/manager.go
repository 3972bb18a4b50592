package websocket

import (
	"encoding/json"

	"github.com/ecopath/dispatch/internal/pkg/constants"
	"github.com/ecopath/dispatch/internal/pkg/logger"
	"github.com/ecopath/dispatch/internal/pkg/models"
	pkgws "github.com/ecopath/dispatch/internal/pkg/websocket"
	"github.com/ecopath/dispatch/services/drivers"
	"github.com/ecopath/dispatch/services/rides"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// WebSocketManager is the interactive side of the dispatch channel: it keeps
// passenger and driver sessions registered and translates their messages into
// lifecycle operations.
type WebSocketManager struct {
	rideUC   rides.RideUC
	driverUC drivers.DriverUC
	manager  *pkgws.Manager
}

// NewWebSocketManager creates a new WebSocket manager for the notify service
func NewWebSocketManager(
	rideUC rides.RideUC,
	driverUC drivers.DriverUC,
	manager *pkgws.Manager,
) *WebSocketManager {
	return &WebSocketManager{
		rideUC:   rideUC,
		driverUC: driverUC,
		manager:  manager,
	}
}

// HandleWebSocket handles new WebSocket connections
func (m *WebSocketManager) HandleWebSocket(c echo.Context) error {
	return m.manager.HandleConnection(c, m.handleClientConnection)
}

// handleClientConnection manages the client's WebSocket connection
func (m *WebSocketManager) handleClientConnection(client *models.WebSocketClient, ws *websocket.Conn) error {
	client.Conn = ws
	m.manager.AddClient(client)
	defer m.manager.RemoveClient(client.UserID)

	return m.messageLoop(client)
}

// messageLoop handles incoming WebSocket messages
func (m *WebSocketManager) messageLoop(client *models.WebSocketClient) error {
	for {
		_, msg, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error",
					logger.String("user_id", client.UserID),
					logger.Err(err))
			}
			return err
		}

		if err := m.handleMessage(client, msg); err != nil {
			logger.Warn("Error handling websocket message",
				logger.String("user_id", client.UserID),
				logger.Err(err))
		}
	}
}

// NotifyClient forwards an event to a connected client
func (m *WebSocketManager) NotifyClient(userID string, event string, data interface{}) {
	m.manager.NotifyClient(userID, event, data)
}

// NotifyGroup forwards the same event to every recipient in the group
func (m *WebSocketManager) NotifyGroup(userIDs []string, event string, data interface{}) {
	m.manager.NotifyGroup(userIDs, event, data)
}

// handleMessage routes an incoming message to its event handler
func (m *WebSocketManager) handleMessage(client *models.WebSocketClient, msg []byte) error {
	var wsMsg models.WSMessage
	if err := json.Unmarshal(msg, &wsMsg); err != nil {
		return m.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "Invalid message format")
	}

	switch wsMsg.Event {
	case constants.EventRideRequest:
		return m.handleRideRequest(client, wsMsg.Data)
	case constants.EventAcceptRide:
		return m.handleAcceptRide(client, wsMsg.Data)
	case constants.EventArriveRide:
		return m.handleArriveRide(client, wsMsg.Data)
	case constants.EventStartRide:
		return m.handleStartRide(client, wsMsg.Data)
	case constants.EventCompleteRide:
		return m.handleCompleteRide(client, wsMsg.Data)
	case constants.EventCancelRide:
		return m.handleCancelRide(client, wsMsg.Data)
	case constants.EventBeaconUpdate:
		return m.handleBeaconUpdate(client, wsMsg.Data)
	default:
		return m.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "Unknown event type")
	}
}

package nats

import (
	"encoding/json"
	"fmt"

	"github.com/ecopath/dispatch/internal/pkg/constants"
	"github.com/ecopath/dispatch/internal/pkg/logger"
	"github.com/ecopath/dispatch/internal/pkg/models"
)

// handleRideEvent forwards one lifecycle event to the sessions it concerns.
// Events arrive on a single subject in publish order and each session writes
// through a serialized writer, so every recipient sees its events in order.
func (h *NatsHandler) handleRideEvent(msg []byte) error {
	var event models.RideEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to unmarshal ride event: %w", err)
	}

	logger.Debug("Forwarding ride event",
		logger.String("type", string(event.Type)),
		logger.String("ride_id", event.RequestID))

	switch event.Type {
	case models.RideEventOffered:
		// Every candidate gets the offer; first to accept wins.
		h.wsManager.NotifyGroup(event.CandidateIDs, constants.EventNewRideRequest, event)

	case models.RideEventNoDrivers:
		h.wsManager.NotifyClient(event.PassengerID, constants.EventNoDrivers, event)

	case models.RideEventAccepted:
		h.wsManager.NotifyClient(event.PassengerID, constants.EventRideAccepted, event)
		// Candidates who lost the race learn the ride is gone.
		h.wsManager.NotifyGroup(event.CandidateIDs, constants.EventRideTaken, event)

	case models.RideEventArriving:
		h.wsManager.NotifyClient(event.PassengerID, constants.EventDriverArriving, event)

	case models.RideEventStarted:
		h.wsManager.NotifyClient(event.PassengerID, constants.EventRideStarted, event)

	case models.RideEventCompleted:
		h.wsManager.NotifyClient(event.PassengerID, constants.EventRideCompleted, event)

	case models.RideEventCancelled:
		h.wsManager.NotifyClient(event.PassengerID, constants.EventRideCancelled, event)
		if event.DriverID != "" {
			h.wsManager.NotifyClient(event.DriverID, constants.EventRideCancelled, event)
		}

	default:
		logger.Warn("Unknown ride event type",
			logger.String("type", string(event.Type)))
	}

	return nil
}

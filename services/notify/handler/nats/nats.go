package nats

import (
	"github.com/ecopath/dispatch/internal/pkg/constants"
	"github.com/ecopath/dispatch/internal/pkg/logger"
	natspkg "github.com/ecopath/dispatch/internal/pkg/nats"
	wsHandler "github.com/ecopath/dispatch/services/notify/handler/websocket"
	"github.com/nats-io/nats.go"
)

// NatsHandler consumes the lifecycle event stream and fans each event out to
// the connected sessions it concerns
type NatsHandler struct {
	wsManager  *wsHandler.WebSocketManager
	natsClient *natspkg.Client
	subs       []*nats.Subscription
}

// NewNatsHandler creates a new NATS handler
func NewNatsHandler(wsManager *wsHandler.WebSocketManager, natsClient *natspkg.Client) *NatsHandler {
	return &NatsHandler{
		wsManager:  wsManager,
		natsClient: natsClient,
	}
}

// InitConsumers subscribes to the dispatch subjects
func (h *NatsHandler) InitConsumers() error {
	rideSub, err := h.natsClient.Subscribe(constants.SubjectRideEvents, func(msg *nats.Msg) {
		if err := h.handleRideEvent(msg.Data); err != nil {
			logger.Warn("Error handling ride event",
				logger.Err(err))
		}
	})
	if err != nil {
		return err
	}
	h.subs = append(h.subs, rideSub)

	return nil
}

// Stop unsubscribes all consumers
func (h *NatsHandler) Stop() {
	for _, sub := range h.subs {
		_ = sub.Unsubscribe()
	}
	h.subs = nil
}

package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecopath/dispatch/internal/pkg/constants"
	natspkg "github.com/ecopath/dispatch/internal/pkg/nats"
	"github.com/ecopath/dispatch/internal/pkg/models"
)

// RideGW publishes ride lifecycle events to NATS. All lifecycle events share
// one subject so consumers observe them in publish order.
type RideGW struct {
	natsClient *natspkg.Client
}

// NewRideGW creates a new ride gateway
func NewRideGW(natsClient *natspkg.Client) *RideGW {
	return &RideGW{natsClient: natsClient}
}

// PublishRideEvent publishes a lifecycle event on the ride events subject
func (g *RideGW) PublishRideEvent(ctx context.Context, event models.RideEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ride event: %w", err)
	}
	return g.natsClient.Publish(constants.SubjectRideEvents, data)
}

// PublishSettlement publishes a settlement intent for the billing service
func (g *RideGW) PublishSettlement(ctx context.Context, event models.SettlementEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal settlement event: %w", err)
	}
	return g.natsClient.Publish(constants.SubjectRideSettlement, data)
}

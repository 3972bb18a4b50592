package rides

import (
	"context"

	"github.com/ecopath/dispatch/internal/pkg/models"
)

// RideGW defines the interface for publishing ride lifecycle events
type RideGW interface {
	PublishRideEvent(ctx context.Context, event models.RideEvent) error
	PublishSettlement(ctx context.Context, event models.SettlementEvent) error
}

package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecopath/dispatch/internal/pkg/constants"
	natspkg "github.com/ecopath/dispatch/internal/pkg/nats"
)

// DriverGW publishes driver pool changes to NATS
type DriverGW struct {
	natsClient *natspkg.Client
}

// NewDriverGW creates a new driver gateway
func NewDriverGW(natsClient *natspkg.Client) *DriverGW {
	return &DriverGW{natsClient: natsClient}
}

type driverStatusEvent struct {
	DriverID    string    `json:"driver_id"`
	IsOnline    bool      `json:"is_online"`
	IsAvailable bool      `json:"is_available"`
	Timestamp   time.Time `json:"timestamp"`
}

// PublishDriverStatus publishes a driver pool membership change
func (g *DriverGW) PublishDriverStatus(ctx context.Context, driverID string, online bool, available bool) error {
	event := driverStatusEvent{
		DriverID:    driverID,
		IsOnline:    online,
		IsAvailable: available,
		Timestamp:   time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return g.natsClient.Publish(constants.SubjectDriverStatus, data)
}

package drivers

import (
	"context"
)

// DriverGW defines the driver gateway interface
type DriverGW interface {
	PublishDriverStatus(ctx context.Context, driverID string, online, available bool) error
}

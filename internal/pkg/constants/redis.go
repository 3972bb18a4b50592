package constants

// Redis key formats
const (
	// Driver pool
	KeyDriverGeo        = "drivers:geo:%s"      // Format: drivers:geo:{vehicle_class}
	KeyAvailableDrivers = "drivers:available"   // Set of available driver IDs
	KeyDriverLocation   = "driver:location:%s"  // Format: driver:location:{driver_id}

	// Dispatch
	KeyRideCandidates = "ride:candidates:%s" // Format: ride:candidates:{ride_id}
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldTimestamp = "ts"
)

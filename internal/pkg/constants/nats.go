package constants

// NATS subjects
const (
	// All ride lifecycle events share one subject so per-recipient delivery
	// order matches emission order for a given ride.
	SubjectRideEvents = "ride.events"

	// Settlement intents for the billing service
	SubjectRideSettlement = "ride.settlement"

	// Driver availability changes from the directory path
	SubjectDriverStatus = "driver.status"
)

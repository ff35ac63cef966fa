package outbox

const (
	EventBookingCreated   = "booking.created.v1"
	EventBookingCancelled = "booking.cancelled.v1"
)

// Event is a domain event staged in the same transaction as the state change
// it describes, and published to Kafka asynchronously.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

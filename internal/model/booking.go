package model

import "time"

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking is one user's reservation of a time slot on a calendar date for a
// space. Bookings are append-only; cancellation flips Status once and sets
// CancelledAt, the row is never deleted or re-activated.
type Booking struct {
	ID            string
	SpaceID       string
	UserID        string
	SpaceName     string
	SpaceLocation string
	BookingDate   string // YYYY-MM-DD in the service's configured location
	SlotLabel     string
	Price         int
	Status        string
	CreatedAt     time.Time
	CancelledAt   *time.Time
}

func (b Booking) Cancelled() bool {
	return b.Status == StatusCancelled
}

package schedule

import (
	"errors"
	"strings"
	"time"

	"github.com/studyspot/studyspot/internal/model"
)

var (
	ErrSelectionIncomplete = errors.New("date and time slot are required")
	ErrDuplicateBooking    = errors.New("already booked for this date and time slot")
	ErrSlotElapsed         = errors.New("time slot has already passed")
)

// CheckBooking is the single decision point before a new booking is
// persisted. Checks run in order and short-circuit: incomplete selection,
// duplicate against the user's existing bookings, then elapsed slot. A nil
// result means the caller may construct and append the booking.
func CheckBooking(bookings []model.Booking, slot model.TimeSlot, date string, now time.Time) error {
	if strings.TrimSpace(date) == "" || strings.TrimSpace(slot.Label) == "" {
		return ErrSelectionIncomplete
	}
	if IsSlotBooked(bookings, date, slot.Label) {
		return ErrDuplicateBooking
	}
	if IsSlotTimePast(slot, date, now) {
		return ErrSlotElapsed
	}
	return nil
}

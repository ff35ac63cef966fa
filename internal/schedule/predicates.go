package schedule

import (
	"time"

	"github.com/studyspot/studyspot/internal/model"
)

// IsSlotBooked reports whether some non-cancelled booking holds exactly this
// date and slot label. Identity is exact string equality on both fields;
// this check is about duplicate identity, not time, so it never decays.
func IsSlotBooked(bookings []model.Booking, date, slotLabel string) bool {
	for _, b := range bookings {
		if b.Cancelled() {
			continue
		}
		if b.BookingDate == date && b.SlotLabel == slotLabel {
			return true
		}
	}
	return false
}

// HasBookingOnDate reports whether the user still "has something" on the
// date: a non-cancelled booking whose resolved end instant is in the future.
// A booking whose slot definition is missing from the catalog, or whose end
// cannot be resolved, occupies the whole calendar day instead. Unlike
// IsSlotBooked this indicator decays once the session has actually ended.
func HasBookingOnDate(bookings []model.Booking, slots []model.TimeSlot, date string, now time.Time) bool {
	for _, b := range bookings {
		if b.Cancelled() || b.BookingDate != date {
			continue
		}

		end := time.Time{}
		if slot, ok := slotByLabel(slots, b.SlotLabel); ok {
			end = Resolve(date, slot, now.Location()).End
		}
		if end.IsZero() {
			end = endOfDay(date, now.Location())
		}
		if end.IsZero() {
			// Date not even parseable: cannot determine, assume not past.
			return true
		}
		if end.After(now) {
			return true
		}
	}
	return false
}

// IsPastDate reports whether the date's midnight is strictly before today's
// midnight. An unparseable date never counts as past.
func IsPastDate(date string, now time.Time) bool {
	day, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.Before(today)
}

func IsToday(date string, now time.Time) bool {
	return date == now.Format(DateLayout)
}

// IsSlotTimePast reports whether the slot's instant has already elapsed.
// Only today's slots are ever graded by time of day; for any other date the
// answer is false regardless of the clock (past dates are a separate check).
// The end instant is preferred, falling back to the start when no end
// resolves; nothing resolvable means the slot cannot be blocked.
func IsSlotTimePast(slot model.TimeSlot, date string, now time.Time) bool {
	if !IsToday(date, now) {
		return false
	}
	w := Resolve(date, slot, now.Location())
	instant := w.End
	if instant.IsZero() {
		instant = w.Start
	}
	if instant.IsZero() {
		return false
	}
	return !instant.After(now)
}

func slotByLabel(slots []model.TimeSlot, label string) (model.TimeSlot, bool) {
	for _, s := range slots {
		if s.Label == label {
			return s, true
		}
	}
	return model.TimeSlot{}, false
}

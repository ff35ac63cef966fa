package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/studyspot/studyspot/internal/model"
)

func TestCheckBookingRejectsIncompleteSelection(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	if err := CheckBooking(nil, morningSlot, "", now); !errors.Is(err, ErrSelectionIncomplete) {
		t.Fatalf("missing date: got %v", err)
	}
	if err := CheckBooking(nil, model.TimeSlot{}, "2024-06-10", now); !errors.Is(err, ErrSelectionIncomplete) {
		t.Fatalf("missing slot: got %v", err)
	}
}

func TestCheckBookingRejectsDuplicate(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	existing := []model.Booking{confirmed("2024-06-10", "9:00 AM - 1:00 PM")}

	err := CheckBooking(existing, morningSlot, "2024-06-10", now)
	if !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("identical (date, slot): got %v", err)
	}

	afternoon := model.TimeSlot{Label: "2:00 PM - 6:00 PM", Start: "14:00", End: "18:00"}
	if err := CheckBooking(existing, afternoon, "2024-06-10", now); err != nil {
		t.Fatalf("different slot on the same date should pass: got %v", err)
	}
}

func TestCheckBookingRejectsElapsedSlot(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

	err := CheckBooking(nil, morningSlot, "2024-06-10", now)
	if !errors.Is(err, ErrSlotElapsed) {
		t.Fatalf("elapsed slot today: got %v", err)
	}

	// Same slot tomorrow is fine; time-of-day only grades today.
	if err := CheckBooking(nil, morningSlot, "2024-06-11", now); err != nil {
		t.Fatalf("tomorrow: got %v", err)
	}
}

func TestCheckBookingDuplicateWinsOverElapsed(t *testing.T) {
	// Both rejections apply; the duplicate check runs first.
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	existing := []model.Booking{confirmed("2024-06-10", morningSlot.Label)}

	err := CheckBooking(existing, morningSlot, "2024-06-10", now)
	if !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("expected duplicate to short-circuit, got %v", err)
	}
}

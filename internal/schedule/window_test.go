package schedule

import (
	"testing"
	"time"

	"github.com/studyspot/studyspot/internal/model"
)

func TestParseClockText(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"9am", 9, 0, true},
		{"1pm", 13, 0, true},
		{"12pm", 12, 0, true},
		{"12am", 0, 0, true},
		{"13:30", 13, 30, true},
		{"9:05 PM", 21, 5, true},
		{"  7 ", 7, 0, true},
		{"noon", 0, 0, false},
		{"", 0, 0, false},
		{"25:00", 0, 0, false},
		{"9:61", 0, 0, false},
	}
	for _, tc := range cases {
		hour, minute, ok := parseClockText(tc.in)
		if ok != tc.ok || hour != tc.hour || minute != tc.minute {
			t.Errorf("parseClockText(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tc.in, hour, minute, ok, tc.hour, tc.minute, tc.ok)
		}
	}
}

func TestResolveStructured(t *testing.T) {
	loc := time.UTC
	slot := model.TimeSlot{Label: "9:00 AM - 1:00 PM", Start: "09:00", End: "13:00"}

	w := Resolve("2024-06-10", slot, loc)
	if !w.Start.Equal(time.Date(2024, 6, 10, 9, 0, 0, 0, loc)) {
		t.Fatalf("start = %s", w.Start)
	}
	if !w.End.Equal(time.Date(2024, 6, 10, 13, 0, 0, 0, loc)) {
		t.Fatalf("end = %s", w.End)
	}
}

func TestResolveOvernight(t *testing.T) {
	loc := time.UTC
	slot := model.TimeSlot{Label: "10:00 PM - 2:00 AM", Start: "22:00", End: "02:00"}

	w := Resolve("2024-06-10", slot, loc)
	naive := time.Date(2024, 6, 10, 2, 0, 0, 0, loc)
	if got := w.End.Sub(naive); got != 24*time.Hour {
		t.Fatalf("overnight end should be exactly 24h after the naive end, got %s", got)
	}
}

func TestResolveLabelFallback(t *testing.T) {
	loc := time.UTC

	w := Resolve("2024-06-10", model.TimeSlot{Label: "9am-1pm"}, loc)
	if w.Start.Hour() != 9 || w.Start.Minute() != 0 {
		t.Fatalf("start = %s", w.Start)
	}
	if w.End.Hour() != 13 || w.End.Minute() != 0 {
		t.Fatalf("end = %s", w.End)
	}

	// A label with no separator only has a start.
	w = Resolve("2024-06-10", model.TimeSlot{Label: "13:30"}, loc)
	if w.Start.Hour() != 13 || w.Start.Minute() != 30 {
		t.Fatalf("start = %s", w.Start)
	}
	if !w.End.IsZero() {
		t.Fatalf("end should be unresolved, got %s", w.End)
	}

	// No leading digit on either side.
	w = Resolve("2024-06-10", model.TimeSlot{Label: "noon"}, loc)
	if !w.Start.IsZero() || !w.End.IsZero() {
		t.Fatalf("expected fully unresolved window, got %+v", w)
	}
}

func TestResolveBadDate(t *testing.T) {
	slot := model.TimeSlot{Label: "9:00 AM - 1:00 PM", Start: "09:00", End: "13:00"}
	w := Resolve("not-a-date", slot, time.UTC)
	if !w.Start.IsZero() || !w.End.IsZero() {
		t.Fatalf("expected zero window for unparseable date, got %+v", w)
	}
}

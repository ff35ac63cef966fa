// Package schedule decides whether a (space, date, time slot) combination is
// bookable. Every function is a pure computation over its inputs: callers
// snapshot "now" once and thread it through, so two checks in the same
// logical evaluation never observe different clocks.
package schedule

import (
	"strings"
	"time"

	"github.com/studyspot/studyspot/internal/model"
)

const DateLayout = "2006-01-02"

// Window is a slot resolved onto a concrete calendar date. A zero Start or
// End means that side could not be parsed; that is a recoverable result, not
// an error, and callers fall back to whichever permissive branch applies.
type Window struct {
	Start time.Time
	End   time.Time
}

// Resolve places a slot's start and end onto the given calendar date in loc.
// Structured HH:MM fields are preferred; any side they cannot supply is
// parsed out of the display label ("<start>[ - <end>]"). When both sides
// resolve and the end does not follow the start, the slot runs overnight and
// the end advances one calendar day.
func Resolve(date string, slot model.TimeSlot, loc *time.Location) Window {
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return Window{}
	}

	start := clockOnDay(day, slot.Start)
	end := clockOnDay(day, slot.End)

	if start.IsZero() || end.IsZero() {
		startText, endText := splitLabel(slot.Label)
		if start.IsZero() {
			start = textClockOnDay(day, startText)
		}
		if end.IsZero() {
			end = textClockOnDay(day, endText)
		}
	}

	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return Window{Start: start, End: end}
}

// clockOnDay resolves a strict 24-hour "HH:MM" onto day, or zero.
func clockOnDay(day time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}

func textClockOnDay(day time.Time, text string) time.Time {
	hour, minute, ok := parseClockText(text)
	if !ok {
		return time.Time{}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// parseClockText reads a loose clock time: a leading integer hour, an
// optional ":mm", and an optional am/pm suffix (case-insensitive). Anything
// without a leading digit ("noon") is unparseable.
func parseClockText(text string) (hour, minute int, ok bool) {
	s := strings.ToLower(strings.TrimSpace(text))

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		hour = hour*10 + int(s[i]-'0')
		i++
	}
	if i == 0 {
		return 0, 0, false
	}

	if i < len(s) && s[i] == ':' {
		i++
		j := i
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			minute = minute*10 + int(s[j]-'0')
			j++
		}
		if j == i {
			return 0, 0, false
		}
		i = j
	}

	rest := strings.TrimSpace(s[i:])
	switch {
	case strings.HasPrefix(rest, "pm"):
		if hour != 12 {
			hour += 12
		}
	case strings.HasPrefix(rest, "am"):
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// splitLabel breaks "9:00 AM - 1:00 PM" (or "9am-1pm") into its two sides.
// A label with no separator has only a start.
func splitLabel(label string) (start, end string) {
	parts := strings.SplitN(label, "-", 2)
	start = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		end = strings.TrimSpace(parts[1])
	}
	return start, end
}

// endOfDay is the whole-day fallback instant: the last representable
// millisecond of the date in loc. Zero if the date cannot be parsed.
func endOfDay(date string, loc *time.Location) time.Time {
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}
	}
	return day.AddDate(0, 0, 1).Add(-time.Millisecond)
}

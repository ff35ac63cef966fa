package model

// TimeSlot is one bookable interval a space offers. Start and End are
// 24-hour wall-clock times (HH:MM) on whatever date the slot is booked for.
// End numerically at or before Start means the slot runs overnight into the
// next calendar day. The label is what gets stored on a booking.
type TimeSlot struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type Space struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	Price       int        `json:"price"`
	Hours       string     `json:"hours"`
	Description string     `json:"description"`
	Amenities   []string   `json:"amenities"`
	TimeSlots   []TimeSlot `json:"time_slots"`
}

// SlotByLabel looks up a slot definition by its stored label.
func (s Space) SlotByLabel(label string) (TimeSlot, bool) {
	for _, slot := range s.TimeSlots {
		if slot.Label == label {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

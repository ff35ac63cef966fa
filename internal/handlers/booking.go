package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studyspot/studyspot/internal/catalog"
	"github.com/studyspot/studyspot/internal/model"
	"github.com/studyspot/studyspot/internal/schedule"
	"github.com/studyspot/studyspot/internal/storage"
)

// BookingStore is what the handlers need from persistence. The availability
// engine itself never touches it; handlers load the relevant bookings and
// hand the engine plain slices.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	Cancel(ctx context.Context, userID, bookingID string) (model.Booking, error)
	ListForSpace(ctx context.Context, userID, spaceID string) ([]model.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]model.Booking, error)
}

type BookingHandler struct {
	store   BookingStore
	catalog *catalog.Catalog
	logger  *slog.Logger
	loc     *time.Location

	// now is the per-request clock snapshot source; tests pin it.
	now func() time.Time
}

func NewBookingHandler(store BookingStore, cat *catalog.Catalog, logger *slog.Logger, loc *time.Location) *BookingHandler {
	h := &BookingHandler{store: store, catalog: cat, logger: logger, loc: loc}
	h.now = func() time.Time { return time.Now().In(loc) }
	return h
}

type createBookingRequest struct {
	SpaceID     string `json:"space_id"`
	BookingDate string `json:"booking_date"`
	TimeSlot    string `json:"time_slot"`
}

type createBookingResponse struct {
	BookingID string `json:"booking_id"`
}

type cancelBookingRequest struct {
	BookingID string `json:"booking_id"`
}

type cancelBookingResponse struct {
	BookingID   string `json:"booking_id"`
	Status      string `json:"status"`
	CancelledAt string `json:"cancelled_at"`
}

type bookingItem struct {
	BookingID     string `json:"booking_id"`
	SpaceID       string `json:"space_id"`
	SpaceName     string `json:"space_name"`
	SpaceLocation string `json:"space_location"`
	BookingDate   string `json:"booking_date"`
	TimeSlot      string `json:"time_slot"`
	Price         int    `json:"price"`
	Status        string `json:"status"`
	State         string `json:"state"`
	CreatedAt     string `json:"created_at"`
	CancelledAt   string `json:"cancelled_at,omitempty"`
}

type slotItem struct {
	Label  string `json:"label"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Booked bool   `json:"booked"`
	Passed bool   `json:"passed"`
}

type calendarDay struct {
	Date       string `json:"date"`
	Day        int    `json:"day"`
	Weekday    string `json:"weekday"`
	Past       bool   `json:"past"`
	Today      bool   `json:"today"`
	Weekend    bool   `json:"weekend"`
	HasBooking bool   `json:"has_booking"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID := requestUserID(r)
	if userID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.SpaceID = strings.TrimSpace(req.SpaceID)
	req.BookingDate = strings.TrimSpace(req.BookingDate)
	req.TimeSlot = strings.TrimSpace(req.TimeSlot)

	if req.SpaceID == "" {
		http.Error(w, "space_id required", http.StatusBadRequest)
		return
	}
	space, ok := h.catalog.Get(req.SpaceID)
	if !ok {
		http.Error(w, "space not found", http.StatusNotFound)
		return
	}
	if req.BookingDate != "" {
		if _, err := time.ParseInLocation(schedule.DateLayout, req.BookingDate, h.loc); err != nil {
			http.Error(w, "booking_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	var slot model.TimeSlot
	if req.TimeSlot != "" {
		slot, ok = space.SlotByLabel(req.TimeSlot)
		if !ok {
			http.Error(w, "unknown time slot for this space", http.StatusBadRequest)
			return
		}
	}

	bookings, err := h.store.ListForSpace(r.Context(), userID, req.SpaceID)
	if err != nil {
		h.logger.Error("listing bookings failed", "err", err)
		http.Error(w, "failed to load bookings", http.StatusInternalServerError)
		return
	}

	now := h.now()
	if schedule.IsPastDate(req.BookingDate, now) {
		http.Error(w, "booking date has already passed", http.StatusUnprocessableEntity)
		return
	}
	if err := schedule.CheckBooking(bookings, slot, req.BookingDate, now); err != nil {
		switch {
		case errors.Is(err, schedule.ErrSelectionIncomplete):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, schedule.ErrDuplicateBooking):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, schedule.ErrSlotElapsed):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, "booking rejected", http.StatusUnprocessableEntity)
		}
		return
	}

	booking := &model.Booking{
		ID:            uuid.NewString(),
		SpaceID:       space.ID,
		UserID:        userID,
		SpaceName:     space.Name,
		SpaceLocation: space.Location,
		BookingDate:   req.BookingDate,
		SlotLabel:     slot.Label,
		Price:         space.Price,
		Status:        model.StatusConfirmed,
		CreatedAt:     now.UTC(),
	}
	if err := h.store.Create(r.Context(), booking); err != nil {
		h.logger.Error("booking create failed", "err", err)
		http.Error(w, "failed to create booking", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, createBookingResponse{BookingID: booking.ID})
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID := requestUserID(r)
	if userID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req cancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.BookingID = strings.TrimSpace(req.BookingID)
	if req.BookingID == "" {
		http.Error(w, "booking_id required", http.StatusBadRequest)
		return
	}

	booking, err := h.store.Cancel(r.Context(), userID, req.BookingID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "booking not found", http.StatusNotFound)
			return
		}
		h.logger.Error("booking cancel failed", "err", err)
		http.Error(w, "failed to cancel booking", http.StatusInternalServerError)
		return
	}

	resp := cancelBookingResponse{
		BookingID: booking.ID,
		Status:    booking.Status,
	}
	if booking.CancelledAt != nil {
		resp.CancelledAt = booking.CancelledAt.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID := requestUserID(r)
	if userID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	bookings, err := h.store.ListForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("listing bookings failed", "err", err)
		http.Error(w, "failed to list bookings", http.StatusInternalServerError)
		return
	}

	now := h.now()
	items := make([]bookingItem, 0, len(bookings))
	for _, b := range bookings {
		item := bookingItem{
			BookingID:     b.ID,
			SpaceID:       b.SpaceID,
			SpaceName:     b.SpaceName,
			SpaceLocation: b.SpaceLocation,
			BookingDate:   b.BookingDate,
			TimeSlot:      b.SlotLabel,
			Price:         b.Price,
			Status:        b.Status,
			State:         bookingState(b, now),
			CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
		}
		if b.CancelledAt != nil {
			item.CancelledAt = b.CancelledAt.UTC().Format(time.RFC3339)
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, items)
}

// Slots reports each of a space's slots for one date, flagged the way the
// booking form renders them: already booked by this user, or elapsed today.
func (h *BookingHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID := requestUserID(r)
	if userID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	spaceID := strings.TrimSpace(r.URL.Query().Get("space_id"))
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if spaceID == "" || date == "" {
		http.Error(w, "space_id and date are required", http.StatusBadRequest)
		return
	}
	space, ok := h.catalog.Get(spaceID)
	if !ok {
		http.Error(w, "space not found", http.StatusNotFound)
		return
	}
	if _, err := time.ParseInLocation(schedule.DateLayout, date, h.loc); err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	bookings, err := h.store.ListForSpace(r.Context(), userID, spaceID)
	if err != nil {
		h.logger.Error("listing bookings failed", "err", err)
		http.Error(w, "failed to load bookings", http.StatusInternalServerError)
		return
	}

	now := h.now()
	items := make([]slotItem, 0, len(space.TimeSlots))
	for _, slot := range space.TimeSlots {
		items = append(items, slotItem{
			Label:  slot.Label,
			Start:  slot.Start,
			End:    slot.End,
			Booked: schedule.IsSlotBooked(bookings, date, slot.Label),
			Passed: schedule.IsSlotTimePast(slot, date, now),
		})
	}
	writeJSON(w, http.StatusOK, items)
}

// Calendar returns the day grid for one month of one space, with the flags
// the calendar widget needs to gray out past days and dot booked ones.
func (h *BookingHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID := requestUserID(r)
	if userID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	spaceID := strings.TrimSpace(r.URL.Query().Get("space_id"))
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if spaceID == "" || month == "" {
		http.Error(w, "space_id and month are required", http.StatusBadRequest)
		return
	}
	space, ok := h.catalog.Get(spaceID)
	if !ok {
		http.Error(w, "space not found", http.StatusNotFound)
		return
	}
	monthStart, err := time.ParseInLocation("2006-01", month, h.loc)
	if err != nil {
		http.Error(w, "month must be YYYY-MM", http.StatusBadRequest)
		return
	}

	bookings, err := h.store.ListForSpace(r.Context(), userID, spaceID)
	if err != nil {
		h.logger.Error("listing bookings failed", "err", err)
		http.Error(w, "failed to load bookings", http.StatusInternalServerError)
		return
	}

	now := h.now()
	var days []calendarDay
	for d := monthStart; d.Month() == monthStart.Month(); d = d.AddDate(0, 0, 1) {
		date := d.Format(schedule.DateLayout)
		days = append(days, calendarDay{
			Date:       date,
			Day:        d.Day(),
			Weekday:    d.Weekday().String(),
			Past:       schedule.IsPastDate(date, now),
			Today:      schedule.IsToday(date, now),
			Weekend:    d.Weekday() == time.Saturday || d.Weekday() == time.Sunday,
			HasBooking: schedule.HasBookingOnDate(bookings, space.TimeSlots, date, now),
		})
	}
	writeJSON(w, http.StatusOK, days)
}

// bookingState mirrors the dashboard's section split: cancelled bookings stay
// cancelled; everything else is past once its date's end of day has gone by.
func bookingState(b model.Booking, now time.Time) string {
	if b.Cancelled() {
		return "cancelled"
	}
	if schedule.IsPastDate(b.BookingDate, now) {
		return "past"
	}
	return "upcoming"
}

func requestUserID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}

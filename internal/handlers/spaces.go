package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/studyspot/studyspot/internal/catalog"
	"github.com/studyspot/studyspot/internal/model"
)

type SpaceHandler struct {
	catalog *catalog.Catalog
}

func NewSpaceHandler(cat *catalog.Catalog) *SpaceHandler {
	return &SpaceHandler{catalog: cat}
}

type spaceItem struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Location    string           `json:"location"`
	Price       int              `json:"price"`
	Hours       string           `json:"hours"`
	Description string           `json:"description"`
	Amenities   []string         `json:"amenities"`
	TimeSlots   []model.TimeSlot `json:"time_slots"`
}

func (h *SpaceHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	spaces := h.catalog.List()
	items := make([]spaceItem, 0, len(spaces))
	for _, s := range spaces {
		items = append(items, toSpaceItem(s))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *SpaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}
	space, ok := h.catalog.Get(id)
	if !ok {
		http.Error(w, "space not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toSpaceItem(space))
}

func toSpaceItem(s model.Space) spaceItem {
	return spaceItem{
		ID:          s.ID,
		Name:        s.Name,
		Location:    s.Location,
		Price:       s.Price,
		Hours:       s.Hours,
		Description: s.Description,
		Amenities:   s.Amenities,
		TimeSlots:   s.TimeSlots,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

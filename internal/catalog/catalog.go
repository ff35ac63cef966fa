// Package catalog holds the static space listing: which spaces exist and
// which time slots each one offers. Slot definitions are immutable at
// runtime; bookings reference them by label.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/studyspot/studyspot/internal/model"
)

//go:embed spaces.json
var defaultSpaces []byte

type Catalog struct {
	spaces []model.Space
	byID   map[string]model.Space
}

// Load builds the catalog from path, or from the embedded listing when path
// is empty.
func Load(path string) (*Catalog, error) {
	raw := defaultSpaces
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read spaces file: %w", err)
		}
		raw = b
	}

	var spaces []model.Space
	if err := json.Unmarshal(raw, &spaces); err != nil {
		return nil, fmt.Errorf("parse spaces: %w", err)
	}

	byID := make(map[string]model.Space, len(spaces))
	for _, s := range spaces {
		if s.ID == "" {
			return nil, fmt.Errorf("space %q has no id", s.Name)
		}
		if _, dup := byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate space id %q", s.ID)
		}
		byID[s.ID] = s
	}
	return &Catalog{spaces: spaces, byID: byID}, nil
}

func (c *Catalog) List() []model.Space {
	return c.spaces
}

func (c *Catalog) Get(id string) (model.Space, bool) {
	s, ok := c.byID[id]
	return s, ok
}

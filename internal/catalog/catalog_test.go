package catalog

import "testing"

func TestLoadEmbedded(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(c.List()) == 0 {
		t.Fatal("embedded catalog is empty")
	}

	space, ok := c.Get("central-library-hub")
	if !ok {
		t.Fatal("expected central-library-hub in embedded catalog")
	}
	if len(space.TimeSlots) == 0 {
		t.Fatal("space has no time slots")
	}

	slot, ok := space.SlotByLabel("9:00 AM - 1:00 PM")
	if !ok {
		t.Fatal("expected morning slot")
	}
	if slot.Start != "09:00" || slot.End != "13:00" {
		t.Fatalf("unexpected slot bounds: %+v", slot)
	}

	if _, ok := c.Get("no-such-space"); ok {
		t.Fatal("unknown id should not resolve")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

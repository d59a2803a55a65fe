package model

import "fmt"

// Unit represents a course unit: the top level of the curriculum tree.
type Unit struct {
	ID       string   `json:"id"`
	Ordinal  int      `json:"ordinal"`
	Title    string   `json:"title"`
	Sections []string `json:"sections,omitempty"`
}

// Validate checks if the unit data is logically valid
func (u *Unit) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("unit ID cannot be empty")
	}
	if u.Ordinal < 0 {
		return fmt.Errorf("unit ordinal (%d) cannot be negative", u.Ordinal)
	}
	return nil
}

// Section represents a course section owned by exactly one unit.
// A section may reference demos that other sections also reference;
// Section-Demo is many-to-many.
type Section struct {
	ID          string      `json:"id"`
	UnitID      string      `json:"unit_id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Demos       []string    `json:"demos,omitempty"`
	Events      []EventLink `json:"events,omitempty"`
}

// Validate checks if the section data is logically valid
func (s *Section) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("section ID cannot be empty")
	}
	if s.UnitID == "" {
		return fmt.Errorf("section %s: unit ID cannot be empty", s.ID)
	}
	for _, link := range s.Events {
		if err := link.Validate(); err != nil {
			return fmt.Errorf("section %s: %w", s.ID, err)
		}
	}
	return nil
}

// Demo represents an interactive demonstration. The owning unit is the unit
// it was authored under; sections in other units may still reference it.
type Demo struct {
	ID          string      `json:"id"`
	UnitID      string      `json:"unit_id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Engine      string      `json:"engine,omitempty"` // optics engine key, e.g. "malus", "fresnel"
	Events      []EventLink `json:"events,omitempty"`
}

// Validate checks if the demo data is logically valid
func (d *Demo) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("demo ID cannot be empty")
	}
	if d.UnitID == "" {
		return fmt.Errorf("demo %s: unit ID cannot be empty", d.ID)
	}
	for _, link := range d.Events {
		if err := link.Validate(); err != nil {
			return fmt.Errorf("demo %s: %w", d.ID, err)
		}
	}
	return nil
}

// EventKey is the composite identity of a historical timeline event.
// Events themselves are owned by the timeline; course content only refers
// to them by key.
type EventKey struct {
	Year  int    `json:"year"`
	Track string `json:"track"`
}

// String returns the canonical "year/track" form used in UI badges and logs.
func (k EventKey) String() string {
	return fmt.Sprintf("%d/%s", k.Year, k.Track)
}

// Less orders keys by year, then track. Used for deterministic output.
func (k EventKey) Less(other EventKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Track < other.Track
}

// Relevance tags how central an event is to the course module linking it.
type Relevance string

const (
	RelevancePrimary   Relevance = "primary"
	RelevanceSecondary Relevance = "secondary"
)

// IsValid returns true if the relevance is a recognized value.
// An empty relevance is treated as secondary for backward compatibility
// with content authored before the tag existed.
func (r Relevance) IsValid() bool {
	switch r {
	case RelevancePrimary, RelevanceSecondary, "":
		return true
	}
	return false
}

// IsPrimary returns true if the link is a core connection.
func (r Relevance) IsPrimary() bool {
	return r == RelevancePrimary
}

// EventLink connects a section or demo to a timeline event.
type EventLink struct {
	Year      int       `json:"year"`
	Track     string    `json:"track"`
	Relevance Relevance `json:"relevance,omitempty"`
}

// Key returns the event identity this link points at.
func (l EventLink) Key() EventKey {
	return EventKey{Year: l.Year, Track: l.Track}
}

// Validate checks if the link data is logically valid
func (l *EventLink) Validate() error {
	if l.Track == "" {
		return fmt.Errorf("event link track cannot be empty")
	}
	if !l.Relevance.IsValid() {
		return fmt.Errorf("invalid relevance: %s", l.Relevance)
	}
	return nil
}

// Event is the display record for a timeline event. The relation engine
// never mutates events; it carries EventKey references only. Events are
// loaded for the UI and export layers.
type Event struct {
	Year    int    `json:"year"`
	Track   string `json:"track"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
}

// Key returns the event's identity.
func (e Event) Key() EventKey {
	return EventKey{Year: e.Year, Track: e.Track}
}

// Validate checks if the event data is logically valid
func (e *Event) Validate() error {
	if e.Track == "" {
		return fmt.Errorf("event track cannot be empty")
	}
	if e.Title == "" {
		return fmt.Errorf("event %d/%s: title cannot be empty", e.Year, e.Track)
	}
	return nil
}

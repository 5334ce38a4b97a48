package domain

import (
	"fmt"
	"strings"
	"time"
)

type DocumentID string

// Document is one revision of the shared text an event lives in. Revision is
// opaque and empty when the backing store cannot tell revisions apart.
type Document struct {
	ID       DocumentID
	Text     string
	Revision string
}

type EventSpec struct {
	ID              DocumentID
	Title           string
	Description     string
	StartTime       time.Time
	Slots           int
	PeoplePerSlot   int
	SlotsPerPerson  int
	DurationMinutes int
}

func (e EventSpec) Validate() error {
	if e.StartTime.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidEvent)
	}
	if e.Slots <= 0 {
		return fmt.Errorf("%w: slots must be positive", ErrInvalidEvent)
	}
	if e.PeoplePerSlot <= 0 {
		return fmt.Errorf("%w: people per slot must be positive", ErrInvalidEvent)
	}
	if e.SlotsPerPerson <= 0 {
		return fmt.Errorf("%w: slots per person must be positive", ErrInvalidEvent)
	}
	if e.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidEvent)
	}
	if strings.ContainsAny(string(e.ID), `/\`) {
		return fmt.Errorf("%w: id %q contains a path separator", ErrInvalidEvent, e.ID)
	}

	return nil
}

// SlotStart returns the start of the zero-based slot index.
func (e EventSpec) SlotStart(index int) time.Time {
	return e.StartTime.Add(time.Duration(index*e.DurationMinutes) * time.Minute)
}

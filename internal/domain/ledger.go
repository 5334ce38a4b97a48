package domain

import "time"

const (
	DefaultPeoplePerSlot  = 1
	DefaultSlotsPerPerson = 1
)

type Slot struct {
	Index     int
	Number    int
	Label     string
	Occupants []ActorID
}

func (s Slot) Has(actor ActorID) bool {
	for _, occupant := range s.Occupants {
		if occupant == actor {
			return true
		}
	}

	return false
}

func (s Slot) clone() Slot {
	s.Occupants = append([]ActorID(nil), s.Occupants...)
	return s
}

// LineSpan locates one slot line inside the snapshot a ledger was decoded
// from. Offsets are byte offsets; End is exclusive and stops before the line
// break. TailStart is the first byte after the label colon.
type LineSpan struct {
	Start     int
	TailStart int
	End       int
}

// Origin binds a ledger to the exact document text it was decoded from.
// It is shared read-only between a ledger and every ledger derived from it.
type Origin struct {
	Digest   string
	Lines    []LineSpan
	Baseline [][]ActorID
}

// Ledger is the structured view of a sign-up document. It is derived from the
// text on every access and never stored on its own. SlotCount is the number of
// slot lines found; DeclaredSlots is the count stated in the details block,
// which can differ on hand-edited documents.
type Ledger struct {
	Title               string
	Description         string
	StartTime           int64
	SlotDurationMinutes int
	SlotCount           int
	DeclaredSlots       int
	PeoplePerSlot       int
	SlotsPerPerson      int
	Slots               []Slot

	Origin *Origin
}

func (l Ledger) Start() time.Time {
	if l.StartTime == 0 {
		return time.Time{}
	}
	return time.Unix(l.StartTime, 0).UTC()
}

func (l Ledger) InRange(index int) bool {
	return index >= 0 && index < len(l.Slots)
}

// Held returns the indices of the slots the actor occupies, in slot order.
func (l Ledger) Held(actor ActorID) []int {
	held := make([]int, 0)
	for _, slot := range l.Slots {
		if slot.Has(actor) {
			held = append(held, slot.Index)
		}
	}

	return held
}

func (l Ledger) RemainingCapacity(actor ActorID) int {
	remaining := l.SlotsPerPerson - len(l.Held(actor))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Options lists the slots for which op is currently legal for the actor.
func (l Ledger) Options(actor ActorID, kind OpKind) []int {
	options := make([]int, 0, len(l.Slots))
	for _, slot := range l.Slots {
		if _, err := Apply(l, actor, Operation{Kind: kind, Slot: slot.Index}); err == nil {
			options = append(options, slot.Index)
		}
	}

	return options
}

func (l Ledger) clone() Ledger {
	slots := make([]Slot, len(l.Slots))
	for i, slot := range l.Slots {
		slots[i] = slot.clone()
	}
	l.Slots = slots
	return l
}

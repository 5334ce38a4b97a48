package domain

import (
	"fmt"
	"slices"
)

type OpKind string

const (
	OpJoin  OpKind = "join"
	OpLeave OpKind = "leave"
)

type Operation struct {
	Kind OpKind
	Slot int
}

func Join(slot int) Operation {
	return Operation{Kind: OpJoin, Slot: slot}
}

func Leave(slot int) Operation {
	return Operation{Kind: OpLeave, Slot: slot}
}

// RejectReason is a business-rule refusal. It implements error so callers can
// match it with errors.As; it is never a fault.
type RejectReason string

const (
	RejectSlotNotFound       RejectReason = "slot_not_found"
	RejectAlreadySignedUp    RejectReason = "already_signed_up"
	RejectPersonLimitReached RejectReason = "person_limit_reached"
	RejectSlotFull           RejectReason = "slot_full"
	RejectNotSignedUp        RejectReason = "not_signed_up"
)

func (r RejectReason) Error() string {
	return "rejected: " + string(r)
}

// Apply decides whether the actor may perform op against the ledger and
// returns the resulting ledger. The input ledger is never modified.
func Apply(l Ledger, actor ActorID, op Operation) (Ledger, error) {
	switch op.Kind {
	case OpJoin:
		return join(l, actor, op.Slot)
	case OpLeave:
		return leave(l, actor, op.Slot)
	default:
		return Ledger{}, fmt.Errorf("unsupported operation %q", op.Kind)
	}
}

func join(l Ledger, actor ActorID, index int) (Ledger, error) {
	if !l.InRange(index) {
		return Ledger{}, RejectSlotNotFound
	}

	slot := l.Slots[index]
	if slot.Has(actor) {
		return Ledger{}, RejectAlreadySignedUp
	}
	if len(l.Held(actor)) >= l.SlotsPerPerson {
		return Ledger{}, RejectPersonLimitReached
	}
	if len(slot.Occupants) >= l.PeoplePerSlot {
		return Ledger{}, RejectSlotFull
	}

	next := l.clone()
	next.Slots[index].Occupants = append(next.Slots[index].Occupants, actor)
	return next, nil
}

func leave(l Ledger, actor ActorID, index int) (Ledger, error) {
	if !l.InRange(index) {
		return Ledger{}, RejectSlotNotFound
	}
	if !l.Slots[index].Has(actor) {
		return Ledger{}, RejectNotSignedUp
	}

	next := l.clone()
	next.Slots[index].Occupants = slices.DeleteFunc(next.Slots[index].Occupants, func(occupant ActorID) bool {
		return occupant == actor
	})
	return next, nil
}

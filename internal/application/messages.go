package application

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/slotbot/internal/codec"
	"github.com/bnema/slotbot/internal/domain"
)

const (
	MessageGeneric       = "Something went wrong while handling your request. Please try again later."
	MessageNotFound      = "Original message not found."
	MessageConflict      = "The event changed while your request was being processed. Please try again."
	MessageTransport     = "Could not reach the event document. Please try again later."
	MessageNotPrivileged = "You do not have permission to manage events."
	MessageAdminOnly     = "Only administrators can change the manager role."
	MessageInvalidActor  = "Your account id could not be read."
	MessageExpired       = "No selection was made in time; nothing was changed."
	MessageDismissed     = "Selection cancelled; nothing was changed."
	MessageDuplicatePick = "Each slot can be picked only once; nothing was changed."
	MessageNoneHeld      = "You are not signed up for any slots."
	MessageNoneAvailable = "There are no slots available for you to sign up for."
)

func slotNumber(index int) int {
	return index + 1
}

func rejectMessage(reason domain.RejectReason, ledger domain.Ledger) string {
	switch reason {
	case domain.RejectSlotNotFound:
		return "That slot does not exist."
	case domain.RejectAlreadySignedUp:
		return "You are already signed up for this slot."
	case domain.RejectPersonLimitReached:
		return fmt.Sprintf("You have reached your slot limit of %d.", ledger.SlotsPerPerson)
	case domain.RejectSlotFull:
		return "This slot is full."
	case domain.RejectNotSignedUp:
		return "You are not signed up for this slot."
	default:
		return MessageGeneric
	}
}

func receiptMessage(r Receipt) string {
	if !r.Applied() {
		return rejectMessage(r.Rejected, r.Ledger)
	}
	if r.Operation.Kind == domain.OpLeave {
		return fmt.Sprintf("You have been removed from slot %d.", slotNumber(r.Operation.Slot))
	}
	return fmt.Sprintf("You have signed up for slot %d.", slotNumber(r.Operation.Slot))
}

func batchMessage(r BatchResult) string {
	switch {
	case r.Expired:
		return MessageExpired
	case r.Dismissed:
		return MessageDismissed
	case r.NoOptions && r.Kind == domain.OpLeave:
		return MessageNoneHeld
	case r.NoOptions:
		return MessageNoneAvailable
	}

	var b strings.Builder
	if applied := r.Applied(); len(applied) > 0 {
		if r.Kind == domain.OpLeave {
			b.WriteString("You have been removed from slots ")
		} else {
			b.WriteString("You have signed up for slots ")
		}
		b.WriteString(joinSlotNumbers(applied))
		b.WriteString(".")
	}
	for _, item := range r.Rejections() {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Slot %d: %s", slotNumber(item.Slot), rejectMessage(item.Rejected, r.Ledger))
	}

	return b.String()
}

func selectionMessage(e *SelectionError) string {
	switch {
	case e.Duplicate:
		return MessageDuplicatePick
	case e.Count < 1:
		return "Pick at least one slot; nothing was changed."
	case e.Max == 1:
		return "You can pick at most 1 slot; nothing was changed."
	default:
		return fmt.Sprintf("You can pick at most %d slots; nothing was changed.", e.Max)
	}
}

func joinSlotNumbers(indices []int) string {
	parts := make([]string, len(indices))
	for i, index := range indices {
		parts[i] = strconv.Itoa(slotNumber(index))
	}
	return strings.Join(parts, ", ")
}

func optionLabel(slot domain.Slot) string {
	label := fmt.Sprintf("Slot #%d", slot.Number)
	if unix, ok := codec.LabelTime(slot.Label); ok {
		return label + " - " + time.Unix(unix, 0).UTC().Format("Mon 02 Jan 15:04 MST")
	}
	if text := strings.TrimSpace(slot.Label); text != "" {
		return label + " - " + text
	}
	return label
}

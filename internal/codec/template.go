package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/slotbot/internal/domain"
)

const (
	placeholderTitle       = "[TITLE HERE]"
	placeholderDescription = "[DESCRIPTION HERE]"
	slotHostHeading        = "``DJ``"
)

// RenderEvent produces the initial document for an event. The phrases it
// writes are the ones Decode reads back.
func RenderEvent(details domain.EventSpec) string {
	title := strings.TrimSpace(details.Title)
	if title == "" {
		title = placeholderTitle
	}
	description := strings.TrimSpace(details.Description)
	if description == "" {
		description = placeholderDescription
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**::OPERATION:: %s**\n\n", title)
	fmt.Fprintf(&b, "%s\n\n", description)
	b.WriteString(detailsHeading + "\n")
	fmt.Fprintf(&b, "- The event starts on %s.\n", Timestamp(details.StartTime.Unix()))
	fmt.Fprintf(&b, "- There are %d slots with %d people per slot.\n", details.Slots, details.PeoplePerSlot)
	fmt.Fprintf(&b, "- Each person can sign up for %d slots.\n", details.SlotsPerPerson)
	fmt.Fprintf(&b, "- Each slot lasts %d minutes.\n\n", details.DurationMinutes)
	b.WriteString("**Slot Times:**\n")
	b.WriteString(slotHostHeading + "\n")
	for i := 0; i < details.Slots; i++ {
		fmt.Fprintf(&b, "%s\n", SlotLine(i+1, Timestamp(details.SlotStart(i).Unix())))
	}

	return strings.TrimRight(b.String(), "\n")
}

// Timestamp renders a unix time as a full date-time timestamp tag.
func Timestamp(unix int64) string {
	return fmt.Sprintf("<t:%d:F>", unix)
}

// SlotLine renders an empty slot line.
func SlotLine(number int, label string) string {
	return fmt.Sprintf("Slot #%d - %s:", number, label)
}

// LabelTime extracts the unix time from a timestamp label, if it is one.
func LabelTime(label string) (int64, bool) {
	m := timestampLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	unix, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return unix, true
}

package ledger

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/slotbot/internal/codec"
	"github.com/bnema/slotbot/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now   time.Time
	Actor domain.ActorID
}

// Render draws the sheet of one decoded ledger.
func Render(ledger domain.Ledger, opts RenderOptions) string {
	return renderView(ledger, opts, newStyles())
}

func renderView(l domain.Ledger, opts RenderOptions, s styles) string {
	title := strings.TrimSpace(l.Title)
	if title == "" {
		title = "Untitled event"
	}

	lines := []string{
		s.title.Render(title),
		s.header.Render(fmt.Sprintf(
			"slots: %d  people per slot: %d  slots per person: %d",
			len(l.Slots), l.PeoplePerSlot, l.SlotsPerPerson,
		)),
	}
	if l.DeclaredSlots > 0 && l.DeclaredSlots != len(l.Slots) {
		lines = append(lines, s.full.Render(fmt.Sprintf("details list %d slots, %d slot lines found", l.DeclaredSlots, len(l.Slots))))
	}
	if start := l.Start(); !start.IsZero() {
		lines = append(lines, s.header.Render(formatStartRelative(start, opts.Now)))
	}
	if description := strings.TrimSpace(l.Description); description != "" {
		lines = append(lines, s.section.Render(s.description.Render(description)))
	}

	if len(l.Slots) == 0 {
		lines = append(lines, s.section.Render(s.empty.Render("No slot lines found in this document.")))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	slotLines := make([]string, 0, len(l.Slots))
	for _, slot := range l.Slots {
		slotLines = append(slotLines, slotLine(slot, l.PeoplePerSlot, opts, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, slotLines...)))

	if opts.Actor != "" {
		lines = append(lines, s.section.Render(s.header.Render(fmt.Sprintf(
			"you hold %d of %d slots", len(l.Held(opts.Actor)), l.SlotsPerPerson,
		))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func slotLine(slot domain.Slot, capacity int, opts RenderOptions, s styles) string {
	labelStyle := s.slot
	marker := " "
	if opts.Actor != "" && slot.Has(opts.Actor) {
		labelStyle = s.ownSlot
		marker = "*"
	}

	label := labelStyle.Render(fmt.Sprintf("%s Slot #%-2d %-16s", marker, slot.Number, slotTime(slot.Label, opts.Now)))
	count := fmt.Sprintf("%d/%d", len(slot.Occupants), capacity)
	if len(slot.Occupants) >= capacity {
		count = s.full.Render(count + " full")
	} else {
		count = lipgloss.NewStyle().Foreground(interpolateColor(float64(capacity-len(slot.Occupants)), 0, float64(capacity))).Render(count)
	}

	mentions := make([]string, 0, len(slot.Occupants))
	for _, occupant := range slot.Occupants {
		mentions = append(mentions, occupant.Mention())
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		label,
		" ",
		renderOccupancyBar(len(slot.Occupants), capacity, 10, s),
		" ",
		count,
		" ",
		s.occupant.Render(strings.Join(mentions, " ")),
	)
}

func slotTime(label string, now time.Time) string {
	unix, ok := codec.LabelTime(label)
	if !ok {
		return strings.TrimSpace(label)
	}

	at := time.Unix(unix, 0).UTC()
	if !now.IsZero() {
		yearA, monthA, dayA := now.UTC().Date()
		yearB, monthB, dayB := at.Date()
		if yearA == yearB && monthA == monthB && dayA == dayB {
			return at.Format("15:04")
		}
	}

	return at.Format("15:04 on 02 Jan")
}

func renderOccupancyBar(used, capacity, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := 0
	if capacity > 0 {
		filled = int(math.Round(float64(width) * float64(used) / float64(capacity)))
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func formatStartRelative(start, now time.Time) string {
	if now.IsZero() {
		return "starts " + start.Format(time.RFC3339)
	}
	if start.Before(now) {
		return "started " + start.Format("15:04 on 02 Jan")
	}

	remaining := start.Sub(now)
	if remaining < 24*time.Hour {
		hours := int(math.Ceil(remaining.Hours()))
		if hours < 1 {
			hours = 1
		}
		suffix := "hours"
		if hours == 1 {
			suffix = "hour"
		}
		return fmt.Sprintf("starts in %d %s (%s)", hours, suffix, start.Format("15:04"))
	}

	days := int(math.Ceil(remaining.Hours() / 24))
	suffix := "days"
	if days == 1 {
		suffix = "day"
	}

	return fmt.Sprintf("starts in %d %s (%s)", days, suffix, start.Format("15:04 on 02 Jan"))
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// greyscale ramp from 240 (faded) to 255 (bright)
	return lipgloss.Color(fmt.Sprintf("%d", int(240.0+15.0*normalized)))
}

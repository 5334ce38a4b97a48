// Package codec converts between the shared sign-up document and its ledger.
//
// The document is human-authored text. Only slot lines and a handful of fixed
// phrases carry structure; everything else is preserved verbatim on encode.
package codec

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"

	"github.com/bnema/slotbot/internal/domain"
)

var (
	slotLinePattern       = regexp.MustCompile(`Slot #(\d+) - (<t:\d+(?::[tTdDfFR])?>|[^:\n]*):([^\n]*)`)
	mentionPattern        = regexp.MustCompile(`<@!?(\d+)>`)
	titlePattern          = regexp.MustCompile(`\*\*::OPERATION:: (.*?)\*\*`)
	startPattern          = regexp.MustCompile(`The event starts on <t:(\d+)(?::[tTdDfFR])?>`)
	declaredSlotsPattern  = regexp.MustCompile(`There are (\d+) slots?`)
	peoplePerSlotPattern  = regexp.MustCompile(`with (\d+) people per slot`)
	slotsPerPersonPattern = regexp.MustCompile(`max (\d+) slots per person|can sign up for (\d+) slots?`)
	durationPattern       = regexp.MustCompile(`Each slot lasts (\d+) minutes?`)
	timestampLabelPattern = regexp.MustCompile(`^<t:(\d+)(?::[tTdDfFR])?>$`)
)

const detailsHeading = "**Details:**"

// Decode extracts the ledger from a document. It never fails: missing
// capacity phrases fall back to the domain defaults and a document without
// slot lines yields an empty ledger.
func Decode(document string) domain.Ledger {
	ledger := domain.Ledger{
		Title:               firstMatch(titlePattern, document),
		Description:         description(document),
		StartTime:           int64(firstInt(startPattern, document, 0)),
		SlotDurationMinutes: firstInt(durationPattern, document, 0),
		DeclaredSlots:       firstInt(declaredSlotsPattern, document, 0),
		PeoplePerSlot:       firstInt(peoplePerSlotPattern, document, domain.DefaultPeoplePerSlot),
		SlotsPerPerson:      firstInt(slotsPerPersonPattern, document, domain.DefaultSlotsPerPerson),
	}

	matches := slotLinePattern.FindAllStringSubmatchIndex(document, -1)
	origin := &domain.Origin{
		Digest:   Digest(document),
		Lines:    make([]domain.LineSpan, 0, len(matches)),
		Baseline: make([][]domain.ActorID, 0, len(matches)),
	}
	ledger.Slots = make([]domain.Slot, 0, len(matches))

	for i, m := range matches {
		number, _ := strconv.Atoi(document[m[2]:m[3]])
		occupants := parseOccupants(document[m[6]:m[7]])

		ledger.Slots = append(ledger.Slots, domain.Slot{
			Index:     i,
			Number:    number,
			Label:     document[m[4]:m[5]],
			Occupants: occupants,
		})
		origin.Lines = append(origin.Lines, domain.LineSpan{Start: m[0], TailStart: m[6], End: m[1]})
		origin.Baseline = append(origin.Baseline, append([]domain.ActorID(nil), occupants...))
	}

	ledger.SlotCount = len(ledger.Slots)
	ledger.Origin = origin
	return ledger
}

// Digest identifies a document snapshot.
func Digest(document string) string {
	sum := sha256.Sum256([]byte(document))
	return hex.EncodeToString(sum[:])
}

func parseOccupants(tail string) []domain.ActorID {
	occupants := make([]domain.ActorID, 0)
	seen := map[domain.ActorID]struct{}{}
	for _, m := range mentionPattern.FindAllStringSubmatch(tail, -1) {
		id := domain.ActorID(m[1])
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		occupants = append(occupants, id)
	}

	return occupants
}

func description(document string) string {
	title := titlePattern.FindStringIndex(document)
	if title == nil {
		return ""
	}
	rest := document[title[1]:]
	end := strings.Index(rest, detailsHeading)
	if end < 0 {
		return ""
	}

	return strings.TrimSpace(rest[:end])
}

func firstMatch(pattern *regexp.Regexp, document string) string {
	m := pattern.FindStringSubmatch(document)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// firstInt returns the first non-empty capture group of pattern as an int.
func firstInt(pattern *regexp.Regexp, document string, fallback int) int {
	m := pattern.FindStringSubmatch(document)
	if m == nil {
		return fallback
	}
	for _, group := range m[1:] {
		if group == "" {
			continue
		}
		value, err := strconv.Atoi(group)
		if err != nil {
			return fallback
		}
		return value
	}

	return fallback
}

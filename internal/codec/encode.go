package codec

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bnema/slotbot/internal/domain"
)

var errDetachedLedger = errors.New("ledger has no origin document")

// Encode writes the occupancy of ledger back into prior, which must be the
// exact text the ledger (or its ancestor) was decoded from. Only slot lines
// whose occupants changed are rewritten; all other bytes are kept.
func Encode(ledger domain.Ledger, prior string) (string, error) {
	origin := ledger.Origin
	if origin == nil {
		return "", errDetachedLedger
	}
	if Digest(prior) != origin.Digest {
		return "", domain.ErrStaleSnapshot
	}
	if len(ledger.Slots) != len(origin.Lines) {
		return "", fmt.Errorf("ledger has %d slots, document has %d slot lines", len(ledger.Slots), len(origin.Lines))
	}

	var b strings.Builder
	b.Grow(len(prior) + 32)
	cursor := 0
	for i, slot := range ledger.Slots {
		before := origin.Baseline[i]
		if slices.Equal(before, slot.Occupants) {
			continue
		}

		span := origin.Lines[i]
		b.WriteString(prior[cursor:span.Start])
		b.WriteString(prior[span.Start:span.TailStart])
		b.WriteString(rewriteTail(prior[span.TailStart:span.End], before, slot.Occupants))
		cursor = span.End
	}
	b.WriteString(prior[cursor:])

	return b.String(), nil
}

func rewriteTail(tail string, before, after []domain.ActorID) string {
	lineEnd := ""
	if strings.HasSuffix(tail, "\r") {
		tail, lineEnd = tail[:len(tail)-1], "\r"
	}

	removed := map[domain.ActorID]struct{}{}
	for _, id := range before {
		if !slices.Contains(after, id) {
			removed[id] = struct{}{}
		}
	}
	tail = stripMentions(tail, removed)

	for _, id := range after {
		if !slices.Contains(before, id) {
			tail += " " + id.Mention()
		}
	}

	return tail + lineEnd
}

// stripMentions drops every mention token of a removed actor together with one
// adjacent space, leaving any other text untouched.
func stripMentions(tail string, removed map[domain.ActorID]struct{}) string {
	if len(removed) == 0 {
		return tail
	}

	var b strings.Builder
	cursor := 0
	for _, m := range mentionPattern.FindAllStringSubmatchIndex(tail, -1) {
		if _, ok := removed[domain.ActorID(tail[m[2]:m[3]])]; !ok {
			continue
		}
		start, end := m[0], m[1]
		if start > cursor && tail[start-1] == ' ' {
			start--
		} else if end < len(tail) && tail[end] == ' ' {
			end++
		}
		b.WriteString(tail[cursor:start])
		cursor = end
	}
	b.WriteString(tail[cursor:])

	return b.String()
}

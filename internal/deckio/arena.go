package deckio

import (
	"context"
	"fmt"
	"strings"

	"github.com/ramonehamilton/deckhaven/internal/cards"
	"github.com/ramonehamilton/deckhaven/internal/deck"
	"github.com/ramonehamilton/deckhaven/internal/decklist"
)

// Arena section headers.
const (
	arenaCommanderHeader = "Commander"
	arenaCompanionHeader = "Companion"
	arenaDeckHeader      = "Deck"
	arenaSideboardHeader = "Sideboard"
)

var arenaHeaders = map[string]decklist.Section{
	arenaCommanderHeader: decklist.SectionCommander,
	arenaCompanionHeader: decklist.SectionCompanion,
	arenaDeckHeader:      decklist.SectionMainboard,
	arenaSideboardHeader: decklist.SectionSideboard,
}

// ArenaCodec reads and writes the MTG Arena decklist format.
type ArenaCodec struct {
	Lookup  cards.Lookup
	Builder decklist.Builder
}

// Export serializes a deck into Arena format: optional Commander and
// Companion blocks, the mandatory Deck block, and a Sideboard block when the
// sideboard is nonempty. Multi-face names are rewritten to the Arena triple
// slash on the wire.
func (c *ArenaCodec) Export(d *deck.Deck) string {
	var sb strings.Builder

	if commander := d.Commander(); commander != nil {
		sb.WriteString(arenaCommanderHeader + "\n")
		writeArenaLine(&sb, 1, commander)
		sb.WriteString("\n")
	}
	if companion := d.Companion(); companion != nil {
		sb.WriteString(arenaCompanionHeader + "\n")
		writeArenaLine(&sb, 1, companion)
		sb.WriteString("\n")
	}

	sb.WriteString(arenaDeckHeader + "\n")
	for _, p := range sortedPlaysets(d.MainboardPlaysets()) {
		writeArenaLine(&sb, p.Count(), p.Card())
	}

	if playsets := d.SideboardPlaysets(); len(playsets) > 0 {
		sb.WriteString("\n" + arenaSideboardHeader + "\n")
		for _, p := range sortedPlaysets(playsets) {
			writeArenaLine(&sb, p.Count(), p.Card())
		}
	}

	return sb.String()
}

func writeArenaLine(sb *strings.Builder, count int, card *cards.Card) {
	name := strings.ReplaceAll(card.Name, cards.FaceSeparator, " /// ")
	line := name
	if card.SetCode != "" && card.CollectorNumber != "" {
		line = fmt.Sprintf("%s (%s) %s", name, strings.ToUpper(card.SetCode), card.CollectorNumber)
	}
	writeCount(sb, count, line)
}

// Import parses Arena decklist text into a validated deck. Every non-blank
// line must be a recognized section header or a card line; anything else
// means the input is not an Arena decklist. Blank lines separate blocks and,
// in the headerless dialect, cards after the first separator still open an
// implicit mainboard per the state machine rules.
func (c *ArenaCodec) Import(ctx context.Context, text string) (*deck.Deck, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	var events []decklist.Event
	lastBlank := false
	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if line == "" {
			// Collapse runs of separators; the machine rejects idle
			// re-entry.
			if !lastBlank && len(events) > 0 {
				events = append(events, decklist.MarkerEvent(decklist.SectionIdle))
				lastBlank = true
			}
			continue
		}
		lastBlank = false

		if section, ok := arenaHeaders[line]; ok {
			events = append(events, decklist.MarkerEvent(section))
			continue
		}

		parsed, err := decklist.ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: not an Arena decklist: unrecognized line %q", deck.ErrParse, line)
		}
		copies, err := parsed.Resolve(ctx, c.Lookup)
		if err != nil {
			return nil, err
		}
		events = append(events, decklist.CardsEvent(copies))
	}

	if len(events) == 0 {
		return nil, fmt.Errorf("%w: not an Arena decklist: empty input", deck.ErrParse)
	}
	return c.Builder.Build(events, deck.Metadata{deck.MetaSource: "arena"})
}

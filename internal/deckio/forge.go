package deckio

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ramonehamilton/deckhaven/internal/cards"
	"github.com/ramonehamilton/deckhaven/internal/deck"
	"github.com/ramonehamilton/deckhaven/internal/decklist"
)

// Forge section headers, in file order.
const (
	forgeMetadataHeader  = "[metadata]"
	forgeCommanderHeader = "[Commander]"
	forgeMainHeader      = "[Main]"
	forgeSideboardHeader = "[Sideboard]"
)

// ForgeCodec reads and writes the Forge deck file format.
type ForgeCodec struct {
	Lookup  cards.Lookup
	Builder decklist.Builder
}

// Export serializes a deck into Forge format. Card lines are one per
// playset, `<count> <primary-name>|<SET-UPPER>|1`, ordered by card name. A
// promoted companion is written with the sideboard, where it physically
// lives.
func (c *ForgeCodec) Export(d *deck.Deck) string {
	var sb strings.Builder

	sb.WriteString(forgeMetadataHeader + "\n")
	sb.WriteString("Name=" + SynthesizeName(d) + "\n")

	sb.WriteString(forgeCommanderHeader + "\n")
	if commander := d.Commander(); commander != nil {
		writeForgeLine(&sb, 1, commander)
	}

	sb.WriteString(forgeMainHeader + "\n")
	for _, p := range sortedPlaysets(d.MainboardPlaysets()) {
		writeForgeLine(&sb, p.Count(), p.Card())
	}

	sb.WriteString(forgeSideboardHeader + "\n")
	sideboard := d.Sideboard()
	if companion := d.Companion(); companion != nil {
		sideboard = append(sideboard, companion)
	}
	for _, p := range sortedPlaysets(deck.GroupPlaysets(sideboard)) {
		writeForgeLine(&sb, p.Count(), p.Card())
	}

	return sb.String()
}

func writeForgeLine(sb *strings.Builder, count int, card *cards.Card) {
	writeCount(sb, count, fmt.Sprintf("%s|%s|1", card.PrimaryName(), strings.ToUpper(card.SetCode)))
}

// Import parses Forge format text back into a validated deck. The Name= line
// is run through ParseName to recover source, format, mode, and placement
// metadata; card lines resolve through the lookup and feed the section state
// machine, so a file that no longer validates fails the same way any other
// construction does.
func (c *ForgeCodec) Import(ctx context.Context, text string) (*deck.Deck, error) {
	meta := deck.Metadata{}
	var events []decklist.Event
	inMetadata := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch line {
		case forgeMetadataHeader:
			inMetadata = true
			continue
		case forgeCommanderHeader:
			inMetadata = false
			events = append(events, decklist.MarkerEvent(decklist.SectionCommander))
			continue
		case forgeMainHeader:
			inMetadata = false
			events = append(events, decklist.MarkerEvent(decklist.SectionMainboard))
			continue
		case forgeSideboardHeader:
			inMetadata = false
			events = append(events, decklist.MarkerEvent(decklist.SectionSideboard))
			continue
		}

		if inMetadata {
			if value, ok := strings.CutPrefix(line, "Name="); ok {
				_, parsed := ParseName(value)
				meta.Merge(parsed)
			}
			continue
		}

		copies, err := c.resolveForgeLine(ctx, line)
		if err != nil {
			return nil, err
		}
		events = append(events, decklist.CardsEvent(copies))
	}

	if len(events) == 0 {
		return nil, fmt.Errorf("%w: not a Forge deck file", deck.ErrParse)
	}
	return c.Builder.Build(events, meta)
}

// resolveForgeLine parses `<count> <name>|<SET>|...` and resolves the card.
func (c *ForgeCodec) resolveForgeLine(ctx context.Context, line string) ([]*cards.Card, error) {
	countStr, rest, ok := strings.Cut(line, " ")
	if !ok {
		return nil, fmt.Errorf("%w: malformed Forge card line %q", deck.ErrParse, line)
	}
	count, err := strconv.Atoi(countStr)
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: bad quantity in %q", deck.ErrParse, line)
	}

	parts := strings.Split(rest, "|")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("%w: malformed Forge card line %q", deck.ErrParse, line)
	}

	card, err := c.Lookup.ByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return deck.Flatten(card, count), nil
}

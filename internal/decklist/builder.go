package decklist

import (
	"fmt"
	"log/slog"

	"github.com/ramonehamilton/deckhaven/internal/cards"
	"github.com/ramonehamilton/deckhaven/internal/deck"
)

// Builder turns event streams into validated decks. The zero value builds
// strictly; set SuppressInvalid for batch/scraping callers that want an
// invalid deck logged and skipped rather than reported.
type Builder struct {
	// SuppressInvalid swaps construction failures for a logged warning and
	// a nil deck.
	SuppressInvalid bool

	// Logger receives suppression warnings. Defaults to slog.Default.
	Logger *slog.Logger
}

// Build runs the event stream through the section state machine and
// constructs a deck from the resulting zones. Metadata is attached as given.
func (b *Builder) Build(events []Event, meta deck.Metadata) (*deck.Deck, error) {
	zones, err := Run(events)
	if err != nil {
		return nil, err
	}

	commander, err := singleton(zones.Commanders, SectionCommander)
	if err != nil {
		return nil, err
	}
	companion, err := singleton(zones.Companions, SectionCompanion)
	if err != nil {
		return nil, err
	}

	if b.SuppressInvalid {
		return deck.NewSuppressed(b.Logger, zones.Mainboard, zones.Sideboard, commander, companion, meta), nil
	}
	return deck.New(zones.Mainboard, zones.Sideboard, commander, companion, meta)
}

// singleton reduces a commander or companion zone to its at-most-one card.
func singleton(zone []*cards.Card, section Section) (*cards.Card, error) {
	playsets := deck.GroupPlaysets(zone)
	if len(playsets) > 1 {
		return nil, fmt.Errorf("%w: multiple %s cards", deck.ErrParse, section)
	}
	for _, p := range playsets {
		return p.Card(), nil
	}
	return nil, nil
}

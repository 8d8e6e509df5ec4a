package deck

import (
	"log/slog"

	"github.com/ramonehamilton/deckhaven/internal/cards"
)

// Playset caps applied when a card carries no AllowedMultiples override.
const (
	DefaultPlaysetLimit   = 4
	CommanderPlaysetLimit = 1
)

// Deck size limits.
const (
	MinMainboardSize = 60
	MaxSideboardSize = 15
)

// Deck is the canonical validated aggregate. The card lists are fixed at
// construction; only metadata may change afterwards. A Deck must not be
// mutated concurrently from multiple goroutines.
type Deck struct {
	mainboard []*cards.Card
	sideboard []*cards.Card
	commander *cards.Card
	companion *cards.Card
	meta      Metadata
}

// New validates and constructs a Deck. Construction is all-or-nothing: any
// violated invariant returns a *ValidationError and no deck.
//
// A companion-eligible sideboard card is promoted to the companion slot when
// no companion was given; the promoted card leaves the sideboard list but is
// still serialized with the sideboard by the codecs.
func New(mainboard, sideboard []*cards.Card, commander, companion *cards.Card, meta Metadata) (*Deck, error) {
	if meta == nil {
		meta = Metadata{}
	}

	if commander != nil && !commander.CanBeCommander() {
		return nil, &ValidationError{Kind: InvalidCommander, CardName: commander.Name}
	}

	if companion != nil {
		if !companion.CanBeCompanion() {
			return nil, &ValidationError{Kind: InvalidCompanion, CardName: companion.Name}
		}
	} else {
		sideboard, companion = promoteCompanion(sideboard)
	}

	if commander != nil {
		for _, c := range append(append([]*cards.Card{}, mainboard...), sideboard...) {
			if !c.ColorIdentity.SubsetOf(commander.ColorIdentity) {
				return nil, &ValidationError{Kind: InvalidColorIdentity, CardName: c.Name}
			}
		}
	}

	if err := checkPlaysets(mainboard, sideboard, commander != nil); err != nil {
		return nil, err
	}

	mainSize := len(mainboard)
	if commander != nil {
		mainSize++
	}
	if mainSize < MinMainboardSize {
		return nil, &ValidationError{Kind: InvalidMainboardSize, Count: mainSize, Limit: MinMainboardSize}
	}

	if len(sideboard) > MaxSideboardSize {
		return nil, &ValidationError{Kind: InvalidSideboardSize, Count: len(sideboard), Limit: MaxSideboardSize}
	}

	return &Deck{
		mainboard: append([]*cards.Card{}, mainboard...),
		sideboard: append([]*cards.Card{}, sideboard...),
		commander: commander,
		companion: companion,
		meta:      meta.Clone(),
	}, nil
}

// NewSuppressed is the batch-mode constructor: a validation failure is logged
// as a warning and yields nil instead of an error, so one malformed decklist
// does not abort a scraping run.
func NewSuppressed(logger *slog.Logger, mainboard, sideboard []*cards.Card, commander, companion *cards.Card, meta Metadata) *Deck {
	d, err := New(mainboard, sideboard, commander, companion, meta)
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("suppressed invalid deck",
			slog.String("name", meta[MetaName]),
			slog.String("source", meta[MetaSource]),
			slog.String("error", err.Error()))
		return nil
	}
	return d
}

// promoteCompanion pulls the first companion-eligible card out of the
// sideboard and returns the remaining sideboard and the promoted card.
func promoteCompanion(sideboard []*cards.Card) ([]*cards.Card, *cards.Card) {
	for i, c := range sideboard {
		if c.CanBeCompanion() {
			remaining := append([]*cards.Card{}, sideboard[:i]...)
			remaining = append(remaining, sideboard[i+1:]...)
			return remaining, c
		}
	}
	return sideboard, nil
}

// checkPlaysets enforces per-card copy limits over the combined card pool.
// A card split across mainboard and sideboard is capped on its total count.
func checkPlaysets(mainboard, sideboard []*cards.Card, hasCommander bool) error {
	pool := append(append([]*cards.Card{}, mainboard...), sideboard...)
	for _, playset := range GroupPlaysets(pool) {
		card := playset.Card()
		if card.HasUnlimitedCopies() {
			continue
		}
		limit := DefaultPlaysetLimit
		if hasCommander {
			limit = CommanderPlaysetLimit
		}
		if card.AllowedMultiples != nil {
			limit = *card.AllowedMultiples
		}
		if playset.Count() > limit {
			return &ValidationError{
				Kind:     InvalidPlaysetSize,
				CardName: card.Name,
				Count:    playset.Count(),
				Limit:    limit,
			}
		}
	}
	return nil
}

// Mainboard returns the mainboard card instances.
func (d *Deck) Mainboard() []*cards.Card { return append([]*cards.Card{}, d.mainboard...) }

// Sideboard returns the sideboard card instances, excluding a promoted
// companion.
func (d *Deck) Sideboard() []*cards.Card { return append([]*cards.Card{}, d.sideboard...) }

// Commander returns the commander, or nil.
func (d *Deck) Commander() *cards.Card { return d.commander }

// Companion returns the companion, or nil.
func (d *Deck) Companion() *cards.Card { return d.companion }

// Metadata returns the mutable metadata map of the deck.
func (d *Deck) Metadata() Metadata { return d.meta }

// MergeMetadata merges entries into the deck's metadata, last write wins.
func (d *Deck) MergeMetadata(other Metadata) { d.meta.Merge(other) }

// Name returns the deck's free-text name, if any.
func (d *Deck) Name() string { return d.meta[MetaName] }

// pool returns mainboard and sideboard combined.
func (d *Deck) pool() []*cards.Card {
	return append(append([]*cards.Card{}, d.mainboard...), d.sideboard...)
}

// MainboardPlaysets groups the mainboard into playsets.
func (d *Deck) MainboardPlaysets() map[string]Playset { return GroupPlaysets(d.mainboard) }

// SideboardPlaysets groups the sideboard into playsets.
func (d *Deck) SideboardPlaysets() map[string]Playset { return GroupPlaysets(d.sideboard) }

// Equal reports whether two decks hold the same combined playset-count
// multiset over mainboard and sideboard. Commander, companion, metadata and
// list order are deliberately ignored so scraped duplicates that differ only
// in metadata compare equal.
func (d *Deck) Equal(other *Deck) bool {
	if other == nil {
		return false
	}
	left := playsetCounts(d.pool())
	right := playsetCounts(other.pool())
	if len(left) != len(right) {
		return false
	}
	for identity, count := range left {
		if right[identity] != count {
			return false
		}
	}
	return true
}

func playsetCounts(pool []*cards.Card) map[string]int {
	counts := make(map[string]int, len(pool))
	for _, c := range pool {
		counts[c.Identity()]++
	}
	return counts
}

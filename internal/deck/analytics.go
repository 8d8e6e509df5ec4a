package deck

import (
	"strings"

	"github.com/ramonehamilton/deckhaven/internal/cards"
)

// Archetype is a coarse strategic classification of a deck.
type Archetype string

// Known archetypes.
const (
	ArchetypeAggro    Archetype = "Aggro"
	ArchetypeMidrange Archetype = "Midrange"
	ArchetypeControl  Archetype = "Control"
	ArchetypeCombo    Archetype = "Combo"
	ArchetypeTempo    Archetype = "Tempo"
	ArchetypeRamp     Archetype = "Ramp"
)

// aggroManaValueCeiling is the average mana value below which a deck without
// a better signal classifies as aggro.
const aggroManaValueCeiling = 2.3

// controlCreatureCeiling is the creature count below which a slower deck
// classifies as control rather than midrange.
const controlCreatureCeiling = 10

var knownArchetypes = map[string]Archetype{
	"aggro":    ArchetypeAggro,
	"midrange": ArchetypeMidrange,
	"control":  ArchetypeControl,
	"combo":    ArchetypeCombo,
	"tempo":    ArchetypeTempo,
	"ramp":     ArchetypeRamp,
}

// knownThemes is the vocabulary of deck themes matched against name tokens.
var knownThemes = []string{
	"affinity", "angels", "aristocrats", "artifacts", "auras", "blink",
	"burn", "counters", "cycling", "devotion", "discard", "dragons",
	"elves", "energy", "enchantments", "equipment", "goblins", "graveyard",
	"humans", "knights", "landfall", "lifegain", "merfolk", "mill",
	"reanimator", "sacrifice", "slivers", "spellslinger", "spirits",
	"storm", "tokens", "treasure", "vampires", "vehicles", "zombies",
}

// Colors returns the union of cast colors across every card in the deck,
// commander and companion included.
func (d *Deck) Colors() cards.ColorSet {
	var set cards.ColorSet
	for _, c := range d.allCards() {
		set = set.Union(c.Colors)
	}
	return set
}

// ColorIdentity returns the union of color identities across every card in
// the deck, commander and companion included.
func (d *Deck) ColorIdentity() cards.ColorSet {
	var set cards.ColorSet
	for _, c := range d.allCards() {
		set = set.Union(c.ColorIdentity)
	}
	return set
}

func (d *Deck) allCards() []*cards.Card {
	pool := d.pool()
	if d.commander != nil {
		pool = append(pool, d.commander)
	}
	if d.companion != nil {
		pool = append(pool, d.companion)
	}
	return pool
}

func (d *Deck) filter(keep func(*cards.Card) bool) []*cards.Card {
	var out []*cards.Card
	for _, c := range d.pool() {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Creatures returns every creature instance in mainboard and sideboard.
func (d *Deck) Creatures() []*cards.Card { return d.filter((*cards.Card).IsCreature) }

// Planeswalkers returns every planeswalker instance in mainboard and sideboard.
func (d *Deck) Planeswalkers() []*cards.Card { return d.filter((*cards.Card).IsPlaneswalker) }

// Artifacts returns every artifact instance in mainboard and sideboard.
func (d *Deck) Artifacts() []*cards.Card { return d.filter((*cards.Card).IsArtifact) }

// Enchantments returns every enchantment instance in mainboard and sideboard.
func (d *Deck) Enchantments() []*cards.Card { return d.filter((*cards.Card).IsEnchantment) }

// Instants returns every instant instance in mainboard and sideboard.
func (d *Deck) Instants() []*cards.Card { return d.filter((*cards.Card).IsInstant) }

// Sorceries returns every sorcery instance in mainboard and sideboard.
func (d *Deck) Sorceries() []*cards.Card { return d.filter((*cards.Card).IsSorcery) }

// Lands returns every land instance in mainboard and sideboard.
func (d *Deck) Lands() []*cards.Card { return d.filter((*cards.Card).IsLand) }

// average computes the mean of attr over cards where it is defined. Cards
// lacking the attribute are excluded from numerator and denominator.
func (d *Deck) average(attr func(*cards.Card) (float64, bool)) float64 {
	var sum float64
	var n int
	for _, c := range d.pool() {
		if v, ok := attr(c); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// AvgManaValue returns the mean mana value over cards that have one.
func (d *Deck) AvgManaValue() float64 {
	return d.average(func(c *cards.Card) (float64, bool) {
		if c.ManaValue == nil {
			return 0, false
		}
		return *c.ManaValue, true
	})
}

// AvgRarityWeight returns the mean numeric rarity weight over cards with a
// known rarity.
func (d *Deck) AvgRarityWeight() float64 {
	return d.average(func(c *cards.Card) (float64, bool) {
		w := c.Rarity.Weight()
		return w, w > 0
	})
}

// AvgPriceUSD returns the mean USD price over cards with a USD listing.
func (d *Deck) AvgPriceUSD() float64 {
	return d.average(func(c *cards.Card) (float64, bool) {
		if c.PriceUSD == nil {
			return 0, false
		}
		return *c.PriceUSD, true
	})
}

// AvgPriceTix returns the mean MTGO ticket price over cards with a tix
// listing.
func (d *Deck) AvgPriceTix() float64 {
	return d.average(func(c *cards.Card) (float64, bool) {
		if c.PriceTix == nil {
			return 0, false
		}
		return *c.PriceTix, true
	})
}

// nameTokens splits the deck name into lowercased tokens with color words
// removed.
func (d *Deck) nameTokens() []string {
	fields := strings.FieldsFunc(strings.ToLower(d.Name()), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	var tokens []string
	for _, f := range fields {
		if !cards.IsColorWord(f) {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Theme returns the deck's theme: the metadata override when present, else
// the first deck-name token matching the theme vocabulary. Empty when
// nothing matches.
func (d *Deck) Theme() string {
	if override := d.meta[MetaTheme]; override != "" {
		return override
	}
	for _, token := range d.nameTokens() {
		for _, theme := range knownThemes {
			if token == theme {
				return theme
			}
		}
	}
	return ""
}

// Archetype classifies the deck. A valid metadata override wins; then a
// deck-name token naming a known archetype; then the combo heuristic (a
// non-theme name token echoing a mainboard card name); finally the numeric
// heuristic over average mana value and creature count.
func (d *Deck) Archetype() Archetype {
	if override, ok := knownArchetypes[strings.ToLower(d.meta[MetaArchetype])]; ok {
		return override
	}

	tokens := d.nameTokens()
	for _, token := range tokens {
		if a, ok := knownArchetypes[token]; ok {
			return a
		}
	}

	if d.Theme() == "" {
		for _, token := range tokens {
			for _, c := range d.mainboard {
				if strings.Contains(strings.ToLower(c.Name), token) {
					return ArchetypeCombo
				}
			}
		}
	}

	if d.AvgManaValue() < aggroManaValueCeiling {
		return ArchetypeAggro
	}
	if len(d.Creatures()) < controlCreatureCeiling {
		return ArchetypeControl
	}
	return ArchetypeMidrange
}

// LatestSet returns the most recently released expansion represented among
// the deck's non-basic-land cards. The second return is false when no card
// belongs to a known expansion.
func (d *Deck) LatestSet() (cards.SetInfo, bool) {
	var codes []string
	for _, c := range d.pool() {
		if !c.IsBasicLand() {
			codes = append(codes, c.SetCode)
		}
	}
	return cards.LatestExpansion(codes)
}

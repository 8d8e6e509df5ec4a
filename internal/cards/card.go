// Package cards defines the canonical card value consumed by the deck
// canonicalization pipeline, together with the lookup interface used to
// resolve textual card references into canonical cards.
package cards

import (
	"strings"
	"time"
)

// UnlimitedCopies is the AllowedMultiples sentinel for cards that may appear
// any number of times in a deck (e.g. Persistent Petitioners).
const UnlimitedCopies = -1

// Card represents canonical metadata about a single Magic card printing.
// Cards are resolved by a Lookup implementation and treated as immutable
// values by everything downstream.
type Card struct {
	// External identifiers
	ScryfallID   string `json:"id,omitempty"`
	OracleID     string `json:"oracle_id,omitempty"`
	ArenaID      int    `json:"arena_id,omitempty"`
	MTGOID       int    `json:"mtgo_id,omitempty"`
	TCGPlayerID  int    `json:"tcgplayer_id,omitempty"`
	CardmarketID int    `json:"cardmarket_id,omitempty"`

	// Basic card information
	Name      string   `json:"name"`
	FaceNames []string `json:"face_names,omitempty"` // Both halves of a multi-face card
	TypeLine  string   `json:"type_line"`
	Keywords  []string `json:"keywords,omitempty"`

	// Printing
	SetCode         string    `json:"set"`
	CollectorNumber string    `json:"collector_number"`
	ReleasedAt      time.Time `json:"released_at"`

	// Colors and identity
	Colors        ColorSet `json:"colors"`
	ColorIdentity ColorSet `json:"color_identity"`

	// Rarity
	Rarity Rarity `json:"rarity"`

	// Mana value. Nil for cards without one (the back face of some cards,
	// certain special layouts); basic lands report 0, not nil.
	ManaValue *float64 `json:"mana_value,omitempty"`

	// AllowedMultiples overrides the deck-level playset cap when non-nil.
	// UnlimitedCopies lifts the cap entirely.
	AllowedMultiples *int `json:"allowed_multiples,omitempty"`

	// Prices. Nil when the market has no listing.
	PriceUSD *float64 `json:"price_usd,omitempty"`
	PriceTix *float64 `json:"price_tix,omitempty"`
}

// FaceSeparator joins the face names of a multi-face card in canonical form.
const FaceSeparator = " // "

// Identity returns the stable key used to group copies of the same card into
// a playset. Different printings of the same card share an identity.
func (c *Card) Identity() string {
	if c.OracleID != "" {
		return c.OracleID
	}
	return strings.ToLower(c.Name)
}

// PrimaryName returns the front-face name of a multi-face card, or the full
// name for single-faced cards.
func (c *Card) PrimaryName() string {
	if len(c.FaceNames) > 0 {
		return c.FaceNames[0]
	}
	if name, _, ok := strings.Cut(c.Name, FaceSeparator); ok {
		return name
	}
	return c.Name
}

func (c *Card) typeLineContains(word string) bool {
	return strings.Contains(strings.ToLower(c.TypeLine), word)
}

// IsCreature reports whether any face of the card is a creature.
func (c *Card) IsCreature() bool { return c.typeLineContains("creature") }

// IsPlaneswalker reports whether any face of the card is a planeswalker.
func (c *Card) IsPlaneswalker() bool { return c.typeLineContains("planeswalker") }

// IsArtifact reports whether any face of the card is an artifact.
func (c *Card) IsArtifact() bool { return c.typeLineContains("artifact") }

// IsEnchantment reports whether any face of the card is an enchantment.
func (c *Card) IsEnchantment() bool { return c.typeLineContains("enchantment") }

// IsInstant reports whether any face of the card is an instant.
func (c *Card) IsInstant() bool { return c.typeLineContains("instant") }

// IsSorcery reports whether any face of the card is a sorcery.
func (c *Card) IsSorcery() bool { return c.typeLineContains("sorcery") }

// IsLand reports whether any face of the card is a land.
func (c *Card) IsLand() bool { return c.typeLineContains("land") }

// IsBasicLand reports whether the card is a basic land. Basic lands are
// exempt from playset caps.
func (c *Card) IsBasicLand() bool { return c.typeLineContains("basic") && c.IsLand() }

// IsLegendary reports whether the card carries the legendary supertype.
func (c *Card) IsLegendary() bool { return c.typeLineContains("legendary") }

// CanBeCommander reports whether the card is a legal commander: legendary and
// either a creature or a planeswalker.
func (c *Card) CanBeCommander() bool {
	return c.IsLegendary() && (c.IsCreature() || c.IsPlaneswalker())
}

// CanBeCompanion reports whether the card has the Companion ability.
func (c *Card) CanBeCompanion() bool {
	for _, kw := range c.Keywords {
		if strings.EqualFold(kw, "Companion") {
			return true
		}
	}
	return false
}

// HasUnlimitedCopies reports whether the playset cap does not apply to this
// card at all.
func (c *Card) HasUnlimitedCopies() bool {
	return c.IsBasicLand() || (c.AllowedMultiples != nil && *c.AllowedMultiples == UnlimitedCopies)
}

// Rarity is a card rarity with a numeric weight for averaging.
type Rarity string

// Rarities in ascending weight order.
const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RarityMythic   Rarity = "mythic"
	RaritySpecial  Rarity = "special"
)

var rarityWeights = map[Rarity]float64{
	RarityCommon:   1,
	RarityUncommon: 2,
	RarityRare:     3,
	RarityMythic:   4,
	RaritySpecial:  5,
}

// Weight returns the numeric weight of the rarity, or 0 for unknown values.
func (r Rarity) Weight() float64 {
	return rarityWeights[Rarity(strings.ToLower(string(r)))]
}

// Package deck implements the canonical validated deck aggregate and its
// derived analytics.
package deck

import "github.com/ramonehamilton/deckhaven/internal/cards"

// Playset is a nonempty group of card copies sharing one identity.
type Playset []*cards.Card

// Card returns a representative copy of the playset.
func (p Playset) Card() *cards.Card { return p[0] }

// Count returns the number of copies in the playset.
func (p Playset) Count() int { return len(p) }

// GroupPlaysets groups cards by identity, preserving multiplicity. The map is
// keyed by cards.Card.Identity.
func GroupPlaysets(pool []*cards.Card) map[string]Playset {
	playsets := make(map[string]Playset)
	for _, c := range pool {
		playsets[c.Identity()] = append(playsets[c.Identity()], c)
	}
	return playsets
}

// Flatten expands a quantity-per-card list into repeated card instances, the
// inverse of GroupPlaysets for codec and adapter use.
func Flatten(card *cards.Card, quantity int) []*cards.Card {
	copies := make([]*cards.Card, 0, quantity)
	for i := 0; i < quantity; i++ {
		copies = append(copies, card)
	}
	return copies
}

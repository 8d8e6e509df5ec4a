package deckio

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ramonehamilton/deckhaven/internal/deck"
)

// JSONDeck is the JSON interchange shape: the open metadata map plus the
// Arena rendering of the decklist.
type JSONDeck struct {
	Metadata      deck.Metadata `json:"metadata"`
	ArenaDecklist string        `json:"arena_decklist"`
}

// ExportJSON serializes a deck as JSON wrapping its Arena decklist text.
func (c *ArenaCodec) ExportJSON(d *deck.Deck) ([]byte, error) {
	payload := JSONDeck{
		Metadata:      d.Metadata().Clone(),
		ArenaDecklist: c.Export(d),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal deck JSON: %w", err)
	}
	return data, nil
}

// ImportJSON parses the JSON interchange shape back into a validated deck,
// merging the carried metadata over what the Arena import recovers.
func (c *ArenaCodec) ImportJSON(ctx context.Context, data []byte) (*deck.Deck, error) {
	var payload JSONDeck
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: invalid deck JSON: %v", deck.ErrParse, err)
	}
	d, err := c.Import(ctx, payload.ArenaDecklist)
	if err != nil {
		return nil, err
	}
	if d != nil && payload.Metadata != nil {
		d.MergeMetadata(payload.Metadata)
	}
	return d, nil
}

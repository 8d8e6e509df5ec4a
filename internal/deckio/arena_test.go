package deckio

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ramonehamilton/deckhaven/internal/cards"
	"github.com/ramonehamilton/deckhaven/internal/deck"
)

func testCommit() *cards.Card {
	return &cards.Card{
		Name:            "Commit // Memory",
		FaceNames:       []string{"Commit", "Memory"},
		TypeLine:        "Instant // Sorcery",
		ManaValue:       manaValue(4),
		SetCode:         "akr",
		CollectorNumber: "54",
		Colors:          cards.NewColorSet("U"),
		ColorIdentity:   cards.NewColorSet("U"),
		Rarity:          cards.RarityRare,
	}
}

func arenaFixture() *fixtureLookup {
	return &fixtureLookup{pool: []*cards.Card{testMountain(), testBolt(), testZada(), testObosh(), testCommit()}}
}

func TestArenaCodec_Export(t *testing.T) {
	codec := &ArenaCodec{Lookup: arenaFixture()}

	main := deck.Flatten(testMountain(), 59)
	d, err := deck.New(main, nil, testZada(), nil, nil)
	if err != nil {
		t.Fatalf("deck.New() error = %v", err)
	}

	got := codec.Export(d)
	want := strings.Join([]string{
		"Commander",
		"1 Zada, Hedron Grinder (ORI) 20",
		"",
		"Deck",
		"59 Mountain",
		"",
	}, "\n")
	if got != want {
		t.Errorf("Export() =\n%s\nwant:\n%s", got, want)
	}
}

func TestArenaCodec_ExportRewritesFaceSeparator(t *testing.T) {
	codec := &ArenaCodec{Lookup: arenaFixture()}

	main := append(deck.Flatten(testMountain(), 56), deck.Flatten(testCommit(), 4)...)
	d, err := deck.New(main, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("deck.New() error = %v", err)
	}

	out := codec.Export(d)
	if !strings.Contains(out, "4 Commit /// Memory (AKR) 54") {
		t.Errorf("Export() did not rewrite the face separator:\n%s", out)
	}
	if strings.Contains(out, "Commit // Memory") {
		t.Errorf("Export() leaked the canonical separator onto the wire:\n%s", out)
	}
}

func TestArenaCodec_Import(t *testing.T) {
	codec := &ArenaCodec{Lookup: arenaFixture()}
	text := strings.Join([]string{
		"Companion",
		"1 Obosh, the Preypiercer (IKO) 124",
		"",
		"Deck",
		"4 Lightning Bolt (EOE) 199",
		"56 Mountain",
		"",
		"Sideboard",
		"4 Commit /// Memory (AKR) 54",
	}, "\n")

	d, err := codec.Import(context.Background(), text)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if got := len(d.Mainboard()); got != 60 {
		t.Errorf("len(Mainboard()) = %d, want 60", got)
	}
	if got := len(d.Sideboard()); got != 4 {
		t.Errorf("len(Sideboard()) = %d, want 4", got)
	}
	if d.Companion() == nil || d.Companion().Name != "Obosh, the Preypiercer" {
		t.Errorf("Companion() = %v, want Obosh", d.Companion())
	}
	if d.Metadata()[deck.MetaSource] != "arena" {
		t.Errorf("source = %v, want arena", d.Metadata()[deck.MetaSource])
	}
}

func TestArenaCodec_ImportHeaderless(t *testing.T) {
	codec := &ArenaCodec{Lookup: arenaFixture()}
	text := "4 Lightning Bolt (EOE) 199\n56 Mountain\n\nSideboard\n4 Commit /// Memory (AKR) 54\n"

	d, err := codec.Import(context.Background(), text)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if got := len(d.Mainboard()); got != 60 {
		t.Errorf("len(Mainboard()) = %d, want 60", got)
	}
	if got := len(d.Sideboard()); got != 4 {
		t.Errorf("len(Sideboard()) = %d, want 4", got)
	}
}

func TestArenaCodec_ImportRejectsUnrecognizedLines(t *testing.T) {
	codec := &ArenaCodec{Lookup: arenaFixture()}

	tests := []struct {
		name string
		text string
	}{
		{name: "prose", text: "this is not a decklist"},
		{name: "mixed", text: "Deck\n4 Lightning Bolt (EOE) 199\ntotally not a card"},
		{name: "empty", text: "\n\n"},
		{name: "duplicate header", text: "Deck\n4 Lightning Bolt (EOE) 199\nDeck\n56 Mountain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.Import(context.Background(), tt.text); !errors.Is(err, deck.ErrParse) {
				t.Errorf("Import() error = %v, want deck.ErrParse", err)
			}
		})
	}
}

func TestArenaCodec_RoundTrip(t *testing.T) {
	codec := &ArenaCodec{Lookup: arenaFixture()}
	ctx := context.Background()

	main := append(deck.Flatten(testMountain(), 56), deck.Flatten(testBolt(), 4)...)
	original, err := deck.New(main, deck.Flatten(testCommit(), 2), nil, nil, nil)
	if err != nil {
		t.Fatalf("deck.New() error = %v", err)
	}

	reimported, err := codec.Import(ctx, codec.Export(original))
	if err != nil {
		t.Fatalf("Import(Export()) error = %v", err)
	}
	if !original.Equal(reimported) {
		t.Error("round-tripped deck is not Equal to the original")
	}
}

func TestArenaCodec_JSONRoundTrip(t *testing.T) {
	codec := &ArenaCodec{Lookup: arenaFixture()}
	ctx := context.Background()

	main := append(deck.Flatten(testMountain(), 56), deck.Flatten(testBolt(), 4)...)
	original, err := deck.New(main, nil, nil, nil, deck.Metadata{
		deck.MetaName:   "Burn",
		deck.MetaAuthor: "someone",
	})
	if err != nil {
		t.Fatalf("deck.New() error = %v", err)
	}

	data, err := codec.ExportJSON(original)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("ExportJSON() produced invalid JSON: %v", err)
	}
	if _, ok := payload["metadata"]; !ok {
		t.Error("JSON payload missing metadata key")
	}
	if _, ok := payload["arena_decklist"]; !ok {
		t.Error("JSON payload missing arena_decklist key")
	}

	reimported, err := codec.ImportJSON(ctx, data)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if !original.Equal(reimported) {
		t.Error("JSON round-tripped deck is not Equal to the original")
	}
	if reimported.Metadata()[deck.MetaAuthor] != "someone" {
		t.Errorf("author = %v, want carried through JSON", reimported.Metadata()[deck.MetaAuthor])
	}
}

func TestImportJSON_Invalid(t *testing.T) {
	codec := &ArenaCodec{Lookup: arenaFixture()}
	if _, err := codec.ImportJSON(context.Background(), []byte("{")); !errors.Is(err, deck.ErrParse) {
		t.Fatalf("ImportJSON() error = %v, want deck.ErrParse", err)
	}
}

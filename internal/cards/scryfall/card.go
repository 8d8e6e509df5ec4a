package scryfall

import (
	"strconv"
	"strings"
	"time"

	"github.com/ramonehamilton/deckhaven/internal/cards"
)

// scryfallCard mirrors the subset of Scryfall's card object the pipeline
// needs.
type scryfallCard struct {
	ID              string   `json:"id"`
	OracleID        string   `json:"oracle_id"`
	ArenaID         int      `json:"arena_id"`
	MTGOID          int      `json:"mtgo_id"`
	TCGPlayerID     int      `json:"tcgplayer_id"`
	CardmarketID    int      `json:"cardmarket_id"`
	Name            string   `json:"name"`
	TypeLine        string   `json:"type_line"`
	Keywords        []string `json:"keywords"`
	Set             string   `json:"set"`
	CollectorNumber string   `json:"collector_number"`
	ReleasedAt      string   `json:"released_at"`
	CMC             *float64 `json:"cmc"`
	Colors          []string `json:"colors"`
	ColorIdentity   []string `json:"color_identity"`
	Rarity          string   `json:"rarity"`
	Layout          string   `json:"layout"`
	CardFaces       []struct {
		Name string `json:"name"`
	} `json:"card_faces"`
	Prices struct {
		USD string `json:"usd"`
		Tix string `json:"tix"`
	} `json:"prices"`
}

// scryfallList mirrors Scryfall's paginated list envelope.
type scryfallList struct {
	Data []scryfallCard `json:"data"`
}

// unlimitedByName flags cards whose rules text lifts the copy limit
// entirely. Scryfall data carries the text but not a structured flag, so the
// known cards are listed by oracle name. Seven Dwarves is special-cased below
// with its hard cap of seven.
var unlimitedByName = map[string]bool{
	"dragon's approach":      true,
	"hare apparent":          true,
	"nazgûl":                 true,
	"persistent petitioners": true,
	"rat colony":             true,
	"relentless rats":        true,
	"shadowborn apostle":     true,
	"slime against humanity": true,
	"templar knight":         true,
}

func (sc *scryfallCard) toCard() *cards.Card {
	card := &cards.Card{
		ScryfallID:      sc.ID,
		OracleID:        sc.OracleID,
		ArenaID:         sc.ArenaID,
		MTGOID:          sc.MTGOID,
		TCGPlayerID:     sc.TCGPlayerID,
		CardmarketID:    sc.CardmarketID,
		Name:            sc.Name,
		TypeLine:        sc.TypeLine,
		Keywords:        sc.Keywords,
		SetCode:         strings.ToLower(sc.Set),
		CollectorNumber: sc.CollectorNumber,
		Colors:          cards.NewColorSet(sc.Colors...),
		ColorIdentity:   cards.NewColorSet(sc.ColorIdentity...),
		Rarity:          cards.Rarity(strings.ToLower(sc.Rarity)),
		ManaValue:       sc.CMC,
	}

	if released, err := time.Parse("2006-01-02", sc.ReleasedAt); err == nil {
		card.ReleasedAt = released
	}
	for _, face := range sc.CardFaces {
		card.FaceNames = append(card.FaceNames, face.Name)
	}
	if usd, err := strconv.ParseFloat(sc.Prices.USD, 64); err == nil {
		card.PriceUSD = &usd
	}
	if tix, err := strconv.ParseFloat(sc.Prices.Tix, 64); err == nil {
		card.PriceTix = &tix
	}

	lowered := strings.ToLower(sc.Name)
	if unlimitedByName[lowered] {
		unlimited := cards.UnlimitedCopies
		card.AllowedMultiples = &unlimited
	} else if lowered == "seven dwarves" {
		seven := 7
		card.AllowedMultiples = &seven
	}

	return card
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ramonehamilton/deckhaven/internal/cards"
)

// listSeparator joins list-valued columns (face names, keywords, colors).
const listSeparator = "|"

// SaveCard inserts or refreshes a card in the cache.
func (db *DB) SaveCard(ctx context.Context, card *cards.Card) error {
	query := `
		INSERT INTO cards (
			scryfall_id, oracle_id, arena_id, mtgo_id, tcgplayer_id, cardmarket_id,
			name, face_names, type_line, keywords, set_code, collector_number,
			released_at, colors, color_identity, rarity, mana_value,
			allowed_multiples, price_usd, price_tix, cached_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(scryfall_id) DO UPDATE SET
			name = excluded.name,
			face_names = excluded.face_names,
			type_line = excluded.type_line,
			keywords = excluded.keywords,
			released_at = excluded.released_at,
			colors = excluded.colors,
			color_identity = excluded.color_identity,
			rarity = excluded.rarity,
			mana_value = excluded.mana_value,
			allowed_multiples = excluded.allowed_multiples,
			price_usd = excluded.price_usd,
			price_tix = excluded.price_tix,
			cached_at = CURRENT_TIMESTAMP
	`

	var released *string
	if !card.ReleasedAt.IsZero() {
		r := card.ReleasedAt.Format("2006-01-02")
		released = &r
	}

	_, err := db.conn.ExecContext(ctx, query,
		card.ScryfallID, card.OracleID, card.ArenaID, card.MTGOID,
		card.TCGPlayerID, card.CardmarketID,
		card.Name, strings.Join(card.FaceNames, listSeparator), card.TypeLine,
		strings.Join(card.Keywords, listSeparator), card.SetCode, card.CollectorNumber,
		released, strings.Join(card.Colors, listSeparator),
		strings.Join(card.ColorIdentity, listSeparator), string(card.Rarity),
		card.ManaValue, card.AllowedMultiples, card.PriceUSD, card.PriceTix,
	)
	if err != nil {
		return fmt.Errorf("save card %q: %w", card.Name, err)
	}
	return nil
}

const cardColumns = `
	scryfall_id, oracle_id, arena_id, mtgo_id, tcgplayer_id, cardmarket_id,
	name, face_names, type_line, keywords, set_code, collector_number,
	released_at, colors, color_identity, rarity, mana_value,
	allowed_multiples, price_usd, price_tix, cached_at
`

// CardByCollector fetches a cached card by printing.
func (db *DB) CardByCollector(ctx context.Context, setCode, collectorNumber string) (*cards.Card, time.Time, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+cardColumns+" FROM cards WHERE set_code = ? AND collector_number = ?",
		strings.ToLower(setCode), collectorNumber)
	return scanCard(row)
}

// CardByName fetches a cached card by its (case-insensitive) name.
func (db *DB) CardByName(ctx context.Context, name string) (*cards.Card, time.Time, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+cardColumns+" FROM cards WHERE name = ? COLLATE NOCASE LIMIT 1", name)
	return scanCard(row)
}

// CardByScryfallID fetches a cached card by Scryfall UUID.
func (db *DB) CardByScryfallID(ctx context.Context, id string) (*cards.Card, time.Time, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+cardColumns+" FROM cards WHERE scryfall_id = ?", id)
	return scanCard(row)
}

// CardByOracleID fetches a cached card by oracle UUID.
func (db *DB) CardByOracleID(ctx context.Context, id string) (*cards.Card, time.Time, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+cardColumns+" FROM cards WHERE oracle_id = ? LIMIT 1", id)
	return scanCard(row)
}

// CardByArenaID fetches a cached card by Arena ID.
func (db *DB) CardByArenaID(ctx context.Context, id int) (*cards.Card, time.Time, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+cardColumns+" FROM cards WHERE arena_id = ? LIMIT 1", id)
	return scanCard(row)
}

// CardByMTGOID fetches a cached card by MTGO ID.
func (db *DB) CardByMTGOID(ctx context.Context, id int) (*cards.Card, time.Time, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+cardColumns+" FROM cards WHERE mtgo_id = ? LIMIT 1", id)
	return scanCard(row)
}

func scanCard(row *sql.Row) (*cards.Card, time.Time, error) {
	var (
		card      cards.Card
		faceNames string
		keywords  string
		released  sql.NullString
		colors    string
		identity  string
		rarity    string
		manaValue sql.NullFloat64
		multiples sql.NullInt64
		priceUSD  sql.NullFloat64
		priceTix  sql.NullFloat64
		cachedAt  time.Time
	)
	err := row.Scan(
		&card.ScryfallID, &card.OracleID, &card.ArenaID, &card.MTGOID,
		&card.TCGPlayerID, &card.CardmarketID,
		&card.Name, &faceNames, &card.TypeLine, &keywords,
		&card.SetCode, &card.CollectorNumber,
		&released, &colors, &identity, &rarity, &manaValue,
		&multiples, &priceUSD, &priceTix, &cachedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, cards.ErrCardNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("scan card: %w", err)
	}

	card.FaceNames = splitList(faceNames)
	card.Keywords = splitList(keywords)
	card.Colors = cards.NewColorSet(splitList(colors)...)
	card.ColorIdentity = cards.NewColorSet(splitList(identity)...)
	card.Rarity = cards.Rarity(rarity)
	if released.Valid {
		if t, err := time.Parse("2006-01-02", released.String); err == nil {
			card.ReleasedAt = t
		}
	}
	if manaValue.Valid {
		card.ManaValue = &manaValue.Float64
	}
	if multiples.Valid {
		m := int(multiples.Int64)
		card.AllowedMultiples = &m
	}
	if priceUSD.Valid {
		card.PriceUSD = &priceUSD.Float64
	}
	if priceTix.Valid {
		card.PriceTix = &priceTix.Float64
	}
	return &card, cachedAt, nil
}

func splitList(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, listSeparator)
}

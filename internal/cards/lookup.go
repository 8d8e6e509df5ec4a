package cards

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ErrCardNotFound is returned by Lookup implementations when a reference
// cannot be resolved to a canonical card. It signals an external-data
// problem, as opposed to a structural parsing or validation failure.
var ErrCardNotFound = errors.New("card not found")

// NotFoundError wraps ErrCardNotFound with the reference that failed.
type NotFoundError struct {
	Name            string
	SetCode         string
	CollectorNumber string
}

func (e *NotFoundError) Error() string {
	if e.SetCode != "" {
		return fmt.Sprintf("card not found: %q (%s) %s", e.Name, strings.ToUpper(e.SetCode), e.CollectorNumber)
	}
	return fmt.Sprintf("card not found: %q", e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrCardNotFound }

// Lookup resolves card references to canonical Card values. Implementations
// return an error wrapping ErrCardNotFound when no card matches.
type Lookup interface {
	// ByCollector resolves an exact printing by set code and collector number.
	ByCollector(ctx context.Context, setCode, collectorNumber string) (*Card, error)

	// ByName resolves a card by its exact English name.
	ByName(ctx context.Context, name string) (*Card, error)

	// ByForeignName resolves a non-English card name to its English
	// equivalent. Used as the single documented fallback after ByName fails.
	ByForeignName(ctx context.Context, name string) (*Card, error)

	// ByScryfallID resolves a card by its Scryfall UUID.
	ByScryfallID(ctx context.Context, id string) (*Card, error)

	// ByOracleID resolves a card by its oracle UUID.
	ByOracleID(ctx context.Context, id string) (*Card, error)

	// ByArenaID resolves a card by its MTG Arena numeric ID.
	ByArenaID(ctx context.Context, id int) (*Card, error)

	// ByMTGOID resolves a card by its MTGO numeric ID.
	ByMTGOID(ctx context.Context, id int) (*Card, error)
}

// poolSource adapts a candidate slice to fuzzy.Source.
type poolSource []*Card

func (p poolSource) String(i int) string { return p[i].Name }
func (p poolSource) Len() int            { return len(p) }

// ByNameInPool resolves a name against a fixed candidate pool without going
// through a Lookup: exact (case-insensitive) match first, then the best fuzzy
// match. Site adapters use this when a page carries its own card list.
func ByNameInPool(name string, pool []*Card) (*Card, error) {
	for _, c := range pool {
		if strings.EqualFold(c.Name, name) || strings.EqualFold(c.PrimaryName(), name) {
			return c, nil
		}
	}
	matches := fuzzy.FindFrom(name, poolSource(pool))
	if len(matches) > 0 {
		return pool[matches[0].Index], nil
	}
	return nil, &NotFoundError{Name: name}
}

package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ramonehamilton/deckhaven/internal/cards"
)

// DefaultStaleThreshold is how old cached card data may be before the inner
// lookup is consulted again. Prices move; names do not.
const DefaultStaleThreshold = 7 * 24 * time.Hour

// Service is a cards.Lookup that answers from the SQLite cache first and
// falls through to an inner lookup (normally the Scryfall client) on a miss
// or stale hit, writing the fresh card back. A stale cached card is still
// returned when the inner lookup fails, so offline runs keep working.
type Service struct {
	db             *DB
	inner          cards.Lookup
	staleThreshold time.Duration
	logger         *slog.Logger
}

// NewService builds a cache-backed lookup. A zero staleThreshold uses
// DefaultStaleThreshold; a nil logger uses slog.Default.
func NewService(db *DB, inner cards.Lookup, staleThreshold time.Duration, logger *slog.Logger) *Service {
	if staleThreshold == 0 {
		staleThreshold = DefaultStaleThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, inner: inner, staleThreshold: staleThreshold, logger: logger}
}

type cacheQuery func(context.Context) (*cards.Card, time.Time, error)
type innerQuery func(context.Context) (*cards.Card, error)

func (s *Service) resolve(ctx context.Context, fromCache cacheQuery, fromInner innerQuery) (*cards.Card, error) {
	cached, cachedAt, err := fromCache(ctx)
	if err == nil && time.Since(cachedAt) < s.staleThreshold {
		return cached, nil
	}
	if err != nil && !errors.Is(err, cards.ErrCardNotFound) {
		return nil, err
	}

	fresh, err := fromInner(ctx)
	if err != nil {
		if cached != nil {
			return cached, nil
		}
		return nil, err
	}

	if err := s.db.SaveCard(ctx, fresh); err != nil {
		s.logger.Warn("card cache write failed",
			slog.String("card", fresh.Name),
			slog.String("error", err.Error()))
	}
	return fresh, nil
}

// ByCollector implements cards.Lookup.
func (s *Service) ByCollector(ctx context.Context, setCode, collectorNumber string) (*cards.Card, error) {
	return s.resolve(ctx,
		func(ctx context.Context) (*cards.Card, time.Time, error) {
			return s.db.CardByCollector(ctx, setCode, collectorNumber)
		},
		func(ctx context.Context) (*cards.Card, error) {
			return s.inner.ByCollector(ctx, setCode, collectorNumber)
		})
}

// ByName implements cards.Lookup.
func (s *Service) ByName(ctx context.Context, name string) (*cards.Card, error) {
	return s.resolve(ctx,
		func(ctx context.Context) (*cards.Card, time.Time, error) {
			return s.db.CardByName(ctx, name)
		},
		func(ctx context.Context) (*cards.Card, error) {
			return s.inner.ByName(ctx, name)
		})
}

// ByForeignName implements cards.Lookup. Foreign printed names are not
// cached locally, so this always goes to the inner lookup; the resolved
// English card is still written back.
func (s *Service) ByForeignName(ctx context.Context, name string) (*cards.Card, error) {
	fresh, err := s.inner.ByForeignName(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.db.SaveCard(ctx, fresh); err != nil {
		s.logger.Warn("card cache write failed",
			slog.String("card", fresh.Name),
			slog.String("error", err.Error()))
	}
	return fresh, nil
}

// ByScryfallID implements cards.Lookup.
func (s *Service) ByScryfallID(ctx context.Context, id string) (*cards.Card, error) {
	return s.resolve(ctx,
		func(ctx context.Context) (*cards.Card, time.Time, error) {
			return s.db.CardByScryfallID(ctx, id)
		},
		func(ctx context.Context) (*cards.Card, error) {
			return s.inner.ByScryfallID(ctx, id)
		})
}

// ByOracleID implements cards.Lookup.
func (s *Service) ByOracleID(ctx context.Context, id string) (*cards.Card, error) {
	return s.resolve(ctx,
		func(ctx context.Context) (*cards.Card, time.Time, error) {
			return s.db.CardByOracleID(ctx, id)
		},
		func(ctx context.Context) (*cards.Card, error) {
			return s.inner.ByOracleID(ctx, id)
		})
}

// ByArenaID implements cards.Lookup.
func (s *Service) ByArenaID(ctx context.Context, id int) (*cards.Card, error) {
	return s.resolve(ctx,
		func(ctx context.Context) (*cards.Card, time.Time, error) {
			return s.db.CardByArenaID(ctx, id)
		},
		func(ctx context.Context) (*cards.Card, error) {
			return s.inner.ByArenaID(ctx, id)
		})
}

// ByMTGOID implements cards.Lookup.
func (s *Service) ByMTGOID(ctx context.Context, id int) (*cards.Card, error) {
	return s.resolve(ctx,
		func(ctx context.Context) (*cards.Card, time.Time, error) {
			return s.db.CardByMTGOID(ctx, id)
		},
		func(ctx context.Context) (*cards.Card, error) {
			return s.inner.ByMTGOID(ctx, id)
		})
}

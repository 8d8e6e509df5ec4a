package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/deckhaven/internal/cards"
)

// stubLookup is a hand-rolled inner lookup standing in for the Scryfall
// client.
type stubLookup struct {
	card  *cards.Card
	err   error
	calls int
}

func (s *stubLookup) answer() (*cards.Card, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.card, nil
}

func (s *stubLookup) ByCollector(context.Context, string, string) (*cards.Card, error) {
	return s.answer()
}
func (s *stubLookup) ByName(context.Context, string) (*cards.Card, error)        { return s.answer() }
func (s *stubLookup) ByForeignName(context.Context, string) (*cards.Card, error) { return s.answer() }
func (s *stubLookup) ByScryfallID(context.Context, string) (*cards.Card, error)  { return s.answer() }
func (s *stubLookup) ByOracleID(context.Context, string) (*cards.Card, error)    { return s.answer() }
func (s *stubLookup) ByArenaID(context.Context, int) (*cards.Card, error)        { return s.answer() }
func (s *stubLookup) ByMTGOID(context.Context, int) (*cards.Card, error)         { return s.answer() }

func TestService_MissGoesInnerAndWritesBack(t *testing.T) {
	db := openTestDB(t)
	inner := &stubLookup{card: testCard()}
	svc := NewService(db, inner, 0, nil)
	ctx := context.Background()

	got, err := svc.ByName(ctx, "Lightning Bolt")
	require.NoError(t, err)
	assert.Equal(t, "Lightning Bolt", got.Name)
	assert.Equal(t, 1, inner.calls)

	// Second call is served from the cache.
	got, err = svc.ByName(ctx, "Lightning Bolt")
	require.NoError(t, err)
	assert.Equal(t, "Lightning Bolt", got.Name)
	assert.Equal(t, 1, inner.calls, "fresh cache hit must not consult the inner lookup")
}

func TestService_MissEverywhere(t *testing.T) {
	db := openTestDB(t)
	inner := &stubLookup{err: &cards.NotFoundError{Name: "Storm Crow"}}
	svc := NewService(db, inner, 0, nil)

	_, err := svc.ByName(context.Background(), "Storm Crow")
	assert.ErrorIs(t, err, cards.ErrCardNotFound)
}

func TestService_StaleHitRefreshes(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.SaveCard(ctx, testCard()))

	fresh := testCard()
	usd := 5.0
	fresh.PriceUSD = &usd
	inner := &stubLookup{card: fresh}

	// A nanosecond threshold makes every cached row stale.
	svc := NewService(db, inner, time.Nanosecond, nil)

	got, err := svc.ByName(ctx, "Lightning Bolt")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "stale hit must refresh through the inner lookup")
	require.NotNil(t, got.PriceUSD)
	assert.Equal(t, 5.0, *got.PriceUSD)
}

func TestService_StaleFallbackWhenInnerFails(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.SaveCard(ctx, testCard()))

	inner := &stubLookup{err: errors.New("scryfall is down")}
	svc := NewService(db, inner, time.Nanosecond, nil)

	got, err := svc.ByName(ctx, "Lightning Bolt")
	require.NoError(t, err, "stale cached card must be served when the refresh fails")
	assert.Equal(t, "Lightning Bolt", got.Name)
}

func TestService_ForeignNameAlwaysGoesInner(t *testing.T) {
	db := openTestDB(t)
	inner := &stubLookup{card: testCard()}
	svc := NewService(db, inner, 0, nil)
	ctx := context.Background()

	got, err := svc.ByForeignName(ctx, "Blitzschlag")
	require.NoError(t, err)
	assert.Equal(t, "Lightning Bolt", got.Name)

	_, err = svc.ByForeignName(ctx, "Blitzschlag")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)

	// The resolved English card was written back.
	cached, _, err := db.CardByName(ctx, "Lightning Bolt")
	require.NoError(t, err)
	assert.Equal(t, "Lightning Bolt", cached.Name)
}

func TestService_LoadSetRegistry(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveSet(ctx, cards.SetInfo{
		Code:       "ZZT",
		Name:       "Test Expansion",
		SetType:    "expansion",
		ReleasedAt: time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, db.LoadSetRegistry(ctx))

	info, ok := cards.SetByCode("zzt")
	require.True(t, ok)
	assert.Equal(t, "Test Expansion", info.Name)
}

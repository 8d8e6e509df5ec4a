package scrape

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ramonehamilton/deckhaven/internal/cards"
	"github.com/ramonehamilton/deckhaven/internal/deck"
	"github.com/ramonehamilton/deckhaven/internal/decklist"
)

// Result is the outcome of canonicalizing one scraped page.
type Result struct {
	ID   string // run-unique result ID
	URL  string
	Deck *deck.Deck // nil when Err is set or the deck was suppressed
	Err  error
}

// Runner canonicalizes batches of scraped deck pages. Each page is processed
// independently: one malformed decklist never aborts the batch. Validation
// failures are suppressed into nil decks with a logged warning; fetch and
// parse failures are reported per result.
type Runner struct {
	Lookup  cards.Lookup
	Fetcher *Fetcher
	Logger  *slog.Logger
}

// Run fetches and canonicalizes every URL with the given adapter,
// accumulating statistics on the run's counter.
func (r *Runner) Run(ctx context.Context, adapter Adapter, counter *Counter, urls []string) []Result {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]Result, 0, len(urls))
	for _, url := range urls {
		result := Result{ID: uuid.NewString(), URL: url}

		page, err := r.Fetcher.Fetch(ctx, counter, url)
		if err != nil {
			result.Err = err
			counter.Failed++
			logger.Warn("deck page fetch failed",
				slog.String("adapter", adapter.Name()),
				slog.String("url", url),
				slog.String("error", err.Error()))
			results = append(results, result)
			continue
		}

		result.Deck, result.Err = r.Canonicalize(ctx, adapter, page)
		switch {
		case result.Err != nil:
			counter.Failed++
			logger.Warn("deck canonicalization failed",
				slog.String("adapter", adapter.Name()),
				slog.String("url", url),
				slog.String("error", result.Err.Error()))
		case result.Deck == nil:
			counter.Suppressed++
		default:
			counter.Decks++
		}
		results = append(results, result)
	}
	return results
}

// Canonicalize turns one fetched page into a validated deck. Invalid decks
// are suppressed into nil per the batch propagation policy; parse and
// card-not-found errors are returned.
func (r *Runner) Canonicalize(ctx context.Context, adapter Adapter, page string) (*deck.Deck, error) {
	events, meta, err := adapter.ParseDeck(page)
	if err != nil {
		return nil, err
	}
	resolved, err := ResolveEvents(ctx, r.Lookup, events)
	if err != nil {
		return nil, err
	}
	builder := decklist.Builder{SuppressInvalid: true, Logger: r.Logger}
	d, err := builder.Build(resolved, meta)
	if err != nil && !errors.Is(err, deck.ErrInvalidDeck) {
		return nil, err
	}
	return d, nil
}

// Package scrape defines the site-adapter contract and the batch runner that
// turns scraped deck pages into canonical decks. An adapter is a pure
// function from page HTML to an ordered stream of section and card-reference
// events; it knows nothing about deck building or validation.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ramonehamilton/deckhaven/internal/cards"
	"github.com/ramonehamilton/deckhaven/internal/deck"
	"github.com/ramonehamilton/deckhaven/internal/decklist"
)

// Event is one adapter output: a section marker or an unresolved card
// reference.
type Event struct {
	Marker decklist.Section
	Card   *decklist.Line // nil for marker events
}

// MarkerEvent builds a section-marker event.
func MarkerEvent(section decklist.Section) Event { return Event{Marker: section} }

// CardEvent builds a card-reference event.
func CardEvent(quantity int, name string) Event {
	return Event{Card: &decklist.Line{Quantity: quantity, Name: name}}
}

// Adapter extracts deck events and metadata from one site's deck page HTML.
type Adapter interface {
	// Name identifies the site, and becomes the deck's source metadata.
	Name() string

	// ParseDeck extracts the event stream and page-level metadata from a
	// deck page. It performs no I/O.
	ParseDeck(html string) ([]Event, deck.Metadata, error)
}

// ResolveEvents resolves every card reference through the lookup, yielding
// the stream the section state machine consumes.
func ResolveEvents(ctx context.Context, lookup cards.Lookup, events []Event) ([]decklist.Event, error) {
	resolved := make([]decklist.Event, 0, len(events))
	for _, e := range events {
		if e.Card == nil {
			resolved = append(resolved, decklist.MarkerEvent(e.Marker))
			continue
		}
		copies, err := e.Card.Resolve(ctx, lookup)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, decklist.CardsEvent(copies))
	}
	return resolved, nil
}

// Counter accumulates per-run scraping statistics. It is created for one
// batch run, passed explicitly to whatever needs it, and discarded after;
// there is no process-wide counter state.
type Counter struct {
	Requests   int
	Decks      int
	Suppressed int
	Failed     int
}

// Fetcher retrieves deck pages over HTTP, counting requests against the
// run's counter.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
}

// NewFetcher builds a Fetcher with the given timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "deckhaven/1.0",
	}
}

// Fetch retrieves one page and returns its body.
func (f *Fetcher) Fetch(ctx context.Context, counter *Counter, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html")

	if counter != nil {
		counter.Requests++
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return string(body), nil
}

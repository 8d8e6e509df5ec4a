package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ramonehamilton/deckhaven/internal/cards"
)

// poolLookup resolves names against a fixed pool, never touching the network.
type poolLookup struct {
	pool []*cards.Card
}

func (p *poolLookup) ByCollector(_ context.Context, setCode, collectorNumber string) (*cards.Card, error) {
	return nil, cards.ErrCardNotFound
}

func (p *poolLookup) ByName(_ context.Context, name string) (*cards.Card, error) {
	return cards.ByNameInPool(name, p.pool)
}

func (p *poolLookup) ByForeignName(_ context.Context, name string) (*cards.Card, error) {
	return nil, &cards.NotFoundError{Name: name}
}

func (p *poolLookup) ByScryfallID(_ context.Context, id string) (*cards.Card, error) {
	return nil, cards.ErrCardNotFound
}

func (p *poolLookup) ByOracleID(_ context.Context, id string) (*cards.Card, error) {
	return nil, cards.ErrCardNotFound
}

func (p *poolLookup) ByArenaID(_ context.Context, id int) (*cards.Card, error) {
	return nil, cards.ErrCardNotFound
}

func (p *poolLookup) ByMTGOID(_ context.Context, id int) (*cards.Card, error) {
	return nil, cards.ErrCardNotFound
}

func scrapePool() *poolLookup {
	mv0, mv1, mv4 := 0.0, 1.0, 4.0
	return &poolLookup{pool: []*cards.Card{
		{Name: "Arclight Phoenix", TypeLine: "Creature — Phoenix", ManaValue: &mv4, Colors: cards.NewColorSet("R"), ColorIdentity: cards.NewColorSet("R")},
		{Name: "Mountain", TypeLine: "Basic Land — Mountain", ManaValue: &mv0, ColorIdentity: cards.NewColorSet("R")},
		{Name: "Abrade", TypeLine: "Instant", ManaValue: &mv1, Colors: cards.NewColorSet("R"), ColorIdentity: cards.NewColorSet("R")},
	}}
}

func TestRunner_Canonicalize(t *testing.T) {
	runner := &Runner{Lookup: scrapePool()}

	d, err := runner.Canonicalize(context.Background(), GoldfishAdapter{}, goldfishPage)
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}
	if d == nil {
		t.Fatal("Canonicalize() = nil deck")
	}
	if got := len(d.Mainboard()); got != 60 {
		t.Errorf("len(Mainboard()) = %d, want 60", got)
	}
	if got := len(d.Sideboard()); got != 2 {
		t.Errorf("len(Sideboard()) = %d, want 2", got)
	}
	if d.Name() != "Izzet Phoenix" {
		t.Errorf("Name() = %q, want Izzet Phoenix", d.Name())
	}
}

func TestRunner_CanonicalizeSuppressesInvalidDecks(t *testing.T) {
	// 59 cards: structurally fine, fails deck validation, gets suppressed.
	shortPage := strings.Replace(goldfishPage, ">56<", ">55<", 1)

	runner := &Runner{Lookup: scrapePool()}
	d, err := runner.Canonicalize(context.Background(), GoldfishAdapter{}, shortPage)
	if err != nil {
		t.Fatalf("Canonicalize() error = %v, want suppression", err)
	}
	if d != nil {
		t.Error("Canonicalize() = deck for an invalid list, want nil")
	}
}

func TestRunner_Run(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/good", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(goldfishPage))
	})
	mux.HandleFunc("/short", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Replace(goldfishPage, ">56<", ">55<", 1)))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	runner := &Runner{Lookup: scrapePool(), Fetcher: NewFetcher(0)}
	counter := &Counter{}
	urls := []string{server.URL + "/good", server.URL + "/short", server.URL + "/missing"}

	results := runner.Run(context.Background(), GoldfishAdapter{}, counter, urls)
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	if results[0].Deck == nil || results[0].Err != nil {
		t.Errorf("good result = %+v, want a deck", results[0])
	}
	if results[1].Deck != nil || results[1].Err != nil {
		t.Errorf("short result = %+v, want suppressed nil deck", results[1])
	}
	if results[2].Err == nil {
		t.Errorf("missing result = %+v, want fetch error", results[2])
	}

	if counter.Requests != 3 {
		t.Errorf("counter.Requests = %d, want 3", counter.Requests)
	}
	if counter.Decks != 1 {
		t.Errorf("counter.Decks = %d, want 1", counter.Decks)
	}
	if counter.Suppressed != 1 {
		t.Errorf("counter.Suppressed = %d, want 1", counter.Suppressed)
	}
	if counter.Failed != 1 {
		t.Errorf("counter.Failed = %d, want 1", counter.Failed)
	}

	// Result IDs are unique within the run.
	seen := map[string]bool{}
	for _, r := range results {
		if seen[r.ID] {
			t.Errorf("duplicate result ID %q", r.ID)
		}
		seen[r.ID] = true
	}
}

// Package scryfall implements cards.Lookup against the Scryfall REST API.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/ramonehamilton/deckhaven/internal/cards"
)

const (
	// APIBase is the base URL for Scryfall API requests.
	APIBase = "https://api.scryfall.com"

	// requestInterval follows Scryfall's guidance of 50-100ms between
	// requests.
	requestInterval = 100 * time.Millisecond

	userAgent = "deckhaven/1.0"
)

// Client is a rate-limited Scryfall API client implementing cards.Lookup.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint, used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Scryfall client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    APIBase,
		limiter:    rate.NewLimiter(rate.Every(requestInterval), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ByCollector implements cards.Lookup.
func (c *Client) ByCollector(ctx context.Context, setCode, collectorNumber string) (*cards.Card, error) {
	var sc scryfallCard
	err := c.getJSON(ctx, fmt.Sprintf("/cards/%s/%s", url.PathEscape(setCode), url.PathEscape(collectorNumber)), &sc)
	if err != nil {
		return nil, notFoundOr(err, &cards.NotFoundError{SetCode: setCode, CollectorNumber: collectorNumber})
	}
	return sc.toCard(), nil
}

// ByName implements cards.Lookup using exact-name resolution.
func (c *Client) ByName(ctx context.Context, name string) (*cards.Card, error) {
	var sc scryfallCard
	err := c.getJSON(ctx, "/cards/named?exact="+url.QueryEscape(name), &sc)
	if err != nil {
		return nil, notFoundOr(err, &cards.NotFoundError{Name: name})
	}
	return sc.toCard(), nil
}

// ByForeignName implements cards.Lookup: a printed-name search across all
// languages whose hit carries the English oracle name.
func (c *Client) ByForeignName(ctx context.Context, name string) (*cards.Card, error) {
	query := fmt.Sprintf("lang:any %q", name)
	var list scryfallList
	err := c.getJSON(ctx, "/cards/search?q="+url.QueryEscape(query), &list)
	if err != nil || len(list.Data) == 0 {
		return nil, notFoundOr(err, &cards.NotFoundError{Name: name})
	}
	return list.Data[0].toCard(), nil
}

// ByScryfallID implements cards.Lookup.
func (c *Client) ByScryfallID(ctx context.Context, id string) (*cards.Card, error) {
	var sc scryfallCard
	err := c.getJSON(ctx, "/cards/"+url.PathEscape(id), &sc)
	if err != nil {
		return nil, notFoundOr(err, &cards.NotFoundError{Name: id})
	}
	return sc.toCard(), nil
}

// ByOracleID implements cards.Lookup.
func (c *Client) ByOracleID(ctx context.Context, id string) (*cards.Card, error) {
	query := "oracleid:" + id
	var list scryfallList
	err := c.getJSON(ctx, "/cards/search?q="+url.QueryEscape(query), &list)
	if err != nil || len(list.Data) == 0 {
		return nil, notFoundOr(err, &cards.NotFoundError{Name: id})
	}
	return list.Data[0].toCard(), nil
}

// ByArenaID implements cards.Lookup.
func (c *Client) ByArenaID(ctx context.Context, id int) (*cards.Card, error) {
	var sc scryfallCard
	err := c.getJSON(ctx, "/cards/arena/"+strconv.Itoa(id), &sc)
	if err != nil {
		return nil, notFoundOr(err, &cards.NotFoundError{Name: strconv.Itoa(id)})
	}
	return sc.toCard(), nil
}

// ByMTGOID implements cards.Lookup.
func (c *Client) ByMTGOID(ctx context.Context, id int) (*cards.Card, error) {
	var sc scryfallCard
	err := c.getJSON(ctx, "/cards/mtgo/"+strconv.Itoa(id), &sc)
	if err != nil {
		return nil, notFoundOr(err, &cards.NotFoundError{Name: strconv.Itoa(id)})
	}
	return sc.toCard(), nil
}

// errStatusNotFound marks a 404 so callers can map it to the reference that
// failed.
var errStatusNotFound = fmt.Errorf("scryfall: %w", cards.ErrCardNotFound)

func notFoundOr(err error, notFound *cards.NotFoundError) error {
	if err == nil || err == errStatusNotFound {
		return notFound
	}
	return err
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create scryfall request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("scryfall request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return errStatusNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("scryfall returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read scryfall response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse scryfall response: %w", err)
	}
	return nil
}

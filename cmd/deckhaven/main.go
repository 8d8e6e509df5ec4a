// Command deckhaven canonicalizes trading-card decklists: it imports Arena
// or Forge text into the validated deck model and re-exports it, and can
// canonicalize scraped metagame deck pages in batch.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ramonehamilton/deckhaven/internal/cards"
	"github.com/ramonehamilton/deckhaven/internal/cards/scryfall"
	"github.com/ramonehamilton/deckhaven/internal/config"
	"github.com/ramonehamilton/deckhaven/internal/deck"
	"github.com/ramonehamilton/deckhaven/internal/deckio"
	"github.com/ramonehamilton/deckhaven/internal/scrape"
	"github.com/ramonehamilton/deckhaven/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cmdErr error
	switch os.Args[1] {
	case "import":
		cmdErr = runImport(cfg, logger, os.Args[2:])
	case "meta":
		cmdErr = runMeta(cfg, logger, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if cmdErr != nil {
		logger.Error("command failed", slog.String("error", cmdErr.Error()))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  deckhaven import -in <decklist file> [-format arena|forge|json] [-out <dir>]
  deckhaven meta -site mtggoldfish|mtgtop8 <url> [<url> ...]`)
}

// openLookup assembles the lookup chain: LRU cache over the SQLite cache
// over the Scryfall client.
func openLookup(cfg *config.Config, logger *slog.Logger) (cards.Lookup, func(), error) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(storage.DefaultConfig(dbPath))
	if err != nil {
		return nil, nil, err
	}
	if err := db.LoadSetRegistry(context.Background()); err != nil {
		logger.Warn("load set registry", slog.String("error", err.Error()))
	}

	stale, _ := time.ParseDuration(cfg.Cache.StaleThreshold)
	service := storage.NewService(db, scryfall.NewClient(), stale, logger)
	lookup, err := cards.NewCachedLookup(service, cfg.Cache.LookupEntries)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return lookup, func() { _ = db.Close() }, nil
}

func runImport(cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	in := fs.String("in", "", "decklist file to import")
	format := fs.String("format", cfg.Export.Format, "export format: arena, forge, or json")
	out := fs.String("out", cfg.Export.OutputDir, "output directory")
	_ = fs.Parse(args)

	if *in == "" {
		return errors.New("import: -in is required")
	}
	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read decklist: %w", err)
	}

	lookup, closeLookup, err := openLookup(cfg, logger)
	if err != nil {
		return err
	}
	defer closeLookup()

	ctx := context.Background()
	d, err := importAny(ctx, lookup, string(data))
	if err != nil {
		return err
	}

	arena := &deckio.ArenaCodec{Lookup: lookup}
	forge := &deckio.ForgeCodec{Lookup: lookup}

	var (
		content []byte
		ext     string
	)
	switch *format {
	case "arena":
		content, ext = []byte(arena.Export(d)), "txt"
	case "forge":
		content, ext = []byte(forge.Export(d)), "dck"
	case "json":
		ext = "json"
		content, err = arena.ExportJSON(d)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export format %q", *format)
	}

	path := filepath.Join(*out, deckio.Filename(d, ext))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}
	logger.Info("deck exported",
		slog.String("name", deckio.SynthesizeName(d)),
		slog.String("path", path))
	return nil
}

// importAny detects the input format: Forge files open with a section
// header, everything else is tried as Arena text.
func importAny(ctx context.Context, lookup cards.Lookup, text string) (*deck.Deck, error) {
	if strings.HasPrefix(strings.TrimSpace(text), "[") {
		forge := &deckio.ForgeCodec{Lookup: lookup}
		return forge.Import(ctx, text)
	}
	arena := &deckio.ArenaCodec{Lookup: lookup}
	return arena.Import(ctx, text)
}

func runMeta(cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("meta", flag.ExitOnError)
	site := fs.String("site", "mtggoldfish", "deck site: mtggoldfish or mtgtop8")
	_ = fs.Parse(args)

	urls := fs.Args()
	if len(urls) == 0 {
		return errors.New("meta: at least one deck URL is required")
	}

	var adapter scrape.Adapter
	switch *site {
	case "mtggoldfish":
		adapter = scrape.GoldfishAdapter{}
	case "mtgtop8":
		adapter = scrape.Top8Adapter{}
	default:
		return fmt.Errorf("unknown site %q", *site)
	}

	lookup, closeLookup, err := openLookup(cfg, logger)
	if err != nil {
		return err
	}
	defer closeLookup()

	timeout, _ := time.ParseDuration(cfg.Scrape.RequestTimeout)
	runner := &scrape.Runner{
		Lookup:  lookup,
		Fetcher: scrape.NewFetcher(timeout),
		Logger:  logger,
	}

	counter := &scrape.Counter{}
	results := runner.Run(context.Background(), adapter, counter, urls)

	arena := &deckio.ArenaCodec{Lookup: lookup}
	for _, result := range results {
		if result.Deck == nil {
			continue
		}
		path := filepath.Join(cfg.Export.OutputDir, deckio.Filename(result.Deck, "txt"))
		if err := os.WriteFile(path, []byte(arena.Export(result.Deck)), 0o644); err != nil {
			logger.Warn("write deck failed",
				slog.String("url", result.URL),
				slog.String("error", err.Error()))
		}
	}

	logger.Info("batch finished",
		slog.Int("requests", counter.Requests),
		slog.Int("decks", counter.Decks),
		slog.Int("suppressed", counter.Suppressed),
		slog.Int("failed", counter.Failed))
	return nil
}

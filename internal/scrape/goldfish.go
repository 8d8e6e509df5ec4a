package scrape

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/ramonehamilton/deckhaven/internal/deck"
	"github.com/ramonehamilton/deckhaven/internal/decklist"
)

// GoldfishAdapter parses MTGGoldfish deck pages.
//
// MTGGoldfish deck view structure (as of 2024):
//
//	<h1 class="title">Deck Name <span class="author">by pilot</span></h1>
//	<tr class="deck-header"><th ...>Creatures (24)</th></tr>
//	<tr class="deck-view-deck-table-row">
//	  <td class="deck-col-qty">4</td>
//	  <td class="deck-col-card"><a href="...">Lightning Bolt</a></td>
//	</tr>
type GoldfishAdapter struct{}

var (
	goldfishTitleRe  = regexp.MustCompile(`(?s)<h1[^>]*class=['\"][^'\"]*title[^'\"]*['\"][^>]*>\s*([^<]+?)\s*(?:<span[^>]*class=['\"][^'\"]*author[^'\"]*['\"][^>]*>\s*by\s+([^<]+?)\s*</span>)?\s*</h1>`)
	goldfishFormatRe = regexp.MustCompile(`(?i)<span[^>]*class=['\"][^'\"]*deck-container-format[^'\"]*['\"][^>]*>\s*([A-Za-z]+)`)
	goldfishRowRe    = regexp.MustCompile(`(?s)<tr[^>]*class=['\"][^'\"]*deck-(header|view-deck-table-row)[^'\"]*['\"][^>]*>(.*?)</tr>`)
	goldfishHeadRe   = regexp.MustCompile(`(?s)<th[^>]*>\s*(?:<[^>]+>\s*)*([A-Za-z][A-Za-z ]*?)\s*(?:\(\d+\))?\s*<`)
	goldfishQtyRe    = regexp.MustCompile(`(?s)<td[^>]*class=['\"][^'\"]*deck-col-qty[^'\"]*['\"][^>]*>\s*(\d+)\s*<`)
	goldfishCardRe   = regexp.MustCompile(`(?s)<td[^>]*class=['\"][^'\"]*deck-col-card[^'\"]*['\"][^>]*>.*?<a[^>]*>([^<]+)</a>`)
)

// Name implements Adapter.
func (GoldfishAdapter) Name() string { return "mtggoldfish" }

// ParseDeck implements Adapter. Category headers (Creatures, Spells, Lands)
// all belong to the mainboard; a marker is only emitted when the section
// actually changes, since decklists interleave many mainboard categories.
func (a GoldfishAdapter) ParseDeck(page string) ([]Event, deck.Metadata, error) {
	meta := deck.Metadata{deck.MetaSource: a.Name()}

	if m := goldfishTitleRe.FindStringSubmatch(page); m != nil {
		meta[deck.MetaName] = html.UnescapeString(strings.TrimSpace(m[1]))
		if len(m) > 2 && m[2] != "" {
			meta[deck.MetaAuthor] = html.UnescapeString(strings.TrimSpace(m[2]))
		}
	}
	if m := goldfishFormatRe.FindStringSubmatch(page); m != nil {
		meta[deck.MetaFormat] = strings.ToLower(m[1])
	}

	var events []Event
	current := decklist.SectionIdle

	for _, row := range goldfishRowRe.FindAllStringSubmatch(page, -1) {
		kind, body := row[1], row[2]

		if kind == "header" {
			head := goldfishHeadRe.FindStringSubmatch(body)
			if head == nil {
				continue
			}
			section := sectionForHeader(head[1])
			if section != current {
				events = append(events, MarkerEvent(section))
				current = section
			}
			continue
		}

		qty := goldfishQtyRe.FindStringSubmatch(body)
		card := goldfishCardRe.FindStringSubmatch(body)
		if qty == nil || card == nil {
			continue
		}
		quantity, err := strconv.Atoi(qty[1])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: bad quantity in deck row", deck.ErrParse)
		}
		events = append(events, CardEvent(quantity, html.UnescapeString(strings.TrimSpace(card[1]))))
	}

	if len(events) == 0 {
		return nil, nil, fmt.Errorf("%w: no deck table found", deck.ErrParse)
	}
	return events, meta, nil
}

// sectionForHeader maps a deck-table header to its zone. Anything that is
// not a special zone is a mainboard category.
func sectionForHeader(header string) decklist.Section {
	switch strings.ToLower(strings.TrimSpace(header)) {
	case "sideboard":
		return decklist.SectionSideboard
	case "commander":
		return decklist.SectionCommander
	case "companion":
		return decklist.SectionCompanion
	default:
		return decklist.SectionMainboard
	}
}

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

// Top8Adapter parses MTGTop8 deck pages, which carry tournament placement
// alongside the decklist.
//
// MTGTop8 deck page structure:
//
//	<div class="event_title">Event Name</div>
//	<div class="O14">SIDEBOARD</div>
//	<div class="deck_line hover_tr">4 <span class="L14">Card Name</span></div>
type Top8Adapter struct{}

var (
	top8EventRe   = regexp.MustCompile(`(?s)<div[^>]*class="[^"]*event_title[^"]*"[^>]*>\s*([^<]+?)\s*</div>`)
	top8PlaceRe   = regexp.MustCompile(`(?s)#(\d+)\s*-\s*`)
	top8PlayerRe  = regexp.MustCompile(`(?s)<a[^>]*class="[^"]*player_big[^"]*"[^>]*>([^<]+)</a>`)
	top8SectionRe = regexp.MustCompile(`(?s)<div[^>]*class="[^"]*O14[^"]*"[^>]*>\s*([A-Z ]+?)\s*</div>`)
	top8LineRe    = regexp.MustCompile(`(?s)<div[^>]*class="[^"]*deck_line[^"]*"[^>]*>\s*(\d+)\s*<span[^>]*class="[^"]*L14[^"]*"[^>]*>([^<]+)</span>`)
	top8ChunkRe   = regexp.MustCompile(`(?s)<div[^>]*class="[^"]*(?:O14|deck_line)[^"]*"[^>]*>`)
)

// Name implements Adapter.
func (Top8Adapter) Name() string { return "mtgtop8" }

// ParseDeck implements Adapter.
func (a Top8Adapter) ParseDeck(page string) ([]Event, deck.Metadata, error) {
	meta := deck.Metadata{deck.MetaSource: a.Name()}

	if m := top8EventRe.FindStringSubmatch(page); m != nil {
		meta[deck.MetaEventName] = html.UnescapeString(strings.TrimSpace(m[1]))
	}
	if m := top8PlaceRe.FindStringSubmatch(page); m != nil {
		meta[deck.MetaPlace] = m[1]
	}
	if m := top8PlayerRe.FindStringSubmatch(page); m != nil {
		meta[deck.MetaAuthor] = html.UnescapeString(strings.TrimSpace(m[1]))
	}

	var events []Event
	current := decklist.SectionIdle

	// Walk section titles and deck lines in document order.
	locs := top8ChunkRe.FindAllStringIndex(page, -1)
	for i, loc := range locs {
		end := len(page)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		chunk := page[loc[0]:end]

		if m := top8SectionRe.FindStringSubmatch(chunk); m != nil {
			section := sectionForHeader(m[1])
			if section != current {
				events = append(events, MarkerEvent(section))
				current = section
			}
			continue
		}
		if m := top8LineRe.FindStringSubmatch(chunk); m != nil {
			quantity, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, nil, fmt.Errorf("%w: bad quantity in deck line", deck.ErrParse)
			}
			events = append(events, CardEvent(quantity, html.UnescapeString(strings.TrimSpace(m[2]))))
		}
	}

	if len(events) == 0 {
		return nil, nil, fmt.Errorf("%w: no decklist found", deck.ErrParse)
	}
	return events, meta, nil
}

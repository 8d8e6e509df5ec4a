package decklist

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ramonehamilton/deckhaven/internal/cards"
	"github.com/ramonehamilton/deckhaven/internal/deck"
)

// The Arena wire format writes multi-face names with a triple slash; the
// canonical form uses a double slash.
const (
	arenaFaceSeparator     = " /// "
	canonicalFaceSeparator = " // "
)

// arenaLineRe matches "<qty> <name>" and "<qty> <name> (<SET>) <collector>".
// Collector numbers may carry letters and star suffixes (e.g. "54", "123a",
// "270★").
var arenaLineRe = regexp.MustCompile(`^(\d+)\s+([^(]+?)(?:\s+\(([A-Za-z0-9]{2,6})\)\s+(\S+))?$`)

// Line is one parsed Arena-format card line.
type Line struct {
	Quantity        int
	Name            string
	SetCode         string // lowercased, empty in the simple form
	CollectorNumber string // empty in the simple form
}

// Extended reports whether the line carried a (set, collector number) pair.
func (l *Line) Extended() bool { return l.SetCode != "" && l.CollectorNumber != "" }

// ParseLine parses one line of Arena-format text. The multi-face separator
// and typographic apostrophes are normalized before the name is returned. A
// line that does not denote a card (bad quantity, no name) is a parse error
// wrapping deck.ErrParse.
func ParseLine(raw string) (*Line, error) {
	trimmed := strings.TrimSpace(raw)
	match := arenaLineRe.FindStringSubmatch(trimmed)
	if match == nil {
		return nil, fmt.Errorf("%w: not a card line: %q", deck.ErrParse, raw)
	}

	quantity, err := strconv.Atoi(match[1])
	if err != nil || quantity < 0 {
		return nil, fmt.Errorf("%w: bad quantity in %q", deck.ErrParse, raw)
	}

	name := strings.TrimSpace(match[2])
	name = strings.ReplaceAll(name, arenaFaceSeparator, canonicalFaceSeparator)
	name = strings.ReplaceAll(name, "’", "'")

	return &Line{
		Quantity:        quantity,
		Name:            name,
		SetCode:         strings.ToLower(match[3]),
		CollectorNumber: match[4],
	}, nil
}

// IsCardLine reports whether raw parses as an Arena card line.
func IsCardLine(raw string) bool {
	_, err := ParseLine(raw)
	return err == nil
}

// Resolve turns the line into a playset of resolved card copies. The
// (set, collector) pair is the primary key when present, falling back to a
// name lookup when the exact print is unknown. A failed name lookup retries
// once through the foreign-name path when the name looks non-English.
func (l *Line) Resolve(ctx context.Context, lookup cards.Lookup) ([]*cards.Card, error) {
	card, err := l.resolveCard(ctx, lookup)
	if err != nil {
		return nil, err
	}
	return deck.Flatten(card, l.Quantity), nil
}

func (l *Line) resolveCard(ctx context.Context, lookup cards.Lookup) (*cards.Card, error) {
	if l.Extended() {
		card, err := lookup.ByCollector(ctx, l.SetCode, l.CollectorNumber)
		if err == nil {
			return card, nil
		}
		if !errors.Is(err, cards.ErrCardNotFound) {
			return nil, err
		}
	}

	card, err := lookup.ByName(ctx, l.Name)
	if err == nil {
		return card, nil
	}
	if errors.Is(err, cards.ErrCardNotFound) && looksForeign(l.Name) {
		return lookup.ByForeignName(ctx, l.Name)
	}
	return nil, err
}

// looksForeign reports whether a card name contains letters outside ASCII,
// the best-effort signal that it is a foreign-language printing.
func looksForeign(name string) bool {
	for _, r := range name {
		if r > unicode.MaxASCII && unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

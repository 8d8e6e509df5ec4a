// Package deckio implements the bidirectional codec between decks and their
// textual wire formats, plus deterministic deck-name synthesis.
package deckio

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ramonehamilton/deckhaven/internal/cards"
	"github.com/ramonehamilton/deckhaven/internal/deck"
)

// nameSeparator joins the synthesized name tokens.
const nameSeparator = " "

var titleCaser = cases.Title(language.English)

// sourceAbbrevs maps recognized deck sources to their name prefix.
var sourceAbbrevs = map[string]string{
	"arena":        "Arena",
	"mtggoldfish":  "Goldfish",
	"mtgtop8":      "Top8",
	"aetherhub":    "Aether",
	"moxfield":     "Mox",
	"archidekt":    "Archidekt",
	"streamdecker": "Stream",
	"tappedout":    "Tapped",
	"tcgplayer":    "TCG",
	"mtgazone":     "Zone",
	"deckstats":    "Stats",
	"scryfall":     "Scryfall",
}

// formatAbbrevs maps constructed formats to their name token.
var formatAbbrevs = map[string]string{
	"standard":  "Std",
	"alchemy":   "Alc",
	"historic":  "Hst",
	"timeless":  "Tml",
	"explorer":  "Exp",
	"pioneer":   "Pnr",
	"modern":    "Mdn",
	"legacy":    "Lgc",
	"vintage":   "Vnt",
	"pauper":    "Ppr",
	"commander": "Cmd",
	"brawl":     "Brl",
}

var metaPlaceRe = regexp.MustCompile(`^Meta#(\d+)$`)

// SynthesizeName derives the deterministic display name of a deck from its
// metadata and card pool: source and format abbreviations, best-of mode,
// meta placement, the literal or synthesized core name, and the most recent
// expansion code. The same deck always yields the same name.
func SynthesizeName(d *deck.Deck) string {
	meta := d.Metadata()
	var tokens []string

	if abbrev, ok := sourceAbbrevs[strings.ToLower(meta[deck.MetaSource])]; ok {
		tokens = append(tokens, abbrev)
	}
	if abbrev, ok := formatAbbrevs[strings.ToLower(meta[deck.MetaFormat])]; ok {
		tokens = append(tokens, abbrev)
	}
	switch strings.ToLower(meta[deck.MetaMode]) {
	case "bo1":
		tokens = append(tokens, "BO1")
	case "bo3":
		tokens = append(tokens, "BO3")
	}
	if place := meta[deck.MetaPlace]; place != "" {
		tokens = append(tokens, "Meta#"+place)
	}

	tokens = append(tokens, coreName(d)...)

	if latest, ok := d.LatestSet(); ok {
		tokens = append(tokens, strings.ToUpper(latest.Code))
	}

	return strings.Join(tokens, nameSeparator)
}

// coreName returns the literal deck name normalized token by token, or a
// synthesized name from color identity, theme, and archetype when the deck
// has no name of its own.
func coreName(d *deck.Deck) []string {
	if name := d.Name(); name != "" {
		fields := strings.FieldsFunc(name, func(r rune) bool {
			return r == ' ' || r == '-' || r == '_'
		})
		tokens := make([]string, 0, len(fields))
		for _, f := range fields {
			tokens = append(tokens, titleCaser.String(strings.ToLower(f)))
		}
		return tokens
	}

	tokens := strings.Fields(d.ColorIdentity().DisplayName())
	if theme := d.Theme(); theme != "" {
		tokens = append(tokens, titleCaser.String(theme))
	}
	tokens = append(tokens, string(d.Archetype()))
	return tokens
}

// Filename returns the synthesized name as a safe filename with the given
// extension.
func Filename(d *deck.Deck, ext string) string {
	name := SynthesizeName(d)
	for _, c := range []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", "#"} {
		name = strings.ReplaceAll(name, c, "")
	}
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		name = "deck"
	}
	return name + "." + strings.TrimPrefix(ext, ".")
}

// ParseName reverses SynthesizeName as far as possible: recognized source,
// format, mode, and meta-placement tokens are stripped into metadata, a
// trailing known set code is dropped, and whatever remains is the free-text
// deck name.
func ParseName(name string) (string, deck.Metadata) {
	meta := deck.Metadata{}
	tokens := strings.Fields(name)

	for len(tokens) > 0 {
		token := tokens[0]
		if source, ok := reverseSourceAbbrevs[token]; ok && meta[deck.MetaSource] == "" {
			meta[deck.MetaSource] = source
			tokens = tokens[1:]
			continue
		}
		if format, ok := reverseFormatAbbrevs[token]; ok && meta[deck.MetaFormat] == "" {
			meta[deck.MetaFormat] = format
			tokens = tokens[1:]
			continue
		}
		if upper := strings.ToUpper(token); (upper == "BO1" || upper == "BO3") && meta[deck.MetaMode] == "" {
			meta[deck.MetaMode] = strings.ToLower(token)
			tokens = tokens[1:]
			continue
		}
		if m := metaPlaceRe.FindStringSubmatch(token); m != nil && meta[deck.MetaPlace] == "" {
			meta[deck.MetaPlace] = m[1]
			tokens = tokens[1:]
			continue
		}
		break
	}

	if n := len(tokens); n > 1 {
		if _, ok := cards.SetByCode(tokens[n-1]); ok && tokens[n-1] == strings.ToUpper(tokens[n-1]) {
			tokens = tokens[:n-1]
		}
	}

	if len(tokens) > 0 {
		meta[deck.MetaName] = strings.Join(tokens, nameSeparator)
	}
	return meta[deck.MetaName], meta
}

var (
	reverseSourceAbbrevs = invert(sourceAbbrevs)
	reverseFormatAbbrevs = invert(formatAbbrevs)
)

func invert(m map[string]string) map[string]string {
	inv := make(map[string]string, len(m))
	for k, v := range m {
		inv[v] = k
	}
	return inv
}

// sortedPlaysets returns playsets ordered by card name so serialization is
// deterministic.
func sortedPlaysets(playsets map[string]deck.Playset) []deck.Playset {
	out := make([]deck.Playset, 0, len(playsets))
	for _, p := range playsets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Card().Name < out[j].Card().Name
	})
	return out
}

// writeCount is a tiny helper shared by the codecs.
func writeCount(sb *strings.Builder, count int, rest string) {
	fmt.Fprintf(sb, "%d %s\n", count, rest)
}

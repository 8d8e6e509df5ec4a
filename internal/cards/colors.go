package cards

import "strings"

// ColorSet is a set of color symbols kept in canonical WUBRG order.
// The zero value is the colorless set.
type ColorSet []string

// colorOrder is the canonical WUBRG ordering.
var colorOrder = []string{"W", "U", "B", "R", "G"}

// NewColorSet builds a ColorSet from arbitrary color symbols, dropping
// duplicates and unknown symbols and normalizing order.
func NewColorSet(symbols ...string) ColorSet {
	present := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		present[strings.ToUpper(strings.TrimSpace(s))] = true
	}
	var set ColorSet
	for _, c := range colorOrder {
		if present[c] {
			set = append(set, c)
		}
	}
	return set
}

// Contains reports whether the set includes the given color symbol.
func (s ColorSet) Contains(color string) bool {
	for _, c := range s {
		if c == color {
			return true
		}
	}
	return false
}

// SubsetOf reports whether every color in s is also in other.
func (s ColorSet) SubsetOf(other ColorSet) bool {
	for _, c := range s {
		if !other.Contains(c) {
			return false
		}
	}
	return true
}

// Union returns the combined color set of s and other.
func (s ColorSet) Union(other ColorSet) ColorSet {
	return NewColorSet(append(append([]string{}, s...), other...)...)
}

// String returns the WUBRG-ordered symbol string, or "C" for colorless.
func (s ColorSet) String() string {
	if len(s) == 0 {
		return "C"
	}
	return strings.Join(s, "")
}

var colorNames = map[string]string{
	"W": "White",
	"U": "Blue",
	"B": "Black",
	"R": "Red",
	"G": "Green",
}

// multicolorNames maps WUBRG-ordered symbol strings to the conventional
// guild, shard, and wedge names.
var multicolorNames = map[string]string{
	"WU": "Azorius", "UB": "Dimir", "BR": "Rakdos", "RG": "Gruul",
	"WG": "Selesnya", "WB": "Orzhov", "UR": "Izzet", "BG": "Golgari",
	"WR": "Boros", "UG": "Simic",
	"WUB": "Esper", "UBR": "Grixis", "BRG": "Jund", "WRG": "Naya",
	"WUG": "Bant", "WBG": "Abzan", "WUR": "Jeskai", "UBG": "Sultai",
	"WBR": "Mardu", "URG": "Temur",
}

// DisplayName returns the conventional name for the color combination:
// a mono-color name, a guild/shard/wedge name, "4C", or "5C".
func (s ColorSet) DisplayName() string {
	switch len(s) {
	case 0:
		return "Colorless"
	case 1:
		return "Mono " + colorNames[s[0]]
	case 4:
		return "4C"
	case 5:
		return "5C"
	}
	if name, ok := multicolorNames[s.String()]; ok {
		return name
	}
	return s.String()
}

// ColorWords maps color-describing deck-name words to the color set they
// denote. Used to strip color words from deck names before theme and
// archetype matching and to recover colors from scraped deck names.
var ColorWords = map[string]string{
	"white": "W", "blue": "U", "black": "B", "red": "R", "green": "G",
	"mono": "", "colorless": "",
	"azorius": "WU", "dimir": "UB", "rakdos": "BR", "gruul": "RG",
	"selesnya": "WG", "orzhov": "WB", "izzet": "UR", "golgari": "BG",
	"boros": "WR", "simic": "UG",
	"esper": "WUB", "grixis": "UBR", "jund": "BRG", "naya": "WRG",
	"bant": "WUG", "abzan": "WBG", "jeskai": "WUR", "sultai": "UBG",
	"mardu": "WBR", "temur": "URG",
	"4c": "WUBR", "5c": "WUBRG", "five-color": "WUBRG",
}

// IsColorWord reports whether the lowercased token names a color or a color
// combination.
func IsColorWord(token string) bool {
	_, ok := ColorWords[strings.ToLower(token)]
	return ok
}

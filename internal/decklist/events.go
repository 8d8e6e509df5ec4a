// Package decklist turns ordered streams of section markers and card lines
// into the four deck zones. It is the shared parsing core behind the Arena
// text importer and every site adapter: an adapter only has to produce an
// event stream, never to know how decks are built or validated.
package decklist

import "github.com/ramonehamilton/deckhaven/internal/cards"

// Section identifies a deck zone or the idle separator state.
type Section int

// Sections, in the order the state machine knows them.
const (
	SectionIdle Section = iota
	SectionMainboard
	SectionSideboard
	SectionCommander
	SectionCompanion
)

var sectionNames = map[Section]string{
	SectionIdle:      "idle",
	SectionMainboard: "mainboard",
	SectionSideboard: "sideboard",
	SectionCommander: "commander",
	SectionCompanion: "companion",
}

func (s Section) String() string { return sectionNames[s] }

type eventKind int

const (
	eventMarker eventKind = iota
	eventCards
)

// Event is one element of an adapter's output stream: either a section
// marker or a group of resolved card instances. The kind is explicit: a
// zero-quantity card line resolves to an empty group and is still a card
// event, never a marker.
type Event struct {
	kind eventKind

	// Marker is the section this event opens. Set only for marker events.
	Marker Section

	// Cards are card instances to append to the current section's zone.
	Cards []*cards.Card
}

// MarkerEvent builds a section-marker event.
func MarkerEvent(section Section) Event { return Event{kind: eventMarker, Marker: section} }

// CardsEvent builds a card-line event from resolved card instances.
func CardsEvent(copies []*cards.Card) Event { return Event{kind: eventCards, Cards: copies} }

// IsMarker reports whether the event is a section marker.
func (e Event) IsMarker() bool { return e.kind == eventMarker }

package decklist

import (
	"fmt"

	"github.com/ramonehamilton/deckhaven/internal/cards"
	"github.com/ramonehamilton/deckhaven/internal/deck"
)

// TransitionError reports an illegal section transition, usually a duplicate
// section header or a stray separator before any section has started.
type TransitionError struct {
	From Section
	To   Section
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal section transition %s -> %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return deck.ErrParse }

// transition is the pure state-transition function: current state and marker
// in, next state or error out. Card events are handled by Machine.Apply
// because they carry data as well as a possible implicit transition.
//
// Guards: re-entering the current section is malformed input (a duplicate
// header), and idle is only reachable after some section has started (a
// separator before any section is stray).
func transition(from, to Section) (Section, error) {
	if to == from {
		return from, &TransitionError{From: from, To: to}
	}
	return to, nil
}

// Zones holds the four card lists a completed event stream yields.
type Zones struct {
	Mainboard  []*cards.Card
	Sideboard  []*cards.Card
	Commanders []*cards.Card
	Companions []*cards.Card
}

// Machine consumes an ordered event stream and buckets cards into zones.
// The zero value is not usable; call NewMachine.
type Machine struct {
	state Section
	zones Zones
}

// NewMachine returns a machine in the idle state with empty zones.
func NewMachine() *Machine {
	return &Machine{state: SectionIdle}
}

// State returns the current section.
func (m *Machine) State() Section { return m.state }

// Apply feeds one event through the machine. A card event while idle
// implicitly opens the mainboard, since most formats omit an explicit main
// header. Marker events follow the transition table; an illegal transition
// leaves the machine unchanged and returns a *TransitionError.
func (m *Machine) Apply(event Event) error {
	if event.IsMarker() {
		next, err := transition(m.state, event.Marker)
		if err != nil {
			return err
		}
		m.state = next
		return nil
	}

	if m.state == SectionIdle {
		m.state = SectionMainboard
	}
	switch m.state {
	case SectionMainboard:
		m.zones.Mainboard = append(m.zones.Mainboard, event.Cards...)
	case SectionSideboard:
		m.zones.Sideboard = append(m.zones.Sideboard, event.Cards...)
	case SectionCommander:
		m.zones.Commanders = append(m.zones.Commanders, event.Cards...)
	case SectionCompanion:
		m.zones.Companions = append(m.zones.Companions, event.Cards...)
	}
	return nil
}

// Run feeds a whole event stream through a fresh machine and returns the
// resulting zones. The first illegal transition aborts the run.
func Run(events []Event) (Zones, error) {
	m := NewMachine()
	for _, event := range events {
		if err := m.Apply(event); err != nil {
			return Zones{}, err
		}
	}
	return m.zones, nil
}

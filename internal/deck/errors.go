package deck

import (
	"errors"
	"fmt"
)

// ErrInvalidDeck is the sentinel wrapped by every ValidationError.
var ErrInvalidDeck = errors.New("invalid deck")

// ValidationKind identifies which construction invariant a deck violated.
type ValidationKind string

// Validation kinds, one per construction invariant.
const (
	InvalidCommander     ValidationKind = "commander"
	InvalidCompanion     ValidationKind = "companion"
	InvalidColorIdentity ValidationKind = "color_identity"
	InvalidPlaysetSize   ValidationKind = "playset_size"
	InvalidMainboardSize ValidationKind = "mainboard_size"
	InvalidSideboardSize ValidationKind = "sideboard_size"
)

// ValidationError reports a violated deck invariant with enough context to be
// logged verbatim: the offending card (when one exists) and the offending
// count against its limit.
type ValidationError struct {
	Kind     ValidationKind
	CardName string
	Count    int
	Limit    int
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case InvalidCommander:
		return fmt.Sprintf("invalid deck: %q cannot be a commander", e.CardName)
	case InvalidCompanion:
		return fmt.Sprintf("invalid deck: %q cannot be a companion", e.CardName)
	case InvalidColorIdentity:
		return fmt.Sprintf("invalid deck: %q is outside the commander's color identity", e.CardName)
	case InvalidPlaysetSize:
		return fmt.Sprintf("invalid deck: too many copies of %q (%d > %d)", e.CardName, e.Count, e.Limit)
	case InvalidMainboardSize:
		return fmt.Sprintf("invalid deck: mainboard too small (%d < %d)", e.Count, e.Limit)
	case InvalidSideboardSize:
		return fmt.Sprintf("invalid deck: sideboard too large (%d > %d)", e.Count, e.Limit)
	}
	return "invalid deck"
}

func (e *ValidationError) Unwrap() error { return ErrInvalidDeck }

// ErrParse is the sentinel for structurally malformed decklist input.
var ErrParse = errors.New("decklist parse error")

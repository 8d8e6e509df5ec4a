package deck

// Metadata is the open string-keyed map attached to a deck. Upstream sources
// supply wildly different fields, so the map stays schemaless; the keys below
// are the ones the rest of the pipeline recognizes.
type Metadata map[string]string

// Recognized metadata keys.
const (
	MetaName      = "name"       // Free-text deck name
	MetaSource    = "source"     // Originating site or "arena"/"forge"
	MetaFormat    = "format"     // Constructed format (standard, modern, ...)
	MetaAuthor    = "author"     // Deck author or pilot
	MetaDate      = "date"       // Publication date, ISO 8601
	MetaMode      = "mode"       // Best-of mode: "bo1" or "bo3"
	MetaArchetype = "archetype"  // Archetype override
	MetaTheme     = "theme"      // Theme override
	MetaPlace     = "meta.place" // Placement in a metagame snapshot
	MetaShare     = "meta.share" // Metagame share percentage
	MetaEventName = "event.name" // Tournament or event name
	MetaEventDate = "event.date" // Tournament or event date
	MetaViews     = "views"      // Upstream view counter
	MetaLikes     = "likes"      // Upstream like counter
)

// Merge copies entries from other into m, last write wins per key.
func (m Metadata) Merge(other Metadata) {
	for k, v := range other {
		m[k] = v
	}
}

// Clone returns a shallow copy of the metadata map.
func (m Metadata) Clone() Metadata {
	clone := make(Metadata, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

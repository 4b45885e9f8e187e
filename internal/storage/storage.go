package storage

import (
	"errors"
	"iter"

	"github.com/chris-regnier/diarypad/internal/entry"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound   = errors.New("entry not found")
	ErrValidation = errors.New("validation error")
)

// Storage defines the interface for holding diary entries.
//
// Entries are kept in insertion order. Implementations must apply each
// operation atomically with respect to concurrent callers.
type Storage interface {
	// Create appends a new entry dated today. Title and content are stored
	// trimmed; an invalid mood is replaced by entry.DefaultMood. Returns an
	// error wrapping ErrValidation, and leaves the collection unchanged, if
	// either title or content is empty after trimming.
	Create(title, content string, mood entry.Mood) (entry.Entry, error)

	// Update replaces title, content and mood of an existing entry in place.
	// ID, date and position are preserved. Returns ErrNotFound if id is absent.
	Update(id entry.ID, title, content string, mood entry.Mood) (entry.Entry, error)

	// Delete removes the entry if present and reports whether it did.
	Delete(id entry.ID) bool

	Get(id entry.ID) (entry.Entry, error)

	// Search yields every entry whose title or content contains term,
	// ignoring case, in insertion order. The sequence is lazy and
	// restartable: each iteration reflects the collection at the moment
	// iteration starts.
	Search(term string) iter.Seq[entry.Entry]

	// List returns a copy of all entries in insertion order.
	List() []entry.Entry

	Len() int
}

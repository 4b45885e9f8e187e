package memory

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/chris-regnier/diarypad/internal/entry"
	"github.com/chris-regnier/diarypad/internal/logging"
	"github.com/chris-regnier/diarypad/internal/storage"
	"github.com/sirupsen/logrus"
)

// Store implements storage.Storage in process memory.
type Store struct {
	mu      sync.RWMutex
	entries []entry.Entry
	lastID  entry.ID

	now func() time.Time // injectable for testing
	log *logrus.Entry
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to date new entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for store mutations.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Store) { s.log = log }
}

// New creates an empty in-memory store.
func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	return s
}

func validate(title, content string) error {
	if err := entry.Validate(title, content); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	return nil
}

// index returns the position of id, or -1. Caller holds mu.
func (s *Store) index(id entry.ID) int {
	return slices.IndexFunc(s.entries, func(e entry.Entry) bool { return e.ID == id })
}

// Create appends a new entry.
func (s *Store) Create(title, content string, mood entry.Mood) (entry.Entry, error) {
	if err := validate(title, content); err != nil {
		s.log.WithError(err).Debug("create refused")
		return entry.Entry{}, err
	}

	s.mu.Lock()
	s.lastID++
	e := entry.Entry{
		ID:      s.lastID,
		Date:    entry.DateOf(s.now()),
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
		Mood:    mood.Or(entry.DefaultMood),
	}
	s.entries = append(s.entries, e)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"id": e.ID, "mood": e.Mood.Name()}).Debug("entry created")
	return e, nil
}

// Update replaces the mutable fields of an entry.
func (s *Store) Update(id entry.ID, title, content string, mood entry.Mood) (entry.Entry, error) {
	if err := validate(title, content); err != nil {
		s.log.WithError(err).WithField("id", id).Debug("update refused")
		return entry.Entry{}, err
	}

	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		s.log.WithField("id", id).Debug("update of unknown entry")
		return entry.Entry{}, storage.ErrNotFound
	}
	e := &s.entries[i]
	e.Title = strings.TrimSpace(title)
	e.Content = strings.TrimSpace(content)
	e.Mood = mood.Or(entry.DefaultMood)
	updated := *e
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"id": id, "mood": updated.Mood.Name()}).Debug("entry updated")
	return updated, nil
}

// Delete removes an entry by ID. Deleting an absent ID is a no-op.
func (s *Store) Delete(id entry.ID) bool {
	s.mu.Lock()
	i := s.index(id)
	if i >= 0 {
		s.entries = slices.Delete(s.entries, i, i+1)
	}
	s.mu.Unlock()

	if i < 0 {
		return false
	}
	s.log.WithField("id", id).Debug("entry deleted")
	return true
}

// Get retrieves an entry by ID.
func (s *Store) Get(id entry.ID) (entry.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return entry.Entry{}, storage.ErrNotFound
	}
	return s.entries[i], nil
}

// Search returns a lazy view of entries matching term.
func (s *Store) Search(term string) iter.Seq[entry.Entry] {
	return func(yield func(entry.Entry) bool) {
		for _, e := range s.List() {
			if !e.Matches(term) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// List returns a snapshot of all entries in insertion order.
func (s *Store) List() []entry.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

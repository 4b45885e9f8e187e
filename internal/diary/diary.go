// Package diary implements the journaling state machine: the entry store,
// the draft being composed or edited, the search term and the theme flag.
//
// Every input runs to completion under one lock, so each is observed
// atomically. Subscribers are notified synchronously after a state change,
// outside the lock.
package diary

import (
	"errors"
	"slices"
	"sync"

	"github.com/chris-regnier/diarypad/internal/entry"
	"github.com/chris-regnier/diarypad/internal/logging"
	"github.com/chris-regnier/diarypad/internal/storage"
	"github.com/sirupsen/logrus"
)

// Diary owns all journaling state for one session.
type Diary struct {
	mu    sync.Mutex
	store storage.Storage
	draft Draft
	state State
	term  string
	dark  bool

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int

	log *logrus.Entry
}

// Option configures a Diary.
type Option func(*Diary)

// WithLogger sets the logger for state transitions.
func WithLogger(log *logrus.Entry) Option {
	return func(d *Diary) { d.log = log }
}

// WithDarkMode sets the initial theme.
func WithDarkMode(dark bool) Option {
	return func(d *Diary) { d.dark = dark }
}

// New creates an idle Diary over store.
func New(store storage.Storage, opts ...Option) *Diary {
	d := &Diary{
		store: store,
		draft: emptyDraft(),
		subs:  make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = logging.Discard()
	}
	return d
}

// apply runs fn under the lock and notifies subscribers if fn reports a change.
func (d *Diary) apply(fn func() bool) {
	d.mu.Lock()
	changed := fn()
	var snap Snapshot
	if changed {
		snap = d.snapshotLocked()
	}
	d.mu.Unlock()

	if changed {
		d.notify(snap)
	}
}

func (d *Diary) resetLocked() {
	d.draft = emptyDraft()
	d.state = State{Phase: Idle}
}

// OpenComposer toggles the composer. From Idle it starts a new empty draft;
// from Composing or Editing it closes the composer and discards the draft.
func (d *Diary) OpenComposer() {
	d.apply(func() bool {
		if d.state.Phase == Idle {
			d.draft = emptyDraft()
			d.state = State{Phase: Composing}
			d.log.Debug("composer opened")
			return true
		}
		d.log.WithField("state", d.state).Debug("composer closed, draft discarded")
		d.resetLocked()
		return true
	})
}

// BeginEdit loads an entry into the draft and enters the Editing state,
// discarding any previous draft. Returns storage.ErrNotFound if id is absent.
func (d *Diary) BeginEdit(id entry.ID) error {
	var err error
	d.apply(func() bool {
		var e entry.Entry
		e, err = d.store.Get(id)
		if err != nil {
			return false
		}
		d.draft = Draft{Title: e.Title, Content: e.Content, Mood: e.Mood, EditingID: e.ID}
		d.state = State{Phase: Editing, Target: e.ID}
		d.log.WithField("id", id).Debug("edit started")
		return true
	})
	return err
}

func (d *Diary) setDraft(fn func(*Draft)) {
	d.apply(func() bool {
		if d.state.Phase == Idle {
			return false
		}
		before := d.draft
		fn(&d.draft)
		return d.draft != before
	})
}

// SetDraftTitle replaces the draft title. Ignored while Idle.
func (d *Diary) SetDraftTitle(title string) {
	d.setDraft(func(dr *Draft) { dr.Title = title })
}

// SetDraftContent replaces the draft content. Ignored while Idle.
func (d *Diary) SetDraftContent(content string) {
	d.setDraft(func(dr *Draft) { dr.Content = content })
}

// SetDraftMood replaces the draft mood; an invalid mood becomes the default.
// Ignored while Idle.
func (d *Diary) SetDraftMood(m entry.Mood) {
	d.setDraft(func(dr *Draft) { dr.Mood = m.Or(entry.DefaultMood) })
}

func (d *Diary) canCommitLocked() bool {
	return d.state.Phase != Idle && d.draft.Valid()
}

// Commit turns the draft into a new entry (Composing) or applies it to the
// edited entry (Editing), then returns to Idle. It is inert, returning false,
// while Idle or while the trimmed title or content is empty.
func (d *Diary) Commit() (entry.Entry, bool) {
	var (
		committed entry.Entry
		ok        bool
	)
	d.apply(func() bool {
		if !d.canCommitLocked() {
			return false
		}

		var err error
		switch d.state.Phase {
		case Composing:
			committed, err = d.store.Create(d.draft.Title, d.draft.Content, d.draft.Mood)
		case Editing:
			committed, err = d.store.Update(d.state.Target, d.draft.Title, d.draft.Content, d.draft.Mood)
			if errors.Is(err, storage.ErrNotFound) {
				d.log.WithField("id", d.state.Target).Warn("edit target vanished, draft discarded")
				d.resetLocked()
				return true
			}
		}
		if err != nil {
			d.log.WithError(err).Debug("commit refused")
			return false
		}

		ok = true
		d.resetLocked()
		return true
	})
	return committed, ok
}

// Cancel discards the draft and returns to Idle.
func (d *Diary) Cancel() {
	d.apply(func() bool {
		if d.state.Phase == Idle {
			return false
		}
		d.resetLocked()
		return true
	})
}

// DeleteEntry removes an entry and reports whether it existed. Deleting the
// entry currently being edited abandons the edit.
func (d *Diary) DeleteEntry(id entry.ID) bool {
	var removed bool
	d.apply(func() bool {
		removed = d.store.Delete(id)
		if d.state.Phase == Editing && d.state.Target == id {
			d.resetLocked()
			return true
		}
		return removed
	})
	return removed
}

// SetSearchTerm replaces the search term.
func (d *Diary) SetSearchTerm(term string) {
	d.apply(func() bool {
		if term == d.term {
			return false
		}
		d.term = term
		return true
	})
}

// ToggleTheme flips between light and dark display mode.
func (d *Diary) ToggleTheme() {
	d.apply(func() bool {
		d.dark = !d.dark
		return true
	})
}

func (d *Diary) visibleLocked() []entry.Entry {
	return slices.Collect(d.store.Search(d.term))
}

func (d *Diary) viewLocked(visible []entry.Entry) ViewState {
	switch {
	case len(visible) > 0:
		return ViewResults
	case d.term != "":
		return ViewNoResults
	default:
		return ViewEmpty
	}
}

func (d *Diary) snapshotLocked() Snapshot {
	visible := d.visibleLocked()
	return Snapshot{
		Entries:    visible,
		View:       d.viewLocked(visible),
		Draft:      d.draft,
		State:      d.state,
		DarkMode:   d.dark,
		SearchTerm: d.term,
		CanCommit:  d.canCommitLocked(),
	}
}

// Snapshot returns all render outputs at once.
func (d *Diary) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

// Visible returns the entries matching the current search term, in
// insertion order. It is recomputed on every call.
func (d *Diary) Visible() []entry.Entry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.visibleLocked()
}

// View classifies the visible list.
func (d *Diary) View() ViewState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewLocked(d.visibleLocked())
}

func (d *Diary) Draft() Draft {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft
}

func (d *Diary) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// EditingID returns the entry being edited, if any.
func (d *Diary) EditingID() (entry.ID, bool) {
	s := d.State()
	return s.Target, s.Phase == Editing
}

func (d *Diary) DarkMode() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dark
}

func (d *Diary) SearchTerm() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.term
}

// CanCommit reports whether Commit would do anything.
func (d *Diary) CanCommit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.canCommitLocked()
}

// Get returns an entry by ID.
func (d *Diary) Get(id entry.ID) (entry.Entry, error) {
	return d.store.Get(id)
}

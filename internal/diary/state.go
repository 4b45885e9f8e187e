package diary

import (
	"fmt"

	"github.com/chris-regnier/diarypad/internal/entry"
)

// Phase is the editing-state tag of a Diary.
type Phase int

const (
	Idle Phase = iota
	Composing
	Editing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Composing:
		return "composing"
	case Editing:
		return "editing"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the editing state. Target is set only while Editing.
type State struct {
	Phase  Phase
	Target entry.ID
}

func (s State) String() string {
	if s.Phase == Editing {
		return fmt.Sprintf("editing(%s)", s.Target)
	}
	return s.Phase.String()
}

// MarshalText encodes the state as its display string.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Draft holds the in-progress fields of an entry being composed or edited.
type Draft struct {
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Mood      entry.Mood `json:"mood"`
	EditingID entry.ID   `json:"editing_id,omitempty"`
}

func emptyDraft() Draft {
	return Draft{Mood: entry.DefaultMood}
}

// Valid reports whether the draft could be committed.
func (d Draft) Valid() bool {
	return entry.Validate(d.Title, d.Content) == nil
}

// ViewState distinguishes the empty states of the visible list.
type ViewState int

const (
	// ViewEmpty means there is nothing to show and no search term.
	ViewEmpty ViewState = iota
	// ViewNoResults means a non-empty search term matched nothing.
	ViewNoResults
	ViewResults
)

func (v ViewState) String() string {
	switch v {
	case ViewEmpty:
		return "empty"
	case ViewNoResults:
		return "no-results"
	default:
		return "results"
	}
}

// MarshalText encodes the view state as its display string.
func (v ViewState) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Snapshot is a consistent copy of everything a renderer needs.
type Snapshot struct {
	Entries    []entry.Entry `json:"entries"`
	View       ViewState     `json:"view"`
	Draft      Draft         `json:"draft"`
	State      State         `json:"state"`
	DarkMode   bool          `json:"dark_mode"`
	SearchTerm string        `json:"search_term"`
	CanCommit  bool          `json:"can_commit"`
}

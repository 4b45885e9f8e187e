package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chris-regnier/diarypad/internal/diary"
	"github.com/chris-regnier/diarypad/internal/entry"
	"github.com/fatih/color"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

// FormatEntryCreated formats a creation confirmation message.
func FormatEntryCreated(w io.Writer, e entry.Entry) {
	fmt.Fprintf(w, "Created entry %s (%s)\n", cyan(e.ID), e.FormatDate())
}

// FormatEntryUpdated formats an update confirmation message.
func FormatEntryUpdated(w io.Writer, e entry.Entry) {
	fmt.Fprintf(w, "Updated entry %s (%s)\n", cyan(e.ID), e.FormatDate())
}

// FormatEntryDeleted formats a deletion confirmation message.
func FormatEntryDeleted(w io.Writer, id entry.ID, removed bool) {
	if !removed {
		fmt.Fprintf(w, "No entry %s.\n", id)
		return
	}
	fmt.Fprintf(w, "Deleted entry %s.\n", id)
}

// FormatEntryFull formats a full entry display with metadata header.
func FormatEntryFull(w io.Writer, e entry.Entry) {
	fmt.Fprintf(w, "%s %s\n", e.Mood.Symbol(), bold(e.Title))
	fmt.Fprintf(w, "%s %s\n", faint("Entry:"), e.ID)
	fmt.Fprintf(w, "%s %s\n", faint("Date:"), e.Date.Format(entry.DetailDateLayout))
	fmt.Fprintln(w)
	fmt.Fprintln(w, e.Content)
}

// FormatEntryList formats the visible entries, one per line. The empty
// message depends on whether a search term is active.
func FormatEntryList(w io.Writer, entries []entry.Entry, view diary.ViewState) {
	switch view {
	case diary.ViewEmpty:
		fmt.Fprintln(w, "No entries yet.")
		return
	case diary.ViewNoResults:
		fmt.Fprintln(w, "No results.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
			cyan(e.ID),
			e.FormatDate(),
			e.Mood.Symbol(),
			bold(e.Title),
			faint(e.Preview(60)),
		)
	}
}

// FormatDraft formats the draft and editing state.
func FormatDraft(w io.Writer, s diary.State, d diary.Draft, canCommit bool) {
	fmt.Fprintf(w, "%s %s\n", faint("State:"), s)
	if s.Phase == diary.Idle {
		return
	}
	fmt.Fprintf(w, "%s %s\n", faint("Title:"), d.Title)
	fmt.Fprintf(w, "%s %s\n", faint("Content:"), d.Content)
	fmt.Fprintf(w, "%s %s %s\n", faint("Mood:"), d.Mood.Symbol(), d.Mood.Name())
	commit := "disabled"
	if canCommit {
		commit = "ready"
	}
	fmt.Fprintf(w, "%s %s\n", faint("Commit:"), commit)
}

// FormatState formats a one-line summary of the session.
func FormatState(w io.Writer, snap diary.Snapshot) {
	mode := "light"
	if snap.DarkMode {
		mode = "dark"
	}
	fmt.Fprintf(w, "state=%s theme=%s search=%q visible=%d view=%s\n",
		snap.State, mode, snap.SearchTerm, len(snap.Entries), snap.View)
}

// FormatMoods lists the mood picker choices.
func FormatMoods(w io.Writer) {
	for _, m := range entry.Moods() {
		def := ""
		if m == entry.DefaultMood {
			def = faint(" (default)")
		}
		fmt.Fprintf(w, "%s  %s%s\n", m.Symbol(), m.Name(), def)
	}
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

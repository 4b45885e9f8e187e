package diary

import (
	"errors"
	"testing"
	"time"

	"github.com/chris-regnier/diarypad/internal/entry"
	"github.com/chris-regnier/diarypad/internal/storage"
	"github.com/chris-regnier/diarypad/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 4, 1, 8, 0, 0, 0, time.Local)

func newTestDiary(t *testing.T, opts ...Option) *Diary {
	t.Helper()
	store := memory.New(memory.WithClock(func() time.Time { return testDay }))
	return New(store, opts...)
}

func compose(t *testing.T, d *Diary, title, content string, mood entry.Mood) entry.Entry {
	t.Helper()
	d.OpenComposer()
	d.SetDraftTitle(title)
	d.SetDraftContent(content)
	d.SetDraftMood(mood)
	e, ok := d.Commit()
	require.True(t, ok, "commit of %q should succeed", title)
	return e
}

func TestInitialState(t *testing.T) {
	d := newTestDiary(t)
	snap := d.Snapshot()

	assert.Equal(t, State{Phase: Idle}, snap.State)
	assert.Equal(t, Draft{Mood: entry.DefaultMood}, snap.Draft)
	assert.Equal(t, ViewEmpty, snap.View)
	assert.False(t, snap.DarkMode)
	assert.False(t, snap.CanCommit)
	assert.Empty(t, snap.Entries)
}

func TestDayOneScenario(t *testing.T) {
	d := newTestDiary(t)
	e := compose(t, d, "Day One", "Went hiking", entry.Happy)

	assert.Len(t, d.Visible(), 1)
	assert.Equal(t, "2026-04-01", e.FormatDate())

	d.SetSearchTerm("hiking")
	require.Len(t, d.Visible(), 1)
	assert.Equal(t, e.ID, d.Visible()[0].ID)

	d.SetSearchTerm("zzz")
	assert.Empty(t, d.Visible())
	assert.Equal(t, ViewNoResults, d.View())
}

func TestEditMoodScenario(t *testing.T) {
	d := newTestDiary(t)
	orig := compose(t, d, "A", "B", entry.Sad)

	require.NoError(t, d.BeginEdit(orig.ID))
	d.SetDraftMood(entry.Angry)
	updated, ok := d.Commit()
	require.True(t, ok)

	assert.Equal(t, entry.Angry, updated.Mood)
	assert.Equal(t, "A", updated.Title)
	assert.Equal(t, "B", updated.Content)
	assert.Equal(t, orig.ID, updated.ID)
	assert.True(t, orig.Date.Equal(updated.Date))
	assert.Equal(t, State{Phase: Idle}, d.State())
	assert.Equal(t, Draft{Mood: entry.DefaultMood}, d.Draft())
}

func TestCommitGuards(t *testing.T) {
	cases := []struct{ title, content string }{
		{"", "x"},
		{"x", ""},
		{"", ""},
		{"  ", "x"},
		{"x", "\n"},
	}
	for _, c := range cases {
		d := newTestDiary(t)
		d.OpenComposer()
		d.SetDraftTitle(c.title)
		d.SetDraftContent(c.content)

		assert.False(t, d.CanCommit())
		_, ok := d.Commit()
		assert.False(t, ok)
		assert.Empty(t, d.Visible())
		assert.Equal(t, Composing, d.State().Phase, "refused commit keeps composing")
		assert.Equal(t, c.title, d.Draft().Title, "refused commit keeps draft")
	}
}

func TestCommitWhileIdleIsInert(t *testing.T) {
	d := newTestDiary(t)
	d.SetDraftTitle("ignored")
	_, ok := d.Commit()
	assert.False(t, ok)
	assert.Equal(t, "", d.Draft().Title)
}

func TestOpenComposerToggleDiscards(t *testing.T) {
	d := newTestDiary(t)
	d.OpenComposer()
	assert.Equal(t, Composing, d.State().Phase)
	d.SetDraftTitle("unsaved")

	d.OpenComposer()
	assert.Equal(t, Idle, d.State().Phase)
	assert.Equal(t, Draft{Mood: entry.DefaultMood}, d.Draft())

	d.OpenComposer()
	assert.Equal(t, "", d.Draft().Title, "reopened composer starts empty")
}

func TestOpenComposerWhileEditingCancels(t *testing.T) {
	d := newTestDiary(t)
	e := compose(t, d, "A", "B", entry.Calm)
	require.NoError(t, d.BeginEdit(e.ID))
	d.SetDraftTitle("changed")

	d.OpenComposer()
	assert.Equal(t, Idle, d.State().Phase)
	got, err := d.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
}

func TestBeginEditCancelRoundTrip(t *testing.T) {
	d := newTestDiary(t)
	e := compose(t, d, "Title", "Body", entry.Thoughtful)
	before := d.Visible()

	require.NoError(t, d.BeginEdit(e.ID))
	assert.Equal(t, Draft{Title: "Title", Content: "Body", Mood: entry.Thoughtful, EditingID: e.ID}, d.Draft())
	id, editing := d.EditingID()
	assert.True(t, editing)
	assert.Equal(t, e.ID, id)

	d.SetDraftTitle("half-typed")
	d.Cancel()

	assert.Equal(t, before, d.Visible())
	assert.Equal(t, State{Phase: Idle}, d.State())
}

func TestBeginEditReplacesDraft(t *testing.T) {
	d := newTestDiary(t)
	a := compose(t, d, "A", "a", entry.Happy)
	b := compose(t, d, "B", "b", entry.Sad)

	d.OpenComposer()
	d.SetDraftTitle("new work")
	require.NoError(t, d.BeginEdit(a.ID))
	assert.Equal(t, "A", d.Draft().Title)

	require.NoError(t, d.BeginEdit(b.ID))
	assert.Equal(t, State{Phase: Editing, Target: b.ID}, d.State())
	assert.Equal(t, "B", d.Draft().Title)
}

func TestBeginEditUnknown(t *testing.T) {
	d := newTestDiary(t)
	d.OpenComposer()
	d.SetDraftTitle("keep")

	err := d.BeginEdit(404)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
	assert.Equal(t, Composing, d.State().Phase)
	assert.Equal(t, "keep", d.Draft().Title)
}

func TestDeleteEntryIdempotent(t *testing.T) {
	d := newTestDiary(t)
	a := compose(t, d, "A", "a", entry.Happy)
	compose(t, d, "B", "b", entry.Happy)

	assert.True(t, d.DeleteEntry(a.ID))
	assert.False(t, d.DeleteEntry(a.ID))
	assert.Len(t, d.Visible(), 1)
}

func TestDeleteEditTargetAbandonsEdit(t *testing.T) {
	d := newTestDiary(t)
	a := compose(t, d, "A", "a", entry.Happy)
	require.NoError(t, d.BeginEdit(a.ID))

	d.DeleteEntry(a.ID)
	assert.Equal(t, State{Phase: Idle}, d.State())
	assert.Equal(t, Draft{Mood: entry.DefaultMood}, d.Draft())
}

func TestCommitVanishedTarget(t *testing.T) {
	store := memory.New()
	d := New(store)
	a := compose(t, d, "A", "a", entry.Happy)
	require.NoError(t, d.BeginEdit(a.ID))

	// Removed behind the diary's back.
	store.Delete(a.ID)

	_, ok := d.Commit()
	assert.False(t, ok)
	assert.Equal(t, Idle, d.State().Phase)
	assert.Zero(t, store.Len())
}

func TestVisibleKeepsInsertionOrder(t *testing.T) {
	d := newTestDiary(t)
	var want []entry.ID
	for _, title := range []string{"zebra", "apple", "mango"} {
		want = append(want, compose(t, d, title, "fruit", entry.Happy).ID)
	}
	require.NoError(t, d.BeginEdit(want[0]))
	d.SetDraftTitle("aardvark")
	_, ok := d.Commit()
	require.True(t, ok)

	var got []entry.ID
	for _, e := range d.Visible() {
		got = append(got, e.ID)
	}
	assert.Equal(t, want, got)
}

func TestViewStates(t *testing.T) {
	d := newTestDiary(t)
	assert.Equal(t, ViewEmpty, d.View())

	d.SetSearchTerm("x")
	assert.Equal(t, ViewNoResults, d.View())

	d.SetSearchTerm("")
	compose(t, d, "x", "y", entry.Happy)
	assert.Equal(t, ViewResults, d.View())
}

func TestSetDraftMoodNormalizes(t *testing.T) {
	d := newTestDiary(t)
	d.OpenComposer()
	d.SetDraftMood(entry.Sleepy)
	d.SetDraftMood(entry.Mood(77))
	assert.Equal(t, entry.DefaultMood, d.Draft().Mood)
}

func TestToggleTheme(t *testing.T) {
	d := newTestDiary(t, WithDarkMode(true))
	assert.True(t, d.DarkMode())
	d.ToggleTheme()
	assert.False(t, d.DarkMode())
	d.ToggleTheme()
	assert.True(t, d.DarkMode())
}

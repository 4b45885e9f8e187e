package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/diarypad/internal/diary"
	"github.com/chris-regnier/diarypad/internal/editor"
	"github.com/chris-regnier/diarypad/internal/entry"
	"github.com/chris-regnier/diarypad/internal/storage"
)

// composerField is the focused input of the composer.
type composerField int

const (
	fieldTitle composerField = iota
	fieldMood
	fieldContent
	fieldCount
)

// Layout constants
const (
	headerHeight = 3 // title bar + search + blank line
	footerHeight = 2 // blank line + help hint
	contentLines = 6 // composer textarea height
)

// TUIConfig holds configuration needed by the TUI.
type TUIConfig struct {
	MaxWidth int    // maximum content width (0 = no limit)
	Themes   Themes // resolved light and dark themes
	Editor   string // external editor command; empty resolves from the environment
}

// diaryChangedMsg signals that the diary changed outside of a key handler.
type diaryChangedMsg struct{}

// editorFinishedMsg carries draft content written in the external editor.
type editorFinishedMsg struct {
	state   diary.State // composer the editor was opened from
	content string
	err     error
}

// changeFeed wakes the program loop when the diary publishes a change. The
// model always re-reads the current snapshot, so pending signals coalesce.
type changeFeed chan struct{}

func (c changeFeed) notify(diary.Snapshot) {
	select {
	case c <- struct{}{}:
	default:
	}
}

func (c changeFeed) wait() tea.Msg {
	<-c
	return diaryChangedMsg{}
}

// entryItem implements list.Item for entry.Entry. It is drawn by entryDelegate.
type entryItem struct {
	entry entry.Entry
}

func (e entryItem) FilterValue() string { return e.entry.Title }

// model is the Bubble Tea model for the diary screen.
type model struct {
	diary       *diary.Diary
	cfg         TUIConfig
	snap        diary.Snapshot
	changes     changeFeed
	unsubscribe func()

	list list.Model
	// Search
	search    textinput.Model
	searching bool
	// Composer
	title   textinput.Model
	content textarea.Model
	field   composerField
	// Detail pane
	detail     *entry.Entry
	detailView viewport.Model
	// Help overlay
	helpActive bool
	// Transient message shown in the footer
	status string
	// Common
	width  int
	height int
	ready  bool
	err    error
}

func newModel(d *diary.Diary, cfg TUIConfig) model {
	changes := make(changeFeed, 1)
	unsubscribe := d.Subscribe(changes.notify)

	search := textinput.New()
	search.Placeholder = "Search..."
	search.Prompt = "/ "

	title := textinput.New()
	title.Placeholder = "Diary title..."
	title.Prompt = ""

	content := textarea.New()
	content.Placeholder = "Dear diary..."
	content.ShowLineNumbers = false
	content.SetHeight(contentLines)

	m := model{
		diary:       d,
		cfg:         cfg,
		changes:     changes,
		unsubscribe: unsubscribe,
		search:      search,
		title:       title,
		content:     content,
	}
	snap := d.Snapshot()
	m.list = m.theme(snap.DarkMode).NewList(nil, 0, 0)
	m.list.SetShowTitle(false)
	m.list.SetShowHelp(false)
	m.list.SetShowStatusBar(false)
	m.list.SetFilteringEnabled(false)
	m.applySnapshot(snap)
	return m
}

func (m model) theme(dark bool) Theme {
	return m.cfg.Themes.For(dark)
}

func (m model) currentTheme() Theme {
	return m.theme(m.snap.DarkMode)
}

func (m model) composing() bool {
	return m.snap.State.Phase != diary.Idle
}

func (m model) Init() tea.Cmd {
	return m.changes.wait
}

// sync re-reads the diary state after a change.
func (m *model) sync() {
	m.applySnapshot(m.diary.Snapshot())
}

// applySnapshot brings widgets in line with the diary state.
func (m *model) applySnapshot(snap diary.Snapshot) {
	prev := m.snap
	m.snap = snap

	if snap.DarkMode != prev.DarkMode {
		m.currentTheme().StyleList(&m.list)
	}

	items := make([]list.Item, len(snap.Entries))
	for i, e := range snap.Entries {
		items[i] = entryItem{entry: e}
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}

	// Entering a composer state loads the draft into the inputs. Within a
	// state the inputs are the source of truth and are not overwritten.
	if snap.State != prev.State {
		if snap.State.Phase == diary.Idle {
			m.title.Blur()
			m.content.Blur()
		} else {
			m.title.SetValue(snap.Draft.Title)
			m.content.SetValue(snap.Draft.Content)
			m.detail = nil
			m.searching = false
			m.search.Blur()
			m.focusField(fieldTitle)
		}
	}

	if m.detail != nil {
		e, err := m.diary.Get(m.detail.ID)
		if errors.Is(err, storage.ErrNotFound) {
			m.detail = nil
		} else if err == nil {
			m.detail = &e
			m.detailView.SetContent(m.renderDetail())
		}
	}
}

func (m *model) focusField(f composerField) {
	m.field = f
	m.title.Blur()
	m.content.Blur()
	switch f {
	case fieldTitle:
		m.title.Focus()
	case fieldContent:
		m.content.Focus()
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case diaryChangedMsg:
		m.sync()
		return m, m.changes.wait

	case editorFinishedMsg:
		m.finishEditor(msg)
		m.sync()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.status = ""

		// Help overlay swallows every key while shown
		if m.helpActive {
			switch msg.String() {
			case "?", "esc", "q":
				m.helpActive = false
			}
			return m, nil
		}

		// The composer toggle works from every screen.
		if msg.String() == "ctrl+n" {
			m.diary.OpenComposer()
			m.sync()
			return m, nil
		}

		var (
			next tea.Model
			cmd  tea.Cmd
		)
		switch {
		case m.composing():
			next, cmd = m.updateComposer(msg)
		case m.searching:
			next, cmd = m.updateSearch(msg)
		case m.detail != nil:
			next, cmd = m.updateDetail(msg)
		default:
			next, cmd = m.updateList(msg)
		}
		nm := next.(model)
		nm.sync()
		return nm, cmd
	}

	return m, nil
}

func (m model) selected() (entry.Entry, bool) {
	item, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return entry.Entry{}, false
	}
	return item.entry, true
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "n":
		m.diary.OpenComposer()
		return m, nil
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "t":
		m.diary.ToggleTheme()
		return m, nil
	case "?":
		m.helpActive = true
		return m, nil
	case "e":
		if e, ok := m.selected(); ok {
			m.beginEdit(e.ID)
		}
		return m, nil
	case "d":
		if e, ok := m.selected(); ok {
			m.diary.DeleteEntry(e.ID)
		}
		return m, nil
	case "enter":
		if e, ok := m.selected(); ok {
			m.openDetail(e)
		}
		return m, nil
	case "esc":
		if m.snap.SearchTerm != "" {
			m.search.SetValue("")
			m.diary.SetSearchTerm("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) beginEdit(id entry.ID) {
	if err := m.diary.BeginEdit(id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		m.err = err
	}
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "down":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.diary.SetSearchTerm(m.search.Value())
	return m, cmd
}

func (m model) updateComposer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.diary.Cancel()
		return m, nil
	case "ctrl+s":
		// Inert while the draft is invalid.
		m.diary.Commit()
		return m, nil
	case "tab":
		m.focusField((m.field + 1) % fieldCount)
		return m, nil
	case "shift+tab":
		m.focusField((m.field + fieldCount - 1) % fieldCount)
		return m, nil
	case "ctrl+e":
		return m, m.openEditor()
	}

	var cmd tea.Cmd
	switch m.field {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
		m.diary.SetDraftTitle(m.title.Value())
	case fieldContent:
		m.content, cmd = m.content.Update(msg)
		m.diary.SetDraftContent(m.content.Value())
	case fieldMood:
		m.updateMood(msg)
	}
	return m, cmd
}

func (m model) openEditor() tea.Cmd {
	sess, err := editor.Prepare(editor.ResolveEditor(m.cfg.Editor), m.content.Value())
	if err != nil {
		return func() tea.Msg { return editorFinishedMsg{err: err} }
	}
	state := m.snap.State
	return tea.ExecProcess(sess.Cmd, func(err error) tea.Msg {
		content, err := sess.Finish(err)
		return editorFinishedMsg{state: state, content: content, err: err}
	})
}

// finishEditor loads edited content into the draft, provided the composer
// the editor was opened from is still active.
func (m *model) finishEditor(msg editorFinishedMsg) {
	if msg.err != nil {
		m.status = msg.err.Error()
		return
	}
	if msg.state != m.diary.State() {
		return
	}
	m.content.SetValue(msg.content)
	m.diary.SetDraftContent(msg.content)
	m.focusField(fieldContent)
}

func (m model) updateMood(msg tea.KeyMsg) {
	mood := m.snap.Draft.Mood
	switch s := msg.String(); s {
	case "left", "h":
		m.diary.SetDraftMood(mood.Prev())
	case "right", "l", " ":
		m.diary.SetDraftMood(mood.Next())
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '8' {
			m.diary.SetDraftMood(entry.Mood(s[0] - '1'))
		}
	}
}

func (m *model) openDetail(e entry.Entry) {
	m.detail = &e
	m.detailView = viewport.New(m.contentWidth(), m.bodyHeight())
	m.detailView.SetContent(m.renderDetail())
}

func (m model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.detail = nil
		return m, nil
	case "e":
		m.beginEdit(m.detail.ID)
		return m, nil
	case "d":
		id := m.detail.ID
		m.detail = nil
		m.diary.DeleteEntry(id)
		return m, nil
	case "t":
		m.diary.ToggleTheme()
		return m, nil
	}

	var cmd tea.Cmd
	m.detailView, cmd = m.detailView.Update(msg)
	return m, cmd
}

// contentWidth returns the effective content width, respecting MaxWidth configuration.
func (m model) contentWidth() int {
	if m.cfg.MaxWidth > 0 && m.cfg.MaxWidth < m.width {
		return m.cfg.MaxWidth
	}
	return m.width
}

func (m model) bodyHeight() int {
	return max(m.height-headerHeight-footerHeight, 1)
}

func (m *model) layout() {
	cw := m.contentWidth()
	m.list.SetSize(cw, m.bodyHeight())
	m.search.Width = max(cw-4, 10)
	m.title.Width = max(cw-8, 10)
	m.content.SetWidth(max(cw-6, 10))
	m.detailView.Width = cw
	m.detailView.Height = m.bodyHeight()
	if m.detail != nil {
		m.detailView.SetContent(m.renderDetail())
	}
}

func (m model) renderDetail() string {
	if m.detail == nil {
		return ""
	}
	e := m.detail
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", e.Mood.Symbol(), e.Title)
	fmt.Fprintf(&b, "%s\n\n", e.Date.Format(entry.DetailDateLayout))
	b.WriteString(RenderMarkdown(e.Content, m.contentWidth(), m.currentTheme().MarkdownStyle))
	return b.String()
}

func (m model) View() string {
	if !m.ready {
		// No PaintScreen here: dimensions are unknown until the first WindowSizeMsg.
		return "Loading..."
	}

	theme := m.currentTheme()
	if m.helpActive {
		return theme.ClearLineEnds(m.helpOverlay())
	}

	cw := m.contentWidth()
	sections := []string{m.headerView(), m.search.View(), ""}

	var footer string
	switch {
	case m.composing():
		sections = append(sections, m.composerView())
		footer = "tab next field • ←/→ mood • ctrl+e editor • ctrl+s save • esc cancel"
	case m.detail != nil:
		sections = append(sections, theme.ViewPaneStyle().Width(cw).Render(m.detailView.View()))
		footer = "↑/↓ scroll • e edit • d delete • esc back • q quit"
	default:
		sections = append(sections, m.listView())
		footer = "n new • / search • e edit • d delete • t theme • enter open • ? help • q quit"
	}
	if m.status != "" {
		footer = theme.DangerStyle().Render(m.status)
	} else {
		footer = theme.HelpStyle().Render(footer)
	}
	sections = append(sections, "", lipgloss.PlaceHorizontal(cw, lipgloss.Left, footer,
		lipgloss.WithWhitespaceBackground(theme.Background)))

	return theme.PaintScreen(strings.Join(sections, "\n"), m.width, m.height, cw)
}

func (m model) headerView() string {
	theme := m.currentTheme()
	icon := "☀"
	if m.snap.DarkMode {
		icon = "☾"
	}
	count := len(m.snap.Entries)
	label := "entries"
	if count == 1 {
		label = "entry"
	}
	return theme.HeaderStyle().Width(m.contentWidth()).Render(
		fmt.Sprintf("My Diary  %s    %d %s", icon, count, label))
}

func (m model) listView() string {
	theme := m.currentTheme()
	switch m.snap.View {
	case diary.ViewEmpty:
		return theme.ViewPaneStyle().Width(m.contentWidth()).Render(
			"No entries yet.\n\n  n  write your first entry")
	case diary.ViewNoResults:
		return theme.ViewPaneStyle().Width(m.contentWidth()).Render(
			fmt.Sprintf("No results for %q.\n\n  esc  clear search", m.snap.SearchTerm))
	}
	return m.list.View()
}

func (m model) composerView() string {
	theme := m.currentTheme()
	heading := "New entry"
	if m.snap.State.Phase == diary.Editing {
		heading = "Edit entry"
	}

	label := func(f composerField, s string) string {
		if m.field == f {
			return theme.AccentStyle().Render(s)
		}
		return theme.HelpStyle().Render(s)
	}

	var moods []string
	for _, mood := range entry.Moods() {
		if mood == m.snap.Draft.Mood {
			moods = append(moods, theme.AccentStyle().Render("["+mood.Symbol()+"]"))
		} else {
			moods = append(moods, " "+mood.Symbol()+" ")
		}
	}

	save := theme.HelpStyle().Render("ctrl+s save (title and content required)")
	if m.snap.CanCommit {
		save = theme.AccentStyle().Render("ctrl+s save")
	}

	body := strings.Join([]string{
		theme.HeaderStyle().Render(heading),
		"",
		label(fieldTitle, "Title"),
		m.title.View(),
		"",
		label(fieldMood, "My mood"),
		strings.Join(moods, " "),
		"",
		label(fieldContent, "Entry"),
		m.content.View(),
		"",
		save,
	}, "\n")

	return theme.BorderStyle().Padding(0, 1).Width(max(m.contentWidth()-2, 10)).Render(body)
}

func (m model) helpOverlay() string {
	theme := m.currentTheme()
	help := theme.BorderStyle().
		Padding(1, 2).
		Width(48).
		Render(`Entries
  ↑/↓        navigate
  enter      open entry
  n          new entry
  e          edit selected entry
  d          delete selected entry
  /          search titles and content
  esc        clear search / go back
  t          toggle light/dark theme

Composer
  tab        next field
  ←/→ 1-8    pick mood
  ctrl+e     write content in $EDITOR
  ctrl+s     save
  esc        discard draft
  ctrl+n     toggle composer

  ?/q/esc    close help`)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, help,
		lipgloss.WithWhitespaceBackground(theme.Background))
}

// RunTUI launches the interactive diary.
func RunTUI(d *diary.Diary, cfg TUIConfig) error {
	m := newModel(d, cfg)
	defer m.unsubscribe()

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return err
	}
	if am, ok := result.(model); ok && am.err != nil {
		return am.err
	}
	return nil
}

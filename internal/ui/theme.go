package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/diarypad/internal/config"
)

// Theme holds resolved lipgloss colors for TUI rendering.
type Theme struct {
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Danger        lipgloss.Color
	Background    lipgloss.Color
	MarkdownStyle string
}

var (
	lightTheme = Theme{
		Primary:       lipgloss.Color("0"),
		Secondary:     lipgloss.Color("240"),
		Accent:        lipgloss.Color("27"),
		Muted:         lipgloss.Color("245"),
		Danger:        lipgloss.Color("1"),
		Background:    lipgloss.Color("254"),
		MarkdownStyle: "light",
	}
	darkTheme = Theme{
		Primary:       lipgloss.Color("15"),
		Secondary:     lipgloss.Color("243"),
		Accent:        lipgloss.Color("33"),
		Muted:         lipgloss.Color("241"),
		Danger:        lipgloss.Color("9"),
		Background:    lipgloss.Color("235"),
		MarkdownStyle: "dark",
	}
)

// Themes pairs the two display modes.
type Themes struct {
	Light Theme
	Dark  Theme
}

// For returns the theme for the given display mode.
func (t Themes) For(dark bool) Theme {
	if dark {
		return t.Dark
	}
	return t.Light
}

// ResolveThemes builds both display-mode themes from config.
func ResolveThemes(cfg config.ThemesConfig) Themes {
	return Themes{
		Light: applyOverrides(lightTheme, cfg.Light),
		Dark:  applyOverrides(darkTheme, cfg.Dark),
	}
}

func applyOverrides(theme Theme, cfg config.ThemeConfig) Theme {
	if cfg.Primary != "" {
		theme.Primary = lipgloss.Color(cfg.Primary)
	}
	if cfg.Secondary != "" {
		theme.Secondary = lipgloss.Color(cfg.Secondary)
	}
	if cfg.Accent != "" {
		theme.Accent = lipgloss.Color(cfg.Accent)
	}
	if cfg.Muted != "" {
		theme.Muted = lipgloss.Color(cfg.Muted)
	}
	if cfg.Danger != "" {
		theme.Danger = lipgloss.Color(cfg.Danger)
	}
	if cfg.Background != "" {
		theme.Background = lipgloss.Color(cfg.Background)
	}
	if cfg.MarkdownStyle != "" {
		theme.MarkdownStyle = cfg.MarkdownStyle
	}
	return theme
}

// base is the background every themed style is built on.
func (t Theme) base() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Background)
}

// HelpStyle is used for the footer and other secondary text.
func (t Theme) HelpStyle() lipgloss.Style { return t.base().Foreground(t.Muted) }

// HeaderStyle is used for the title bar and composer heading.
func (t Theme) HeaderStyle() lipgloss.Style { return t.base().Bold(true).Foreground(t.Primary) }

// AccentStyle marks the focused field, selected mood and enabled save hint.
func (t Theme) AccentStyle() lipgloss.Style { return t.base().Foreground(t.Accent) }

// DangerStyle is used for errors shown in the footer.
func (t Theme) DangerStyle() lipgloss.Style { return t.base().Foreground(t.Danger) }

// BorderStyle frames the composer and help overlay.
func (t Theme) BorderStyle() lipgloss.Style {
	return t.base().
		Foreground(t.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		BorderBackground(t.Background)
}

// ViewPaneStyle is used for the detail pane and the empty-list messages.
func (t Theme) ViewPaneStyle() lipgloss.Style { return t.base().Foreground(t.Primary) }

// bgEscapeCode returns the raw SGR sequence selecting the theme background,
// for use ahead of an erase-line (\x1b[K).
func (t Theme) bgEscapeCode() string {
	s := string(t.Background)
	var r, g, b int
	if n, _ := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); n == 3 && len(s) == 7 {
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
	}
	return "\x1b[48;5;" + s + "m"
}

// PaintScreen centers content of contentWidth in a termWidth x termHeight
// screen filled with the theme background. Lines beyond termHeight are cut.
func (t Theme) PaintScreen(content string, termWidth, termHeight, contentWidth int) string {
	pad := t.base()
	eol := t.bgEscapeCode() + "\x1b[K"

	left := ""
	if contentWidth > 0 && contentWidth < termWidth {
		left = pad.Render(strings.Repeat(" ", (termWidth-contentWidth)/2))
	}
	leftWidth := lipgloss.Width(left)

	fill := func(line string) string {
		right := termWidth - leftWidth - lipgloss.Width(line)
		if right > 0 {
			line += pad.Render(strings.Repeat(" ", right))
		}
		return left + line + eol
	}

	lines := strings.Split(content, "\n")
	screen := make([]string, 0, termHeight)
	for i := 0; i < termHeight; i++ {
		if i < len(lines) {
			screen = append(screen, fill(lines[i]))
		} else {
			screen = append(screen, pad.Render(strings.Repeat(" ", termWidth))+eol)
		}
	}
	return strings.Join(screen, "\n")
}

// ClearLineEnds appends a background-colored erase-to-end-of-line to every
// line of output produced by lipgloss.Place.
func (t Theme) ClearLineEnds(content string) string {
	eol := t.bgEscapeCode() + "\x1b[K"
	return strings.ReplaceAll(content, "\n", eol+"\n") + eol
}

// NewList creates the entry list styled for this theme.
func (t Theme) NewList(items []list.Item, width, height int) list.Model {
	l := list.New(items, entryDelegate{theme: t}, width, height)
	t.StyleList(&l)
	return l
}

// StyleList restyles an existing list, e.g. after the display mode changes.
func (t Theme) StyleList(l *list.Model) {
	l.SetDelegate(entryDelegate{theme: t})
	l.Styles = t.ListStyles()
}

// ListStyles returns the list chrome styles. Title, status bar and help are
// hidden, so only pagination and the empty message matter.
func (t Theme) ListStyles() list.Styles {
	s := list.DefaultStyles()
	s.TitleBar = t.base()
	s.PaginationStyle = t.base().Foreground(t.Muted).PaddingLeft(2)
	s.ActivePaginationDot = t.base().Foreground(t.Accent).SetString("•")
	s.InactivePaginationDot = t.base().Foreground(t.Muted).SetString("•")
	s.NoItems = t.base().Foreground(t.Muted)
	return s
}

// entryDelegate draws an entry as two lines: date, mood and title, then a
// one-line content preview. The selected entry gets an accent bar.
type entryDelegate struct {
	theme Theme
}

func (d entryDelegate) Height() int                         { return 2 }
func (d entryDelegate) Spacing() int                        { return 1 }
func (d entryDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(entryItem)
	if !ok {
		return
	}
	e := it.entry
	t := d.theme
	width := max(m.Width()-2, 10)

	gutter := t.base().Render("  ")
	title := t.base().Foreground(t.Primary)
	desc := t.base().Foreground(t.Muted)
	if index == m.Index() {
		gutter = t.base().Foreground(t.Accent).Render("│ ")
		title = title.Foreground(t.Accent).Bold(true)
		desc = desc.Foreground(t.Secondary)
	}

	heading := fmt.Sprintf("%s  %s  %s", e.FormatDate(), e.Mood.Symbol(), e.Title)
	fmt.Fprintf(w, "%s%s\n%s%s",
		gutter, title.MaxWidth(width).Render(heading),
		gutter, desc.MaxWidth(width).Render(e.Preview(width)))
}

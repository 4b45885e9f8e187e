// Package script drives a diary from line-oriented commands. It is used when
// no terminal is attached and in tests.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chris-regnier/diarypad/internal/diary"
	"github.com/chris-regnier/diarypad/internal/entry"
	"github.com/chris-regnier/diarypad/internal/logging"
	"github.com/chris-regnier/diarypad/internal/ui"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
	ErrUnexpectedArgs  = errors.New("unexpected arguments")
)

// LineError reports the script line that failed.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

type handler func(args string) error

// Driver applies commands to a diary and writes results to out.
type Driver struct {
	diary *diary.Diary
	out   io.Writer
	log   *logrus.Entry
	cmds  map[string]handler
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used for executed commands.
func WithLogger(log *logrus.Entry) Option {
	return func(dr *Driver) { dr.log = log }
}

// New creates a Driver for d writing to out.
func New(d *diary.Diary, out io.Writer, opts ...Option) *Driver {
	dr := &Driver{diary: d, out: out}
	for _, opt := range opts {
		opt(dr)
	}
	if dr.log == nil {
		dr.log = logging.Discard()
	}
	dr.cmds = map[string]handler{
		"new":     dr.noArgs(dr.openComposer),
		"edit":    dr.edit,
		"title":   dr.title,
		"content": dr.content,
		"mood":    dr.mood,
		"commit":  dr.noArgs(dr.commit),
		"cancel":  dr.noArgs(dr.cancel),
		"delete":  dr.delete,
		"search":  dr.search,
		"theme":   dr.noArgs(dr.theme),
		"list":    dr.noArgs(dr.list),
		"show":    dr.show,
		"draft":   dr.noArgs(dr.draft),
		"state":   dr.noArgs(dr.state),
		"json":    dr.noArgs(dr.json),
	}
	return dr
}

// Run executes commands read from r until EOF, the first failing line, or
// cancellation of ctx.
func (dr *Driver) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := dr.Exec(scanner.Text()); err != nil {
			return &LineError{Line: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return nil
}

// Exec runs a single command line. Blank lines and # comments are ignored.
func (dr *Driver) Exec(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	name, args, _ := strings.Cut(trimmed, " ")
	h, ok := dr.cmds[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	dr.log.WithField("command", name).Debug("script command")
	return h(args)
}

func (dr *Driver) noArgs(fn func() error) handler {
	return func(args string) error {
		if strings.TrimSpace(args) != "" {
			return fmt.Errorf("%w: %q", ErrUnexpectedArgs, args)
		}
		return fn()
	}
}

func parseID(args string) (entry.ID, error) {
	if strings.TrimSpace(args) == "" {
		return 0, fmt.Errorf("%w: entry ID", ErrMissingArgument)
	}
	return entry.ParseID(args)
}

// unescape turns the two-character sequence \n into a newline so multi-line
// content fits on one script line.
func unescape(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func (dr *Driver) printDraft() {
	snap := dr.diary.Snapshot()
	ui.FormatDraft(dr.out, snap.State, snap.Draft, snap.CanCommit)
}

func (dr *Driver) openComposer() error {
	dr.diary.OpenComposer()
	dr.printDraft()
	return nil
}

func (dr *Driver) edit(args string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := dr.diary.BeginEdit(id); err != nil {
		return fmt.Errorf("editing entry %s: %w", id, err)
	}
	dr.printDraft()
	return nil
}

func (dr *Driver) title(args string) error {
	dr.diary.SetDraftTitle(unescape(args))
	return nil
}

func (dr *Driver) content(args string) error {
	dr.diary.SetDraftContent(unescape(args))
	return nil
}

func (dr *Driver) mood(args string) error {
	if strings.TrimSpace(args) == "" {
		return fmt.Errorf("%w: mood", ErrMissingArgument)
	}
	m, err := entry.ParseMood(args)
	if err != nil {
		return err
	}
	dr.diary.SetDraftMood(m)
	return nil
}

func (dr *Driver) commit() error {
	editing := dr.diary.State().Phase == diary.Editing
	e, ok := dr.diary.Commit()
	switch {
	case !ok:
		fmt.Fprintln(dr.out, "Nothing to commit.")
	case editing:
		ui.FormatEntryUpdated(dr.out, e)
	default:
		ui.FormatEntryCreated(dr.out, e)
	}
	return nil
}

func (dr *Driver) cancel() error {
	dr.diary.Cancel()
	dr.printDraft()
	return nil
}

func (dr *Driver) delete(args string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	ui.FormatEntryDeleted(dr.out, id, dr.diary.DeleteEntry(id))
	return nil
}

// search keeps the term verbatim, so "search" alone clears it.
func (dr *Driver) search(args string) error {
	dr.diary.SetSearchTerm(args)
	return dr.list()
}

func (dr *Driver) theme() error {
	dr.diary.ToggleTheme()
	mode := "light"
	if dr.diary.DarkMode() {
		mode = "dark"
	}
	fmt.Fprintf(dr.out, "Theme: %s\n", mode)
	return nil
}

func (dr *Driver) list() error {
	snap := dr.diary.Snapshot()
	ui.FormatEntryList(dr.out, snap.Entries, snap.View)
	return nil
}

func (dr *Driver) show(args string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	e, err := dr.diary.Get(id)
	if err != nil {
		return fmt.Errorf("showing entry %s: %w", id, err)
	}
	ui.FormatEntryFull(dr.out, e)
	return nil
}

func (dr *Driver) draft() error {
	dr.printDraft()
	return nil
}

func (dr *Driver) state() error {
	ui.FormatState(dr.out, dr.diary.Snapshot())
	return nil
}

func (dr *Driver) json() error {
	return ui.FormatJSON(dr.out, dr.diary.Snapshot())
}

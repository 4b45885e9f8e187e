package entry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date layouts used for display. The application uses a single fixed locale.
const (
	DateLayout       = "2006-01-02"
	DetailDateLayout = "Monday, January 2, 2006"
)

// Sentinel errors for entry validation.
var (
	ErrEmptyTitle   = errors.New("entry title must not be empty")
	ErrEmptyContent = errors.New("entry content must not be empty")
)

// ID identifies an entry. IDs are assigned by the store, start at 1 and are
// never reused. The zero ID means "no entry".
type ID uint64

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID parses the decimal form produced by ID.String.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid entry ID: %q", s)
	}
	return ID(n), nil
}

// Entry represents a single diary entry.
type Entry struct {
	ID      ID        `json:"id"`
	Date    time.Time `json:"date"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Mood    Mood      `json:"mood"`
}

// DateOf returns the local calendar date of t as local midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// ValidateTitle checks whether a title is non-empty after trimming.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// ValidateContent checks whether content is non-empty after trimming.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	return nil
}

// Validate checks both title and content.
func Validate(title, content string) error {
	return errors.Join(ValidateTitle(title), ValidateContent(content))
}

// Matches reports whether the title or content contains term, ignoring case.
// An empty term matches every entry.
func (e *Entry) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Content), term)
}

// FormatDate returns the entry's date in list layout.
func (e *Entry) FormatDate() string {
	return e.Date.Format(DateLayout)
}

// Preview returns a truncated single-line preview of the entry content.
func (e *Entry) Preview(maxLen int) string {
	content := strings.Join(strings.Fields(e.Content), " ")
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

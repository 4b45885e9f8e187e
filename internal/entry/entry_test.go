package entry

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		want    []error
	}{
		{"both set", "Day One", "Went hiking", nil},
		{"empty title", "", "x", []error{ErrEmptyTitle}},
		{"whitespace content", "x", "  \n\t", []error{ErrEmptyContent}},
		{"both empty", " ", "", []error{ErrEmptyTitle, ErrEmptyContent}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.title, tt.content)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			for _, w := range tt.want {
				if !errors.Is(err, w) {
					t.Errorf("expected %v in %v", w, err)
				}
			}
		})
	}
}

func TestMatches(t *testing.T) {
	e := Entry{Title: "Hello World", Content: "contains NEEDLE here"}
	for _, term := range []string{"", "hello", "WORLD", "needle", "Needle Here"} {
		if !e.Matches(term) {
			t.Errorf("expected match for %q", term)
		}
	}
	if e.Matches("zzz") {
		t.Error("unexpected match for zzz")
	}
}

func TestPreview(t *testing.T) {
	e := Entry{Content: "line one\nline two"}
	if got := e.Preview(80); got != "line one line two" {
		t.Errorf("got %q", got)
	}
	if got := e.Preview(10); got != "line on..." {
		t.Errorf("got %q", got)
	}

	emoji := Entry{Content: "😊😊😊😊😊😊"}
	if got := emoji.Preview(5); got != "😊😊..." {
		t.Errorf("got %q", got)
	}
}

func TestDateOf(t *testing.T) {
	at := time.Date(2026, 3, 14, 23, 59, 1, 0, time.Local)
	got := DateOf(at)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 42 ")
	if err != nil || id != 42 {
		t.Fatalf("got %d, %v", id, err)
	}
	for _, bad := range []string{"", "0", "-1", "abc"} {
		if _, err := ParseID(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestEntryJSONMood(t *testing.T) {
	e := Entry{ID: 7, Title: "t", Content: "c", Mood: Angry}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Entry
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Mood != Angry {
		t.Errorf("mood = %v, want %v", got.Mood, Angry)
	}
}

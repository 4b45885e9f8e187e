package memory

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chris-regnier/diarypad/internal/entry"
	"github.com/sirupsen/logrus"
)

func TestCreateUsesClockDate(t *testing.T) {
	day := time.Date(2026, 2, 2, 23, 45, 0, 0, time.Local)
	s := New(WithClock(func() time.Time { return day }))

	e, err := s.Create("t", "c", entry.Happy)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := e.FormatDate(); got != "2026-02-02" {
		t.Errorf("date = %s", got)
	}
	if e.Date.Hour() != 0 || e.Date.Minute() != 0 {
		t.Errorf("date carries time of day: %v", e.Date)
	}
}

func TestConcurrentCreatesAreAtomic(t *testing.T) {
	s := New()
	const workers, per = 8, 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				if _, err := s.Create("t", "c", entry.Happy); err != nil {
					t.Errorf("Create: %v", err)
				}
				for range s.Search("t") {
				}
			}
		}()
	}
	wg.Wait()

	if s.Len() != workers*per {
		t.Fatalf("len = %d, want %d", s.Len(), workers*per)
	}
	seen := map[entry.ID]bool{}
	for _, e := range s.List() {
		if seen[e.ID] {
			t.Fatalf("duplicate id %d", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestLogsMutations(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)

	s := New(WithLogger(logrus.NewEntry(l)))
	e, _ := s.Create("t", "c", entry.Sad)
	s.Create("", "c", entry.Sad)
	s.Delete(e.ID)

	out := buf.String()
	for _, want := range []string{"entry created", "create refused", "entry deleted"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

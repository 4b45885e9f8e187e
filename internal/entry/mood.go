package entry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMood is returned when a string names none of the known moods.
var ErrInvalidMood = errors.New("invalid mood")

// Mood is one of eight fixed emotional tags attached to an entry.
type Mood uint8

const (
	Happy Mood = iota
	Sad
	Sleepy
	Loving
	Angry
	Thoughtful
	Laughing
	Calm

	moodCount
)

// DefaultMood is used whenever a mood is missing or invalid.
const DefaultMood = Happy

var moodSymbols = [moodCount]string{"😊", "😢", "😴", "😍", "😡", "🤔", "😂", "😌"}

var moodNames = [moodCount]string{"happy", "sad", "sleepy", "loving", "angry", "thoughtful", "laughing", "calm"}

// Moods returns every mood in picker order.
func Moods() []Mood {
	moods := make([]Mood, moodCount)
	for i := range moods {
		moods[i] = Mood(i)
	}
	return moods
}

// Valid reports whether m is one of the eight known moods.
func (m Mood) Valid() bool {
	return m < moodCount
}

// Or returns m if it is valid and def otherwise.
func (m Mood) Or(def Mood) Mood {
	if m.Valid() {
		return m
	}
	return def
}

// Symbol returns the emoji for m, or the default mood's emoji if m is invalid.
func (m Mood) Symbol() string {
	return moodSymbols[m.Or(DefaultMood)]
}

// Name returns the lowercase name for m.
func (m Mood) Name() string {
	return moodNames[m.Or(DefaultMood)]
}

func (m Mood) String() string { return m.Symbol() }

// Next returns the mood after m in picker order, wrapping around.
func (m Mood) Next() Mood {
	return (m.Or(DefaultMood) + 1) % moodCount
}

// Prev returns the mood before m in picker order, wrapping around.
func (m Mood) Prev() Mood {
	return (m.Or(DefaultMood) + moodCount - 1) % moodCount
}

// ParseMood accepts either an emoji symbol or a case-insensitive mood name.
func ParseMood(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	for i := range moodSymbols {
		if s == moodSymbols[i] || strings.EqualFold(s, moodNames[i]) {
			return Mood(i), nil
		}
	}
	return DefaultMood, fmt.Errorf("%w: %q", ErrInvalidMood, s)
}

// MarshalJSON encodes the mood as its emoji symbol.
func (m Mood) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Symbol())
}

// UnmarshalJSON decodes a mood from its symbol or name.
func (m *Mood) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMood(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Package logging configures the structured logger shared by the store,
// the diary and the command layer.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
)

const (
	sessionAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	sessionLength   = 8
)

// Options controls where and how much is logged.
type Options struct {
	File  string // path to append records to; empty discards output
	Level string // logrus level name
}

// New builds a logger tagged with a fresh session ID. The returned closer
// releases the log file, if any.
func New(opts Options) (*logrus.Entry, io.Closer, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing log level: %w", err)
		}
		level = parsed
	}
	l.SetLevel(level)

	var closer io.Closer = nopCloser{}
	if opts.File == "" {
		l.SetOutput(io.Discard)
	} else {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		l.SetOutput(f)
		closer = f
	}

	session, err := NewSessionID()
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return l.WithField("session", session), closer, nil
}

// NewSessionID generates the identifier that tags every record of one run.
func NewSessionID() (string, error) {
	return gonanoid.Generate(sessionAlphabet, sessionLength)
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

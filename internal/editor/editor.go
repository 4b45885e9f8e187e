// Package editor hands draft content to an external editor and reads it back.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned when the editor command is blank.
var ErrNoEditor = errors.New("empty editor command")

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return "vi"
}

// Session is one editor invocation over a temporary markdown file.
type Session struct {
	Cmd  *exec.Cmd
	path string
}

// Prepare writes content to a temp file and builds the editor command for it.
// The caller runs Cmd (directly or through the TUI) and then calls Finish.
func Prepare(editorCmd, content string) (*Session, error) {
	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return nil, ErrNoEditor
	}

	tmp, err := os.CreateTemp("", "diarypad-*.md")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("preparing temp file: %w", err)
	}

	args := append(parts[1:], tmp.Name())
	return &Session{Cmd: exec.Command(parts[0], args...), path: tmp.Name()}, nil
}

// Finish reads the edited content back and removes the temp file. runErr is
// the error from running Cmd.
func (s *Session) Finish(runErr error) (string, error) {
	defer os.Remove(s.path)
	if runErr != nil {
		return "", fmt.Errorf("editor exited with error: %w", runErr)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("reading edited file: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// Edit runs the editor attached to the current terminal and returns the
// edited content.
func Edit(editorCmd, content string) (string, error) {
	s, err := Prepare(editorCmd, content)
	if err != nil {
		return "", err
	}
	s.Cmd.Stdin = os.Stdin
	s.Cmd.Stdout = os.Stdout
	s.Cmd.Stderr = os.Stderr
	return s.Finish(s.Cmd.Run())
}

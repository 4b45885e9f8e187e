package editor

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestResolveEditorConfig(t *testing.T) {
	result := ResolveEditor("nano")
	if result != "nano" {
		t.Errorf("expected nano, got %q", result)
	}
}

func TestResolveEditorEnvEditor(t *testing.T) {
	t.Setenv("EDITOR", "vim")
	t.Setenv("VISUAL", "code")
	result := ResolveEditor("")
	if result != "vim" {
		t.Errorf("expected vim (from EDITOR), got %q", result)
	}
}

func TestResolveEditorEnvVisual(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "code")
	result := ResolveEditor("")
	if result != "code" {
		t.Errorf("expected code (from VISUAL), got %q", result)
	}
}

func TestResolveEditorFallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	result := ResolveEditor("")
	if result != "vi" {
		t.Errorf("expected vi (fallback), got %q", result)
	}
}

func TestPrepareEmptyCommand(t *testing.T) {
	if _, err := Prepare("   ", "x"); !errors.Is(err, ErrNoEditor) {
		t.Errorf("expected ErrNoEditor, got %v", err)
	}
}

func TestEditUnchanged(t *testing.T) {
	// 'true' exits successfully without touching the file
	content, err := Edit("true", "Went hiking\n")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if content != "Went hiking" {
		t.Errorf("content = %q, want %q", content, "Went hiking")
	}
}

func TestEditRewritesFile(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	script := filepath.Join(t.TempDir(), "fake-editor")
	body := "#!/bin/sh\nprintf 'line one\\nline two\\n' > \"$1\"\n"
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatal(err)
	}
	content, err := Edit(script, "old")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if content != "line one\nline two" {
		t.Errorf("content = %q", content)
	}
}

func TestFinishRemovesTempFile(t *testing.T) {
	s, err := Prepare("true", "draft")
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if _, err := os.Stat(s.path); err != nil {
		t.Fatalf("temp file missing before finish: %v", err)
	}
	if _, err := s.Finish(s.Cmd.Run()); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if _, err := os.Stat(s.path); !os.IsNotExist(err) {
		t.Errorf("temp file should be removed, stat err = %v", err)
	}
}

func TestFinishReportsEditorFailure(t *testing.T) {
	s, err := Prepare("false", "draft")
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if _, err := s.Finish(s.Cmd.Run()); err == nil {
		t.Error("expected error from failing editor")
	}
	if _, err := os.Stat(s.path); !os.IsNotExist(err) {
		t.Error("temp file should be removed after failure")
	}
}

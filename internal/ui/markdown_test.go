package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		width        int
		wantContains []string
	}{
		{"plain text", "Went hiking", 80, []string{"Went hiking"}},
		{"heading", "# Day One", 80, []string{"Day One"}},
		{"list", "- eggs\n- milk", 80, []string{"eggs", "milk"}},
		{"wraps at small width", "This is a longer line of text that should wrap", 20, []string{"This is a longer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderMarkdown(tt.input, tt.width, "dark"))
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output should contain %q, got:\n%s", want, got)
				}
			}
		})
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := RenderMarkdown("", 80, "dark"); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestRenderMarkdownBadStyleFallsBack(t *testing.T) {
	var r markdownRenderer
	got := r.Render("raw text", 80, "/no/such/style.json")
	if got != "raw text" {
		t.Errorf("expected raw fallback, got %q", got)
	}
}

func TestRenderMarkdownCachesRenderer(t *testing.T) {
	var r markdownRenderer
	r.Render("# a", 60, "dark")
	first := r.renderer
	r.Render("# b", 60, "dark")
	if r.renderer != first {
		t.Error("renderer rebuilt for identical width and style")
	}
	r.Render("# c", 60, "light")
	if r.renderer == first {
		t.Error("renderer not rebuilt after style change")
	}
}

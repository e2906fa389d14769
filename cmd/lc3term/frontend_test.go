package main

import (
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gosuda/lc3term/config"
)

func TestPromptToggleResizesViewport(t *testing.T) {
	m, err := newModel(config.Default(), slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(model)
	base := m.viewport.Height
	if base != 23 {
		t.Fatalf("viewport height = %d, want 23", base)
	}

	// Opening the load prompt adds a footer line, so the viewport must
	// give one up without waiting for a resize.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = updated.(model)
	if !m.prompting {
		t.Fatalf("ctrl+l did not open the prompt")
	}
	if m.viewport.Height != base-1 {
		t.Fatalf("viewport height with prompt = %d, want %d", m.viewport.Height, base-1)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(model)
	if m.prompting {
		t.Fatalf("esc did not close the prompt")
	}
	if m.viewport.Height != base {
		t.Fatalf("viewport height after close = %d, want %d", m.viewport.Height, base)
	}
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gosuda/lc3term"
	"github.com/gosuda/lc3term/config"
	"github.com/gosuda/lc3term/console"
	"github.com/gosuda/lc3term/machine"
)

// bootSession wires a machine and console to the given surface and host,
// installing the configured startup image or the builtin one.
func bootSession(cfg config.Config, logger *slog.Logger, surface console.Surface, host console.Host) (*machine.VM, *console.Console, error) {
	var image []byte
	if cfg.Image != "" {
		data, err := os.ReadFile(cfg.Image)
		if err != nil {
			return nil, nil, fmt.Errorf("read image: %w", err)
		}
		image = data
	}
	return lc3term.Boot(lc3term.BootConfig{
		Image:      image,
		StepBudget: cfg.StepBudget,
		Surface:    surface,
		Host:       host,
		Logger:     logger,
	})
}

// loadFileCmd reads a program image off the event loop. The read result
// comes back as a message; a failed read never reaches the loader.
func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return fileReadMsg{path: path, data: data, err: err}
	}
}

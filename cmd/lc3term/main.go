package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gosuda/lc3term/config"
	"github.com/gosuda/lc3term/logs"
)

func main() {
	cfgPath := flag.String("config", "", "TOML config file")
	image := flag.String("image", "", "program image to load at startup")
	plain := flag.Bool("plain", false, "run on stdio without the TUI")
	logFile := flag.String("log", "", "diagnostic log file")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *image != "" {
		cfg.Image = *image
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *debug {
		logs.SetDebug()
	}

	logger, closer, err := logs.New(cfg.LogFile, *plain)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	if *plain {
		if err := runPlain(cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "lc3term: %v\n", err)
			os.Exit(1)
		}
		return
	}

	m, err := newModel(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lc3term: %v\n", err)
		os.Exit(1)
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui: %v\n", err)
		os.Exit(1)
	}
}

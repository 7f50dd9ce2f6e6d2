package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skelde/typesmith/internal/config"
	"github.com/skelde/typesmith/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	startDir := cfg.Source.StartDir
	if len(os.Args) > 1 {
		startDir = os.Args[1]
	}
	if startDir == "" {
		if wd, err := os.Getwd(); err == nil {
			startDir = wd
		} else {
			startDir = "."
		}
	}
	if info, err := os.Stat(startDir); err != nil || !info.IsDir() {
		log.Fatalf("start dir %q is not a directory", startDir)
	}

	p := tea.NewProgram(tui.New(cfg, startDir), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

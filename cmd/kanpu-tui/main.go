package main

import (
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/rgehrsitz/kanpu/internal/calculation"
	"github.com/rgehrsitz/kanpu/internal/storage"
	"github.com/rgehrsitz/kanpu/internal/tui"
)

// fileLogger writes TUI diagnostics to a log file so they do not corrupt the screen
type fileLogger struct{ l *log.Logger }

func (f fileLogger) Debugf(format string, args ...any) { f.l.Printf("DEBUG: "+format, args...) }
func (f fileLogger) Infof(format string, args ...any)  { f.l.Printf("INFO: "+format, args...) }
func (f fileLogger) Warnf(format string, args ...any)  { f.l.Printf("WARN: "+format, args...) }
func (f fileLogger) Errorf(format string, args ...any) { f.l.Printf("ERROR: "+format, args...) }

func main() {
	dataDir := flag.String("data-dir", "", "Directory for saved input, theme and tax tables")
	logFile := flag.String("log", "", "Write diagnostics to this file")
	flag.Parse()

	dir := *dataDir
	if dir == "" {
		var err error
		if dir, err = storage.DefaultDir(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	var logger calculation.Logger = calculation.NopLogger{}
	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "kanpu")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = fileLogger{l: log.Default()}
	}

	provider := storage.NewTableProvider(storage.NewTableRepository(dir, logger), logger)
	tables, err := provider.Current(time.Now())
	if err != nil {
		fmt.Printf("Error loading tax tables: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(tui.Options{
		Tables:     tables,
		InputStore: storage.NewInputStore(dir, logger),
		ThemeStore: storage.NewThemeStore(dir, logger),
		Logger:     logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

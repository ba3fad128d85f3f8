package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/miosa/osa-vlist/app"
	"github.com/miosa/osa-vlist/config"
	"github.com/miosa/osa-vlist/markdown"
	"github.com/miosa/osa-vlist/source"
	"github.com/miosa/osa-vlist/style"
)

var version = "dev"

var logLevel = new(slog.LevelVar)

func main() {
	profileFlag := flag.String("profile", "", "Named profile for settings isolation (~/.osa/profiles/<name>)")
	sourceFlag := flag.String("source", "", "Item source: git, procs or transcript")
	repoFlag := flag.String("repo", "", "Repository path for the git source")
	transcriptFlag := flag.String("transcript", "", "JSONL transcript for the transcript source")
	itemHeight := flag.Int("item-height", 0, "Assumed item height in lines")
	viewport := flag.Int("viewport", 0, "Visible rows (0 follows the terminal, -1 renders everything)")
	disabled := flag.Bool("disabled", false, "Start with the list frozen")
	themeFlag := flag.String("theme", "", "Theme: auto, dark, light or catppuccin")
	logFile := flag.String("log", os.Getenv("OSA_VLIST_LOG"), "Write debug logs to this file")
	debug := flag.Bool("debug", false, "Log at debug level")
	save := flag.Bool("save", false, "Persist the effective settings to the profile")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("osa-vlist %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		lipgloss.SetColorProfile(0)
	}

	home, _ := os.UserHomeDir()
	profileDir := filepath.Join(home, ".osa")
	if *profileFlag != "" {
		profileDir = filepath.Join(home, ".osa", "profiles", *profileFlag)
	}

	cfg := config.Load(profileDir)
	// Only flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Source = *sourceFlag
		case "repo":
			cfg.RepoPath = *repoFlag
		case "transcript":
			cfg.TranscriptPath = *transcriptFlag
		case "item-height":
			cfg.AssumedItemHeight = *itemHeight
		case "viewport":
			cfg.ViewportHeight = *viewport
		case "disabled":
			cfg.Disabled = *disabled
		case "theme":
			cfg.Theme = *themeFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "osa-vlist: %v\n", err)
		os.Exit(2)
	}
	if *save {
		if err := config.Save(profileDir, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "osa-vlist: %v\n", err)
			os.Exit(1)
		}
	}

	logger, closeLog, err := openLogger(*logFile, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "osa-vlist: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	applyTheme(cfg.Theme)

	src, err := source.FromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "osa-vlist: %v\n", err)
		os.Exit(2)
	}
	logger.Info("starting", "version", version, "source", src.Name(), "profile", profileDir)

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	p := tea.NewProgram(app.New(cfg, src, logger), opts...)
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "osa-vlist: %v\n", err)
		os.Exit(1)
	}
}

// openLogger logs to path, or discards when path is empty. The alt screen
// owns stdout and stderr while the program runs.
func openLogger(path string, debug bool) (*slog.Logger, func(), error) {
	if debug {
		logLevel.Set(slog.LevelDebug)
	}
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel}))
	return logger, func() { f.Close() }, nil
}

// applyTheme sets the palette and the matching markdown style. "auto" follows
// the terminal background.
func applyTheme(name string) {
	if name == "" || name == "auto" || !style.SetTheme(name) {
		if lipgloss.HasDarkBackground() {
			style.SetTheme("dark")
		} else {
			style.SetTheme("light")
		}
	}
	if style.CurrentThemeName == "light" {
		markdown.SetStyle("light")
	} else {
		markdown.SetStyle("dark")
	}
}

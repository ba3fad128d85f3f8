package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Source names accepted in Config.Source.
const (
	SourceGit        = "git"
	SourceProcs      = "procs"
	SourceTranscript = "transcript"
)

// Config holds persistent viewer settings stored at <profileDir>/vlist.json.
type Config struct {
	// Theme is a style theme name, or "auto" to follow the terminal background.
	Theme          string `json:"theme,omitempty"`
	Source         string `json:"source,omitempty"`
	RepoPath       string `json:"repo_path,omitempty"`
	TranscriptPath string `json:"transcript_path,omitempty"`
	// AssumedItemHeight is the estimated item height in terminal lines.
	AssumedItemHeight int `json:"assumed_item_height,omitempty"`
	// ViewportHeight overrides the list height. 0 follows the terminal, a
	// negative value renders every item without virtualisation.
	ViewportHeight int    `json:"viewport_height,omitempty"`
	Disabled       bool   `json:"disabled,omitempty"`
	RefreshSeconds int    `json:"refresh_seconds,omitempty"`
	MaxCommits     int    `json:"max_commits,omitempty"`
	Encoding       string `json:"encoding,omitempty"`
}

const filename = "vlist.json"

// Load reads <profileDir>/vlist.json and returns the parsed Config.
// If the file is absent or unreadable, a default Config is returned.
func Load(profileDir string) Config {
	cfg := Defaults()
	data, err := os.ReadFile(filepath.Join(profileDir, filename))
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Defaults()
	}
	return cfg.normalize()
}

// Save writes cfg to <profileDir>/vlist.json, creating the directory if needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(profileDir, filename), data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate reports settings the viewer cannot start with.
func (c Config) Validate() error {
	switch c.Source {
	case SourceGit, SourceProcs:
	case SourceTranscript:
		if c.TranscriptPath == "" {
			return fmt.Errorf("source %q needs a transcript path", c.Source)
		}
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	if c.AssumedItemHeight <= 0 {
		return fmt.Errorf("assumed item height must be positive, got %d", c.AssumedItemHeight)
	}
	return nil
}

// Unconstrained reports whether the list should render every item.
func (c Config) Unconstrained() bool { return c.ViewportHeight < 0 }

func (c Config) normalize() Config {
	d := Defaults()
	if c.Source == "" {
		c.Source = d.Source
	}
	if c.AssumedItemHeight <= 0 {
		c.AssumedItemHeight = d.AssumedItemHeight
	}
	if c.RefreshSeconds <= 0 {
		c.RefreshSeconds = d.RefreshSeconds
	}
	if c.MaxCommits <= 0 {
		c.MaxCommits = d.MaxCommits
	}
	if c.Encoding == "" {
		c.Encoding = d.Encoding
	}
	return c
}

// Defaults returns the settings used when no file exists.
func Defaults() Config {
	return Config{
		Theme:             "auto",
		Source:            SourceGit,
		RepoPath:          ".",
		AssumedItemHeight: 3,
		RefreshSeconds:    2,
		MaxCommits:        5000,
		Encoding:          "cl100k_base",
	}
}

// Package source loads the collections the list viewer displays. Every item
// carries a key that survives reloads, so a refreshed collection can be
// reconciled against the one on screen.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/miosa/osa-vlist/config"
	"github.com/miosa/osa-vlist/model"
)

// Source loads a full snapshot of its collection.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]model.Item, error)
}

// Live sources change on their own and are reloaded every Interval.
type Live interface {
	Source
	Interval() time.Duration
}

// FromConfig builds the source selected in cfg.
func FromConfig(cfg config.Config) (Source, error) {
	switch cfg.Source {
	case config.SourceGit:
		return &Git{Path: cfg.RepoPath, Limit: cfg.MaxCommits}, nil
	case config.SourceProcs:
		return &Procs{Every: time.Duration(cfg.RefreshSeconds) * time.Second}, nil
	case config.SourceTranscript:
		return NewTranscript(cfg.TranscriptPath, cfg.Encoding, time.Duration(cfg.RefreshSeconds)*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

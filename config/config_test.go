package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	assert.Equal(t, Defaults(), Load(t.TempDir()))
}

func TestLoad_InvalidJSONGivesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte("{not json"), 0o644))
	assert.Equal(t, Defaults(), Load(dir))
}

func TestSaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profiles", "dev")
	cfg := Defaults()
	cfg.Source = SourceProcs
	cfg.ViewportHeight = -1
	cfg.AssumedItemHeight = 2

	require.NoError(t, Save(dir, cfg))
	got := Load(dir)
	assert.Equal(t, cfg, got)
	assert.True(t, got.Unconstrained())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(`{"source":"procs","theme":"light"}`), 0o644))

	got := Load(dir)
	assert.Equal(t, SourceProcs, got.Source)
	assert.Equal(t, "light", got.Theme)
	assert.Equal(t, 3, got.AssumedItemHeight)
	assert.Equal(t, "cl100k_base", got.Encoding)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"procs", func(c *Config) { c.Source = SourceProcs }, false},
		{"transcript without path", func(c *Config) { c.Source = SourceTranscript }, true},
		{"transcript", func(c *Config) { c.Source = SourceTranscript; c.TranscriptPath = "chat.jsonl" }, false},
		{"unknown source", func(c *Config) { c.Source = "ftp" }, true},
		{"zero height", func(c *Config) { c.AssumedItemHeight = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Defaults()
			tt.mutate(&c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}

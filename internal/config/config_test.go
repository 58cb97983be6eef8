package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := Default()

	if cfg.Tone.FrequencyHz != 1000 {
		t.Errorf("Tone.FrequencyHz = %d, want 1000", cfg.Tone.FrequencyHz)
	}
	if cfg.Tone.BlockSize != 205 {
		t.Errorf("Tone.BlockSize = %d, want 205", cfg.Tone.BlockSize)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want Default() = %+v", cfg, Default())
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "asynccored.yaml")
	yamlData := "input_file: /tmp/tone.wav\ntone:\n  frequency_hz: 1750\n  block_size: 240\nlog:\n  level: debug\n  json: true\n"
	if err := os.WriteFile(path, []byte(yamlData), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", path, err)
	}

	if cfg.InputFile != "/tmp/tone.wav" {
		t.Errorf("InputFile = %q, want /tmp/tone.wav", cfg.InputFile)
	}
	if cfg.Tone.FrequencyHz != 1750 {
		t.Errorf("Tone.FrequencyHz = %d, want 1750", cfg.Tone.FrequencyHz)
	}
	if cfg.Tone.BlockSize != 240 {
		t.Errorf("Tone.BlockSize = %d, want 240", cfg.Tone.BlockSize)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Errorf("Log = %+v, want {debug true}", cfg.Log)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() on a missing file returned an error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() on a missing file = %+v, want Default()", cfg)
	}
}

func TestWriteYAMLRoundTrips(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Default().WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML error = %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(written file) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("round-tripped config = %+v, want Default() = %+v", cfg, Default())
	}
}

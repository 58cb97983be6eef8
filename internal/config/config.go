// Package config loads the demo binary's configuration. It is consumed
// only by cmd/asynccored — none of reactor, pipe, tone, fsm, or adapter
// import it, so those packages stay usable as a library without dragging
// in a config-file format.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ToneConfig selects the frequency and block size the demo's detector
// watches for.
type ToneConfig struct {
	FrequencyHz int `mapstructure:"frequency_hz" yaml:"frequency_hz"`
	BlockSize   int `mapstructure:"block_size" yaml:"block_size"`
}

// LogConfig controls the demo's structured logging.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	JSON  bool   `mapstructure:"json" yaml:"json"`
}

// Config is the full set of demo-binary settings.
type Config struct {
	// InputFile is the audio file the demo replays through the pipe. The
	// format is inferred from its extension (.wav, .mp3, .ogg, .aiff).
	InputFile string `mapstructure:"input_file" yaml:"input_file"`

	Tone ToneConfig `mapstructure:"tone" yaml:"tone"`
	Log  LogConfig  `mapstructure:"log" yaml:"log"`
}

// Default returns the configuration used when no file or flag overrides a
// setting.
func Default() Config {
	return Config{
		InputFile: "",
		Tone: ToneConfig{
			FrequencyHz: 1000,
			BlockSize:   205,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// Load reads configuration from configPath (YAML) if set, layering
// ASYNCCORED_-prefixed environment variables and the package defaults
// underneath. A missing config file is not an error — defaults and
// environment variables still apply.
func Load(configPath string) (Config, error) {
	v := viper.New()

	setDefaults(v, Default())

	v.SetEnvPrefix("ASYNCCORED")
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("reading config file %q: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// WriteYAML marshals cfg as YAML, for writing out a starter config file a
// user can then edit.
func (c Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(c)
}

// WriteDefaultFile writes Default() to path in YAML, failing if the file
// already exists.
func WriteDefaultFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating config file %q: %w", path, err)
	}
	defer f.Close()
	return Default().WriteYAML(f)
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("input_file", d.InputFile)
	v.SetDefault("tone.frequency_hz", d.Tone.FrequencyHz)
	v.SetDefault("tone.block_size", d.Tone.BlockSize)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)
}

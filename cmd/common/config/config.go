// Package config provides configuration loading for cwtofu.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gigurra/cwtofu/cmd/common"
	"github.com/gigurra/cwtofu/cmd/common/cwaudio"
)

// Config represents the cwtofu configuration file structure.
type Config struct {
	Audio *AudioConfig `json:"audio,omitempty"`
}

// AudioConfig holds the defaults commands use when a flag is left at zero.
type AudioConfig struct {
	WPM           int     `json:"wpm"`
	FarnsworthWPM int     `json:"farnsworth_wpm"`
	FreqHz        float64 `json:"freq_hz"`
	Volume        float64 `json:"volume"`
	NoiseDB       float64 `json:"noise_db"`
	QRMFreqHz     float64 `json:"qrm_freq_hz"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Audio: &AudioConfig{
			WPM:    15,
			FreqHz: 700,
			Volume: 0.4,
		},
	}
}

// ConfigPath returns the path to the config file (~/.cwtofu/config.json).
func ConfigPath() string {
	return common.DataPath("config.json")
}

// Load loads the config from ~/.cwtofu/config.json.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigPath(), err)
	}

	// Apply defaults for missing sections
	defaults := DefaultConfig().Audio
	if config.Audio == nil {
		config.Audio = defaults
	} else {
		if config.Audio.WPM <= 0 {
			config.Audio.WPM = defaults.WPM
		}
		if config.Audio.FreqHz <= 0 {
			config.Audio.FreqHz = defaults.FreqHz
		}
		if config.Audio.Volume <= 0 {
			config.Audio.Volume = defaults.Volume
		}
		config.Audio.FarnsworthWPM = max(0, config.Audio.FarnsworthWPM)
		config.Audio.NoiseDB = max(0, config.Audio.NoiseDB)
		config.Audio.QRMFreqHz = max(0, config.Audio.QRMFreqHz)
	}

	return &config, nil
}

// Save saves the config to ~/.cwtofu/config.json.
func Save(config *Config) error {
	dir, err := common.EnsureDataDir()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Overrides carries command-line audio flags. Zero fields keep the
// configured value.
type Overrides struct {
	WPM           int
	FarnsworthWPM int
	FreqHz        float64
	Volume        float64
	NoiseDB       float64
	QRMFreqHz     float64
}

// With returns a copy of a with every non-zero override applied.
func (a AudioConfig) With(o Overrides) AudioConfig {
	if o.WPM > 0 {
		a.WPM = o.WPM
	}
	if o.FarnsworthWPM > 0 {
		a.FarnsworthWPM = o.FarnsworthWPM
	}
	if o.FreqHz > 0 {
		a.FreqHz = o.FreqHz
	}
	if o.Volume > 0 {
		a.Volume = o.Volume
	}
	if o.NoiseDB > 0 {
		a.NoiseDB = o.NoiseDB
	}
	if o.QRMFreqHz > 0 {
		a.QRMFreqHz = o.QRMFreqHz
	}
	return a
}

// LoadAudio loads the audio section and applies o. A broken config file is
// reported through slog and the defaults are used instead.
func LoadAudio(o Overrides) AudioConfig {
	cfg, err := Load()
	if err != nil {
		slog.Warn("ignoring config file", "error", err)
		cfg = DefaultConfig()
	}
	return cfg.Audio.With(o)
}

// Noise returns the background noise settings of the audio section.
func (a AudioConfig) Noise() cwaudio.NoiseConfig {
	return cwaudio.NoiseConfig{NoiseDB: a.NoiseDB, QRMFreqHz: a.QRMFreqHz}
}

// Params returns phrase parameters with per-phrase noise left to the engine.
func (a AudioConfig) Params() cwaudio.Params {
	return cwaudio.Params{
		WPM:           a.WPM,
		FarnsworthWPM: a.FarnsworthWPM,
		FreqHz:        a.FreqHz,
		Volume:        a.Volume,
	}
}

// Watch reloads the config whenever the file is written and passes the result
// to fn. It blocks until ctx is done. The directory is watched rather than the
// file so editors that replace the file on save are picked up too.
func Watch(ctx context.Context, fn func(*Config)) error {
	dir, err := common.EnsureDataDir()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	path := ConfigPath()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load()
			if err != nil {
				slog.Debug("config reload failed", "error", err)
				continue
			}
			fn(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Debug("config watcher error", "error", err)
		}
	}
}

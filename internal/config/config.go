// Package config provides the optional configuration for tts-cli.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/book-expert/tts-cli/internal/tts"
)

// TTSConfig holds the settings for the synthesis endpoint.
type TTSConfig struct {
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the request timeout; zero means no timeout.
func (c TTSConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoggingConfig holds the configuration for the diagnostic log.
type LoggingConfig struct {
	LogDir string `toml:"log_dir"`
}

// NATSConfig holds the configuration for uploading audio to NATS.
type NATSConfig struct {
	URL                    string `toml:"url"`
	AudioObjectStoreBucket string `toml:"audio_object_store_bucket"`
	AudioCreatedSubject    string `toml:"audio_created_subject"`
}

// Config is the root configuration structure.
type Config struct {
	TTS     TTSConfig     `toml:"tts"`
	Logging LoggingConfig `toml:"logging"`
	NATS    NATSConfig    `toml:"nats"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		TTS: TTSConfig{
			Endpoint:       tts.DefaultEndpoint,
			TimeoutSeconds: 0,
		},
		Logging: LoggingConfig{LogDir: ""},
		NATS: NATSConfig{
			URL:                    "nats://127.0.0.1:4222",
			AudioObjectStoreBucket: "AUDIO_FILES",
			AudioCreatedSubject:    "",
		},
	}
}

// Load reads the TOML file at path on top of Default. An empty path returns
// Default without touching the filesystem.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = toml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.TTS.TimeoutSeconds < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeTimeout, cfg.TTS.TimeoutSeconds)
	}

	return cfg, nil
}

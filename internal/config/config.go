package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the file looked up when no --config flag is given.
const DefaultPath = "quicktrace.yaml"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the application configuration shared by the CLI, the HTTP server
// and the MCP server.
type Config struct {
	LogLevel string         `mapstructure:"log_level" json:"log_level"`
	Input    InputConfig    `mapstructure:"input" json:"input"`
	Random   RandomConfig   `mapstructure:"random" json:"random"`
	Playback PlaybackConfig `mapstructure:"playback" json:"playback"`
	Store    StoreConfig    `mapstructure:"store" json:"store"`
	Server   ServerConfig   `mapstructure:"server" json:"server"`
}

// InputConfig bounds the textual input accepted by the parser.
type InputConfig struct {
	MaxLength int `mapstructure:"max_length" json:"max_length"`
}

// RandomConfig drives the random array generator.
type RandomConfig struct {
	Count int `mapstructure:"count" json:"count"`
	Min   int `mapstructure:"min" json:"min"`
	Max   int `mapstructure:"max" json:"max"`
}

// PlaybackConfig drives the replay player.
type PlaybackConfig struct {
	Speed time.Duration `mapstructure:"speed" json:"speed"`
}

// StoreConfig selects and configures the trace store.
type StoreConfig struct {
	Backend string      `mapstructure:"backend" json:"backend"`
	Dir     string      `mapstructure:"dir" json:"dir"`
	Redis   RedisConfig `mapstructure:"redis" json:"redis"`
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" json:"addr"`
	Password string        `mapstructure:"password" json:"password"`
	DB       int           `mapstructure:"db" json:"db"`
	Prefix   string        `mapstructure:"prefix" json:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" json:"ttl"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port string `mapstructure:"port" json:"port"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Input:    InputConfig{MaxLength: 20},
		Random:   RandomConfig{Count: 8, Min: 5, Max: 99},
		Playback: PlaybackConfig{Speed: 800 * time.Millisecond},
		Store: StoreConfig{
			Backend: BackendFile,
			Dir:     filepath.Join(".quicktrace", "traces"),
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "quicktrace:",
			},
		},
		Server: ServerConfig{Port: "8080"},
	}
}

// Load reads a configuration file (YAML or JSON) on top of the defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Decode merges a generic map (as produced by YAML/JSON decoding) into cfg.
// Keys absent from raw keep their current value. Durations accept strings
// like "500ms"; numbers given as strings are accepted.
func Decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate checks the ranges the rest of the application relies on.
func (c Config) Validate() error {
	if c.Input.MaxLength <= 0 {
		return fmt.Errorf("input.max_length must be positive, got %d", c.Input.MaxLength)
	}
	if c.Random.Count <= 0 {
		return fmt.Errorf("random.count must be positive, got %d", c.Random.Count)
	}
	if c.Random.Min > c.Random.Max {
		return fmt.Errorf("random.min (%d) exceeds random.max (%d)", c.Random.Min, c.Random.Max)
	}
	if c.Playback.Speed <= 0 {
		return fmt.Errorf("playback.speed must be positive, got %s", c.Playback.Speed)
	}
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"prompt-nodes/translate"
)

const (
	DefaultPort        = "8080"
	DefaultPresetFile  = "json/Strong_Prompt.json"
	DefaultHistoryTTL  = time.Hour
	DefaultEventReplay = 64
)

// Config is the service configuration. Values come from the YAML file first,
// then environment overrides.
type Config struct {
	Addr        string          `yaml:"addr"`
	PresetFile  string          `yaml:"preset_file"`
	EncoderURL  string          `yaml:"encoder_url"`
	Translate   TranslateConfig `yaml:"translate"`
	HistoryTTL  time.Duration   `yaml:"history_ttl"`
	EventReplay int             `yaml:"event_replay"`
}

type TranslateConfig struct {
	Endpoint     string        `yaml:"endpoint"`
	RateInterval time.Duration `yaml:"rate_interval"`
}

func DefaultConfig() Config {
	return Config{
		Addr:        ":" + DefaultPort,
		PresetFile:  DefaultPresetFile,
		Translate:   TranslateConfig{Endpoint: translate.DefaultEndpoint},
		HistoryTTL:  DefaultHistoryTTL,
		EventReplay: DefaultEventReplay,
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. An empty path or a missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	if v := os.Getenv("PRESET_FILE"); v != "" {
		c.PresetFile = v
	}
	if v := os.Getenv("ENCODER_URL"); v != "" {
		c.EncoderURL = v
	}
	if v := os.Getenv("TRANSLATE_ENDPOINT"); v != "" {
		c.Translate.Endpoint = v
	}
	if v := os.Getenv("TRANSLATE_RATE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TRANSLATE_RATE_INTERVAL: %w", err)
		}
		c.Translate.RateInterval = d
	}
	if v := os.Getenv("HISTORY_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("HISTORY_TTL: %w", err)
		}
		c.HistoryTTL = d
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.PresetFile == "" {
		return errors.New("preset_file is required")
	}
	if err := validateURL("translate.endpoint", c.Translate.Endpoint); err != nil {
		return err
	}
	if c.EncoderURL != "" {
		if err := validateURL("encoder_url", c.EncoderURL); err != nil {
			return err
		}
	}
	if c.Translate.RateInterval < 0 {
		return errors.New("translate.rate_interval must not be negative")
	}
	if c.HistoryTTL < 0 {
		return errors.New("history_ttl must not be negative")
	}
	return nil
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", field, raw)
	}
	return nil
}

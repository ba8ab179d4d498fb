package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Storage struct {
		// Driver is badger, redis or memory.
		Driver    string `yaml:"driver"`
		Path      string `yaml:"path"`
		Key       string `yaml:"key"`
		ProfileID string `yaml:"profileId"`
	} `yaml:"storage"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		ID           string `yaml:"id"`
		AdvanceDelay string `yaml:"advanceDelay"`
	} `yaml:"quiz"`
	Content struct {
		TTL string `yaml:"ttl"`
	} `yaml:"content"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Storage.Driver = "badger"
	cfg.Storage.Path = ".career-profile"
	cfg.Storage.ProfileID = "default"
	cfg.Quiz.ID = "aptitude"
	cfg.Quiz.AdvanceDelay = "450ms"
	cfg.Content.TTL = "10m"
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	return cfg
}

// Load reads YAML config from path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

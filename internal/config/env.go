package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env holds process settings read from MUSEO_* environment variables.
type Env struct {
	Config      string `env:"MUSEO_CONFIG" envDefault:"configs/museum.yaml"`
	Feed        string `env:"MUSEO_FEED" envDefault:"assets/images-index.json"`
	FeedDriver  string `env:"MUSEO_FEED_DRIVER" envDefault:"json"`
	CacheDir    string `env:"MUSEO_CACHE_DIR" envDefault:"cache/artworks"`
	Listen      string `env:"MUSEO_LISTEN" envDefault:"127.0.0.1:8750"`
	Log         string `env:"MUSEO_LOG" envDefault:"logs/museum.txt"`
	LoadWorkers int64  `env:"MUSEO_LOAD_WORKERS" envDefault:"4"`
	Fullscreen  bool   `env:"MUSEO_FULLSCREEN" envDefault:"false"`
}

// Feed drivers accepted in Env.FeedDriver.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// LoadEnv loads dotenv (if present) into the environment, then parses Env.
func LoadEnv(dotenv string) (Env, error) {
	var e Env
	if err := LoadDotEnv(dotenv); err != nil {
		return e, fmt.Errorf("config: %s: %w", dotenv, err)
	}
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("config: environment: %w", err)
	}
	switch e.FeedDriver {
	case DriverJSON, DriverSQLite:
	default:
		return e, fmt.Errorf("config: MUSEO_FEED_DRIVER %q: want %s or %s", e.FeedDriver, DriverJSON, DriverSQLite)
	}
	return e, nil
}

// LoadDotEnv reads KEY=VALUE lines from path into the environment. Blank lines
// and # comments are skipped, surrounding quotes are removed and variables
// already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(line, "export "), "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		_ = os.Setenv(key, value)
	}
	return scanner.Err()
}

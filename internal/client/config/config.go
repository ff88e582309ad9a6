package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the campus vault CLI.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the backend REST endpoint.
//   - StateDir: where the session database lives.
//   - DownloadsDir: where downloaded files are placed.
//   - LogFile: path of the rotating client log.
//   - RequestTimeout: per-request deadline for backend calls.
type Config struct {
	APIBaseURL     string
	StateDir       string
	DownloadsDir   string
	LogFile        string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults. State lands under the
// user's home directory; a home lookup failure falls back to the working
// directory.
func (c *Config) LoadDefaults() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	stateDir := filepath.Join(home, ".cvault")

	c.APIBaseURL = "http://127.0.0.1:8080"
	c.StateDir = stateDir
	c.DownloadsDir = filepath.Join(stateDir, "downloads")
	c.LogFile = filepath.Join(stateDir, "cvault.log")
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (optionally seeded from a dotenv file) and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

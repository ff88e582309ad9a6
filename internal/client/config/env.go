package config

import (
	"os"
	"time"

	"campusvault/internal/flagx"

	"github.com/joho/godotenv"
)

// Environment variables understood by the client.
const (
	envAPIBaseURL     = "CVAULT_API_URL"
	envStateDir       = "CVAULT_STATE_DIR"
	envDownloadsDir   = "CVAULT_DOWNLOADS_DIR"
	envLogFile        = "CVAULT_LOG_FILE"
	envRequestTimeout = "CVAULT_REQUEST_TIMEOUT"
)

// parseEnv overlays Config with values from the process environment. When a
// dotenv file is named via -e/-envfile it is loaded first; godotenv never
// overrides variables that are already set, so the real environment wins over
// the file.
func parseEnv(cfg *Config) {
	if envfile := flagx.EnvFileFlags(); envfile != "" {
		if err := godotenv.Load(envfile); err != nil {
			panic(err)
		}
	}

	if v, ok := os.LookupEnv(envAPIBaseURL); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(envStateDir); ok {
		cfg.StateDir = v
	}
	if v, ok := os.LookupEnv(envDownloadsDir); ok {
		cfg.DownloadsDir = v
	}
	if v, ok := os.LookupEnv(envLogFile); ok {
		cfg.LogFile = v
	}
	if v, ok := os.LookupEnv(envRequestTimeout); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}

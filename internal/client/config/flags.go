package config

import (
	"flag"
	"os"
	"time"

	"campusvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short and long forms read the same setting):
//
//	-a, -api string         base URL of the backend API (default from Config)
//	-s, -state string       state directory for the session database
//	-d, -downloads string   downloads directory
//	-t, -timeout int        request timeout in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with cobra's own parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-api", "--api",
		"-s", "-state", "--state",
		"-d", "-downloads", "--downloads",
		"-t", "-timeout", "--timeout",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.StateDir, "s", cfg.StateDir, "state directory")
	fs.StringVar(&cfg.StateDir, "state", cfg.StateDir, "state directory")
	fs.StringVar(&cfg.DownloadsDir, "d", cfg.DownloadsDir, "downloads directory")
	fs.StringVar(&cfg.DownloadsDir, "downloads", cfg.DownloadsDir, "downloads directory")

	var timeoutSec int
	fs.IntVar(&timeoutSec, "t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&timeoutSec, "timeout", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(timeoutSec) * time.Second
}

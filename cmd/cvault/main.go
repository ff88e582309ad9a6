package main

import (
	"os"

	"campusvault/internal/buildinfo"
	"campusvault/internal/client/cli"
	"campusvault/internal/client/config"
	"campusvault/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()

	log := logging.NewZapLogger(cfg.LogFile, false)
	defer log.Sync()

	cli.Execute(cfg, log)
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/lexiconquest/internal/buildinfo"
	"github.com/dmitrijs2005/lexiconquest/internal/client/cli"
	"github.com/dmitrijs2005/lexiconquest/internal/client/config"
	"github.com/dmitrijs2005/lexiconquest/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closeLog, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer closeLog()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "failed to start", "error", err)
		return
	}

	app.Run(ctx)

}

package main

import (
	"context"
	"culinary-calc/backend/config"
	"culinary-calc/backend/global"
	"culinary-calc/backend/initialize"
	"culinary-calc/backend/server"
	"flag"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	configPath := flag.String("config", "", "Path to the yaml config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		global.Logger.Error().Err(err).Msg("backend stopped")
		os.Exit(1)
	}
}

func run(configPath string) error {
	app, err := initialize.Build(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			global.Logger.Error().Err(err).Msg("shutdown cleanup failed")
		}
	}()

	// only the log level is hot reloaded; everything else needs a restart
	if err := config.Watch(configPath, func(c *config.Config) {
		initialize.SetLogLevel(c.LogLevel)
		global.Logger.Info().Str("level", c.LogLevel).Msg("config reloaded")
	}); err != nil {
		global.Logger.Warn().Err(err).Msg("config watch disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx, app.Cfg.Server, app.Handler)
}

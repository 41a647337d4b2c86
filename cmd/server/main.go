package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"nutrition/internal/app"
	"nutrition/internal/config"
	"nutrition/internal/logging"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger := logging.New("error", false)
		logger.Fatal().Err(err).Msg("server exited with error")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "nutrition-server",
		Usage: "serve the nutrition planning API",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv files to load before reading the environment",
				Value: cli.NewStringSlice("../.env", ".env"),
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "listen port (overrides PORT)",
			},
		},
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	for _, path := range c.StringSlice("env-file") {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Overload(path)
		}
	}

	cfg := config.Load()
	if port := c.String("port"); port != "" {
		cfg.Port = port
	}
	logger := logging.New(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- application.Start() }()

	select {
	case err := <-errCh:
		application.Shutdown(context.Background())
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Shutdown(shutdownCtx)
	return nil
}

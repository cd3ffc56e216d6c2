package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mindhaven/sentinel/internal/setup"
	"github.com/mindhaven/sentinel/internal/worker/moderation"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "sentinel",
		Usage: "Run the moderation pipeline",
		Commands: []*cli.Command{
			{
				Name:   "worker",
				Usage:  "Start the moderation worker",
				Action: runWorker,
			},
		},
	}

	return app.Run(context.Background(), os.Args)
}

func runWorker(ctx context.Context, _ *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := setup.InitializeApp(ctx)
	if err != nil {
		return err
	}
	defer app.Cleanup()

	worker, err := moderation.New(app, app.Logger)
	if err != nil {
		return err
	}

	worker.Start(ctx)
	<-ctx.Done()

	app.Logger.Info("Shutdown signal received, stopping worker")
	worker.Close()

	return nil
}

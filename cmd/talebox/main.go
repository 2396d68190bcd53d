package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/andrebq/talebox/cmd/talebox/serve"
	"github.com/andrebq/talebox/internal/logutil"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "talebox",
		Usage: "Keep your audiobooks and your place in them!",
		Commands: []*cli.Command{
			serve.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx = logutil.WithLogger(ctx, log.Logger)
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
	}
}

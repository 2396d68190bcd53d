package serve

import (
	"github.com/andrebq/talebox/account"
	"github.com/andrebq/talebox/internal/httpserver"
	"github.com/andrebq/talebox/internal/logutil"
	"github.com/andrebq/talebox/library"
	"github.com/andrebq/talebox/library/api"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	bindAddr := "localhost:4000"
	uploadsDir := "uploads"
	tokenTTL := account.DefaultTokenTTL
	secretEnvVarName := account.SecretEnvVar
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the talebox backend (books, audio uploads and playback progress)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "bind",
				Usage:       "Address to bind and export the library",
				Value:       bindAddr,
				Destination: &bindAddr,
			},
			&cli.StringFlag{
				Name:        "uploads-dir",
				Aliases:     []string{"u"},
				Usage:       "Directory holding the uploaded audio files, one sub-directory per book",
				Value:       uploadsDir,
				Destination: &uploadsDir,
			},
			&cli.DurationFlag{
				Name:        "token-ttl",
				Usage:       "How long issued login tokens stay valid",
				Value:       tokenTTL,
				Destination: &tokenTTL,
			},
			&cli.StringFlag{
				Name:        "token-secret-envvar-name",
				Usage:       "Name of the environment variable that holds the token signing secret. The secret itself should not be passed as an argument",
				Hidden:      true,
				Value:       secretEnvVarName,
				Destination: &secretEnvVarName,
			},
		},
		Action: func(ctx *cli.Context) error {
			secret, err := account.SecretFromEnv(secretEnvVarName)
			if err != nil {
				return err
			}
			lib, err := library.New(library.Options{
				UploadsDir:  uploadsDir,
				TokenSecret: secret,
				TokenTTL:    tokenTTL,
			})
			if err != nil {
				return err
			}
			appCtx := logutil.WithComponent(ctx.Context, "talebox.serve")
			handler := api.AsHandler(appCtx, lib)
			return httpserver.Serve(appCtx, bindAddr, handler)
		},
	}
}

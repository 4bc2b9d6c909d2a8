package cmd

import (
	"github.com/narvanalabs/greetd/app"
	"github.com/narvanalabs/greetd/config"
	"github.com/narvanalabs/greetd/internal/server"
	"github.com/narvanalabs/greetd/util/conf"
	"github.com/urfave/cli/v2"
)

var (
	serveCmdDescription = `The serve command binds the listening socket and answers
	incoming connections until the process is stopped.

	Each accepted connection is read up to its request line,
	routed by exact path, answered with a canned JSON response
	and closed.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start the server and answer requests.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The host to listen on.",
				Category: "server",
				EnvVars:  []string{"GREETD__SERVER__HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The port to listen on.",
				Category: "server",
				EnvVars:  []string{"GREETD__SERVER__PORT"},
			},
			&cli.IntFlag{
				Name:     "max-conns",
				Usage:    "Limit the number of concurrent connections. 0 means no limit.",
				Category: "server",
				EnvVars:  []string{"GREETD__SERVER__MAX_CONNS"},
			},
			&cli.PathFlag{
				Name:    "routes",
				Usage:   "Load the route table from a JSON file instead of the built-in one.",
				EnvVars: []string{"GREETD__ROUTES_FILE"},
			},
		},
	}
)

func serveAction(ctx *cli.Context) error {
	application, err := app.New(ctx)
	if err != nil {
		return err
	}

	cfg, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return err
	}

	serverConfig := serverConfigFromCLI(ctx, cfg.Server)

	return application.Run(ctx.Context, server.Module(serverConfig))
}

// serverConfigFromCLI overlays set flags onto the parsed config.
func serverConfigFromCLI(ctx *cli.Context, cfg server.Config) server.Config {
	if ctx.IsSet("host") {
		cfg.Host = ctx.String("host")
	}
	if ctx.IsSet("port") {
		cfg.Port = ctx.Int("port")
	}
	if ctx.IsSet("max-conns") {
		cfg.MaxConns = ctx.Int("max-conns")
	}
	return cfg
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/narvanalabs/greetd/config"
	"github.com/narvanalabs/greetd/internal/shell"
	"github.com/narvanalabs/greetd/util/conf"
	"github.com/narvanalabs/greetd/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	appName  = "greetd"
	appUsage = `A small fixture HTTP server that answers a fixed set of
paths with canned JSON responses, built straight on TCP.`
	rootApp = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Args:            true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.PathFlag{
				Name:    "config",
				Usage:   "load configuration from a JSON file.",
				EnvVars: []string{"GREETD_CONFIG_FILE"},
			},
		},
		Before: func(ctx *cli.Context) error {
			// create the logger
			log, err := createLogger(ctx)
			if err != nil {
				return err
			}

			// inject logger into cli context
			ctx.Context = logging.ContextWithLogger(ctx.Context, log)

			// parse config from defaults, file, dotenv, env and flags
			cfg, err := conf.Parse[config.Config](conf.ParseOptions{
				Cli: ctx,
				CliMap: map[string]string{
					"log-level":  "log_level",
					"log-format": "log_format",
				},
				Defaults:   config.DefaultConfig,
				EnvPrefix:  "GREETD_",
				FileName:   ctx.Path("config"),
				DotenvFile: ".env",
				Log:        log,
			})
			if err != nil {
				return err
			}

			// inject the config into the cli context
			ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

			return nil
		},
		After: func(ctx *cli.Context) error {
			log, err := logging.LoggerFromContext(ctx.Context)
			if err != nil {
				return err
			}

			log.Sync()

			return nil
		},
	}
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

func Execute(params ExecuteParams) {
	rootApp.Version = params.Version
	rootApp.Compiled = params.Compiled

	run(context.Background(), os.Args)
}

func run(ctx context.Context, args []string) {
	err := rootApp.RunContext(ctx, args)

	// if app exited without error, return
	if err == nil {
		return
	}

	// if app exited with ExitError, exit with the given exit code
	var exitErr *shell.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode)
	}

	fmt.Printf("exit error: %s\n", err.Error())
	os.Exit(1)
}

func createLogger(ctx *cli.Context) (*zap.Logger, error) {
	level := getLogLevelFromCLI(ctx)
	format := getLogFormatFromCLI(ctx)

	var config zap.Config
	if format == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.InitialFields = map[string]any{
		"app": appName,
	}

	config.Level = level

	return config.Build()
}

func getLogFormatFromCLI(ctx *cli.Context) string {
	format := ctx.String("log-format")
	if format != "" {
		return format
	}

	return "production"
}

func getLogLevelFromCLI(ctx *cli.Context) zap.AtomicLevel {
	lvl := ctx.String("log-level")

	if atom, err := zap.ParseAtomicLevel(lvl); err == nil {
		return atom
	}

	return zap.NewAtomicLevelAt(zap.InfoLevel)
}

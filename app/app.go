package app

import (
	"github.com/narvanalabs/greetd/config"
	"github.com/narvanalabs/greetd/internal/routes"
	"github.com/narvanalabs/greetd/internal/shell"
	"github.com/narvanalabs/greetd/util/conf"
	"github.com/narvanalabs/greetd/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	cfg, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	// the routes flag takes precedence over the parsed config
	if path := ctx.String("routes"); path != "" {
		cfg.RoutesFile = path
	}

	sharedModule := fx.Module(
		"shared",
		// provide global config
		fx.Supply(cfg),
		// provide the route table
		fx.Provide(newTable),
	)

	return shell.New(log, sharedModule), nil
}

func newTable(cfg config.Config, log *zap.Logger) (*routes.Table, error) {
	if cfg.RoutesFile == "" {
		return routes.Default(), nil
	}

	table, err := routes.Load(cfg.RoutesFile)
	if err != nil {
		log.Error("failed to load routes file",
			zap.Error(err),
			zap.String("file", cfg.RoutesFile),
		)
		return nil, err
	}

	log.Info("loaded routes file",
		zap.String("file", cfg.RoutesFile),
		zap.Strings("paths", table.Paths()),
	)

	return table, nil
}

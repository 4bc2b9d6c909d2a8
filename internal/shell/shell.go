// Package shell wraps the fx application lifecycle: build the
// dependency graph, start it, wait for a shutdown signal, stop it.
package shell

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

type Shell struct {
	log     *zap.Logger
	fxApp   *fx.App
	options []fx.Option
}

func New(log *zap.Logger, options ...fx.Option) *Shell {
	return &Shell{
		log:     log,
		options: options,
	}
}

func (s *Shell) Run(ctx context.Context, options ...fx.Option) error {
	// flush the logger when the run ends
	defer s.log.Sync()

	shellCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	appCtx, cancelApp := context.WithCancel(ctx)
	defer cancelApp()

	fxApp := s.createFxApp(appCtx, options...)
	s.fxApp = fxApp

	startCtx, cancelStart := context.WithTimeout(shellCtx, fxApp.StartTimeout())
	defer cancelStart()

	if err := fxApp.Start(startCtx); err != nil {
		return NewExitError(1)
	}

	// block until the OS signals shutdown
	sig := <-fxApp.Wait()
	exitCode := sig.ExitCode

	stopCtx, cancelStop := context.WithTimeout(shellCtx, fxApp.StopTimeout())
	defer cancelStop()

	if err := fxApp.Stop(stopCtx); err != nil {
		return NewExitError(1)
	}

	if exitCode != 0 {
		return NewExitError(exitCode)
	}

	return nil
}

func (s *Shell) createFxApp(ctx context.Context, options ...fx.Option) *fx.App {
	return fx.New(
		// inject global execution context
		fx.Supply(fx.Annotate(ctx, fx.As(new(context.Context)))),

		// inject the logger
		fx.Supply(s.log),

		// use the logger also for fx' own logs
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: s.log.Named("fx")}
		}),

		// shell-level options
		fx.Options(s.options...),

		// run-level options
		fx.Options(options...),
	)
}

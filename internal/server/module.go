package server

import (
	"github.com/narvanalabs/greetd/util/logging"
	"go.uber.org/fx"
)

func Module(config Config) fx.Option {
	return fx.Module("server",
		// provide config
		fx.Supply(config),
		// use a named logger for the server
		logging.DecorateLogger("server"),
		// provide server
		fx.Provide(NewLifecycleServer),
		// invoke server
		fx.Invoke(func(*TCPServer) {}),
	)
}

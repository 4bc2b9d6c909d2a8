// Package dispatch handles a single accepted connection: read the
// request line, route it, write exactly one response, close.
package dispatch

import (
	"net"
	"time"

	"github.com/narvanalabs/greetd/internal/routes"
	"github.com/narvanalabs/greetd/internal/wire"
	"go.uber.org/zap"
)

type Config struct {
	// ReadTimeout bounds reading the request line. Zero disables the
	// deadline.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing the response. Zero disables the
	// deadline.
	WriteTimeout time.Duration
}

type Dispatcher struct {
	table  *routes.Table
	config Config
	log    *zap.Logger
}

func New(table *routes.Table, config Config, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		table:  table,
		config: config,
		log:    log,
	}
}

// Handle serves one connection. Every accepted connection yields
// exactly one response, then the connection is closed. Failures are
// contained here: nothing Handle encounters may take down the accept
// loop.
func (d *Dispatcher) Handle(conn net.Conn) {
	defer conn.Close()

	if d.config.ReadTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(d.config.ReadTimeout)); err != nil {
			d.log.Debug("failed to set read deadline", zap.Error(err))
		}
	}

	var resp wire.Response

	rl, err := wire.ReadRequestLine(conn)
	if err != nil {
		d.log.Debug("malformed request", zap.Error(err))
		resp = wire.NewStatus(wire.StatusBadRequest)
	} else {
		resp = d.table.Dispatch(rl.Path)
		d.log.Debug("handled request",
			zap.String("method", rl.Method),
			zap.String("path", rl.Path),
			zap.Int("status", int(resp.Status)),
		)
	}

	if d.config.WriteTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(d.config.WriteTimeout)); err != nil {
			d.log.Debug("failed to set write deadline", zap.Error(err))
		}
	}

	if _, err := resp.WriteTo(conn); err != nil {
		d.log.Warn("failed to write response",
			zap.Error(err),
			zap.String("remote", conn.RemoteAddr().String()),
		)
	}
}

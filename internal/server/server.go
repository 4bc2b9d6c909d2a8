package server

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/narvanalabs/greetd/internal/dispatch"
	"github.com/narvanalabs/greetd/internal/routes"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"
)

type TCPServerParams struct {
	fx.In

	Context context.Context

	Config Config

	Table  *routes.Table
	Logger *zap.Logger
}

// TCPServer owns the listening socket and the accept loop. Each
// accepted connection is handed to the dispatcher on its own
// goroutine; the route table is shared read-only, so no locking is
// needed.
type TCPServer struct {
	ctx        context.Context
	host       string
	port       int
	maxConns   int
	dispatcher *dispatch.Dispatcher
	listener   net.Listener
	listening  atomic.Bool
	log        *zap.Logger
}

func NewTCPServer(params TCPServerParams) *TCPServer {
	dispatcher := dispatch.New(params.Table, dispatch.Config{
		ReadTimeout:  params.Config.ReadTimeout,
		WriteTimeout: params.Config.WriteTimeout,
	}, params.Logger)

	return &TCPServer{
		ctx:        params.Context,
		host:       params.Config.Host,
		port:       params.Config.Port,
		maxConns:   params.Config.MaxConns,
		dispatcher: dispatcher,
		log:        params.Logger,
	}
}

func NewLifecycleServer(params TCPServerParams, lc fx.Lifecycle) *TCPServer {
	server := NewTCPServer(params)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// bind synchronously so a failure to acquire the port
			// aborts startup
			if err := server.Listen(ctx); err != nil {
				return err
			}
			go server.Serve()
			return nil
		},
		OnStop: func(context.Context) error {
			return server.Close()
		},
	})
	return server
}

// Listen binds the listening socket.
func (s *TCPServer) Listen(ctx context.Context) error {
	cfg := net.ListenConfig{}

	listener, err := cfg.Listen(
		ctx,
		"tcp",
		fmt.Sprintf("%s:%d", s.host, s.port),
	)

	if err != nil {
		s.log.With(zap.Error(err)).Error("failed to listen")
		return err
	}

	if s.maxConns > 0 {
		listener = netutil.LimitListener(listener, s.maxConns)
	}

	s.listener = listener
	s.listening.Store(true)

	s.log.With(zap.String("address", listener.Addr().String())).Info("listening")

	return nil
}

// Addr returns the bound address. Valid only after Listen.
func (s *TCPServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve runs the accept loop until the server is closed. Accept
// errors on a live listener are logged and the loop continues; no
// per-connection failure reaches this loop.
func (s *TCPServer) Serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.listening.Load() {
				return
			}
			s.log.With(zap.Error(err)).Error("failed to accept connection")
			continue
		}

		go s.dispatcher.Handle(conn)
	}
}

func (s *TCPServer) Close() error {
	if !s.listening.CompareAndSwap(true, false) {
		return nil
	}

	if s.listener != nil {
		return s.listener.Close()
	}

	return nil
}

package server

import "time"

type Config struct {
	Host string `conf:"host"`
	Port int    `conf:"port"`

	// MaxConns caps the number of concurrently accepted connections.
	// Zero means no limit.
	MaxConns int `conf:"max_conns"`

	ReadTimeout  time.Duration `conf:"read_timeout"`
	WriteTimeout time.Duration `conf:"write_timeout"`
}

package config

import (
	"github.com/narvanalabs/greetd/internal/server"
	"github.com/narvanalabs/greetd/util/conf"
)

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// RoutesFile is an optional JSON file overriding the built-in
	// route table
	RoutesFile string `conf:"routes_file"`

	// Server is the listener configuration
	Server server.Config `conf:"server"`
}

var DefaultConfig = conf.DefaultConfig{
	"log_level":            "info",
	"log_format":           "production",
	"server.host":          "",
	"server.port":          8080,
	"server.read_timeout":  "10s",
	"server.write_timeout": "10s",
}

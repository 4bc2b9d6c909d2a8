// Package cliflags implements a koanf.Provider that takes a
// cli.Context and provides its flags to koanf.
package cliflags

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/maps"
	"github.com/urfave/cli/v2"
)

// CLIFlags implements a raw map[string]any provider.
type CLIFlags struct {
	mp map[string]any
}

// Provider returns a CLI Provider that takes a CLI context.
// If a delim is provided, it indicates that the keys are flat
// and the map needs to be unflatted by delim.
func Provider(ctx *cli.Context, delim string, cb func(string) string) *CLIFlags {
	// collect the visible flags of the app and the active command
	appFlags := ctx.App.VisibleFlags()
	commandFlags := ctx.Command.VisibleFlags()

	flags := map[string]cli.Flag{}
	for _, flag := range appFlags {
		flags[flag.Names()[0]] = flag
	}
	for _, flag := range commandFlags {
		flags[flag.Names()[0]] = flag
	}

	// only flags that were actually set make it into the map,
	// so unset flags do not shadow lower-precedence providers
	mp := make(map[string]any)

	for _, flagName := range ctx.FlagNames() {
		flag, ok := flags[flagName]
		if !ok {
			continue
		}

		value, err := getFlagValue(ctx, flag)
		if err != nil {
			continue
		}

		var mapName = flagName
		if cb != nil {
			mapName = cb(flagName)
		}
		mp[mapName] = value
	}

	// unflatten the map if a delimiter is provided
	// this can happen when `cb` returns a nested key
	if delim != "" {
		mp = maps.Unflatten(mp, delim)
	}

	return &CLIFlags{mp: mp}
}

// ReadBytes is not supported by the cliflags provider.
func (e *CLIFlags) ReadBytes() ([]byte, error) {
	return nil, errors.New("cliflags provider does not support this method")
}

// Read returns the loaded map[string]any.
func (e *CLIFlags) Read() (map[string]any, error) {
	return e.mp, nil
}

func getFlagValue(ctx *cli.Context, flag cli.Flag) (any, error) {
	name := flag.Names()[0]

	switch flag.(type) {
	case *cli.StringFlag:
		return ctx.String(name), nil
	case *cli.StringSliceFlag:
		return ctx.StringSlice(name), nil
	case *cli.PathFlag:
		return ctx.Path(name), nil
	case *cli.IntFlag:
		return ctx.Int(name), nil
	case *cli.Int64Flag:
		return ctx.Int64(name), nil
	case *cli.BoolFlag:
		return ctx.Bool(name), nil
	case *cli.Float64Flag:
		return ctx.Float64(name), nil
	case *cli.DurationFlag:
		return ctx.Duration(name), nil
	default:
		return nil, fmt.Errorf("unsupported flag type %T", flag)
	}
}

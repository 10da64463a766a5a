package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/bornholm/imagegrab/internal/logx"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const EnvPrefix = "IMAGEGRAB_"

// EnvVars returns the environment variable bound to the flag name.
func EnvVars(name string) []string {
	return []string{EnvPrefix + name}
}

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

func Main(name string, version string, usage string, commands ...*cli.Command) {
	app := &cli.App{
		Name:     name,
		Usage:    usage,
		Commands: commands,
		Version:  version,
		Before: func(ctx *cli.Context) error {
			workdir := ctx.String("workdir")
			// Switch to new working directory if defined
			if workdir != "" {
				if err := os.Chdir(workdir); err != nil {
					return errors.Wrap(err, "could not change working directory")
				}
			}

			handler, err := NewLogHandler(os.Stderr, ctx.String("log-format"), ParseLogLevel(ctx.String("log-level")))
			if err != nil {
				return errors.WithStack(err)
			}

			slog.SetDefault(slog.New(handler))

			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "workdir",
				Value:   "",
				EnvVars: EnvVars("WORKDIR"),
				Usage:   "The working directory",
			},
			&cli.BoolFlag{
				Name:    "debug",
				EnvVars: EnvVars("DEBUG"),
				Usage:   "Enable debug mode",
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: EnvVars("LOG_LEVEL"),
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-format",
				EnvVars: EnvVars("LOG_FORMAT"),
				Usage:   "Set logging format (text, json)",
				Value:   LogFormatText,
			},
		},
	}

	app.ExitErrHandler = func(ctx *cli.Context, err error) {
		if err == nil {
			return
		}

		debug := ctx.Bool("debug")

		if !debug {
			slog.ErrorContext(ctx.Context, err.Error())
		} else {
			slog.ErrorContext(ctx.Context, fmt.Sprintf("%+v", err))
		}
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func ParseLogLevel(logLevel string) slog.Level {
	switch logLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewLogHandler returns the handler writing records of the given format to w.
// Attributes stored on the record context by logx.WithAttrs are appended to
// every record.
func NewLogHandler(w io.Writer, format string, level slog.Level) (slog.Handler, error) {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler

	switch format {
	case LogFormatText, "":
		handler = slog.NewTextHandler(w, opts)
	case LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, errors.Errorf("unknown log format '%s'", format)
	}

	return logx.ContextHandler{Handler: handler}, nil
}

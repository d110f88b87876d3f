package config

import (
	"io"
	"log/slog"

	"github.com/junkd0g/bechdel/internal/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Logger holds logger configuration
type Logger struct {
	Level  string
	Format string
}

// Flags returns CLI flags for Logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Sources:     cli.EnvVars("BECHDEL_LOG_LEVEL"),
			Destination: &l.Level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json, auto)",
			Category:    "Logging",
			Value:       "auto",
			Sources:     cli.EnvVars("BECHDEL_LOG_FORMAT"),
			Destination: &l.Format,
		},
	}
}

// Configure builds the logger. A nil writer means stderr.
func (l *Logger) Configure(w io.Writer) (*slog.Logger, error) {
	format, ok := logging.ParseFormat(l.Format)
	if !ok {
		return nil, goerr.New("invalid log format", goerr.V("format", l.Format))
	}
	return logging.NewLogger(logging.ParseLogLevel(l.Level), w, format), nil
}

// LogValue returns structured log value
func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.Level),
		slog.String("format", l.Format),
	)
}

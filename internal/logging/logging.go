// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs the global logger used through github.com/rs/zerolog/log.
func Setup(level string, pretty bool) {
	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// GooseLogger adapts a zerolog logger to goose's logger interface.
type GooseLogger struct {
	Logger zerolog.Logger
}

func (g GooseLogger) Printf(format string, v ...interface{}) {
	g.Logger.Info().Str("component", "migrations").Msg(strings.TrimRight(fmt.Sprintf(format, v...), "\r\n"))
}

func (g GooseLogger) Fatalf(format string, v ...interface{}) {
	g.Logger.Fatal().Str("component", "migrations").Msg(strings.TrimRight(fmt.Sprintf(format, v...), "\r\n"))
}

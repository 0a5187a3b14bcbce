// Package logger holds the process-wide zerolog instance. Level and format
// come straight from the environment so logging works before config parsing
// finishes.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	globalLogger zerolog.Logger
	once         sync.Once
)

// GetLogger returns the global logger, building it on first use from
// LOG_LEVEL and LOG_FORMAT.
func GetLogger() zerolog.Logger {
	once.Do(func() {
		globalLogger = build(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	})
	return globalLogger
}

func build(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if strings.ToLower(format) != "json" {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	zerolog.SetGlobalLevel(lvl)
	return zerolog.New(out).With().Timestamp().Logger().Level(lvl)
}

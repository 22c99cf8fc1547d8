// Package logging wraps zerolog for snipdeck. The library logs through the
// *zerolog.Logger it is handed; this package builds those loggers from
// Config, carries them through contexts and keeps a process default for code
// that has no logger of its own.
//
//	logger := logging.NewLoggerFromConfig(&logging.Config{Level: "debug", Format: "json"})
//	logger.Info().Str("category", "python").Int("snippets", 3).Msg("Category loaded")
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agentstation/snipdeck/pkg/constants"
)

// Config describes a logger.
type Config struct {
	// Level is trace, debug, info, warn or error. Unknown values mean info.
	Level string

	// Format is json, console or auto. Auto picks console on a terminal.
	Format string

	// Output is stderr, stdout, discard or a file path opened for append.
	Output string

	// NoColor disables ANSI colors in console output.
	NoColor bool

	// AddCaller adds file:line to every event.
	AddCaller bool
}

// DefaultConfig reads SNIPDECK_LOG_LEVEL (or LOG_LEVEL), LOG_FORMAT and NO_COLOR.
func DefaultConfig() *Config {
	return &Config{
		Level:   firstEnv(constants.EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL"),
		Format:  firstEnv(constants.EnvPrefix+"_LOG_FORMAT", "LOG_FORMAT"),
		Output:  "stderr",
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	logger := NewLoggerFromConfig(DefaultConfig())
	defaultLogger.Store(&logger)
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger.Store(&logger)
}

// Configure builds a logger from cfg and makes it the default.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// NewLoggerFromConfig builds a logger. A nil cfg uses DefaultConfig.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	level := ParseLevel(cfg.Level)

	logger := zerolog.New(writerFor(cfg)).Level(level).With().Timestamp().Logger()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func writerFor(cfg *Config) io.Writer {
	var out io.Writer
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "discard", "none":
		return io.Discard
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			out = os.Stderr
		} else {
			out = f
		}
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
		return out
	case "console", "pretty":
		return consoleWriter(out, cfg.NoColor)
	default:
		if f, ok := out.(*os.File); ok && isTerminal(f) {
			return consoleWriter(out, cfg.NoColor)
		}
		return out
	}
}

func consoleWriter(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: noColor}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

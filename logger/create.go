// Package logger builds the zerolog loggers of the command line.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const (
	EnableTerminalLog  = false
	DisableTerminalLog = true

	LogLevelFlag = "loglevel"
	LogFileFlag  = "logfile"
	LogJSONFlag  = "log-json"

	filePermMode = 0644 // rw-r--r--
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
}

// CreateLoggerFromContext builds the logger configured by the logging flags of c.
func CreateLoggerFromContext(c *cli.Context, disableTerminal bool) *zerolog.Logger {
	return Create(CreateConfig(
		c.String(LogLevelFlag),
		disableTerminal,
		c.Bool(LogJSONFlag),
		c.String(LogFileFlag),
	))
}

// Create builds the logger of config, or an info level console logger if config
// is nil. An invalid level falls back to info and a log file that cannot be
// opened is left out; both are reported on the returned logger.
func Create(config *Config) *zerolog.Logger {
	if config == nil {
		config = CreateConfig(DefaultLevel, EnableTerminalLog, false, "")
	}

	var writers []io.Writer
	if config.Console != nil {
		writers = append(writers, consoleWriter(*config.Console))
	}

	var fileErr error
	if config.File != "" {
		var f *os.File
		if f, fileErr = os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePermMode); fileErr == nil {
			writers = append(writers, f)
		}
	}

	level, levelErr := zerolog.ParseLevel(config.Level)
	if levelErr != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()

	if levelErr != nil {
		log.Error().Msgf("Invalid log level %q, logging at %s", config.Level, level)
	}
	if fileErr != nil {
		log.Error().Err(fileErr).Str("path", config.File).Msg("Cannot open the log file")
	}

	return &log
}

// consoleWriter writes on stderr, colored if stderr is a terminal.
func consoleWriter(config ConsoleConfig) io.Writer {
	if config.JSON {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{
		Out:        colorable.NewColorable(os.Stderr),
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
		TimeFormat: time.RFC3339,
	}
}

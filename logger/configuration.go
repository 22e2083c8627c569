package logger

// DefaultLevel is the level of a Config that names none.
const DefaultLevel = "info"

// Config selects where the command line logs and from which level.
type Config struct {
	// Console is nil when nothing is logged on stderr, for instance while the
	// live report owns the terminal.
	Console *ConsoleConfig

	// File is the path of an append-only JSON log, or empty for none.
	File string

	// Level is a zerolog level name: trace, debug, info, warn, error or fatal.
	Level string
}

// ConsoleConfig is the format of the stderr log.
type ConsoleConfig struct {
	// JSON writes raw JSON lines instead of the human-readable console format.
	JSON bool
}

// CreateConfig builds a Config from the values of the logging flags.
func CreateConfig(level string, disableTerminal, formatJSON bool, file string) *Config {
	config := &Config{
		File:  file,
		Level: level,
	}
	if !disableTerminal {
		config.Console = &ConsoleConfig{JSON: formatJSON}
	}
	if config.Level == "" {
		config.Level = DefaultLevel
	}
	return config
}

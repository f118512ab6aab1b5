package keymanager

// Config holds the key manager settings.
type Config struct {
	// LogLevel is a log15 level name: debug, info, warn, error or crit.
	LogLevel string

	// LogFormat is json, logfmt or terminal.
	LogFormat string

	// LogFile receives log records; empty means stdout.
	LogFile string
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "json",
	}
}

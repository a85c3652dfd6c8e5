package config

import "fmt"

// LogFileNone disables the log file.
const LogFileNone = "none"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		JJ: JJConfig{
			Binary: "jj",
		},
		Server: ServerConfig{
			Name: "jj-mcp-server",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LogFile returns the log file to append to, or "" when disabled.
func (c Config) LogFile(p Paths) string {
	switch c.Logging.File {
	case "":
		return p.LogFile
	case LogFileNone:
		return ""
	default:
		return c.Logging.File
	}
}

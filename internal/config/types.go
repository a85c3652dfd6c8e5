package config

import "time"

// Config is the root configuration for the jj MCP server.
type Config struct {
	JJ       JJConfig       `yaml:"jj,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Security SecurityConfig `yaml:"security,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// JJConfig controls how the jj executable is invoked.
type JJConfig struct {
	Binary  string        `yaml:"binary,omitempty"`  // name looked up on PATH, or an absolute path
	Timeout time.Duration `yaml:"timeout,omitempty"` // per command; 0 = no limit
}

// ServerConfig controls the MCP server identity and tool catalog.
type ServerConfig struct {
	Name  string   `yaml:"name,omitempty"`
	Tools []string `yaml:"tools,omitempty"` // empty = all tools
}

// SecurityConfig restricts where commands may run.
type SecurityConfig struct {
	AllowedPaths []string `yaml:"allowedPaths,omitempty"` // empty = unrestricted
}

// LoggingConfig controls log output. Logs never go to stdout.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"` // "" = <home>/logs/jj-mcp-server.log, "none" = stderr only
}

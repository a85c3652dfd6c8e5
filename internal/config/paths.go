package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const defaultBaseDir = ".jj-mcp"

// Paths holds resolved filesystem paths for server data.
type Paths struct {
	Base    string // ~/.jj-mcp
	Config  string // ~/.jj-mcp/config.yaml
	Logs    string // ~/.jj-mcp/logs
	LogFile string // ~/.jj-mcp/logs/jj-mcp-server.log
}

// ResolvePaths computes all standard paths from the home directory.
// If JJ_MCP_HOME is set, it overrides the default base directory.
func ResolvePaths() (Paths, error) {
	base := os.Getenv("JJ_MCP_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, defaultBaseDir)
	}

	logs := filepath.Join(base, "logs")
	return Paths{
		Base:    base,
		Config:  filepath.Join(base, "config.yaml"),
		Logs:    logs,
		LogFile: filepath.Join(logs, "jj-mcp-server.log"),
	}, nil
}

// EnsureDirs creates the base, log and config directories if they don't exist.
func (p Paths) EnsureDirs() error {
	for _, d := range []string{p.Base, p.Logs, filepath.Dir(p.Config)} {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return err
		}
	}
	return nil
}

// sections are the top-level keys a config path may start with.
var sections = []string{"jj", "server", "security", "logging"}

// ParseConfigPath splits a dot-separated config path such as "jj.timeout"
// into segments. The first segment must name a known section.
func ParseConfigPath(raw string) ([]string, error) {
	if raw == "" {
		return nil, &ConfigError{Message: "empty config path"}
	}
	parts := strings.Split(raw, ".")
	for _, p := range parts {
		if p == "" {
			return nil, &ConfigError{Message: "config path contains empty segment"}
		}
	}
	if !slices.Contains(sections, parts[0]) {
		return nil, &ConfigError{Message: "unknown config section: " + parts[0]}
	}
	return parts, nil
}

// GetValueAtPath traverses a nested map using the given path segments.
func GetValueAtPath(root map[string]any, path []string) (any, bool) {
	current := any(root)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// SetValueAtPath sets a value in a nested map, creating intermediate maps as needed.
func SetValueAtPath(root map[string]any, path []string, value any) {
	current := root
	for _, key := range path[:len(path)-1] {
		m, ok := current[key].(map[string]any)
		if !ok {
			m = map[string]any{}
			current[key] = m
		}
		current = m
	}
	current[path[len(path)-1]] = value
}

// UnsetValueAtPath removes a value at the given path. Returns true if removed.
func UnsetValueAtPath(root map[string]any, path []string) bool {
	current := root
	for _, key := range path[:len(path)-1] {
		m, ok := current[key].(map[string]any)
		if !ok {
			return false
		}
		current = m
	}
	last := path[len(path)-1]
	if _, ok := current[last]; !ok {
		return false
	}
	delete(current, last)
	return true
}

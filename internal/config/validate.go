package config

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/soyeahso/jj-mcp-server/internal/jj"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.JJ.Binary == "" {
		issues = append(issues, ValidationIssue{
			Path:    "jj.binary",
			Message: "must not be empty",
		})
	}
	if cfg.JJ.Timeout < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "jj.timeout",
			Message: fmt.Sprintf("must not be negative, got %s", cfg.JJ.Timeout),
		})
	}

	for i, name := range cfg.Server.Tools {
		if !jj.Known(name) {
			issues = append(issues, ValidationIssue{
				Path:    fmt.Sprintf("server.tools[%d]", i),
				Message: fmt.Sprintf("must be one of %v, got %q", jj.Tools, name),
			})
		}
	}

	for i, p := range cfg.Security.AllowedPaths {
		if !filepath.IsAbs(p) {
			issues = append(issues, ValidationIssue{
				Path:    fmt.Sprintf("security.allowedPaths[%d]", i),
				Message: fmt.Sprintf("must be an absolute path, got %q", p),
			})
		}
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	return issues
}

package jj

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kballard/go-shellquote"

	"github.com/soyeahso/jj-mcp-server/internal/logging"
)

// DefaultBinary is the jj executable looked up on PATH.
const DefaultBinary = "jj"

// waitDelay bounds how long Run waits for output after a timed-out jj is
// killed.
var waitDelay = 5 * time.Second

// Result is the captured outcome of one jj process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Output is the text returned to the caller on success. jj reports the
// outcome of mutating commands on stderr, so stderr stands in when stdout
// is empty.
func (r Result) Output() string {
	if out := strings.TrimSpace(r.Stdout); out != "" {
		return out
	}
	return strings.TrimSpace(r.Stderr)
}

// Runner executes a built jj invocation.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// ExecutorConfig configures an Executor.
type ExecutorConfig struct {
	// Binary is the jj executable name or path. Defaults to DefaultBinary.
	Binary string

	// Timeout bounds each process. Zero means no limit.
	Timeout time.Duration

	// AllowedPaths restricts the directories commands may touch. Empty
	// means unrestricted.
	AllowedPaths []string
}

// Executor runs jj as a child process with an explicit argument vector.
// No shell is involved.
type Executor struct {
	cfg   ExecutorConfig
	roots []string
	log   *logging.Logger
}

// NewExecutor creates an Executor. Allowed paths are resolved once here.
func NewExecutor(cfg ExecutorConfig, log *logging.Logger) *Executor {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	e := &Executor{cfg: cfg, log: log.Sub("jj")}
	for _, p := range cfg.AllowedPaths {
		if root, err := resolvePath(p); err == nil {
			e.roots = append(e.roots, root)
		}
	}
	return e
}

// Binary returns the configured jj executable.
func (e *Executor) Binary() string { return e.cfg.Binary }

// Run starts jj, waits for it, and captures its output.
func (e *Executor) Run(ctx context.Context, inv Invocation) (Result, error) {
	if err := e.checkPaths(inv); err != nil {
		return Result{}, err
	}

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	e.log.Debug().
		Str("cmd", shellquote.Join(append([]string{e.cfg.Binary}, inv.Args...)...)).
		Str("dir", inv.Dir).
		Msg("running jj")

	cmd := exec.CommandContext(ctx, e.cfg.Binary, inv.Args...)
	cmd.Dir = inv.Dir
	if e.cfg.Timeout > 0 {
		// jj's own children (git) may hold the pipes after jj is killed.
		cmd.WaitDelay = waitDelay
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err == nil {
		e.log.Debug().
			Dur("duration", res.Duration).
			Str("stdout", humanize.Bytes(uint64(stdout.Len()))).
			Msg("jj succeeded")
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			res.Stderr = strings.TrimSpace(res.Stderr + fmt.Sprintf("\njj timed out after %s", e.cfg.Timeout))
		}
		e.log.Debug().
			Int("exitCode", res.ExitCode).
			Dur("duration", res.Duration).
			Msg("jj failed")
		return res, &ExitError{Args: inv.Args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}

	if ctxErr := ctx.Err(); ctxErr != nil && cmd.Process != nil {
		res.ExitCode = -1
		res.Stderr = strings.TrimSpace(res.Stderr + "\njj stopped: " + ctxErr.Error())
		return res, &ExitError{Args: inv.Args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}

	// The process never started.
	return res, fmt.Errorf("%w: %v", ErrToolNotFound, err)
}

// checkPaths rejects working directories that do not exist and, when
// allowed paths are configured, anything outside them.
func (e *Executor) checkPaths(inv Invocation) error {
	if inv.Dir != "" {
		info, err := os.Stat(inv.Dir)
		if err != nil {
			return malformed("working directory %q does not exist", inv.Dir)
		}
		if !info.IsDir() {
			return malformed("working directory %q is not a directory", inv.Dir)
		}
	}
	if len(e.roots) == 0 {
		return nil
	}

	dir := inv.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return malformed("resolving working directory: %v", err)
		}
		dir = wd
	}
	for _, p := range append([]string{dir}, inv.Paths...) {
		if err := e.allowed(p); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) allowed(path string) error {
	normalized, err := resolvePath(path)
	if err != nil {
		return malformed("invalid path %q: %v", path, err)
	}
	for _, root := range e.roots {
		if normalized == root || strings.HasPrefix(normalized, root+string(filepath.Separator)) {
			return nil
		}
	}
	return malformed("path %q is outside allowed directories", path)
}

// resolvePath returns the absolute, symlink-free form of path. Components
// that do not exist yet (a clone destination) are appended to the resolved
// nearest existing ancestor.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	abs = filepath.Clean(abs)

	var rest []string
	for dir := abs; ; dir = filepath.Dir(dir) {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		rest = append([]string{filepath.Base(dir)}, rest...)
	}
}

package jj

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// Invocation is a fully built jj command line.
type Invocation struct {
	Args []string
	// Dir is the working directory; empty means the server's own.
	Dir string
	// Paths lists other filesystem locations the command acts on
	// (an -R repository, a clone destination).
	Paths []string
}

// Build validates p and turns it into an Invocation. The switch covers every
// params type in the package.
func Build(p Params) (Invocation, error) {
	if err := p.Validate(); err != nil {
		return Invocation{}, err
	}

	var args []string
	switch p := p.(type) {
	case StatusParams:
		args = BuildStatus(p)
	case RebaseParams:
		var err error
		if args, err = BuildRebase(p); err != nil {
			return Invocation{}, err
		}
	case CommitParams:
		args = BuildCommit(p)
	case NewParams:
		args = BuildNew(p)
	case LogParams:
		args = BuildLog(p)
	case DiffParams:
		args = BuildDiff(p)
	case GitCloneParams:
		args = BuildGitClone(p)
	default:
		return Invocation{}, fmt.Errorf("%w: %T", ErrUnknownTool, p)
	}

	loc := p.Location()
	inv := Invocation{Args: args, Dir: loc.Dir()}

	// The process runs in cwd; -R keeps repoPath in effect.
	if loc.Cwd != "" && loc.RepoPath != "" {
		inv.Args = append(inv.Args, "-R", loc.RepoPath)
		inv.Paths = append(inv.Paths, resolve(loc.Cwd, loc.RepoPath))
	}
	if clone, ok := p.(GitCloneParams); ok && clone.Destination != "" {
		inv.Paths = append(inv.Paths, resolve(loc.Cwd, clone.Destination))
	}
	return inv, nil
}

func BuildStatus(StatusParams) []string {
	return []string{"status"}
}

func BuildRebase(p RebaseParams) ([]string, error) {
	if p.Destination == "" {
		return nil, malformed("destination is required for rebase")
	}
	args := []string{"rebase"}
	if p.Source != "" {
		args = append(args, "--source", p.Source)
	}
	return append(args, "--destination", p.Destination), nil
}

func BuildCommit(p CommitParams) []string {
	return []string{"commit", "--message", p.Message}
}

func BuildNew(p NewParams) []string {
	return append([]string{"new"}, p.Parents...)
}

func BuildLog(p LogParams) []string {
	args := []string{"log"}
	if p.Limit != nil {
		args = append(args, "--limit", strconv.Itoa(*p.Limit))
	}
	if p.Template != "" {
		args = append(args, "--template", p.Template)
	}
	if p.Revisions != "" {
		args = append(args, "--revisions", p.Revisions)
	}
	return args
}

func BuildDiff(p DiffParams) []string {
	args := []string{"diff"}
	if p.From != "" {
		args = append(args, "--from", p.From)
	}
	if p.To != "" {
		args = append(args, "--to", p.To)
	}
	if p.Context != nil {
		args = append(args, "--context", strconv.Itoa(*p.Context))
	}
	if p.Summary {
		args = append(args, "--summary")
	}
	if p.Stat {
		args = append(args, "--stat")
	}
	return append(args, p.Paths...)
}

func BuildGitClone(p GitCloneParams) []string {
	args := []string{"git", "clone"}
	if p.Colocate {
		args = append(args, "--colocate")
	}
	if p.Remote != "" {
		args = append(args, "--remote", p.Remote)
	}
	if p.Depth != nil {
		args = append(args, "--depth", strconv.Itoa(*p.Depth))
	}
	args = append(args, p.Source)
	if p.Destination != "" {
		args = append(args, p.Destination)
	}
	return args
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}

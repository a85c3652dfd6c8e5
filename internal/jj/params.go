package jj

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ToolName identifies one of the jj operations exposed over MCP.
type ToolName string

const (
	ToolStatus   ToolName = "status"
	ToolRebase   ToolName = "rebase"
	ToolCommit   ToolName = "commit"
	ToolNew      ToolName = "new"
	ToolLog      ToolName = "log"
	ToolDiff     ToolName = "diff"
	ToolGitClone ToolName = "git-clone"
)

// Tools lists every tool in catalog order.
var Tools = []ToolName{ToolStatus, ToolRebase, ToolCommit, ToolNew, ToolLog, ToolDiff, ToolGitClone}

// Known reports whether name is one of Tools.
func Known(name string) bool {
	for _, t := range Tools {
		if string(t) == name {
			return true
		}
	}
	return false
}

// Params is implemented by the per-tool parameter structs.
type Params interface {
	Tool() ToolName
	Location() RepoLocation
	Validate() error
}

// RepoLocation holds the options shared by the repository tools.
type RepoLocation struct {
	RepoPath string `json:"repoPath,omitempty"`
	Cwd      string `json:"cwd,omitempty"`
}

func (l RepoLocation) Location() RepoLocation { return l }

// Dir is the working directory the command runs in: cwd, then repoPath,
// then "" for the server's own directory.
func (l RepoLocation) Dir() string {
	if l.Cwd != "" {
		return l.Cwd
	}
	return l.RepoPath
}

type StatusParams struct {
	RepoLocation
}

type RebaseParams struct {
	RepoLocation
	Source      string `json:"source,omitempty"`
	Destination string `json:"destination,omitempty"`
}

type CommitParams struct {
	RepoLocation
	Message string `json:"message"`
}

type NewParams struct {
	RepoLocation
	Parents Revisions `json:"parents,omitempty"`
}

type LogParams struct {
	RepoLocation
	Limit     *int   `json:"limit,omitempty"`
	Template  string `json:"template,omitempty"`
	Revisions string `json:"revisions,omitempty"`
}

type DiffParams struct {
	RepoLocation
	From    string   `json:"from,omitempty"`
	To      string   `json:"to,omitempty"`
	Paths   []string `json:"paths,omitempty"`
	Context *int     `json:"context,omitempty"`
	Summary bool     `json:"summary,omitempty"`
	Stat    bool     `json:"stat,omitempty"`
}

// GitCloneParams has no repoPath: the repository does not exist yet.
type GitCloneParams struct {
	Cwd         string `json:"cwd,omitempty"`
	Source      string `json:"source"`
	Destination string `json:"destination,omitempty"`
	Colocate    bool   `json:"colocate,omitempty"`
	Remote      string `json:"remote,omitempty"`
	Depth       *int   `json:"depth,omitempty"`
}

func (StatusParams) Tool() ToolName   { return ToolStatus }
func (RebaseParams) Tool() ToolName   { return ToolRebase }
func (CommitParams) Tool() ToolName   { return ToolCommit }
func (NewParams) Tool() ToolName      { return ToolNew }
func (LogParams) Tool() ToolName      { return ToolLog }
func (DiffParams) Tool() ToolName     { return ToolDiff }
func (GitCloneParams) Tool() ToolName { return ToolGitClone }

func (p GitCloneParams) Location() RepoLocation { return RepoLocation{Cwd: p.Cwd} }

func (StatusParams) Validate() error { return nil }

// Validate accepts a rebase without destination; BuildRebase rejects it.
func (RebaseParams) Validate() error { return nil }

func (p CommitParams) Validate() error {
	if p.Message == "" {
		return malformed("message is required")
	}
	return nil
}

func (p NewParams) Validate() error {
	for i, rev := range p.Parents {
		if err := operand(fmt.Sprintf("parents[%d]", i), rev); err != nil {
			return err
		}
	}
	return nil
}

func (p LogParams) Validate() error {
	if p.Limit != nil && *p.Limit <= 0 {
		return malformed("limit must be a positive integer, got %d", *p.Limit)
	}
	return nil
}

func (p DiffParams) Validate() error {
	if p.Context != nil && *p.Context < 0 {
		return malformed("context must not be negative, got %d", *p.Context)
	}
	for i, path := range p.Paths {
		if err := operand(fmt.Sprintf("paths[%d]", i), path); err != nil {
			return err
		}
	}
	return nil
}

func (p GitCloneParams) Validate() error {
	if p.Source == "" {
		return malformed("source is required")
	}
	if err := operand("source", p.Source); err != nil {
		return err
	}
	if p.Destination != "" {
		if err := operand("destination", p.Destination); err != nil {
			return err
		}
	}
	if p.Depth != nil && *p.Depth <= 0 {
		return malformed("depth must be a positive integer, got %d", *p.Depth)
	}
	return nil
}

// operand checks a value passed to jj as a positional argument. A leading
// dash would be parsed as an option (-R, --config) instead.
func operand(field, v string) error {
	if v == "" {
		return malformed("%s must not be empty", field)
	}
	if strings.HasPrefix(v, "-") {
		return malformed("%s must not start with '-', got %q", field, v)
	}
	return nil
}

// Revisions is one revision expression or a list of them. JSON accepts
// either a string or an array of strings.
type Revisions []string

func (r *Revisions) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*r = nil
		} else {
			*r = Revisions{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.New("parents: expected a revision string or an array of revision strings")
	}
	*r = many
	return nil
}

// Decode parses raw JSON arguments into the params struct for tool and
// validates it. A nil or empty payload decodes to the zero params.
func Decode(tool ToolName, raw []byte) (Params, error) {
	switch tool {
	case ToolStatus:
		return decodeInto[StatusParams](raw)
	case ToolRebase:
		return decodeInto[RebaseParams](raw)
	case ToolCommit:
		return decodeInto[CommitParams](raw)
	case ToolNew:
		return decodeInto[NewParams](raw)
	case ToolLog:
		return decodeInto[LogParams](raw)
	case ToolDiff:
		return decodeInto[DiffParams](raw)
	case ToolGitClone:
		return decodeInto[GitCloneParams](raw)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, tool)
	}
}

func decodeInto[P Params](raw []byte) (Params, error) {
	var p P
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, describeDecodeError(err)
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func describeDecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return malformed("arguments must be a JSON object, got %s", typeErr.Value)
		}
		return malformed("%s: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return malformed("invalid JSON at offset %d: %v", syntaxErr.Offset, syntaxErr)
	}
	return malformed("%v", err)
}

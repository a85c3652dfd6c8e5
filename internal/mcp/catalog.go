package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/soyeahso/jj-mcp-server/internal/jj"
)

// Catalog is the fixed, ordered set of tools a server exposes. It is built
// once at startup and never modified.
type Catalog struct {
	tools []mcp.Tool
	index map[string]int
}

// NewCatalog builds the catalog. A non-empty enabled list restricts it to
// those tools; unknown names are an error.
func NewCatalog(enabled []string) (*Catalog, error) {
	want := map[string]bool{}
	for _, name := range enabled {
		if !jj.Known(name) {
			return nil, fmt.Errorf("%w: %s", jj.ErrUnknownTool, name)
		}
		want[name] = true
	}

	c := &Catalog{index: map[string]int{}}
	for _, t := range definitions() {
		if len(want) > 0 && !want[t.Name] {
			continue
		}
		c.index[t.Name] = len(c.tools)
		c.tools = append(c.tools, t)
	}
	return c, nil
}

// Tools returns the tool definitions in catalog order.
func (c *Catalog) Tools() []mcp.Tool {
	return append([]mcp.Tool(nil), c.tools...)
}

// Lookup returns the definition for name.
func (c *Catalog) Lookup(name string) (mcp.Tool, bool) {
	i, ok := c.index[name]
	if !ok {
		return mcp.Tool{}, false
	}
	return c.tools[i], true
}

// Len reports how many tools are exposed.
func (c *Catalog) Len() int { return len(c.tools) }

func repoOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("repoPath",
			mcp.Description("Optional path to repo root"),
		),
		mcp.WithString("cwd",
			mcp.Description("Optional working directory"),
		),
	}
}

func newTool(name jj.ToolName, opts ...mcp.ToolOption) mcp.Tool {
	if name != jj.ToolGitClone {
		opts = append(opts, repoOptions()...)
	}
	return mcp.NewTool(string(name), opts...)
}

func definitions() []mcp.Tool {
	return []mcp.Tool{
		newTool(jj.ToolStatus,
			mcp.WithDescription("Show the status of the working directory"),
			mcp.WithReadOnlyHintAnnotation(true),
		),

		newTool(jj.ToolRebase,
			mcp.WithDescription("Rebase a revision onto another"),
			mcp.WithString("source",
				mcp.Description("Source revision to rebase (default: the working-copy branch)"),
			),
			mcp.WithString("destination",
				mcp.Description("Destination revision to rebase onto"),
			),
			mcp.WithDestructiveHintAnnotation(true),
		),

		newTool(jj.ToolCommit,
			mcp.WithDescription("Describe the working-copy change and start a new one on top of it"),
			mcp.WithString("message",
				mcp.Required(),
				mcp.Description("Commit message"),
			),
		),

		newTool(jj.ToolNew,
			mcp.WithDescription("Create a new empty change"),
			mcp.WithString("parents",
				mcp.Description("Parent revision for the new change; an array of revisions creates a merge"),
			),
		),

		newTool(jj.ToolLog,
			mcp.WithDescription("Show commit history"),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of commits to show"),
				mcp.Min(1),
			),
			mcp.WithString("template",
				mcp.Description("Template for formatting output"),
			),
			mcp.WithString("revisions",
				mcp.Description("Revisions to show"),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),

		newTool(jj.ToolDiff,
			mcp.WithDescription("Show differences between revisions"),
			mcp.WithString("from",
				mcp.Description("Source revision"),
			),
			mcp.WithString("to",
				mcp.Description("Target revision"),
			),
			mcp.WithArray("paths",
				mcp.Description("Specific paths to diff"),
				mcp.WithStringItems(),
			),
			mcp.WithNumber("context",
				mcp.Description("Number of context lines"),
				mcp.Min(0),
			),
			mcp.WithBoolean("summary",
				mcp.Description("Show summary only"),
			),
			mcp.WithBoolean("stat",
				mcp.Description("Show file statistics"),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),

		newTool(jj.ToolGitClone,
			mcp.WithDescription("Clone a Git repository using jj"),
			mcp.WithString("source",
				mcp.Required(),
				mcp.Description("Git repository URL to clone"),
			),
			mcp.WithString("destination",
				mcp.Description("Destination directory"),
			),
			mcp.WithBoolean("colocate",
				mcp.Description("Create a colocated jj/git repository"),
			),
			mcp.WithString("remote",
				mcp.Description("Name for the remote"),
			),
			mcp.WithNumber("depth",
				mcp.Description("Depth for shallow clone"),
				mcp.Min(1),
			),
			mcp.WithString("cwd",
				mcp.Description("Optional working directory; a relative destination resolves here"),
			),
			mcp.WithOpenWorldHintAnnotation(true),
		),
	}
}

package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyeahso/jj-mcp-server/internal/jj"
)

func TestCatalogAllTools(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)
	require.Equal(t, 7, c.Len())

	var names []string
	for _, tool := range c.Tools() {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.Equal(t, "object", tool.InputSchema.Type, tool.Name)
	}
	assert.Equal(t, []string{"status", "rebase", "commit", "new", "log", "diff", "git-clone"}, names)
}

func TestCatalogSchemas(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)

	tests := []struct {
		tool     jj.ToolName
		props    []string
		required []string
	}{
		{jj.ToolStatus, []string{"repoPath", "cwd"}, nil},
		{jj.ToolRebase, []string{"source", "destination", "repoPath", "cwd"}, nil},
		{jj.ToolCommit, []string{"message", "repoPath", "cwd"}, []string{"message"}},
		{jj.ToolNew, []string{"parents", "repoPath", "cwd"}, nil},
		{jj.ToolLog, []string{"limit", "template", "revisions", "repoPath", "cwd"}, nil},
		{jj.ToolDiff, []string{"from", "to", "paths", "context", "summary", "stat", "repoPath", "cwd"}, nil},
		{jj.ToolGitClone, []string{"source", "destination", "colocate", "remote", "depth", "cwd"}, []string{"source"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.tool), func(t *testing.T) {
			tool, ok := c.Lookup(string(tt.tool))
			require.True(t, ok)

			var props []string
			for name := range tool.InputSchema.Properties {
				props = append(props, name)
			}
			assert.ElementsMatch(t, tt.props, props)
			assert.ElementsMatch(t, tt.required, tool.InputSchema.Required)
		})
	}
}

func TestCatalogGitCloneHasNoRepoPath(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)
	tool, ok := c.Lookup("git-clone")
	require.True(t, ok)
	assert.NotContains(t, tool.InputSchema.Properties, "repoPath")
}

func TestCatalogAllowlist(t *testing.T) {
	c, err := NewCatalog([]string{"log", "status"})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	// catalog order, not allowlist order
	tools := c.Tools()
	assert.Equal(t, "status", tools[0].Name)
	assert.Equal(t, "log", tools[1].Name)

	_, ok := c.Lookup("commit")
	assert.False(t, ok)
}

func TestCatalogUnknownTool(t *testing.T) {
	_, err := NewCatalog([]string{"status", "push"})
	require.Error(t, err)
	assert.ErrorIs(t, err, jj.ErrUnknownTool)
	assert.Contains(t, err.Error(), "push")
}

func TestCatalogToolsIsCopy(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)
	tools := c.Tools()
	tools[0].Name = "changed"

	tool, ok := c.Lookup("status")
	require.True(t, ok)
	assert.Equal(t, "status", tool.Name)
	assert.Equal(t, "status", c.Tools()[0].Name)
}

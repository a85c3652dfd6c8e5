package jj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		in   Params
		args []string
		dir  string
	}{
		{
			name: "status in repo",
			in:   StatusParams{RepoLocation{RepoPath: "/tmp/repoA"}},
			args: []string{"status"},
			dir:  "/tmp/repoA",
		},
		{
			name: "status in server dir",
			in:   StatusParams{},
			args: []string{"status"},
		},
		{
			name: "rebase with source",
			in:   RebaseParams{Source: "@", Destination: "main"},
			args: []string{"rebase", "--source", "@", "--destination", "main"},
		},
		{
			name: "rebase destination only",
			in:   RebaseParams{Destination: "trunk()"},
			args: []string{"rebase", "--destination", "trunk()"},
		},
		{
			name: "commit",
			in:   CommitParams{Message: "fix: handle empty input"},
			args: []string{"commit", "--message", "fix: handle empty input"},
		},
		{
			name: "new on working copy",
			in:   NewParams{},
			args: []string{"new"},
		},
		{
			name: "new merge",
			in:   NewParams{Parents: Revisions{"main", "feature"}},
			args: []string{"new", "main", "feature"},
		},
		{
			name: "log bare",
			in:   LogParams{},
			args: []string{"log"},
		},
		{
			name: "log all options",
			in:   LogParams{Limit: intPtr(5), Template: "commit_id", Revisions: "::@"},
			args: []string{"log", "--limit", "5", "--template", "commit_id", "--revisions", "::@"},
		},
		{
			name: "diff all options",
			in: DiffParams{
				From:    "main",
				To:      "@",
				Paths:   []string{"src/a.go", "src/b.go"},
				Context: intPtr(3),
				Summary: true,
				Stat:    true,
			},
			args: []string{"diff", "--from", "main", "--to", "@", "--context", "3", "--summary", "--stat", "src/a.go", "src/b.go"},
		},
		{
			name: "diff zero context",
			in:   DiffParams{Context: intPtr(0)},
			args: []string{"diff", "--context", "0"},
		},
		{
			name: "clone minimal",
			in:   GitCloneParams{Source: "https://example.com/r.git"},
			args: []string{"git", "clone", "https://example.com/r.git"},
		},
		{
			name: "clone all options",
			in: GitCloneParams{
				Cwd:         "/tmp/clones",
				Source:      "https://example.com/r.git",
				Destination: "r",
				Colocate:    true,
				Remote:      "upstream",
				Depth:       intPtr(1),
			},
			args: []string{"git", "clone", "--colocate", "--remote", "upstream", "--depth", "1", "https://example.com/r.git", "r"},
			dir:  "/tmp/clones",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := Build(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.args, inv.Args)
			assert.Equal(t, tt.dir, inv.Dir)
		})
	}
}

func TestBuildRepoPathWithCwd(t *testing.T) {
	inv, err := Build(LogParams{
		RepoLocation: RepoLocation{RepoPath: "../repo", Cwd: "/tmp/work"},
		Limit:        intPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"log", "--limit", "2", "-R", "../repo"}, inv.Args)
	assert.Equal(t, "/tmp/work", inv.Dir)
	assert.Equal(t, []string{"/tmp/repo"}, inv.Paths)
}

func TestBuildCloneDestinationPaths(t *testing.T) {
	inv, err := Build(GitCloneParams{Cwd: "/tmp/clones", Source: "x", Destination: "sub/r"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/clones/sub/r"}, inv.Paths)

	inv, err = Build(GitCloneParams{Cwd: "/tmp/clones", Source: "x", Destination: "/srv/r"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/r"}, inv.Paths)

	inv, err = Build(GitCloneParams{Source: "x"})
	require.NoError(t, err)
	assert.Empty(t, inv.Paths)
}

func TestBuildRebaseRequiresDestination(t *testing.T) {
	_, err := Build(RebaseParams{Source: "@"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedParameters)
	assert.Contains(t, err.Error(), "destination")
}

func TestBuildValidates(t *testing.T) {
	_, err := Build(CommitParams{})
	assert.ErrorIs(t, err, ErrMalformedParameters)

	_, err = Build(LogParams{Limit: intPtr(0)})
	assert.ErrorIs(t, err, ErrMalformedParameters)
}

func TestBuildDeterministic(t *testing.T) {
	p := DiffParams{From: "a", To: "b", Paths: []string{"x"}, Summary: true}
	first, err := Build(p)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Build(p)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBuildArgumentsAreNotSplit(t *testing.T) {
	inv, err := Build(CommitParams{Message: "msg; rm -rf / && echo $HOME"})
	require.NoError(t, err)
	assert.Equal(t, []string{"commit", "--message", "msg; rm -rf / && echo $HOME"}, inv.Args)
}

func TestDecodeThenBuild(t *testing.T) {
	p, err := Decode(ToolDiff, []byte(`{"from": "main", "to": "@", "paths": ["src/"], "stat": true}`))
	require.NoError(t, err)
	inv, err := Build(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"diff", "--from", "main", "--to", "@", "--stat", "src/"}, inv.Args)
}

func TestBuildDiffScenario(t *testing.T) {
	inv, err := Build(DiffParams{
		From:    "@-",
		To:      "@",
		Context: intPtr(3),
		Summary: true,
		Paths:   []string{"src/", "README.md"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"diff", "--from", "@-", "--to", "@", "--context", "3", "--summary", "src/", "README.md"}, inv.Args)
}

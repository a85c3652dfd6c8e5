// Package mcp exposes jj operations as Model Context Protocol tools over
// stdio. Every tool call runs the same pipeline: decode the arguments, build
// the jj command line, run jj, and return its output as text.
package mcp

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/soyeahso/jj-mcp-server/internal/jj"
	"github.com/soyeahso/jj-mcp-server/internal/logging"
)

// Options configures a Server.
type Options struct {
	Name    string
	Version string
	// Tools restricts the catalog; empty exposes every tool.
	Tools []string
}

// Server registers the catalog with mcp-go and routes calls to handlers.
type Server struct {
	catalog  *Catalog
	handlers map[string]server.ToolHandlerFunc
	mcp      *server.MCPServer
	log      *logging.Logger
}

// NewServer builds the catalog and registers one handler per tool. Only the
// tools capability is advertised.
func NewServer(opts Options, runner jj.Runner, log *logging.Logger) (*Server, error) {
	catalog, err := NewCatalog(opts.Tools)
	if err != nil {
		return nil, err
	}
	if opts.Name == "" {
		opts.Name = "jj-mcp-server"
	}

	log = log.Sub("mcp")
	s := &Server{
		catalog:  catalog,
		handlers: make(map[string]server.ToolHandlerFunc, catalog.Len()),
		mcp: server.NewMCPServer(
			opts.Name,
			opts.Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		log: log,
	}

	for _, tool := range catalog.Tools() {
		h := logCalls(tool.Name, log, handleTool(jj.ToolName(tool.Name), runner, log))
		s.handlers[tool.Name] = h
		s.mcp.AddTool(tool, h)
	}
	return s, nil
}

// Catalog returns the tools this server exposes.
func (s *Server) Catalog() *Catalog { return s.catalog }

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcp }

// Dispatch runs one tool call in-process, without the transport. Names
// outside the catalog yield an unknown-tool error result.
func (s *Server) Dispatch(ctx context.Context, name string, args any) *mcp.CallToolResult {
	h, ok := s.handlers[name]
	if !ok {
		s.log.Warn().Str("tool", name).Msg("unknown tool")
		return unknownToolResult(name)
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := h(ctx, req)
	if err != nil {
		return errorResult(err)
	}
	return res
}

// Serve speaks MCP over the given streams until in reaches EOF or ctx is
// cancelled.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(s.log.StdLogger())

	s.log.Info().Int("tools", s.catalog.Len()).Msg("listening on stdio")
	err := stdio.Listen(ctx, in, out)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

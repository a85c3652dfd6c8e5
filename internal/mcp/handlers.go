package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/soyeahso/jj-mcp-server/internal/jj"
	"github.com/soyeahso/jj-mcp-server/internal/logging"
)

// ─── Tool Handlers ───────────────────────────────────────────────────────────

// handleTool returns the handler for one jj tool: decode, build, run, format.
// Failures become error results; the Go error is always nil.
func handleTool(name jj.ToolName, runner jj.Runner, log *logging.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params, err := decodeRequest(name, req)
		if err != nil {
			return errorResult(err), nil
		}

		inv, err := jj.Build(params)
		if err != nil {
			return errorResult(err), nil
		}

		log.With("call", callID(ctx)).Debug().
			Str("cmd", shellquote.Join(inv.Args...)).
			Str("dir", inv.Dir).
			Msg("executing")

		res, err := runner.Run(ctx, inv)
		if err != nil {
			return errorResult(err), nil
		}

		out := res.Output()
		if out == "" {
			out = fmt.Sprintf("jj %s completed with no output", name)
		}
		return mcp.NewToolResultText(out), nil
	}
}

func decodeRequest(name jj.ToolName, req mcp.CallToolRequest) (jj.Params, error) {
	var raw []byte
	if args := req.GetRawArguments(); args != nil {
		var err error
		if raw, err = json.Marshal(args); err != nil {
			return nil, fmt.Errorf("%w: %v", jj.ErrMalformedParameters, err)
		}
	}
	return jj.Decode(name, raw)
}

func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("Error: " + err.Error())
}

func unknownToolResult(name string) *mcp.CallToolResult {
	return errorResult(fmt.Errorf("%w: %s", jj.ErrUnknownTool, name))
}

// ─── Call logging ────────────────────────────────────────────────────────────

type callIDKey struct{}

func callID(ctx context.Context) string {
	id, _ := ctx.Value(callIDKey{}).(string)
	return id
}

// logCalls tags each call with an ID and logs its outcome.
func logCalls(name string, log *logging.Logger, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := uuid.NewString()
		ctx = context.WithValue(ctx, callIDKey{}, id)
		start := time.Now()

		res, err := next(ctx, req)

		ev := log.Info()
		if err != nil || (res != nil && res.IsError) {
			ev = log.Warn()
		}
		ev = ev.Str("call", id).
			Str("tool", name).
			Dur("duration", time.Since(start))
		if res != nil {
			ev = ev.Bool("isError", res.IsError).
				Str("size", humanize.Bytes(uint64(resultSize(res))))
		}
		if err != nil {
			ev = ev.Err(err)
		}
		ev.Msg("tool call")
		return res, err
	}
}

func resultSize(res *mcp.CallToolResult) int {
	n := 0
	for _, c := range res.Content {
		if text, ok := mcp.AsTextContent(c); ok {
			n += len(text.Text)
		}
	}
	return n
}

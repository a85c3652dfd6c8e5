package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/soyeahso/jj-mcp-server/internal/jj"
	"github.com/spf13/cobra"
)

var errCallFailed = errors.New("tool call returned an error")

func newCallCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "call <tool> [json-arguments]",
		Short: "Run one tool call in-process and print the result",
		Example: `  jj-mcp-server call status '{"repoPath": "."}'
  jj-mcp-server call log '{"limit": 5}'
  jj-mcp-server call diff '{"from": "@-", "summary": true}' --dry-run`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arguments any
			if len(args) == 2 {
				if err := json.Unmarshal([]byte(args[1]), &arguments); err != nil {
					return fmt.Errorf("invalid JSON arguments: %w", err)
				}
			}

			if dryRun {
				return printCommandLine(cmd, args[0], arguments)
			}

			closer, err := openLog()
			if err != nil {
				return fmt.Errorf("opening log: %w", err)
			}
			defer closer.Close()

			srv, err := newServer(newExecutor())
			if err != nil {
				return err
			}

			res := srv.Dispatch(cmd.Context(), args[0], arguments)
			text := resultText(res)
			if res.IsError {
				fmt.Fprintln(cmd.ErrOrStderr(), text)
				return errCallFailed
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the jj command line instead of running it")
	return cmd
}

// printCommandLine shows what a call would execute. The quoting is for
// display; execution never goes through a shell.
func printCommandLine(cmd *cobra.Command, tool string, arguments any) error {
	if !jj.Known(tool) {
		return fmt.Errorf("%w: %s", jj.ErrUnknownTool, tool)
	}
	var raw []byte
	if arguments != nil {
		var err error
		if raw, err = json.Marshal(arguments); err != nil {
			return err
		}
	}
	params, err := jj.Decode(jj.ToolName(tool), raw)
	if err != nil {
		return err
	}
	inv, err := jj.Build(params)
	if err != nil {
		return err
	}

	line := shellquote.Join(append([]string{cfg.JJ.Binary}, inv.Args...)...)
	if inv.Dir != "" {
		line = fmt.Sprintf("(cd %s && %s)", shellquote.Join(inv.Dir), line)
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
	return nil
}

func resultText(res *mcp.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if text, ok := mcp.AsTextContent(c); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}

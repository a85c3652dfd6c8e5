package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func newToolsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools this server exposes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := newServer(newExecutor())
			if err != nil {
				return err
			}
			list := srv.Catalog().Tools()

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(list, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			for _, t := range list {
				fmt.Fprintf(out, "%-10s %s\n", t.Name, t.Description)
				for _, p := range describeParams(t) {
					fmt.Fprintf(out, "           %s\n", p)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	return cmd
}

// describeParams renders each input property as "name (type[, required])",
// sorted by name.
func describeParams(t mcp.Tool) []string {
	names := make([]string, 0, len(t.InputSchema.Properties))
	for name := range t.InputSchema.Properties {
		names = append(names, name)
	}
	slices.Sort(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		typ := "any"
		if prop, ok := t.InputSchema.Properties[name].(map[string]any); ok {
			if s, ok := prop["type"].(string); ok {
				typ = s
			}
		}
		attrs := []string{typ}
		if slices.Contains(t.InputSchema.Required, name) {
			attrs = append(attrs, "required")
		}
		lines = append(lines, fmt.Sprintf("%s (%s)", name, strings.Join(attrs, ", ")))
	}
	return lines
}

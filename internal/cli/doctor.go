package cli

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/soyeahso/jj-mcp-server/internal/config"
	"github.com/soyeahso/jj-mcp-server/internal/jj"
	"github.com/soyeahso/jj-mcp-server/internal/version"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and the jj installation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "jj-mcp-server %s (commit %s)\n\n", version.Version, version.Commit)

			fmt.Fprintf(out, "Config:  %s\n", paths.Config)
			if file := cfg.LogFile(paths); file != "" {
				fmt.Fprintf(out, "Log:     %s\n", file)
			} else {
				fmt.Fprintln(out, "Log:     stderr only")
			}
			fmt.Fprintln(out)

			problems := 0
			if path, err := exec.LookPath(cfg.JJ.Binary); err != nil {
				fmt.Fprintf(out, "jj:      not found (%s)\n", cfg.JJ.Binary)
				problems++
			} else {
				// The version check touches no repository, so it skips the
				// allowed-roots guard.
				check := jj.NewExecutor(jj.ExecutorConfig{Binary: cfg.JJ.Binary, Timeout: cfg.JJ.Timeout}, log)
				res, err := check.Run(cmd.Context(), jj.Invocation{Args: []string{"--version"}})
				if err != nil {
					fmt.Fprintf(out, "jj:      %s (failed to run: %v)\n", path, err)
					problems++
				} else {
					fmt.Fprintf(out, "jj:      %s (%s)\n", path, res.Output())
				}
			}

			if cfg.JJ.Timeout > 0 {
				fmt.Fprintf(out, "Timeout: %s\n", cfg.JJ.Timeout)
			} else {
				fmt.Fprintln(out, "Timeout: none")
			}

			if len(cfg.Server.Tools) > 0 {
				fmt.Fprintf(out, "Tools:   %s\n", strings.Join(cfg.Server.Tools, ", "))
			} else {
				fmt.Fprintln(out, "Tools:   all")
			}

			if len(cfg.Security.AllowedPaths) > 0 {
				fmt.Fprintf(out, "Paths:   %s\n", strings.Join(cfg.Security.AllowedPaths, ", "))
			} else {
				fmt.Fprintln(out, "Paths:   unrestricted")
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Fprintf(out, "\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Fprintf(out, "  - %s\n", issue)
				}
				problems += len(issues)
			}

			if problems > 0 {
				return fmt.Errorf("%d problem(s) found", problems)
			}
			return nil
		},
	}
}

package cli

import (
	"io"
	"time"

	"github.com/soyeahso/jj-mcp-server/internal/config"
	"github.com/soyeahso/jj-mcp-server/internal/jj"
	"github.com/soyeahso/jj-mcp-server/internal/logging"
	jjmcp "github.com/soyeahso/jj-mcp-server/internal/mcp"
	"github.com/soyeahso/jj-mcp-server/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	jjBinary string
	timeout  time.Duration
	tools    []string

	// loaded at init time
	paths config.Paths
	cfg   config.Config
	log   *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jj-mcp-server",
		Short: "MCP server exposing Jujutsu (jj) operations as tools",
		Long: "jj-mcp-server speaks the Model Context Protocol over stdin/stdout and runs jj\n" +
			"for each tool call: status, rebase, commit, new, log, diff and git-clone.\n" +
			"Run without a subcommand to serve.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			paths, err = config.ResolvePaths()
			if err != nil {
				return err
			}
			if cfgFile != "" {
				paths.Config = cfgFile
			}
			cfg, err = config.Load(paths.Config)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd)
			log = logging.New(nil, cfg.Logging.Level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.jj-mcp/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")
	cmd.PersistentFlags().StringVar(&jjBinary, "jj", "", "jj executable (default \"jj\" on PATH)")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per-command timeout, 0 for none")
	cmd.PersistentFlags().StringSliceVar(&tools, "tools", nil, "comma-separated tools to expose (default all)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newCallCmd())
	cmd.AddCommand(newToolsCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// applyFlagOverrides lets explicitly set flags win over file and env config.
func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("jj") {
		cfg.JJ.Binary = jjBinary
	}
	if flags.Changed("timeout") {
		cfg.JJ.Timeout = timeout
	}
	if flags.Changed("tools") {
		cfg.Server.Tools = tools
	}
}

// openLog replaces the stderr logger with one that also appends to the
// configured log file.
func openLog() (io.Closer, error) {
	file := cfg.LogFile(paths)
	l, closer, err := logging.Open(cfg.Logging.Level, file)
	if err != nil {
		return nil, err
	}
	log = l
	return closer, nil
}

func newExecutor() *jj.Executor {
	return jj.NewExecutor(jj.ExecutorConfig{
		Binary:       cfg.JJ.Binary,
		Timeout:      cfg.JJ.Timeout,
		AllowedPaths: cfg.Security.AllowedPaths,
	}, log)
}

func newServer(runner jj.Runner) (*jjmcp.Server, error) {
	return jjmcp.NewServer(jjmcp.Options{
		Name:    cfg.Server.Name,
		Version: version.Semver(),
		Tools:   cfg.Server.Tools,
	}, runner, log)
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

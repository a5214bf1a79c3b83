package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/waveforge/waveforge/pkg/buildinfo"
)

// Execute runs the waveforge CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (tech, cells,
// route, serve, cache, db), configures logging based on the --verbose flag,
// and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "waveforge",
		Short:        "waveforge builds photonic integrated-circuit layouts",
		Long:         `waveforge is a layout framework for photonic integrated circuits: parametric cells, all-angle waveguide routing, technology (PDK) definitions, and simulation orchestration.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newTechCmd())
	root.AddCommand(newCellsCmd())
	root.AddCommand(newRouteCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newSimCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newDBCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

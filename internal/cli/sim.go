package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waveforge/waveforge/pkg/cache"
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/simulate"
)

// newSimCmd creates the simulation command.
func newSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run solver jobs through an external engine",
	}

	cmd.AddCommand(newSimModesCmd())

	return cmd
}

// newSimModesCmd creates the "sim modes" subcommand. The engine binary
// receives a job file path as its last argument and writes the result to
// stdout.
func newSimModesCmd() *cobra.Command {
	var (
		techFile   string
		xsName     string
		engineBin  string
		wavelength float64
		numModes   int
		output     string
		refresh    bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "modes",
		Short: "Solve waveguide modes for a cross-section",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			p, err := loadPDK(techFile, nil)
			if err != nil {
				return err
			}
			xs, err := p.XS.Get(xsName)
			if err != nil {
				return err
			}

			job := &simulate.ModeJob{
				Mesh: simulate.MeshJob{
					CrossSection: xs,
					Stack:        p.Tech.Stack,
				},
				Wavelength: wavelength,
				NumModes:   numModes,
			}

			var store cache.Cache
			if !noCache {
				c, err := openCache()
				if err != nil {
					logger.Warn("cache unavailable, running fresh", "err", err)
				} else {
					store = c
				}
			}

			runner := simulate.NewRunner(
				&simulate.CommandEngine{Binary: engineBin},
				store, nil, logger,
			)
			defer runner.Close()

			spin := newSpinnerWithContext(ctx, "solving modes for "+xsName)
			spin.Start()
			res, err := runner.Run(ctx, job, simulate.RunOptions{Refresh: refresh, NoCache: noCache})
			spin.Stop()
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}

			printSuccess("Solved %d modes at %g um", job.NumModes, job.Wavelength)
			printRunStats(len(res.Data), res.Duration, res.CacheHit)

			if output != "" {
				if err := os.WriteFile(output, res.Data, 0o644); err != nil {
					return err
				}
				printFile(output)
				return nil
			}
			fmt.Println(string(res.Data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&techFile, "tech", "t", "", "tech TOML file (default: built-in generic)")
	cmd.Flags().StringVarP(&xsName, "cross-section", "x", "strip", "cross-section name")
	cmd.Flags().StringVarP(&engineBin, "engine", "e", "", "solver engine binary")
	cmd.Flags().Float64VarP(&wavelength, "wavelength", "w", simulate.DefaultWavelength, "wavelength in um")
	cmd.Flags().IntVarP(&numModes, "num-modes", "n", simulate.DefaultNumModes, "number of modes to solve")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write result JSON to file instead of stdout")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even on a cache hit")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the result cache")
	_ = cmd.MarkFlagRequired("engine")
	return cmd
}

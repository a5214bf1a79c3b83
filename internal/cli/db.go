package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waveforge/waveforge/pkg/db"
)

// newDBCmd creates the fabrication metadata command.
func newDBCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Browse fabrication metadata records",
	}

	cmd.PersistentFlags().StringVar(&dir, "dir", "", "metadata directory (default: ~/.config/waveforge/db)")

	cmd.AddCommand(newDBWafersCmd(&dir))
	cmd.AddCommand(newDBComponentsCmd(&dir))
	cmd.AddCommand(newDBSimulationsCmd(&dir))

	return cmd
}

func openStore(dir string) (*db.FileStore, error) {
	return db.NewFileStore(dir)
}

// newDBWafersCmd creates the "db wafers" subcommand. It lists wafers with
// their reticles and dies.
func newDBWafersCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "wafers",
		Short: "List wafers with their reticles and dies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(*dir)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			wafers, err := store.ListWafers(ctx)
			if err != nil {
				return err
			}
			if len(wafers) == 0 {
				printInfo("No wafers recorded")
				return nil
			}

			for _, w := range wafers {
				fmt.Println(StyleTitle.Render(w.Name) + " " + StyleDim.Render(w.ID))
				printDetail("%g mm %s, created %s", w.Diameter, w.Material,
					w.CreatedAt.Format("2006-01-02 15:04"))
				if err := printReticles(ctx, store, w.ID); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printReticles(ctx context.Context, store *db.FileStore, waferID string) error {
	reticles, err := store.ListReticles(ctx, waferID)
	if err != nil {
		return err
	}
	for _, r := range reticles {
		printDetail("reticle %s at (%d, %d)", r.Name, r.Row, r.Col)
		dies, err := store.ListDies(ctx, r.ID)
		if err != nil {
			return err
		}
		for _, d := range dies {
			printDetail("  die %s at (%g, %g)", d.Name, d.X, d.Y)
		}
	}
	return nil
}

// newDBComponentsCmd creates the "db components" subcommand.
func newDBComponentsCmd(dir *string) *cobra.Command {
	var dieID string

	cmd := &cobra.Command{
		Use:   "components",
		Short: "List component records",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(*dir)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			comps, err := store.ListComponents(ctx, dieID)
			if err != nil {
				return err
			}
			if len(comps) == 0 {
				printInfo("No component records")
				return nil
			}
			for _, c := range comps {
				printKeyValue(c.Name, fmt.Sprintf("cell=%s hash=%s", c.Cell, c.Hash))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dieID, "die", "", "filter by die ID")
	return cmd
}

// newDBSimulationsCmd creates the "db simulations" subcommand.
func newDBSimulationsCmd(dir *string) *cobra.Command {
	var componentID string

	cmd := &cobra.Command{
		Use:   "simulations",
		Short: "List simulation records",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(*dir)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			sims, err := store.ListSimulations(ctx, componentID)
			if err != nil {
				return err
			}
			if len(sims) == 0 {
				printInfo("No simulation records")
				return nil
			}
			for _, s := range sims {
				printKeyValue(s.Kind, fmt.Sprintf("engine=%s result=%s created=%s",
					s.Engine, s.ResultKey, s.CreatedAt.Format("2006-01-02 15:04")))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&componentID, "component", "", "filter by component ID")
	return cmd
}

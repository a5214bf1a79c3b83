package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/waveforge/waveforge/pkg/cache"
	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/layout"
)

// newCellsCmd creates the cell library command.
func newCellsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cells",
		Short: "List and build parametric cells",
	}

	cmd.AddCommand(newCellsListCmd())
	cmd.AddCommand(newCellsBuildCmd())

	return cmd
}

// newCellsListCmd creates the "cells list" subcommand.
func newCellsListCmd() *cobra.Command {
	var (
		techFile    string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered cells and their default parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPDK(techFile, nil)
			if err != nil {
				return err
			}

			items, err := cellItems(p.Cells)
			if err != nil {
				return err
			}

			if interactive {
				return pickCell(items)
			}

			for _, it := range items {
				printKeyValue(it.Name, formatDefaults(it.Defaults))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&techFile, "tech", "t", "", "tech TOML file (default: built-in generic)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse cells interactively")
	return cmd
}

// pickCell runs the interactive cell browser and prints the build command
// for the selection.
func pickCell(items []cellItem) error {
	model := newCellListModel(items)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("interactive selection: %w", err)
	}
	m, ok := final.(cellListModel)
	if !ok || m.Selected == nil {
		return nil
	}
	printSuccess("Selected %s", m.Selected.Name)
	printNextStep("Build it", fmt.Sprintf("waveforge cells build %s", m.Selected.Name))
	return nil
}

// newCellsBuildCmd creates the "cells build" subcommand.
func newCellsBuildCmd() *cobra.Command {
	var (
		techFile string
		output   string
		sets     []string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "build <cell>",
		Short: "Build a cell and write it as component JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			name := args[0]

			params, err := parseParams(sets)
			if err != nil {
				return err
			}

			var store cache.Cache
			if !noCache {
				c, err := openCache()
				if err != nil {
					logger.Warn("cache unavailable, building fresh", "err", err)
				} else {
					store = c
					defer c.Close()
				}
			}

			p, err := loadPDK(techFile, store)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			spin := newSpinnerWithContext(ctx, "building "+name)
			spin.Start()
			comp, err := p.Cells.Build(ctx, name, params)
			spin.Stop()
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}
			prog.done(fmt.Sprintf("Built %s", comp.Name))

			path := output
			if path == "" {
				path = comp.Name + ".json"
			}
			if err := layout.WriteComponentFile(comp, path); err != nil {
				return err
			}

			printSuccess("Wrote %s", comp.Name)
			printFile(path)
			printDetail("%d polygons, %d ports, bounds %v", comp.PolygonCount(), len(comp.PortNames()), comp.Bounds())
			return nil
		},
	}

	cmd.Flags().StringVarP(&techFile, "tech", "t", "", "tech TOML file (default: built-in generic)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <component>.json)")
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "parameter override key=value (repeatable)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the component cache")
	return cmd
}

// cellItem is one row of the cell browser.
type cellItem struct {
	Name     string
	Defaults layout.Params
}

func cellItems(reg *layout.Registry) ([]cellItem, error) {
	names := reg.Names()
	items := make([]cellItem, 0, len(names))
	for _, name := range names {
		defaults, err := reg.Defaults(name)
		if err != nil {
			return nil, err
		}
		items = append(items, cellItem{Name: name, Defaults: defaults})
	}
	return items, nil
}

// formatDefaults renders parameters as "key=value key=value" in sorted
// key order.
func formatDefaults(p layout.Params) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, p[k])
	}
	return strings.Join(parts, "  ")
}

// parseParams converts --set key=value flags into build parameters.
// Values parse as float, then bool, then fall back to string.
func parseParams(sets []string) (layout.Params, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	params := make(layout.Params, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		if !ok || k == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid --set %q, want key=value", s)
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params[k] = f
		} else if b, err := strconv.ParseBool(v); err == nil {
			params[k] = b
		} else {
			params[k] = v
		}
	}
	return params, nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waveforge/waveforge/pkg/tech"
)

// newTechCmd creates the technology inspection command.
func newTechCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tech",
		Short: "Inspect technology (PDK) definitions",
	}

	cmd.AddCommand(newTechShowCmd())
	cmd.AddCommand(newTechValidateCmd())

	return cmd
}

// newTechShowCmd creates the "tech show" subcommand.
func newTechShowCmd() *cobra.Command {
	var techFile string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print layers, layer stack, and cross-sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPDK(techFile, nil)
			if err != nil {
				return err
			}
			t := p.Tech

			fmt.Println(StyleTitle.Render(t.Name))
			printNewline()

			printInfo("Layers")
			for _, name := range t.Layers.Names() {
				printKeyValue(name, t.Layers[name].String())
			}
			printNewline()

			printInfo("Layer stack")
			for _, name := range t.Stack.Names() {
				lvl := t.Stack[name]
				printKeyValue(name, fmt.Sprintf("%s  z=%g..%g um  %s",
					lvl.Layer.String(), lvl.ZMin, lvl.ZMax(), lvl.Material))
			}
			printNewline()

			printInfo("Cross-sections")
			for _, name := range p.XS.Names() {
				xs, err := p.XS.Get(name)
				if err != nil {
					return err
				}
				printKeyValue(name, fmt.Sprintf("width=%g um  layer=%s  radius=%g um",
					xs.Width, xs.LayerName, xs.Radius))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&techFile, "tech", "t", "", "tech TOML file (default: built-in generic)")
	return cmd
}

// newTechValidateCmd creates the "tech validate" subcommand.
func newTechValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a tech TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tech.Load(args[0])
			if err != nil {
				printError("%s", err)
				return err
			}
			printSuccess("%s is valid", args[0])
			printDetail("tech: %s, %d layers, %d stack levels, %d cross-sections",
				t.Name, len(t.Layers), len(t.Stack), len(t.CrossSections))
			return nil
		},
	}
}

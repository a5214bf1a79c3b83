package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waveforge/waveforge/pkg/errors"
	"github.com/waveforge/waveforge/pkg/geometry"
	"github.com/waveforge/waveforge/pkg/route"
)

// newRouteCmd creates the route computation command.
func newRouteCmd() *cobra.Command {
	var (
		techFile    string
		xsName      string
		fromStr     string
		toStr       string
		minStraight float64
		circular    bool
	)

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Compute an all-angle route between two poses",
		Long: `Compute an all-angle waveguide route between two poses.

Poses are given as "x,y,heading" in um and degrees, travel convention:
the from heading is the departure direction, the to heading the arrival
direction. Example:

  waveforge route --from 0,0,0 --to 50,30,90 --cross-section strip`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			from, err := parsePose(fromStr)
			if err != nil {
				return err
			}
			to, err := parsePose(toStr)
			if err != nil {
				return err
			}

			p, err := loadPDK(techFile, nil)
			if err != nil {
				return err
			}
			xs, err := p.XS.Get(xsName)
			if err != nil {
				return err
			}

			opts := route.Options{MinStraight: minStraight}
			if circular {
				opts.Shape = route.CircularBend{Radius: xs.Radius}
			}

			prog := newProgress(logger)
			rt, err := route.Poses(from, to, xs, opts)
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}
			prog.done("Routed")

			printSuccess("%s", rt)
			for _, e := range rt.Elements {
				if e.Kind == route.ElementStraight {
					printDetail("straight  %.3f um", e.Length)
				} else {
					printDetail("bend      %+.2f deg", e.Turn)
				}
			}
			end := rt.End()
			printDetail("ends at (%.3f, %.3f) heading %.2f deg",
				end.Position.X, end.Position.Y, end.Orientation)
			return nil
		},
	}

	cmd.Flags().StringVarP(&techFile, "tech", "t", "", "tech TOML file (default: built-in generic)")
	cmd.Flags().StringVarP(&xsName, "cross-section", "x", "strip", "cross-section name")
	cmd.Flags().StringVar(&fromStr, "from", "0,0,0", "departure pose x,y,heading")
	cmd.Flags().StringVar(&toStr, "to", "", "arrival pose x,y,heading")
	cmd.Flags().Float64Var(&minStraight, "min-straight", 0, "minimum straight length in um (default: cross-section minimum)")
	cmd.Flags().BoolVar(&circular, "circular", false, "use circular bends instead of Euler bends")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// parsePose parses "x,y,heading" into a pose.
func parsePose(s string) (geometry.Pose, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geometry.Pose{}, errors.New(errors.ErrCodeInvalidInput,
			"invalid pose %q, want x,y,heading", s)
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geometry.Pose{}, errors.Wrap(errors.ErrCodeInvalidInput, err,
				"invalid pose component %q", p)
		}
		vals[i] = v
	}
	return geometry.At(vals[0], vals[1], vals[2]), nil
}

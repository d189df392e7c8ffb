package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voxarel/showcase/internal/engine"
	"github.com/voxarel/showcase/internal/layout"
	"github.com/voxarel/showcase/internal/tour"
)

func (c *CLI) tourCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tour",
		Short: "Plan, list and inspect camera tours",
	}
	cmd.AddCommand(c.tourPlanCommand())
	cmd.AddCommand(c.tourInspectCommand())
	cmd.AddCommand(c.tourPresetsCommand())
	return cmd
}

func (c *CLI) tourPlanCommand() *cobra.Command {
	var (
		policy string
		output string
	)
	d := tour.NewDirector()

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a tour over a layout and write it as YAML",
		Long: `Plan a tour over a layout: an overview stop followed by one stop per
tier, bottom-up, each framing the tier with a label. The result is a tour
file that render, snapshot and preview accept via --tour.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := layout.ParsePolicy(policy)
			if err != nil {
				return err
			}
			l, err := layout.Generate(p)
			if err != nil {
				return err
			}
			t, err := d.Plan(l)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return tour.EncodeTour(cmd.OutOrStdout(), t)
			}
			if err := tour.WriteTour(t, output); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			loggerFromContext(cmd.Context()).Debug("tour planned", "stops", len(t.Stops), "cycle", t.CycleLength())
			printSuccess(cmd.OutOrStdout(), "Planned %d stops (%.1fs cycle)", len(t.Stops), t.CycleLength())
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&policy, "policy", layout.Inefficient.String(), "layout policy")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Float64Var(&d.Hold, "hold", d.Hold, "seconds held at each stop")
	cmd.Flags().Float64Var(&d.Transition, "transition", d.Transition, "seconds between stops")
	cmd.Flags().Float32Var(&d.Distance, "distance", d.Distance, "camera distance in region sizes")
	return cmd
}

func (c *CLI) tourInspectCommand() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "inspect <preset|file>",
		Short: "Show the tour state at given times",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			times, err := parseTimes(at)
			if err != nil {
				return err
			}
			t, err := loadTour(args[0])
			if err != nil {
				return err
			}
			return printInspect(cmd.OutOrStdout(), t, times)
		},
	}
	cmd.Flags().StringVar(&at, "at", "0", "comma separated elapsed times in seconds")
	return cmd
}

func (c *CLI) tourPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in tours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for _, name := range tour.Presets() {
				t, err := tour.Preset(name)
				if err != nil {
					return err
				}
				rows = append(rows, []string{name, fmt.Sprint(len(t.Stops)), fmt.Sprintf("%.1fs", t.CycleLength())})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Preset", "Stops", "Cycle"}, rows))
			return nil
		},
	}
}

// loadTour reads a tour file or an embedded preset. Planned tours need a
// layout, so an empty name is rejected here.
func loadTour(name string) (*tour.Tour, error) {
	if name == "" {
		return nil, errors.New("empty tour name")
	}
	return engine.ResolveTour(name, nil)
}

func parseTimes(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("--at: %w", err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errors.New("--at: no times given")
	}
	return out, nil
}

func printInspect(w io.Writer, t *tour.Tour, times []float64) error {
	fmt.Fprintln(w, styleTitle.Render(t.Name))
	printKeyValue(w, "Stops", fmt.Sprint(len(t.Stops)))
	printKeyValue(w, "Cycle", fmt.Sprintf("%.2fs", t.CycleLength()))

	rows := make([][]string, 0, len(times))
	for _, at := range times {
		f := t.FrameAt(at)
		label := "—"
		if f.Visible() {
			label = f.Annotation.Title
		}
		cam := f.Pose.Camera
		rows = append(rows, []string{
			fmt.Sprintf("%.2f", at),
			fmt.Sprintf("%d→%d", f.State.Stop, f.State.Next),
			f.State.Phase.String(),
			fmt.Sprintf("%.3f", f.State.Eased),
			fmt.Sprintf("(%.2f, %.2f, %.2f)", cam.X, cam.Y, cam.Z),
			label,
		})
	}
	fmt.Fprintln(w, renderTable([]string{"t", "Stop", "Phase", "Eased", "Camera", "Annotation"}, rows))
	return nil
}

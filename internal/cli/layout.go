package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/voxarel/showcase/internal/layout"
)

// layoutCommand prints a layout's tiers, or exports it.
func (c *CLI) layoutCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "layout [policy]",
		Short: "Show a container layout",
		Long: `Show the boxes a packing policy places in the container.

Policies: inefficient (manual, tiered), efficient (optimized, uniform) and
feature (the loading illustration). "before" and "after" are accepted as
aliases. With --format json or yaml the full box list is written instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := layout.Efficient.String()
			if len(args) == 1 {
				name = args[0]
			}
			return runLayout(cmd.OutOrStdout(), name, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json, yaml")
	return cmd
}

func runLayout(w io.Writer, name, format string) error {
	p, err := layout.ParsePolicy(name)
	if err != nil {
		return err
	}
	l, err := layout.Generate(p)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return layout.WriteJSON(w, l)
	case "yaml":
		return layout.WriteYAML(w, l)
	case "table":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("%s layout", p)))
	printKeyValue(w, "Container", fmt.Sprintf("%s (%.1f × %.1f × %.1f)",
		l.Envelope.Name, l.Envelope.Size.X, l.Envelope.Size.Y, l.Envelope.Size.Z))
	printKeyValue(w, "Boxes", fmt.Sprint(l.Len()))
	printKeyValue(w, "Utilization", fmt.Sprintf("%.1f%%", l.Utilization()*100))

	rows := make([][]string, 0, len(l.Tiers()))
	for _, tc := range l.Tiers() {
		boxes := l.TierBoxes(tc.Name)
		s := boxes[0].Size
		rows = append(rows, []string{
			tc.Name,
			fmt.Sprint(tc.Count),
			fmt.Sprintf("%.2f × %.2f × %.2f", s.X, s.Y, s.Z),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"Tier", "Boxes", "Box size"}, rows))
	return nil
}

// compareCommand prints the before/after statistics.
func (c *CLI) compareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare manual and optimized packing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp, err := layout.CompareCached(layout.NewCache())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, renderTable(
				[]string{"", "Boxes", "Fill"},
				[][]string{
					{"Manual", fmt.Sprint(cmp.Before), fmt.Sprintf("%.1f%%", cmp.BeforeFill*100)},
					{"AI-optimized", fmt.Sprint(cmp.After), fmt.Sprintf("%.1f%%", cmp.AfterFill*100)},
				},
			))
			printSuccess(w, "+%d boxes, %d%% more capacity", cmp.Extra, cmp.Improvement)
			return nil
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/voxarel/showcase/internal/api"
	"github.com/voxarel/showcase/internal/layout"
	"github.com/voxarel/showcase/internal/showcase"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts, tours and roles as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := showcase.LoadCatalog()
			if err != nil {
				return err
			}
			s := api.New(layout.NewCache(), catalog, loggerFromContext(cmd.Context()))
			return s.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

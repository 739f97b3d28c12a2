package commands

import (
	"github.com/spf13/cobra"

	"github.com/soypat/acgeom"
	"github.com/soypat/acgeom/render"
)

func outlineCmd(cfg *cliConfig) *cobra.Command {
	var (
		projections []string
		output      string
	)
	cmd := &cobra.Command{
		Use:   "outline AIRCRAFT.xml",
		Short: "Export nacelle outline coordinates as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var projs []acgeom.Projection
			for _, s := range projections {
				p, err := acgeom.ParseProjection(s)
				if err != nil {
					return err
				}
				projs = append(projs, p)
			}
			ac, err := load(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}
			components := outliners(ac.Nacelles)
			if output == "" || output == "-" {
				return render.WriteCSV(cmd.OutOrStdout(), components, projs...)
			}
			return render.CreateCSV(output, components, projs...)
		},
	}
	cmd.Flags().StringSliceVarP(&projections, "projection", "p", nil, "projections to export (xz-upper, xz-lower, xy-right, xy-left); all by default")
	cmd.Flags().StringVarP(&output, "out", "o", "-", "output file, - for stdout")
	return cmd
}

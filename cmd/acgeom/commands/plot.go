package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"github.com/soypat/acgeom/render"
)

func plotCmd(cfg *cliConfig) *cobra.Command {
	var (
		view   string
		output string
		width  float64
		height float64
	)
	cmd := &cobra.Command{
		Use:   "plot AIRCRAFT.xml",
		Short: "Draw the top or side view of every nacelle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := render.ParseView(view)
			if err != nil {
				return err
			}
			ac, err := load(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}
			components := outliners(ac.Nacelles)
			p, err := render.Plot(v, components...)
			if err != nil {
				return err
			}
			p.Title.Text = ac.Name + " " + p.Title.Text
			if err := render.CreateImage(output, p, vg.Length(width)*vg.Centimeter, vg.Length(height)*vg.Centimeter); err != nil {
				return err
			}
			cfg.log.Info("plot written", zap.String("path", output), zap.Stringer("view", v))
			return nil
		},
	}
	cmd.Flags().StringVar(&view, "view", "top", "view to draw (top or side)")
	cmd.Flags().StringVarP(&output, "out", "o", "nacelles.png", "output image; format from extension (png, svg, pdf)")
	cmd.Flags().Float64Var(&width, "width", 16, "image width in cm")
	cmd.Flags().Float64Var(&height, "height", 16, "image height in cm")
	return cmd
}

package commands

import (
	"github.com/spf13/cobra"
)

func reportCmd(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report AIRCRAFT.xml",
		Short: "Print derived geometry of every nacelle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := load(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}
			return ac.Nacelles.WriteReport(cmd.OutOrStdout())
		},
	}
	return cmd
}

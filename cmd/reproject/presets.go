package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shouni/gemini-reproject-kit/pkg/domain"
	"github.com/shouni/gemini-reproject-kit/pkg/prompt"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the camera presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tNAME\tAZIMUTH\tELEVATION\tDISTANCE\tVIEW")
		for _, p := range domain.Presets() {
			fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%s\n",
				p.Key, p.Name, p.Camera.Azimuth, p.Camera.Elevation, p.Camera.Distance, prompt.Clause(p.Camera))
		}
		return tw.Flush()
	},
}

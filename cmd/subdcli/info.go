package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <mesh.obj>",
	Short: "Print base level topology of a mesh",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		r, err := buildRefiner(cfg, args[0])
		if err != nil {
			return err
		}

		base := r.Level(0)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "scheme:       %v\n", r.SchemeType())
		fmt.Fprintf(out, "vertices:     %d\n", base.NumVertices())
		fmt.Fprintf(out, "edges:        %d\n", base.NumEdges())
		fmt.Fprintf(out, "faces:        %d\n", base.NumFaces())
		fmt.Fprintf(out, "max valence:  %d\n", base.MaxValence())
		fmt.Fprintf(out, "holes:        %v\n", r.HasHoles())
		for c := 0; c < r.NumFVarChannels(); c++ {
			fmt.Fprintf(out, "fvar[%d]:      %d values\n", c, base.NumFVarValues(c))
		}
		return nil
	},
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/subd"
)

var (
	refineAdaptive  bool
	refineLevel     int
	refineIsolation int
)

var refineCmd = &cobra.Command{
	Use:   "refine <mesh.obj>",
	Short: "Refine a mesh and print per-level topology",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("level") {
			cfg.Uniform.Level = refineLevel
		}
		if cmd.Flags().Changed("isolation") {
			cfg.Adaptive.Isolation = refineIsolation
		}

		r, err := buildRefiner(cfg, args[0])
		if err != nil {
			return err
		}
		if refineAdaptive {
			err = r.RefineAdaptive(cfg.AdaptiveOptions())
		} else {
			err = r.RefineUniform(cfg.UniformOptions())
		}
		if err != nil {
			return err
		}
		return printLevels(cmd, r)
	},
}

func init() {
	refineCmd.Flags().BoolVarP(&refineAdaptive, "adaptive", "a", false, "Feature-adaptive refinement instead of uniform")
	refineCmd.Flags().IntVarP(&refineLevel, "level", "l", 0, "Uniform refinement depth")
	refineCmd.Flags().IntVarP(&refineIsolation, "isolation", "i", 0, "Adaptive isolation depth")
}

func printLevels(cmd *cobra.Command, r *subd.Refiner) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "level\tvertices\tedges\tfaces")
	for _, lv := range r.Levels() {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", lv.Depth(), lv.NumVertices(), lv.NumEdges(), lv.NumFaces())
	}
	fmt.Fprintf(w, "total\t%d\t%d\t%d\n", r.NumVerticesTotal(), r.NumEdgesTotal(), r.NumFacesTotal())
	return w.Flush()
}

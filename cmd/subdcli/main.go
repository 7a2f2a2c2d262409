// Command subdcli builds subdivision refinement hierarchies from OBJ
// meshes and reports their per-level topology.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/subd"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "subdcli",
	Short: "Inspect and refine subdivision surface topology",
	Long: `subdcli loads a polygonal mesh from an OBJ file, builds a subdivision
refinement hierarchy with the subd library, and reports the topology of
every level.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			subd.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML refinement config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(refineCmd)
}

// loadMesh reads an OBJ file into a mesh descriptor.
func loadMesh(path string) (subd.MeshDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return subd.MeshDescriptor{}, err
	}
	defer f.Close()
	desc, err := readOBJ(f)
	if err != nil {
		return subd.MeshDescriptor{}, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

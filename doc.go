// Package subd builds refinement hierarchies for subdivision surfaces from
// polygonal base meshes.
//
// # Overview
//
// subd is a pure Go topology-refinement library in the GoGPU family. From a
// single base mesh it derives a stack of progressively subdivided topology
// levels, either uniformly (every face of every level is split) or
// feature-adaptively (refinement concentrates where the surface is
// topologically irregular: extraordinary vertices, creases, corners,
// non-manifold regions, and face-varying seams).
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/subd"
//		"github.com/gogpu/subd/scheme"
//	)
//
//	// Describe the base mesh (a single quad here).
//	desc := subd.MeshDescriptor{
//		NumVertices:       4,
//		FaceVertexCounts:  []int{4},
//		FaceVertexIndices: []int{0, 1, 2, 3},
//	}
//
//	// Build a refiner for the Catmull-Clark scheme and refine.
//	r, err := subd.NewRefiner(desc, scheme.CatmullClark, scheme.Options{})
//	if err != nil {
//		// handle err
//	}
//	if err := r.RefineUniform(subd.UniformOptions{RefinementLevel: 2}); err != nil {
//		// handle err
//	}
//
//	for _, lv := range r.Levels() {
//		fmt.Println(lv.Depth(), lv.NumFaces())
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Refiner, MeshDescriptor, LevelView, FeatureMask
//   - scheme: subdivision scheme variants and their capability table
//   - Internal: vtr (topology levels and refinement steps),
//     parallel (worker pool for face classification)
//
// # Scope
//
// subd is purely topological: it never computes vertex positions or limit
// geometry. Its output is the level stack, the per-component tags, and the
// parent-to-child mappings that patch construction and geometry stages
// consume.
package subd

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)

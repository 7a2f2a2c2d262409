package subd

// maxRefinementLevel caps the depth of any hierarchy. Component counts grow
// geometrically with depth, so deeper levels exhaust memory long before they
// add surface fidelity.
const maxRefinementLevel = 10

// UniformOptions configures RefineUniform.
//
// The zero value refines nothing; set RefinementLevel to the desired depth.
//
// Example:
//
//	err := r.RefineUniform(subd.UniformOptions{RefinementLevel: 3})
type UniformOptions struct {
	// RefinementLevel is the depth of the last level to generate. Level 0
	// is the base mesh, so RefinementLevel uniform passes are applied.
	// Values above the library maximum are clamped.
	RefinementLevel int

	// OrderVerticesFromFacesFirst orders each child level's vertices by
	// origin as (faces, edges, vertices) instead of the default
	// (vertices, edges, faces).
	OrderVerticesFromFacesFirst bool

	// FullTopologyInLastLevel retains complete adjacency and tags in the
	// deepest level. By default the last level keeps only minimal
	// topology, since nothing refines beyond it.
	FullTopologyInLastLevel bool
}

// AdaptiveOptions configures RefineAdaptive.
//
// The zero value isolates nothing; set IsolationLevel to the maximum depth
// irregular features may be isolated to.
type AdaptiveOptions struct {
	// IsolationLevel is the maximum depth to which irregular features are
	// isolated. Values above the library maximum are clamped.
	IsolationLevel int

	// SecondaryLevel, when positive and below IsolationLevel, switches
	// selection to a reduced feature set beyond that depth: extraordinary
	// vertices stop propagating isolation, and with UseInfSharpPatch only
	// the sharpest irregular corners continue. Zero disables the
	// reduction.
	SecondaryLevel int

	// UseSingleCreasePatch stops isolating regular faces whose only
	// feature is a single semi-sharp crease running through them, leaving
	// them to a dedicated patch representation.
	UseSingleCreasePatch bool

	// UseInfSharpPatch stops isolating regular infinitely sharp creases
	// and corners, leaving them to a dedicated patch representation.
	UseInfSharpPatch bool

	// ConsiderFVarChannels extends classification to face-varying
	// channels, so that seams interior to regular patches are isolated
	// too.
	ConsiderFVarChannels bool

	// OrderVerticesFromFacesFirst orders each child level's vertices by
	// origin as (faces, edges, vertices) instead of the default
	// (vertices, edges, faces).
	OrderVerticesFromFacesFirst bool

	// Parallelism bounds the number of goroutines classifying faces.
	// Values below 2 classify serially.
	Parallelism int
}

package subd

import "github.com/gogpu/subd/scheme"

// FeatureMask is the set of topological features that cause a face to be
// selected for further adaptive refinement. Two masks drive a hierarchy: the
// full mask up to the secondary level, and a reduced mask beyond it.
//
// The zero value selects nothing.
type FeatureMask struct {
	// XOrdinaryInterior and XOrdinaryBoundary select faces with an
	// extraordinary vertex in the interior or on a boundary.
	XOrdinaryInterior bool
	XOrdinaryBoundary bool

	// SemiSharpSingle selects regular faces crossed by a single decaying
	// crease; SemiSharpNonSingle selects every other semi-sharp
	// configuration.
	SemiSharpSingle    bool
	SemiSharpNonSingle bool

	// The InfSharp fields select faces by their permanent crease
	// configuration: regular creases and corners, and the irregular
	// dart, crease, and corner configurations.
	InfSharpRegularCrease   bool
	InfSharpRegularCorner   bool
	InfSharpIrregularDart   bool
	InfSharpIrregularCrease bool
	InfSharpIrregularCorner bool

	// NonManifold selects faces touching non-manifold topology.
	NonManifold bool

	// FVarFeatures extends selection to the features of non-linear
	// face-varying channels.
	FVarFeatures bool
}

// NewFeatureMask returns the full feature mask for the given adaptive
// options and scheme. Features excluded here are the ones a dedicated patch
// representation will capture without isolation.
func NewFeatureMask(opts AdaptiveOptions, tr scheme.Traits) FeatureMask {
	// The single-crease patch exists only for quad-split schemes.
	singleCrease := opts.UseSingleCreasePatch && tr.RegularFaceSize == 4

	return FeatureMask{
		XOrdinaryInterior:       true,
		XOrdinaryBoundary:       true,
		SemiSharpSingle:         !singleCrease,
		SemiSharpNonSingle:      true,
		InfSharpRegularCrease:   !(opts.UseInfSharpPatch || singleCrease),
		InfSharpRegularCorner:   !opts.UseInfSharpPatch,
		InfSharpIrregularDart:   true,
		InfSharpIrregularCrease: true,
		InfSharpIrregularCorner: true,
		NonManifold:             true,
		FVarFeatures:            opts.ConsiderFVarChannels,
	}
}

// ReduceFeatures trims the mask to the reduced set applied beyond the
// secondary level: extraordinary vertices no longer propagate isolation,
// and with inf-sharp patches in use only the sharpest irregular corners
// keep isolating. Without inf-sharp patches the inf-sharp features must
// keep isolating to full depth, so they are left untouched.
func (m *FeatureMask) ReduceFeatures(opts AdaptiveOptions) {
	m.XOrdinaryInterior = false
	m.XOrdinaryBoundary = false

	if opts.UseInfSharpPatch {
		m.InfSharpRegularCrease = false
		m.InfSharpRegularCorner = false
		m.InfSharpIrregularDart = false
		m.InfSharpIrregularCrease = false
	}
}

// Clear empties the mask.
func (m *FeatureMask) Clear() { *m = FeatureMask{} }

// IsEmpty reports whether the mask selects nothing.
func (m FeatureMask) IsEmpty() bool { return m == FeatureMask{} }

package scheme

// BoundaryInterpolation controls how vertex data is interpolated along mesh
// boundaries. Boundary edges are treated as infinitely sharp creases unless
// interpolation is disabled entirely.
type BoundaryInterpolation int

const (
	// BoundaryEdgeOnly sharpens boundary edges but leaves boundary
	// vertices to the crease rules. This is the default.
	BoundaryEdgeOnly BoundaryInterpolation = iota

	// BoundaryEdgeAndCorner additionally sharpens mesh corners (boundary
	// vertices with a single incident face) so they interpolate their
	// data exactly.
	BoundaryEdgeAndCorner

	// BoundaryNone applies no boundary sharpening.
	BoundaryNone
)

// String returns the boundary interpolation name.
func (b BoundaryInterpolation) String() string {
	switch b {
	case BoundaryEdgeOnly:
		return "edge-only"
	case BoundaryEdgeAndCorner:
		return "edge-and-corner"
	case BoundaryNone:
		return "none"
	}
	return "unknown"
}

// CreasingMethod selects how semi-sharp crease sharpness decays from one
// level to the next.
type CreasingMethod int

const (
	// CreasingUniform subtracts one from the sharpness of every child
	// crease edge. This is the default.
	CreasingUniform CreasingMethod = iota

	// CreasingChaikin blends the sharpness of neighboring crease edges
	// at each end vertex before subtracting, yielding smoother sharpness
	// transitions along a crease.
	CreasingChaikin
)

// String returns the creasing method name.
func (c CreasingMethod) String() string {
	switch c {
	case CreasingUniform:
		return "uniform"
	case CreasingChaikin:
		return "chaikin"
	}
	return "unknown"
}

// FVarLinearInterpolation controls how face-varying data interpolates at
// face-varying boundaries (seams).
type FVarLinearInterpolation int

const (
	// FVarLinearAll interpolates all face-varying data linearly. A
	// channel under this rule has no smooth features of its own. This is
	// the default.
	FVarLinearAll FVarLinearInterpolation = iota

	// FVarLinearBoundaries interpolates linearly along seams only.
	FVarLinearBoundaries

	// FVarLinearNone applies the full smooth rules to face-varying data,
	// with seams acting as infinitely sharp boundaries.
	FVarLinearNone
)

// String returns the face-varying interpolation name.
func (f FVarLinearInterpolation) String() string {
	switch f {
	case FVarLinearAll:
		return "all"
	case FVarLinearBoundaries:
		return "boundaries"
	case FVarLinearNone:
		return "none"
	}
	return "unknown"
}

// Options carries the scheme-wide subdivision options fixed at refiner
// construction. The zero value holds the default for every field.
type Options struct {
	VtxBoundaryInterpolation BoundaryInterpolation
	FVarLinearInterpolation  FVarLinearInterpolation
	CreasingMethod           CreasingMethod
}

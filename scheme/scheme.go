// Package scheme defines the subdivision scheme variants supported by subd
// and the per-scheme capability table used by the topology refiner.
//
// A scheme is identified by a Type tag. Everything the refiner needs to know
// about a scheme — its topological split, regular face size and valence, the
// extent of its local neighborhood influence, and whether it supports
// feature-adaptive refinement — is carried by a Traits value obtained from
// TraitsFor. Traits are injected into the refiner rather than looked up
// globally, so alternative capability tables can be tested in isolation.
package scheme

// Type identifies a subdivision scheme variant.
type Type int

const (
	// Bilinear is simple linear interpolation on quads. Its subdivision
	// rules have no influence beyond the face itself, so feature-adaptive
	// refinement degenerates to isolating irregular faces only.
	Bilinear Type = iota

	// CatmullClark is the quad-based Catmull-Clark scheme.
	CatmullClark

	// Loop is the triangle-based Loop scheme.
	Loop
)

// String returns the scheme name.
func (t Type) String() string {
	switch t {
	case Bilinear:
		return "bilinear"
	case CatmullClark:
		return "catmull-clark"
	case Loop:
		return "loop"
	}
	return "unknown"
}

// Split is the topological split applied by a refinement pass.
type Split int

const (
	// SplitToQuads splits every face of size n into n quads.
	SplitToQuads Split = iota

	// SplitToTris splits every triangle into 4 triangles.
	SplitToTris
)

// String returns the split name.
func (s Split) String() string {
	switch s {
	case SplitToQuads:
		return "quads"
	case SplitToTris:
		return "tris"
	}
	return "unknown"
}

// Traits is the capability table entry for a scheme.
type Traits struct {
	// Split is the topological split type fixed by the scheme.
	Split Split

	// RegularFaceSize is the face valence considered regular: 4 for
	// quad-split schemes, 3 for triangle-split schemes.
	RegularFaceSize int

	// RegularVertexValence is the interior vertex valence considered
	// regular. Boundary vertices are regular at half this many incident
	// faces, or a single incident face (a mesh corner).
	RegularVertexValence int

	// LocalNeighborhoodSize is the extent of a vertex's influence on the
	// subdivided surface, in rings of faces. Zero means subdivision rules
	// never reach beyond the face, so topological features at the corners
	// carry no weight during adaptive refinement.
	LocalNeighborhoodSize int

	// SupportsAdaptive reports whether feature-adaptive refinement is
	// implemented for the scheme.
	SupportsAdaptive bool
}

// TraitsFor returns the capability table entry for the scheme.
func TraitsFor(t Type) Traits {
	switch t {
	case Bilinear:
		return Traits{
			Split:                 SplitToQuads,
			RegularFaceSize:       4,
			RegularVertexValence:  4,
			LocalNeighborhoodSize: 0,
			SupportsAdaptive:      true,
		}
	case CatmullClark:
		return Traits{
			Split:                 SplitToQuads,
			RegularFaceSize:       4,
			RegularVertexValence:  4,
			LocalNeighborhoodSize: 1,
			SupportsAdaptive:      true,
		}
	case Loop:
		return Traits{
			Split:                 SplitToTris,
			RegularFaceSize:       3,
			RegularVertexValence:  6,
			LocalNeighborhoodSize: 1,
			SupportsAdaptive:      false,
		}
	}
	return Traits{}
}

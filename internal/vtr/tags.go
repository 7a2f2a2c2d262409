// Package vtr holds the concrete topology collaborators of the refiner: the
// per-depth Level snapshot, the quad and triangle refinement steps between
// levels, and the sparse face selector that drives adaptive refinement.
//
// Levels are immutable once finalized. The only code that produces a level
// beyond depth 0 is a Refinement, and the only code that mutates a level
// during construction lives in this package.
package vtr

import "github.com/gogpu/subd/scheme"

// VTag carries the topological classification of a single vertex, designed
// so tags gathered from the corners of a face can be combined with Or to
// make collective decisions about the face's whole neighborhood.
type VTag struct {
	// Boundary is set when the vertex lies on a boundary edge.
	Boundary bool

	// Corner is set when the vertex is a mesh corner (a boundary vertex
	// with a single incident face) sharpened only by the boundary
	// interpolation rule, not by explicit sharpness.
	Corner bool

	// XOrdinary is set when the vertex valence differs from the regular
	// valence for the scheme, accounting for boundary position.
	XOrdinary bool

	// NonManifold is set when the vertex touches non-manifold topology.
	NonManifold bool

	// Incomplete is set when the vertex was produced by a sparse
	// refinement that did not select its parent's full neighborhood, so
	// its adjacency in this level is not that of the true surface.
	Incomplete bool

	// SemiSharp and SemiSharpEdges mark decaying sharpness at the vertex
	// itself and at its incident edges.
	SemiSharp      bool
	SemiSharpEdges bool

	// InfSharp and InfSharpEdges mark permanent sharpness at the vertex
	// itself and at its incident edges, including implicit boundary
	// sharpening.
	InfSharp      bool
	InfSharpEdges bool

	// Rule is the crease rule governing the vertex's subdivision mask.
	Rule scheme.Rule
}

// Or returns the bitwise combination of two tags. Boolean fields or
// together; the rules union their bits.
func (t VTag) Or(o VTag) VTag {
	return VTag{
		Boundary:       t.Boundary || o.Boundary,
		Corner:         t.Corner || o.Corner,
		XOrdinary:      t.XOrdinary || o.XOrdinary,
		NonManifold:    t.NonManifold || o.NonManifold,
		Incomplete:     t.Incomplete || o.Incomplete,
		SemiSharp:      t.SemiSharp || o.SemiSharp,
		SemiSharpEdges: t.SemiSharpEdges || o.SemiSharpEdges,
		InfSharp:       t.InfSharp || o.InfSharp,
		InfSharpEdges:  t.InfSharpEdges || o.InfSharpEdges,
		Rule:           t.Rule | o.Rule,
	}
}

// CombineVTags aggregates a set of corner tags into one composite tag.
func CombineVTags(tags []VTag) VTag {
	var agg VTag
	for _, t := range tags {
		agg = agg.Or(t)
	}
	return agg
}

// ETag carries the topological classification of a single edge.
type ETag struct {
	// Boundary is set when exactly one face is incident to the edge.
	Boundary bool

	// NonManifold is set when more than two faces are incident.
	NonManifold bool

	// SemiSharp and InfSharp reflect the edge's explicit sharpness.
	SemiSharp bool
	InfSharp  bool
}

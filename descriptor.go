package subd

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the refiner. All other errors wrap one of
// these or describe an invalid descriptor.
var (
	// ErrInvalidTopology indicates a mesh descriptor that does not
	// describe a consistent polygonal mesh.
	ErrInvalidTopology = errors.New("subd: invalid topology")

	// ErrEmptyBaseLevel indicates a refinement attempt on a refiner whose
	// base mesh has no faces.
	ErrEmptyBaseLevel = errors.New("subd: base level has no faces")

	// ErrAlreadyRefined indicates a second refinement attempt. A refiner
	// is refined at most once; call Unrefine first to rebuild.
	ErrAlreadyRefined = errors.New("subd: refiner is already refined")

	// ErrAdaptiveUnsupported indicates adaptive refinement on a scheme
	// without feature-adaptive support.
	ErrAdaptiveUnsupported = errors.New("subd: scheme does not support adaptive refinement")

	// ErrUnknownScheme indicates a scheme type outside the capability
	// table.
	ErrUnknownScheme = errors.New("subd: unknown subdivision scheme")
)

// Crease assigns sharpness to the base mesh edge joining two vertices.
type Crease struct {
	V0, V1    int
	Sharpness float32
}

// Corner assigns sharpness to a base mesh vertex.
type Corner struct {
	Vertex    int
	Sharpness float32
}

// FVarChannel declares a face-varying channel over the base mesh: a second
// assignment of indices to the face-vertex slots that may diverge from the
// vertex assignment along seams (texture boundaries and the like).
//
// ValueIndices parallels MeshDescriptor.FaceVertexIndices.
type FVarChannel struct {
	NumValues    int
	ValueIndices []int
}

// MeshDescriptor describes the base mesh a Refiner is built from: raw
// polygon-soup topology plus optional creases, corners, holes, and
// face-varying channels.
//
// Faces are polygons of three or more vertices. FaceVertexCounts holds the
// size of each face and FaceVertexIndices the vertex indices of all faces
// packed in face order.
type MeshDescriptor struct {
	NumVertices       int
	FaceVertexCounts  []int
	FaceVertexIndices []int

	Creases []Crease
	Corners []Corner

	// Holes lists faces excluded from the surface. Hole faces refine like
	// any other under uniform refinement but are never selected for
	// adaptive refinement, and the hole marking follows their children.
	Holes []int

	FVarChannels []FVarChannel
}

// validate checks the descriptor fields that do not require derived
// adjacency. Crease edges are resolved later, against the finalized base
// level.
func (d *MeshDescriptor) validate() error {
	if d.NumVertices < 0 {
		return fmt.Errorf("%w: negative vertex count %d", ErrInvalidTopology, d.NumVertices)
	}
	numFaces := len(d.FaceVertexCounts)
	for _, c := range d.Corners {
		if c.Vertex < 0 || c.Vertex >= d.NumVertices {
			return fmt.Errorf("%w: corner vertex %d out of range [0,%d)",
				ErrInvalidTopology, c.Vertex, d.NumVertices)
		}
	}
	for _, cr := range d.Creases {
		for _, v := range [2]int{cr.V0, cr.V1} {
			if v < 0 || v >= d.NumVertices {
				return fmt.Errorf("%w: crease vertex %d out of range [0,%d)",
					ErrInvalidTopology, v, d.NumVertices)
			}
		}
	}
	for _, h := range d.Holes {
		if h < 0 || h >= numFaces {
			return fmt.Errorf("%w: hole face %d out of range [0,%d)",
				ErrInvalidTopology, h, numFaces)
		}
	}
	for i, ch := range d.FVarChannels {
		if len(ch.ValueIndices) != len(d.FaceVertexIndices) {
			return fmt.Errorf("%w: channel %d has %d value indices, mesh has %d face-vertices",
				ErrInvalidTopology, i, len(ch.ValueIndices), len(d.FaceVertexIndices))
		}
	}
	return nil
}

package vtr

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"

	"github.com/gogpu/subd/scheme"
)

// Level is one immutable-once-finalized topology snapshot in the refinement
// hierarchy. Depth 0 holds the base mesh; deeper levels are produced only by
// a Refinement.
//
// A level is built in three stages: face-vertex topology is supplied first,
// Finalize derives edges and adjacency from it, and ComputeTags classifies
// every component. After that the level only answers queries.
type Level struct {
	depth       int
	numVertices int

	faceVertOffsets []int // len numFaces+1, offsets into faceVertIndices
	faceVertIndices []int
	faceEdges       []int // edge index per face-vertex slot, parallel to faceVertIndices

	edgeVerts [][2]int
	edgeFaces [][]int

	vertFaceOffsets []int
	vertFaceList    []int
	vertEdgeOffsets []int
	vertEdgeList    []int

	maxValence int
	minimal    bool

	vSharpness []float32
	eSharpness []float32

	vTags []VTag
	eTags []ETag

	// vIncomplete marks vertices whose parent neighborhood was not fully
	// selected by a sparse refinement. Nil for dense levels.
	vIncomplete []bool

	holes *roaring.Bitmap
	fvar  []*FVarChannel
}

// NewLevel returns an empty level at the given depth.
func NewLevel(depth int) *Level {
	return &Level{depth: depth, holes: roaring.New()}
}

// SetTopology supplies the raw face-vertex topology of the level. Counts and
// indices follow the usual polygon-soup layout: faceVertCounts[i] vertices
// per face, indices packed in face order.
func (l *Level) SetTopology(numVertices int, faceVertCounts, faceVertIndices []int) error {
	total := 0
	for i, n := range faceVertCounts {
		if n < 3 {
			return fmt.Errorf("face %d has %d vertices, need at least 3", i, n)
		}
		total += n
	}
	if total != len(faceVertIndices) {
		return fmt.Errorf("face-vertex counts sum to %d but %d indices given",
			total, len(faceVertIndices))
	}
	for i, v := range faceVertIndices {
		if v < 0 || v >= numVertices {
			return fmt.Errorf("face-vertex index %d out of range [0,%d) at slot %d",
				v, numVertices, i)
		}
	}

	l.numVertices = numVertices
	l.faceVertOffsets = make([]int, len(faceVertCounts)+1)
	for i, n := range faceVertCounts {
		l.faceVertOffsets[i+1] = l.faceVertOffsets[i] + n
	}
	l.faceVertIndices = faceVertIndices
	return nil
}

// Depth returns the level's depth in the hierarchy.
func (l *Level) Depth() int { return l.depth }

// NumVertices returns the vertex count.
func (l *Level) NumVertices() int { return l.numVertices }

// NumEdges returns the edge count. Zero before Finalize.
func (l *Level) NumEdges() int { return len(l.edgeVerts) }

// NumFaces returns the face count.
func (l *Level) NumFaces() int {
	if len(l.faceVertOffsets) == 0 {
		return 0
	}
	return len(l.faceVertOffsets) - 1
}

// NumFaceVerticesTotal returns the summed size of all faces.
func (l *Level) NumFaceVerticesTotal() int { return len(l.faceVertIndices) }

// MaxValence returns the highest vertex valence in the level.
func (l *Level) MaxValence() int { return l.maxValence }

// FaceVertices returns the vertex indices of a face, in winding order. The
// returned slice aliases level storage and must not be modified.
func (l *Level) FaceVertices(f int) []int {
	return l.faceVertIndices[l.faceVertOffsets[f]:l.faceVertOffsets[f+1]]
}

// FaceEdgeIndices returns the edge index for each side of a face, where side
// i joins face vertices i and i+1.
func (l *Level) FaceEdgeIndices(f int) []int {
	return l.faceEdges[l.faceVertOffsets[f]:l.faceVertOffsets[f+1]]
}

// VertexFaces returns the faces incident to a vertex.
func (l *Level) VertexFaces(v int) []int {
	return l.vertFaceList[l.vertFaceOffsets[v]:l.vertFaceOffsets[v+1]]
}

// VertexEdges returns the edges incident to a vertex.
func (l *Level) VertexEdges(v int) []int {
	return l.vertEdgeList[l.vertEdgeOffsets[v]:l.vertEdgeOffsets[v+1]]
}

// EdgeVertices returns the two end vertices of an edge.
func (l *Level) EdgeVertices(e int) [2]int { return l.edgeVerts[e] }

// EdgeFaces returns the faces incident to an edge.
func (l *Level) EdgeFaces(e int) []int { return l.edgeFaces[e] }

// VertexTag returns the vertex's topological tag.
func (l *Level) VertexTag(v int) VTag { return l.vTags[v] }

// EdgeTag returns the edge's topological tag.
func (l *Level) EdgeTag(e int) ETag { return l.eTags[e] }

// GatherFaceVTags appends the tags of a face's corners to buf and returns
// the extended slice.
func (l *Level) GatherFaceVTags(f int, buf []VTag) []VTag {
	for _, v := range l.FaceVertices(f) {
		buf = append(buf, l.vTags[v])
	}
	return buf
}

// SetFaceHole marks a face as a hole. Hole faces are never selected for
// adaptive refinement.
func (l *Level) SetFaceHole(f int) { l.holes.Add(uint32(f)) }

// IsFaceHole reports whether a face is a hole.
func (l *Level) IsFaceHole(f int) bool { return l.holes.Contains(uint32(f)) }

// HasHoles reports whether any face is a hole.
func (l *Level) HasHoles() bool { return !l.holes.IsEmpty() }

// VertexSharpness returns the explicit sharpness of a vertex.
func (l *Level) VertexSharpness(v int) float32 {
	if l.vSharpness == nil {
		return 0
	}
	return l.vSharpness[v]
}

// EdgeSharpness returns the explicit sharpness of an edge.
func (l *Level) EdgeSharpness(e int) float32 {
	if l.eSharpness == nil {
		return 0
	}
	return l.eSharpness[e]
}

// SetVertexSharpness sets the explicit sharpness of a vertex. Valid only
// before ComputeTags.
func (l *Level) SetVertexSharpness(v int, s float32) {
	if l.vSharpness == nil {
		l.vSharpness = make([]float32, l.numVertices)
	}
	l.vSharpness[v] = scheme.ClampSharpness(s)
}

// SetEdgeSharpnessByIndex sets the explicit sharpness of an edge. Valid only
// after Finalize and before ComputeTags.
func (l *Level) SetEdgeSharpnessByIndex(e int, s float32) {
	if l.eSharpness == nil {
		l.eSharpness = make([]float32, len(l.edgeVerts))
	}
	l.eSharpness[e] = scheme.ClampSharpness(s)
}

// FindEdge returns the index of the edge joining two vertices, or -1.
func (l *Level) FindEdge(v0, v1 int) int {
	if v0 < 0 || v1 < 0 || v0 >= l.numVertices || v1 >= l.numVertices {
		return -1
	}
	for _, e := range l.VertexEdges(v0) {
		ev := l.edgeVerts[e]
		if ev[0] == v1 || ev[1] == v1 {
			return e
		}
	}
	return -1
}

// markVertexIncomplete flags a vertex as bordering a sparse-selection
// boundary. Called by refinements only.
func (l *Level) markVertexIncomplete(v int) {
	if l.vIncomplete == nil {
		l.vIncomplete = make([]bool, l.numVertices)
	}
	l.vIncomplete[v] = true
}

// Finalize derives edges and, unless minimal, full vertex adjacency from the
// face-vertex topology. Minimal levels keep only what the hierarchy
// inventory needs: edge count and maximum valence.
func (l *Level) Finalize(minimal bool) error {
	l.minimal = minimal

	type edgeKey struct{ lo, hi int }
	edgeIndex := make(map[edgeKey]int)

	numFaces := l.NumFaces()
	l.faceEdges = make([]int, len(l.faceVertIndices))

	for f := 0; f < numFaces; f++ {
		verts := l.FaceVertices(f)
		base := l.faceVertOffsets[f]
		for i, v0 := range verts {
			v1 := verts[(i+1)%len(verts)]
			if v0 == v1 {
				return fmt.Errorf("face %d repeats vertex %d on an edge", f, v0)
			}
			k := edgeKey{v0, v1}
			if k.lo > k.hi {
				k.lo, k.hi = k.hi, k.lo
			}
			e, ok := edgeIndex[k]
			if !ok {
				e = len(l.edgeVerts)
				edgeIndex[k] = e
				l.edgeVerts = append(l.edgeVerts, [2]int{k.lo, k.hi})
				l.edgeFaces = append(l.edgeFaces, nil)
			}
			l.edgeFaces[e] = append(l.edgeFaces[e], f)
			l.faceEdges[base+i] = e
		}
	}

	// Valence from the edge list alone; enough for minimal levels.
	valence := make([]int, l.numVertices)
	for _, ev := range l.edgeVerts {
		valence[ev[0]]++
		valence[ev[1]]++
	}
	l.maxValence = 0
	for _, n := range valence {
		if n > l.maxValence {
			l.maxValence = n
		}
	}

	if minimal {
		return nil
	}

	// Vertex-to-edge rings.
	l.vertEdgeOffsets = make([]int, l.numVertices+1)
	for _, ev := range l.edgeVerts {
		l.vertEdgeOffsets[ev[0]+1]++
		l.vertEdgeOffsets[ev[1]+1]++
	}
	for v := 0; v < l.numVertices; v++ {
		l.vertEdgeOffsets[v+1] += l.vertEdgeOffsets[v]
	}
	l.vertEdgeList = make([]int, l.vertEdgeOffsets[l.numVertices])
	fillE := make([]int, l.numVertices)
	for e, ev := range l.edgeVerts {
		for _, v := range ev {
			l.vertEdgeList[l.vertEdgeOffsets[v]+fillE[v]] = e
			fillE[v]++
		}
	}

	// Vertex-to-face rings.
	l.vertFaceOffsets = make([]int, l.numVertices+1)
	for _, v := range l.faceVertIndices {
		l.vertFaceOffsets[v+1]++
	}
	for v := 0; v < l.numVertices; v++ {
		l.vertFaceOffsets[v+1] += l.vertFaceOffsets[v]
	}
	l.vertFaceList = make([]int, l.vertFaceOffsets[l.numVertices])
	fillF := make([]int, l.numVertices)
	for f := 0; f < numFaces; f++ {
		for _, v := range l.FaceVertices(f) {
			l.vertFaceList[l.vertFaceOffsets[v]+fillF[v]] = f
			fillF[v]++
		}
	}
	return nil
}

// effectiveEdgeSharpness folds implicit boundary sharpening into an edge's
// explicit sharpness.
func (l *Level) effectiveEdgeSharpness(e int, opts scheme.Options) float32 {
	if opts.VtxBoundaryInterpolation != scheme.BoundaryNone && len(l.edgeFaces[e]) == 1 {
		return scheme.InfinitelySharp
	}
	return l.EdgeSharpness(e)
}

// effectiveVertexSharpness folds implicit corner sharpening into a vertex's
// explicit sharpness. The implicit flag reports when the sharpness stems
// from the boundary-interpolation corner rule rather than user data.
func (l *Level) effectiveVertexSharpness(v int, opts scheme.Options) (sharp float32, implicit bool) {
	s := l.VertexSharpness(v)
	if opts.VtxBoundaryInterpolation == scheme.BoundaryEdgeAndCorner &&
		!scheme.IsSharp(s) && l.isMeshCorner(v) {
		return scheme.InfinitelySharp, true
	}
	return s, false
}

// isMeshCorner reports whether a vertex is a boundary vertex with a single
// incident face.
func (l *Level) isMeshCorner(v int) bool {
	if l.vertFaceOffsets[v+1]-l.vertFaceOffsets[v] != 1 {
		return false
	}
	for _, e := range l.VertexEdges(v) {
		if len(l.edgeFaces[e]) == 1 {
			return true
		}
	}
	return false
}

// ComputeTags classifies every edge and vertex of a finalized level. Sparse
// incompleteness set via markVertexIncomplete is preserved; everything else
// is derived from the level's own topology and sharpness.
func (l *Level) ComputeTags(tr scheme.Traits, opts scheme.Options) {
	if l.minimal {
		return
	}

	l.eTags = make([]ETag, len(l.edgeVerts))
	for e := range l.edgeVerts {
		s := l.EdgeSharpness(e)
		l.eTags[e] = ETag{
			Boundary:    len(l.edgeFaces[e]) == 1,
			NonManifold: len(l.edgeFaces[e]) > 2,
			SemiSharp:   scheme.IsSemiSharp(s),
			InfSharp:    scheme.IsInfSharp(s) || l.effectiveEdgeSharpness(e, opts) >= scheme.InfinitelySharp,
		}
	}

	l.vTags = make([]VTag, l.numVertices)
	for v := 0; v < l.numVertices; v++ {
		tag := &l.vTags[v]

		nFaces := l.vertFaceOffsets[v+1] - l.vertFaceOffsets[v]
		sharpEdges := 0
		for _, e := range l.VertexEdges(v) {
			et := l.eTags[e]
			tag.Boundary = tag.Boundary || et.Boundary
			tag.NonManifold = tag.NonManifold || et.NonManifold
			tag.SemiSharpEdges = tag.SemiSharpEdges || et.SemiSharp
			tag.InfSharpEdges = tag.InfSharpEdges || et.InfSharp
			if scheme.IsSharp(l.effectiveEdgeSharpness(e, opts)) {
				sharpEdges++
			}
		}

		vs, implicit := l.effectiveVertexSharpness(v, opts)
		tag.SemiSharp = scheme.IsSemiSharp(vs)
		tag.InfSharp = scheme.IsInfSharp(vs)
		tag.Corner = implicit
		tag.Rule = scheme.DetermineVertexRule(vs, sharpEdges)

		if tag.Boundary {
			regular := nFaces == tr.RegularVertexValence/2 || nFaces == 1
			tag.XOrdinary = !regular
		} else {
			tag.XOrdinary = nFaces != tr.RegularVertexValence
		}

		if l.vIncomplete != nil && l.vIncomplete[v] {
			tag.Incomplete = true
		}
	}
}

// IsSingleCreasePatch reports whether a face matches the single-crease
// topological pattern: a regular interior quad crossed by exactly one
// uniform crease running edge-to-opposite-edge.
func (l *Level) IsSingleCreasePatch(f int) bool {
	verts := l.FaceVertices(f)
	if len(verts) != 4 {
		return false
	}

	edges := l.FaceEdgeIndices(f)
	creaseSide := -1
	var creaseSharp float32
	for i, e := range edges {
		et := l.eTags[e]
		if et.Boundary || et.NonManifold {
			return false
		}
		if et.SemiSharp || et.InfSharp {
			if creaseSide >= 0 {
				return false
			}
			creaseSide = i
			creaseSharp = l.EdgeSharpness(e)
		}
	}
	if creaseSide < 0 {
		return false
	}

	// The crease's end vertices must be regular crease vertices whose two
	// sharp edges carry the same sharpness, and the remaining corners must
	// be smooth and regular.
	creaseEdge := edges[creaseSide]
	for i, v := range verts {
		t := l.vTags[v]
		if t.XOrdinary || t.Boundary || t.NonManifold || t.SemiSharp || t.InfSharp {
			return false
		}
		onCrease := i == creaseSide || i == (creaseSide+1)%4
		if !onCrease {
			if t.Rule != scheme.RuleSmooth {
				return false
			}
			continue
		}
		if t.Rule != scheme.RuleCrease {
			return false
		}
		for _, e := range l.VertexEdges(v) {
			if e == creaseEdge {
				continue
			}
			s := l.EdgeSharpness(e)
			if scheme.IsSharp(s) && s != creaseSharp {
				return false
			}
		}
	}
	return true
}

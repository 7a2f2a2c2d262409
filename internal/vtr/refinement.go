package vtr

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring"

	"github.com/gogpu/subd/scheme"
)

// Options are the per-pass refinement options.
type Options struct {
	// Sparse refines only the faces registered with the refinement's
	// SparseSelector instead of the whole parent level.
	Sparse bool

	// MinimalTopology skips child adjacency and tags, keeping only the
	// counts the hierarchy inventory needs. Valid only for a level that
	// will not itself be refined or classified.
	MinimalTopology bool

	// FaceVertsFirst orders child vertices originating from faces first
	// (faces, edges, vertices). The default order is vertices, edges,
	// faces.
	FaceVertsFirst bool
}

// Origin kinds for child vertices.
const (
	originVert uint8 = iota
	originEdge
	originFace
)

var (
	errNoSelection  = errors.New("vtr: sparse refinement has no selection")
	errNotTriangles = errors.New("vtr: triangle split applied to a non-triangle face")
)

// Refinement transforms one parent level into one child level according to
// the scheme's topological split. It records the parent-to-child component
// mapping so tags, sharpness, and face-varying data follow the topology.
type Refinement struct {
	parent *Level
	child  *Level

	traits        scheme.Traits
	schemeOptions scheme.Options

	// selection is set by an attached SparseSelector.
	selection *roaring.Bitmap

	// Parent-to-child vertex maps; -1 where no child exists.
	faceChildVert []int
	edgeChildVert []int
	vertChildVert []int

	// Per-child-face provenance: the parent face and the corner the
	// child occupies (-1 for the center child of a triangle split).
	childFaceParent []int
	childFaceCorner []int

	// Per-child-vertex provenance.
	childVertKind   []uint8
	childVertParent []int

	refined bool
}

// NewRefinement creates the refinement step between a parent level and the
// empty child level it will populate.
func NewRefinement(parent, child *Level, tr scheme.Traits, opts scheme.Options) *Refinement {
	return &Refinement{
		parent:        parent,
		child:         child,
		traits:        tr,
		schemeOptions: opts,
	}
}

// Parent returns the level being refined.
func (r *Refinement) Parent() *Level { return r.parent }

// Child returns the level produced by the refinement.
func (r *Refinement) Child() *Level { return r.child }

// SplitType returns the topological split applied by this refinement.
func (r *Refinement) SplitType() scheme.Split { return r.traits.Split }

// ChildFaceParentFace returns the parent face a child face subdivides.
func (r *Refinement) ChildFaceParentFace(cf int) int { return r.childFaceParent[cf] }

// ChildFaceParentCorner returns the corner of the parent face a child face
// occupies, or -1 for the center child of a triangle split.
func (r *Refinement) ChildFaceParentCorner(cf int) int { return r.childFaceCorner[cf] }

// FaceChildVertex returns the child vertex at the center of a parent face,
// or -1 when the face spawned none (triangle splits, unselected faces).
func (r *Refinement) FaceChildVertex(f int) int {
	if r.faceChildVert == nil {
		return -1
	}
	return r.faceChildVert[f]
}

// EdgeChildVertex returns the child vertex at the midpoint of a parent
// edge, or -1 when the edge spawned none.
func (r *Refinement) EdgeChildVertex(e int) int { return r.edgeChildVert[e] }

// VertexChildVertex returns the child vertex continuing a parent vertex, or
// -1 when the vertex spawned none.
func (r *Refinement) VertexChildVertex(v int) int { return r.vertChildVert[v] }

// RegularFaceSize returns the scheme's regular face size.
func (r *Refinement) RegularFaceSize() int { return r.traits.RegularFaceSize }

// Refine populates the child level. Dense passes refine every parent face;
// sparse passes refine the attached selection and mark child components
// bordering the selection boundary as incomplete.
func (r *Refinement) Refine(opts Options) error {
	if r.refined {
		return errors.New("vtr: refinement already executed")
	}

	faceSelected, err := r.resolveSelection(opts)
	if err != nil {
		return err
	}

	switch r.traits.Split {
	case scheme.SplitToQuads:
		err = r.refineToQuads(opts, faceSelected)
	case scheme.SplitToTris:
		err = r.refineToTris(opts, faceSelected)
	default:
		err = fmt.Errorf("vtr: unsupported split type %v", r.traits.Split)
	}
	if err != nil {
		return err
	}

	if err := r.child.Finalize(opts.MinimalTopology); err != nil {
		return err
	}

	r.propagateFVar()

	if !opts.MinimalTopology {
		r.propagateSharpness()
		r.propagateHoles()
		r.markIncomplete(opts, faceSelected)
		r.child.ComputeTags(r.traits, r.schemeOptions)
	}

	r.refined = true
	return nil
}

// resolveSelection returns the per-face selection flags, or nil for a dense
// pass covering every face.
func (r *Refinement) resolveSelection(opts Options) ([]bool, error) {
	if !opts.Sparse {
		return nil, nil
	}
	if r.selection == nil || r.selection.IsEmpty() {
		return nil, errNoSelection
	}
	selected := make([]bool, r.parent.NumFaces())
	it := r.selection.Iterator()
	for it.HasNext() {
		selected[it.Next()] = true
	}
	return selected, nil
}

func faceIsSelected(selected []bool, f int) bool {
	return selected == nil || selected[f]
}

// childOrdering computes the index bases for the three child vertex origin
// groups given the group sizes and the ordering option.
func childOrdering(opts Options, numFromVerts, numFromEdges, numFromFaces int) (vertBase, edgeBase, faceBase int) {
	if opts.FaceVertsFirst {
		faceBase = 0
		edgeBase = numFromFaces
		vertBase = numFromFaces + numFromEdges
		return
	}
	vertBase = 0
	edgeBase = numFromVerts
	faceBase = numFromVerts + numFromEdges
	return
}

// propagateSharpness transfers decayed crease sharpness onto child
// components: vertex-points inherit the parent vertex's decayed sharpness,
// and child edges lying along a parent crease inherit the decayed edge
// sharpness. Edges interior to a parent face are smooth.
func (r *Refinement) propagateSharpness() {
	for cv, kind := range r.childVertKind {
		if kind != originVert {
			continue
		}
		s := r.parent.VertexSharpness(r.childVertParent[cv])
		if scheme.IsSharp(s) {
			r.child.SetVertexSharpness(cv, scheme.SubdividedSharpness(s))
		}
	}

	chaikin := r.schemeOptions.CreasingMethod == scheme.CreasingChaikin

	for e := range r.child.edgeVerts {
		ev := r.child.edgeVerts[e]
		a, b := ev[0], ev[1]
		if r.childVertKind[a] == originVert && r.childVertKind[b] == originEdge {
			a, b = b, a
		}
		if r.childVertKind[a] != originEdge || r.childVertKind[b] != originVert {
			continue
		}
		pe := r.childVertParent[a]
		pv := r.childVertParent[b]
		pev := r.parent.edgeVerts[pe]
		if pev[0] != pv && pev[1] != pv {
			continue
		}
		s := r.parent.EdgeSharpness(pe)
		if !scheme.IsSharp(s) {
			continue
		}
		var cs float32
		if chaikin {
			peerSum, peerCount := r.sharpPeers(pv, pe)
			cs = scheme.ChaikinSubdividedSharpness(s, peerSum, peerCount)
		} else {
			cs = scheme.SubdividedSharpness(s)
		}
		if cs > 0 {
			r.child.SetEdgeSharpnessByIndex(e, cs)
		}
	}
}

// sharpPeers sums the sharpness of the other sharp edges meeting edge e at
// vertex v.
func (r *Refinement) sharpPeers(v, e int) (sum float32, count int) {
	for _, pe := range r.parent.VertexEdges(v) {
		if pe == e {
			continue
		}
		s := r.parent.EdgeSharpness(pe)
		if scheme.IsSharp(s) {
			sum += s
			count++
		}
	}
	return sum, count
}

// propagateHoles tags children of hole faces as holes.
func (r *Refinement) propagateHoles() {
	if !r.parent.HasHoles() {
		return
	}
	for cf, pf := range r.childFaceParent {
		if r.parent.IsFaceHole(pf) {
			r.child.SetFaceHole(cf)
		}
	}
}

// markIncomplete flags child vertices whose parent neighborhood was not
// fully covered by the selection. A parent vertex is complete when all of
// its incident faces were selected; a parent edge when both (or, on a
// boundary, its one) incident faces were selected. Children of faces are
// always complete since every sibling child face exists.
func (r *Refinement) markIncomplete(opts Options, selected []bool) {
	if !opts.Sparse {
		return
	}
	for cv, kind := range r.childVertKind {
		p := r.childVertParent[cv]
		complete := true
		switch kind {
		case originVert:
			for _, f := range r.parent.VertexFaces(p) {
				if !selected[f] {
					complete = false
					break
				}
			}
		case originEdge:
			for _, f := range r.parent.EdgeFaces(p) {
				if !selected[f] {
					complete = false
					break
				}
			}
		case originFace:
			// Selected faces contribute all of their children.
		}
		if !complete {
			r.child.markVertexIncomplete(cv)
		}
	}
}

// propagateFVar refines every face-varying channel of the parent into the
// child. Values are split the same way the topology is: one child value per
// parent face (quad split), per parent edge side (shared across the edge
// unless a seam runs along it), and per distinct parent value at a vertex.
func (r *Refinement) propagateFVar() {
	for ch := 0; ch < r.parent.NumFVarChannels(); ch++ {
		r.propagateFVarChannel(ch)
	}
}

func (r *Refinement) propagateFVarChannel(ch int) {
	parent := r.parent
	c := parent.fvar[ch]

	next := 0
	faceVals := make(map[int]int)
	edgeVals := make(map[[3]int]int)
	vertVals := make(map[[2]int]int)

	alloc := func(m map[int]int, k int) int {
		if id, ok := m[k]; ok {
			return id
		}
		m[k] = next
		next++
		return m[k]
	}
	allocEdge := func(k [3]int) int {
		if id, ok := edgeVals[k]; ok {
			return id
		}
		edgeVals[k] = next
		next++
		return edgeVals[k]
	}
	allocVert := func(k [2]int) int {
		if id, ok := vertVals[k]; ok {
			return id
		}
		vertVals[k] = next
		next++
		return vertVals[k]
	}

	// edgeValue derives the child value for the edge-point of side i of
	// parent face f, shared across the edge when both faces agree on the
	// end values.
	edgeValue := func(f, i int) int {
		verts := parent.FaceVertices(f)
		vals := parent.FaceFVarValues(f, ch)
		n := len(verts)
		e := parent.FaceEdgeIndices(f)[i]
		v0, v1 := verts[i], verts[(i+1)%n]
		a, b := vals[i], vals[(i+1)%n]
		if v0 > v1 {
			a, b = b, a
		}
		return allocEdge([3]int{e, a, b})
	}

	childFaceValues := make([]int, 0, len(r.childFaceParent)*r.traits.RegularFaceSize)

	for cf := range r.childFaceParent {
		f := r.childFaceParent[cf]
		corner := r.childFaceCorner[cf]
		verts := parent.FaceVertices(f)
		vals := parent.FaceFVarValues(f, ch)
		n := len(verts)

		if corner < 0 {
			// Center child of a triangle split: three edge values.
			for i := 0; i < 3; i++ {
				childFaceValues = append(childFaceValues, edgeValue(f, i))
			}
			continue
		}

		prev := (corner + n - 1) % n
		vertVal := allocVert([2]int{verts[corner], vals[corner]})

		if r.traits.Split == scheme.SplitToQuads {
			faceVal := alloc(faceVals, f)
			childFaceValues = append(childFaceValues,
				vertVal, edgeValue(f, corner), faceVal, edgeValue(f, prev))
		} else {
			childFaceValues = append(childFaceValues,
				vertVal, edgeValue(f, corner), edgeValue(f, prev))
		}
	}

	// Ignore the error: the layout is correct by construction.
	_, _ = r.child.AddFVarChannel(next, childFaceValues, c.interp)
}

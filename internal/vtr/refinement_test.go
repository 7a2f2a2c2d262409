package vtr

import (
	"testing"

	"github.com/gogpu/subd/scheme"
)

// refineDense runs a dense refinement pass and returns the child level.
func refineDense(t *testing.T, parent *Level, tr scheme.Traits, opts scheme.Options) (*Level, *Refinement) {
	t.Helper()
	child := NewLevel(parent.Depth() + 1)
	ref := NewRefinement(parent, child, tr, opts)
	if err := ref.Refine(Options{}); err != nil {
		t.Fatalf("Refine: %v", err)
	}
	return child, ref
}

func TestQuadRefineSingleQuad(t *testing.T) {
	l := buildLevel(t, 4, []int{4}, []int{0, 1, 2, 3})
	l.ComputeTags(catmark, defaultOpts)

	child, ref := refineDense(t, l, catmark, defaultOpts)

	if got := child.NumVertices(); got != 9 {
		t.Errorf("child NumVertices = %d, want 9", got)
	}
	if got := child.NumFaces(); got != 4 {
		t.Errorf("child NumFaces = %d, want 4", got)
	}
	if got := child.NumEdges(); got != 12 {
		t.Errorf("child NumEdges = %d, want 12", got)
	}
	if got := child.NumFaceVerticesTotal(); got != 16 {
		t.Errorf("child NumFaceVerticesTotal = %d, want 16", got)
	}
	if got := child.Depth(); got != 1 {
		t.Errorf("child Depth = %d, want 1", got)
	}
	if got := ref.RegularFaceSize(); got != 4 {
		t.Errorf("RegularFaceSize = %d, want 4", got)
	}
	if got := ref.SplitType(); got != scheme.SplitToQuads {
		t.Errorf("SplitType = %v, want quads", got)
	}

	// Default ordering: vertex-points first.
	if ref.vertChildVert[0] != 0 {
		t.Errorf("vertex-point of vertex 0 = %d, want 0", ref.vertChildVert[0])
	}
	if ref.faceChildVert[0] != 8 {
		t.Errorf("face-point = %d, want 8", ref.faceChildVert[0])
	}
}

func TestQuadRefineFaceVertsFirst(t *testing.T) {
	l := buildLevel(t, 4, []int{4}, []int{0, 1, 2, 3})
	l.ComputeTags(catmark, defaultOpts)

	child := NewLevel(1)
	ref := NewRefinement(l, child, catmark, defaultOpts)
	if err := ref.Refine(Options{FaceVertsFirst: true}); err != nil {
		t.Fatalf("Refine: %v", err)
	}

	if ref.faceChildVert[0] != 0 {
		t.Errorf("face-point = %d, want 0", ref.faceChildVert[0])
	}
	if ref.vertChildVert[0] != 5 {
		t.Errorf("vertex-point of vertex 0 = %d, want 5", ref.vertChildVert[0])
	}
	if got := child.NumVertices(); got != 9 {
		t.Errorf("child NumVertices = %d, want 9", got)
	}
}

func TestQuadRefinePentagon(t *testing.T) {
	// A pentagon splits into five quads.
	l := buildLevel(t, 5, []int{5}, []int{0, 1, 2, 3, 4})
	l.ComputeTags(catmark, defaultOpts)

	child, _ := refineDense(t, l, catmark, defaultOpts)

	if got := child.NumFaces(); got != 5 {
		t.Errorf("child NumFaces = %d, want 5", got)
	}
	// 1 face point + 5 edge points + 5 vertex points.
	if got := child.NumVertices(); got != 11 {
		t.Errorf("child NumVertices = %d, want 11", got)
	}
	// The face-point is a valence-5 extraordinary interior vertex... of a
	// bounded patch, so just confirm max valence carried over.
	if got := child.MaxValence(); got != 5 {
		t.Errorf("child MaxValence = %d, want 5", got)
	}
}

func TestTriRefineSingleTriangle(t *testing.T) {
	l := buildLevel(t, 3, []int{3}, []int{0, 1, 2})
	l.ComputeTags(loopTraits, defaultOpts)

	child, _ := refineDense(t, l, loopTraits, defaultOpts)

	if got := child.NumVertices(); got != 6 {
		t.Errorf("child NumVertices = %d, want 6", got)
	}
	if got := child.NumFaces(); got != 4 {
		t.Errorf("child NumFaces = %d, want 4", got)
	}
	if got := child.NumEdges(); got != 9 {
		t.Errorf("child NumEdges = %d, want 9", got)
	}
}

func TestTriRefineRejectsNonTriangles(t *testing.T) {
	l := buildLevel(t, 4, []int{4}, []int{0, 1, 2, 3})
	l.ComputeTags(loopTraits, defaultOpts)

	child := NewLevel(1)
	ref := NewRefinement(l, child, loopTraits, defaultOpts)
	if err := ref.Refine(Options{}); err == nil {
		t.Error("triangle split of a quad should fail")
	}
}

func TestRefineTwiceFails(t *testing.T) {
	l := buildLevel(t, 4, []int{4}, []int{0, 1, 2, 3})
	l.ComputeTags(catmark, defaultOpts)

	_, ref := refineDense(t, l, catmark, defaultOpts)
	if err := ref.Refine(Options{}); err == nil {
		t.Error("second Refine on the same step should fail")
	}
}

func TestSparseRefineRequiresSelection(t *testing.T) {
	l := quadGrid2x2(t)
	l.ComputeTags(catmark, defaultOpts)

	child := NewLevel(1)
	ref := NewRefinement(l, child, catmark, defaultOpts)
	if err := ref.Refine(Options{Sparse: true}); err == nil {
		t.Error("sparse refine without a selection should fail")
	}
}

func TestSparseRefineIncomplete(t *testing.T) {
	l := quadGrid2x2(t)
	l.ComputeTags(catmark, defaultOpts)

	child := NewLevel(1)
	ref := NewRefinement(l, child, catmark, defaultOpts)
	sel := NewSparseSelector(ref)
	sel.SelectFace(0)

	if err := ref.Refine(Options{Sparse: true}); err != nil {
		t.Fatalf("Refine: %v", err)
	}

	// Face 0 alone: 1 face point, 4 edge points, 4 vertex points.
	if got := child.NumVertices(); got != 9 {
		t.Errorf("child NumVertices = %d, want 9", got)
	}
	if got := child.NumFaces(); got != 4 {
		t.Errorf("child NumFaces = %d, want 4", got)
	}

	// The corner vertex 0 had its single face selected: complete.
	if tag := child.VertexTag(ref.vertChildVert[0]); tag.Incomplete {
		t.Error("vertex-point of fully covered corner should be complete")
	}
	// The interior vertex 4 has three unselected faces: incomplete.
	if tag := child.VertexTag(ref.vertChildVert[4]); !tag.Incomplete {
		t.Error("vertex-point of partially covered vertex should be incomplete")
	}
	// The shared edge 1-4 has an unselected second face: incomplete.
	e := l.FindEdge(1, 4)
	if tag := child.VertexTag(ref.edgeChildVert[e]); !tag.Incomplete {
		t.Error("edge-point of partially covered edge should be incomplete")
	}
	// The face-point is always complete.
	if tag := child.VertexTag(ref.faceChildVert[0]); tag.Incomplete {
		t.Error("face-point of a selected face should be complete")
	}
}

func TestSelector(t *testing.T) {
	l := quadGrid2x2(t)
	l.ComputeTags(catmark, defaultOpts)

	ref := NewRefinement(l, NewLevel(1), catmark, defaultOpts)
	sel := NewSparseSelector(ref)

	if !sel.IsSelectionEmpty() {
		t.Error("fresh selector should be empty")
	}
	sel.SelectFace(3)
	sel.SelectFace(1)
	sel.SelectFace(3) // duplicate
	sel.SelectFace(-1)
	sel.SelectFace(99)

	if sel.IsSelectionEmpty() {
		t.Error("selector with faces should not be empty")
	}
	if got := sel.NumSelected(); got != 2 {
		t.Errorf("NumSelected = %d, want 2", got)
	}
	faces := sel.SelectedFaces()
	if len(faces) != 2 || faces[0] != 1 || faces[1] != 3 {
		t.Errorf("SelectedFaces = %v, want [1 3] in ascending order", faces)
	}
	if sel.Refinement() != ref {
		t.Error("selector should expose its refinement")
	}
}

func TestSharpnessPropagation(t *testing.T) {
	l := quadGrid2x2(t)
	e := l.FindEdge(3, 4)
	l.SetEdgeSharpnessByIndex(e, 3)
	l.SetEdgeSharpnessByIndex(l.FindEdge(4, 5), scheme.InfinitelySharp)
	l.SetVertexSharpness(4, 2)
	l.ComputeTags(catmark, defaultOpts)

	child, ref := refineDense(t, l, catmark, defaultOpts)

	// The vertex-point of vertex 4 decays 2 -> 1.
	if got := child.VertexSharpness(ref.vertChildVert[4]); got != 1 {
		t.Errorf("child vertex sharpness = %v, want 1", got)
	}

	// Child edges along parent edge 3-4 decay 3 -> 2.
	ce := child.FindEdge(ref.vertChildVert[3], ref.edgeChildVert[e])
	if ce < 0 {
		t.Fatal("child edge along parent crease not found")
	}
	if got := child.EdgeSharpness(ce); got != 2 {
		t.Errorf("child edge sharpness = %v, want 2", got)
	}

	// Infinite sharpness persists.
	ei := l.FindEdge(4, 5)
	ci := child.FindEdge(ref.vertChildVert[5], ref.edgeChildVert[ei])
	if got := child.EdgeSharpness(ci); got != scheme.InfinitelySharp {
		t.Errorf("child inf-sharp edge sharpness = %v, want %v", got, scheme.InfinitelySharp)
	}

	// Edges interior to a parent face stay smooth.
	cf := child.FindEdge(ref.faceChildVert[0], ref.edgeChildVert[e])
	if cf < 0 {
		t.Fatal("interior child edge not found")
	}
	if got := child.EdgeSharpness(cf); got != 0 {
		t.Errorf("interior child edge sharpness = %v, want 0", got)
	}
}

func TestChaikinSharpnessPropagation(t *testing.T) {
	l := quadGrid2x2(t)
	// Two collinear crease edges of different sharpness meeting at vertex 4.
	l.SetEdgeSharpnessByIndex(l.FindEdge(3, 4), 4)
	l.SetEdgeSharpnessByIndex(l.FindEdge(4, 5), 2)
	l.ComputeTags(catmark, defaultOpts)

	chaikin := scheme.Options{CreasingMethod: scheme.CreasingChaikin}
	child, ref := refineDense(t, l, catmark, chaikin)

	e := l.FindEdge(3, 4)
	// At vertex 4: (3*4 + 2)/4 - 1 = 2.5.
	ce := child.FindEdge(ref.vertChildVert[4], ref.edgeChildVert[e])
	if got := child.EdgeSharpness(ce); got != 2.5 {
		t.Errorf("Chaikin child sharpness at shared vertex = %v, want 2.5", got)
	}
	// At vertex 3 the crease has no sharp peers: uniform decay 4 -> 3.
	cb := child.FindEdge(ref.vertChildVert[3], ref.edgeChildVert[e])
	if got := child.EdgeSharpness(cb); got != 3 {
		t.Errorf("Chaikin child sharpness at crease end = %v, want 3", got)
	}
}

func TestHolePropagation(t *testing.T) {
	l := quadGrid2x2(t)
	l.SetFaceHole(2)
	l.ComputeTags(catmark, defaultOpts)

	child, ref := refineDense(t, l, catmark, defaultOpts)

	holes := 0
	for cf := range ref.childFaceParent {
		if child.IsFaceHole(cf) {
			holes++
			if ref.childFaceParent[cf] != 2 {
				t.Errorf("child hole %d descends from face %d, want 2", cf, ref.childFaceParent[cf])
			}
		}
	}
	if holes != 4 {
		t.Errorf("child hole count = %d, want 4", holes)
	}
}

func TestMinimalTopology(t *testing.T) {
	l := quadGrid2x2(t)
	l.ComputeTags(catmark, defaultOpts)

	child := NewLevel(1)
	ref := NewRefinement(l, child, catmark, defaultOpts)
	if err := ref.Refine(Options{MinimalTopology: true}); err != nil {
		t.Fatalf("Refine: %v", err)
	}

	// Counts are still exact.
	if got := child.NumVertices(); got != 25 {
		t.Errorf("child NumVertices = %d, want 25", got)
	}
	if got := child.NumFaces(); got != 16 {
		t.Errorf("child NumFaces = %d, want 16", got)
	}
	if got := child.NumEdges(); got != 40 {
		t.Errorf("child NumEdges = %d, want 40", got)
	}
	if got := child.MaxValence(); got != 4 {
		t.Errorf("child MaxValence = %d, want 4", got)
	}
}

func TestFVarRefinement(t *testing.T) {
	// Two quads with a seam along the shared edge 1-4 in channel 0 and a
	// seamless channel 1.
	l := buildLevel(t, 6,
		[]int{4, 4},
		[]int{
			0, 1, 4, 3,
			1, 2, 5, 4,
		})
	if _, err := l.AddFVarChannel(8, []int{0, 1, 2, 3, 4, 5, 6, 7}, scheme.FVarLinearNone); err != nil {
		t.Fatalf("AddFVarChannel: %v", err)
	}
	if _, err := l.AddFVarChannel(6, []int{0, 1, 2, 3, 1, 4, 5, 2}, scheme.FVarLinearNone); err != nil {
		t.Fatalf("AddFVarChannel: %v", err)
	}
	l.ComputeTags(catmark, defaultOpts)

	child, ref := refineDense(t, l, catmark, defaultOpts)

	if got := child.NumFVarChannels(); got != 2 {
		t.Fatalf("child NumFVarChannels = %d, want 2", got)
	}

	// Seamless channel: child values mirror child vertices one-to-one.
	if got, want := child.NumFVarValues(1), child.NumVertices(); got != want {
		t.Errorf("seamless child value count = %d, want %d", got, want)
	}

	// Seam channel: the seam duplicates the edge-point value and the two
	// vertex-point values along edge 1-4, so there are three extra values.
	if got, want := child.NumFVarValues(0), child.NumVertices()+3; got != want {
		t.Errorf("seam child value count = %d, want %d", got, want)
	}

	// The seam survives refinement: child faces touching the child seam
	// vertices still see mismatched topology.
	seamVert := ref.vertChildVert[1]
	mismatched := false
	for cf := 0; cf < child.NumFaces(); cf++ {
		for _, v := range child.FaceVertices(cf) {
			if v == seamVert && !child.FVarTopologyMatches(cf, 0) {
				mismatched = true
			}
		}
	}
	if !mismatched {
		t.Error("seam should persist into the child level")
	}
}

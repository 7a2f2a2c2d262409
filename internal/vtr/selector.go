package vtr

import "github.com/RoaringBitmap/roaring"

// SparseSelector accumulates the set of parent faces chosen for one sparse
// refinement pass. The selection is a compressed bitmap over the parent
// face index space, so repeated selection of the same face (common when
// whole neighborhoods are swept in) is free and iteration is always in
// ascending face order.
type SparseSelector struct {
	refinement *Refinement
	faces      *roaring.Bitmap
}

// NewSparseSelector returns a fresh selector feeding the given refinement.
// The refinement's subsequent sparse Refine call consumes this selection.
func NewSparseSelector(r *Refinement) *SparseSelector {
	s := &SparseSelector{refinement: r, faces: roaring.New()}
	r.selection = s.faces
	return s
}

// Refinement returns the refinement this selector feeds.
func (s *SparseSelector) Refinement() *Refinement { return s.refinement }

// SelectFace registers a parent face for refinement. Out-of-range indices
// are ignored.
func (s *SparseSelector) SelectFace(f int) {
	if f < 0 || f >= s.refinement.parent.NumFaces() {
		return
	}
	s.faces.Add(uint32(f))
}

// IsSelectionEmpty reports whether nothing has been selected.
func (s *SparseSelector) IsSelectionEmpty() bool { return s.faces.IsEmpty() }

// NumSelected returns the number of distinct selected faces.
func (s *SparseSelector) NumSelected() int { return int(s.faces.GetCardinality()) }

// SelectedFaces returns the selected face indices in ascending order.
func (s *SparseSelector) SelectedFaces() []int {
	out := make([]int, 0, s.faces.GetCardinality())
	it := s.faces.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

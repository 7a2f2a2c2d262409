package vtr

// refineToQuads generates the child topology of a quad split: every parent
// face of size n produces n child quads, with child vertices at the parent
// face centers, edge midpoints, and vertices.
func (r *Refinement) refineToQuads(opts Options, selected []bool) error {
	parent := r.parent

	faceSpawns := make([]bool, parent.NumFaces())
	edgeSpawns := make([]bool, parent.NumEdges())
	vertSpawns := make([]bool, parent.NumVertices())

	for f := 0; f < parent.NumFaces(); f++ {
		if !faceIsSelected(selected, f) {
			continue
		}
		faceSpawns[f] = true
		for _, e := range parent.FaceEdgeIndices(f) {
			edgeSpawns[e] = true
		}
		for _, v := range parent.FaceVertices(f) {
			vertSpawns[v] = true
		}
	}

	numFromFaces := countTrue(faceSpawns)
	numFromEdges := countTrue(edgeSpawns)
	numFromVerts := countTrue(vertSpawns)

	vertBase, edgeBase, faceBase := childOrdering(opts, numFromVerts, numFromEdges, numFromFaces)

	r.faceChildVert = assignChildIndices(faceSpawns, faceBase)
	r.edgeChildVert = assignChildIndices(edgeSpawns, edgeBase)
	r.vertChildVert = assignChildIndices(vertSpawns, vertBase)

	totalChildVerts := numFromFaces + numFromEdges + numFromVerts
	r.childVertKind = make([]uint8, totalChildVerts)
	r.childVertParent = make([]int, totalChildVerts)
	recordOrigins(r.childVertKind, r.childVertParent, r.faceChildVert, originFace)
	recordOrigins(r.childVertKind, r.childVertParent, r.edgeChildVert, originEdge)
	recordOrigins(r.childVertKind, r.childVertParent, r.vertChildVert, originVert)

	var (
		childCounts  []int
		childIndices []int
	)
	for f := 0; f < parent.NumFaces(); f++ {
		if !faceSpawns[f] {
			continue
		}
		verts := parent.FaceVertices(f)
		edges := parent.FaceEdgeIndices(f)
		n := len(verts)
		for i := 0; i < n; i++ {
			prev := (i + n - 1) % n
			childCounts = append(childCounts, 4)
			childIndices = append(childIndices,
				r.vertChildVert[verts[i]],
				r.edgeChildVert[edges[i]],
				r.faceChildVert[f],
				r.edgeChildVert[edges[prev]])
			r.childFaceParent = append(r.childFaceParent, f)
			r.childFaceCorner = append(r.childFaceCorner, i)
		}
	}

	return r.child.SetTopology(totalChildVerts, childCounts, childIndices)
}

func countTrue(flags []bool) int {
	n := 0
	for _, b := range flags {
		if b {
			n++
		}
	}
	return n
}

// assignChildIndices maps each flagged parent component to a contiguous
// child vertex index starting at base, preserving parent order. Unflagged
// components map to -1.
func assignChildIndices(flags []bool, base int) []int {
	out := make([]int, len(flags))
	next := base
	for i, b := range flags {
		if b {
			out[i] = next
			next++
		} else {
			out[i] = -1
		}
	}
	return out
}

// recordOrigins fills child vertex provenance from a parent-to-child map.
func recordOrigins(kinds []uint8, parents []int, childVert []int, kind uint8) {
	for p, cv := range childVert {
		if cv >= 0 {
			kinds[cv] = kind
			parents[cv] = p
		}
	}
}

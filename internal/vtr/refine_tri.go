package vtr

// refineToTris generates the child topology of a triangle split: every
// parent triangle produces three corner triangles and one center triangle,
// with child vertices at the parent edge midpoints and vertices. There are
// no child vertices from faces.
func (r *Refinement) refineToTris(opts Options, selected []bool) error {
	parent := r.parent

	edgeSpawns := make([]bool, parent.NumEdges())
	vertSpawns := make([]bool, parent.NumVertices())

	for f := 0; f < parent.NumFaces(); f++ {
		if !faceIsSelected(selected, f) {
			continue
		}
		if len(parent.FaceVertices(f)) != 3 {
			return errNotTriangles
		}
		for _, e := range parent.FaceEdgeIndices(f) {
			edgeSpawns[e] = true
		}
		for _, v := range parent.FaceVertices(f) {
			vertSpawns[v] = true
		}
	}

	numFromEdges := countTrue(edgeSpawns)
	numFromVerts := countTrue(vertSpawns)

	vertBase, edgeBase, _ := childOrdering(opts, numFromVerts, numFromEdges, 0)

	r.faceChildVert = nil
	r.edgeChildVert = assignChildIndices(edgeSpawns, edgeBase)
	r.vertChildVert = assignChildIndices(vertSpawns, vertBase)

	totalChildVerts := numFromEdges + numFromVerts
	r.childVertKind = make([]uint8, totalChildVerts)
	r.childVertParent = make([]int, totalChildVerts)
	recordOrigins(r.childVertKind, r.childVertParent, r.edgeChildVert, originEdge)
	recordOrigins(r.childVertKind, r.childVertParent, r.vertChildVert, originVert)

	var (
		childCounts  []int
		childIndices []int
	)
	for f := 0; f < parent.NumFaces(); f++ {
		if !faceIsSelected(selected, f) {
			continue
		}
		verts := parent.FaceVertices(f)
		edges := parent.FaceEdgeIndices(f)

		for i := 0; i < 3; i++ {
			prev := (i + 2) % 3
			childCounts = append(childCounts, 3)
			childIndices = append(childIndices,
				r.vertChildVert[verts[i]],
				r.edgeChildVert[edges[i]],
				r.edgeChildVert[edges[prev]])
			r.childFaceParent = append(r.childFaceParent, f)
			r.childFaceCorner = append(r.childFaceCorner, i)
		}

		childCounts = append(childCounts, 3)
		childIndices = append(childIndices,
			r.edgeChildVert[edges[0]],
			r.edgeChildVert[edges[1]],
			r.edgeChildVert[edges[2]])
		r.childFaceParent = append(r.childFaceParent, f)
		r.childFaceCorner = append(r.childFaceCorner, -1)
	}

	return r.child.SetTopology(totalChildVerts, childCounts, childIndices)
}

package subd

import "github.com/gogpu/subd/internal/vtr"

// LevelView is a read-only view of one level of a refinement hierarchy,
// linked to the refinement steps on either side of it so consumers can walk
// parent-to-child component mappings.
//
// The deepest level of a uniform hierarchy holds only minimal topology
// unless FullTopologyInLastLevel was set; on such a level the adjacency
// queries (VertexFaces, VertexEdges) must not be used.
type LevelView struct {
	level    *vtr.Level
	toParent *vtr.Refinement
	toChild  *vtr.Refinement
}

// Depth returns the level's depth; the base level is depth 0.
func (v LevelView) Depth() int { return v.level.Depth() }

// NumVertices returns the level's vertex count.
func (v LevelView) NumVertices() int { return v.level.NumVertices() }

// NumEdges returns the level's edge count.
func (v LevelView) NumEdges() int { return v.level.NumEdges() }

// NumFaces returns the level's face count.
func (v LevelView) NumFaces() int { return v.level.NumFaces() }

// NumFaceVerticesTotal returns the summed size of the level's faces.
func (v LevelView) NumFaceVerticesTotal() int { return v.level.NumFaceVerticesTotal() }

// MaxValence returns the highest vertex valence in the level.
func (v LevelView) MaxValence() int { return v.level.MaxValence() }

// FaceVertices returns the vertex indices of a face, in winding order. The
// returned slice aliases refiner storage and must not be modified.
func (v LevelView) FaceVertices(f int) []int { return v.level.FaceVertices(f) }

// FaceEdges returns the edge index for each side of a face, where side i
// joins face vertices i and i+1.
func (v LevelView) FaceEdges(f int) []int { return v.level.FaceEdgeIndices(f) }

// VertexFaces returns the faces incident to a vertex.
func (v LevelView) VertexFaces(vert int) []int { return v.level.VertexFaces(vert) }

// VertexEdges returns the edges incident to a vertex.
func (v LevelView) VertexEdges(vert int) []int { return v.level.VertexEdges(vert) }

// EdgeVertices returns the two end vertices of an edge.
func (v LevelView) EdgeVertices(e int) [2]int { return v.level.EdgeVertices(e) }

// EdgeFaces returns the faces incident to an edge.
func (v LevelView) EdgeFaces(e int) []int { return v.level.EdgeFaces(e) }

// VertexSharpness returns the explicit sharpness of a vertex.
func (v LevelView) VertexSharpness(vert int) float32 { return v.level.VertexSharpness(vert) }

// EdgeSharpness returns the explicit sharpness of an edge.
func (v LevelView) EdgeSharpness(e int) float32 { return v.level.EdgeSharpness(e) }

// IsFaceHole reports whether a face is a hole.
func (v LevelView) IsFaceHole(f int) bool { return v.level.IsFaceHole(f) }

// NumFVarChannels returns the number of face-varying channels.
func (v LevelView) NumFVarChannels() int { return v.level.NumFVarChannels() }

// NumFVarValues returns the value count of a face-varying channel at this
// level.
func (v LevelView) NumFVarValues(channel int) int { return v.level.NumFVarValues(channel) }

// FaceFVarValues returns a face's value indices in a channel, in the same
// order as FaceVertices.
func (v LevelView) FaceFVarValues(f, channel int) []int { return v.level.FaceFVarValues(f, channel) }

// HasParentLevel reports whether the level was produced by refining a
// parent level.
func (v LevelView) HasParentLevel() bool { return v.toParent != nil }

// HasChildLevel reports whether the level was itself refined.
func (v LevelView) HasChildLevel() bool { return v.toChild != nil }

// ParentFace returns the face of the parent level a face subdivides, or -1
// on the base level.
func (v LevelView) ParentFace(f int) int {
	if v.toParent == nil {
		return -1
	}
	return v.toParent.ChildFaceParentFace(f)
}

// ParentFaceCorner returns the corner of the parent face a face occupies,
// or -1 on the base level and for the center child of a triangle split.
func (v LevelView) ParentFaceCorner(f int) int {
	if v.toParent == nil {
		return -1
	}
	return v.toParent.ChildFaceParentCorner(f)
}

// FaceChildVertex returns the next level's vertex at the center of a face,
// or -1 when the level was not refined or the face spawned none.
func (v LevelView) FaceChildVertex(f int) int {
	if v.toChild == nil {
		return -1
	}
	return v.toChild.FaceChildVertex(f)
}

// EdgeChildVertex returns the next level's vertex at the midpoint of an
// edge, or -1 when the level was not refined or the edge spawned none.
func (v LevelView) EdgeChildVertex(e int) int {
	if v.toChild == nil {
		return -1
	}
	return v.toChild.EdgeChildVertex(e)
}

// VertexChildVertex returns the next level's vertex continuing a vertex, or
// -1 when the level was not refined or the vertex spawned none.
func (v LevelView) VertexChildVertex(vert int) int {
	if v.toChild == nil {
		return -1
	}
	return v.toChild.VertexChildVertex(vert)
}

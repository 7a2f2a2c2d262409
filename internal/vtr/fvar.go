package vtr

import (
	"fmt"

	"github.com/gogpu/subd/scheme"
)

// FVarChannel is a secondary, face-varying topology over a level: each
// face-vertex slot carries a value index instead of a vertex index, and the
// assignment may diverge from the vertex topology along seams (texture
// boundaries and the like).
type FVarChannel struct {
	numValues  int
	faceValues []int // parallel to the level's faceVertIndices
	interp     scheme.FVarLinearInterpolation

	// vertValueCounts holds the number of distinct values appearing at
	// each vertex across its incident faces. A count above one marks a
	// seam vertex.
	vertValueCounts []int
	hasSeams        bool
}

// AddFVarChannel attaches a face-varying channel to the level. The value
// layout parallels the level's face-vertex indices. Returns the channel
// index.
func (l *Level) AddFVarChannel(numValues int, faceValues []int, interp scheme.FVarLinearInterpolation) (int, error) {
	if len(faceValues) != len(l.faceVertIndices) {
		return -1, fmt.Errorf("channel has %d face values, level has %d face-vertices",
			len(faceValues), len(l.faceVertIndices))
	}
	for i, fv := range faceValues {
		if fv < 0 || fv >= numValues {
			return -1, fmt.Errorf("face value %d out of range [0,%d) at slot %d", fv, numValues, i)
		}
	}
	c := &FVarChannel{numValues: numValues, faceValues: faceValues, interp: interp}
	if l.vertFaceOffsets != nil {
		c.finalize(l)
	}
	l.fvar = append(l.fvar, c)
	return len(l.fvar) - 1, nil
}

// NumFVarChannels returns the number of face-varying channels.
func (l *Level) NumFVarChannels() int { return len(l.fvar) }

// NumFVarValues returns the value count of a channel.
func (l *Level) NumFVarValues(channel int) int { return l.fvar[channel].numValues }

// FaceFVarValues returns a face's value indices in a channel, in the same
// order as FaceVertices.
func (l *Level) FaceFVarValues(f, channel int) []int {
	c := l.fvar[channel]
	return c.faceValues[l.faceVertOffsets[f]:l.faceVertOffsets[f+1]]
}

// IsFVarChannelLinear reports whether the channel interpolates linearly
// everywhere, either by option or because it has no seams. Linear channels
// contribute no features to adaptive refinement.
func (l *Level) IsFVarChannelLinear(channel int) bool {
	c := l.fvar[channel]
	return c.interp == scheme.FVarLinearAll || !c.hasSeams
}

// FVarTopologyMatches reports whether a face's channel topology matches the
// vertex topology, i.e. none of its corners sit on a seam.
func (l *Level) FVarTopologyMatches(f, channel int) bool {
	c := l.fvar[channel]
	for _, v := range l.FaceVertices(f) {
		if c.vertValueCounts[v] > 1 {
			return false
		}
	}
	return true
}

// VertexCompositeFVarTag combines the tags of every face-varying value set
// around a vertex in a channel. Unlike a per-face view, this accounts for
// values in disjoint sets around the vertex, which keeps neighboring faces
// within one refinement level of each other.
//
// At a seam vertex every value set is bounded by the seam, so the composite
// is never smooth: a two-way split behaves as an inf-sharp crease, anything
// denser as a corner with locally irregular value rings.
func (l *Level) VertexCompositeFVarTag(v, channel int) VTag {
	c := l.fvar[channel]
	t := l.vTags[v]
	k := c.vertValueCounts[v]
	if k <= 1 {
		return t
	}
	t.Boundary = true
	t.InfSharpEdges = true
	t.Rule &^= scheme.RuleSmooth
	if k == 2 {
		t.Rule |= scheme.RuleCrease
	} else {
		t.Rule |= scheme.RuleCorner
		t.XOrdinary = true
	}
	return t
}

// finalizeFVar derives per-vertex seam data for every channel. Called after
// vertex adjacency exists.
func (l *Level) finalizeFVar() {
	for _, c := range l.fvar {
		c.finalize(l)
	}
}

func (c *FVarChannel) finalize(l *Level) {
	c.vertValueCounts = make([]int, l.numVertices)
	c.hasSeams = false

	var distinct []int
	for v := 0; v < l.numVertices; v++ {
		distinct = distinct[:0]
		for _, f := range l.VertexFaces(v) {
			verts := l.FaceVertices(f)
			base := l.faceVertOffsets[f]
			for i, fv := range verts {
				if fv != v {
					continue
				}
				val := c.faceValues[base+i]
				seen := false
				for _, d := range distinct {
					if d == val {
						seen = true
						break
					}
				}
				if !seen {
					distinct = append(distinct, val)
				}
			}
		}
		c.vertValueCounts[v] = len(distinct)
		if len(distinct) > 1 {
			c.hasSeams = true
		}
	}
}

package subd

import (
	"github.com/gogpu/subd/internal/parallel"
	"github.com/gogpu/subd/internal/vtr"
	"github.com/gogpu/subd/scheme"
)

// parallelMinFaces is the level size below which parallel classification
// costs more than it saves.
const parallelMinFaces = 4096

// infSharpFaceHasFeatures classifies a face by the inf-sharp configuration
// of its composite corner tag. Only called for faces whose corners carry
// permanent sharpness and no smooth or semi-sharp features.
func infSharpFaceHasFeatures(tag vtr.VTag, mask *FeatureMask) bool {
	if tag.XOrdinary {
		switch {
		case tag.Rule&scheme.RuleCorner != 0:
			return mask.InfSharpIrregularCorner
		case tag.Rule&scheme.RuleCrease != 0:
			if tag.Boundary {
				return mask.XOrdinaryBoundary
			}
			return mask.InfSharpIrregularCrease
		case tag.Rule&scheme.RuleDart != 0:
			return mask.InfSharpIrregularDart
		}
		return false
	}

	if tag.Boundary {
		if tag.Rule&scheme.RuleCorner != 0 {
			// A corner sharpened only by the boundary rule interpolates
			// exactly without isolation.
			if tag.Corner {
				return false
			}
			return mask.InfSharpRegularCorner
		}
		// Regular boundary creases need no isolation.
		return false
	}

	if tag.Rule&scheme.RuleCorner != 0 {
		return mask.InfSharpRegularCorner
	}
	return mask.InfSharpRegularCrease
}

// faceHasFeatures classifies a face against the mask by the composite tag
// of its corners. Rules are ordered so cheap rejections come first and each
// crease class is tested only once the previous classes are excluded.
func faceHasFeatures(level *vtr.Level, face int, mask *FeatureMask) bool {
	if mask.IsEmpty() {
		return false
	}

	var stack [4]vtr.VTag
	tags := level.GatherFaceVTags(face, stack[:0])
	agg := vtr.CombineVTags(tags)

	// Faces on the fringe of a sparse level have incomplete neighborhoods;
	// their tags do not describe the true surface.
	if agg.Incomplete {
		return false
	}

	if agg.NonManifold && mask.NonManifold {
		return true
	}

	if agg.XOrdinary && mask.XOrdinaryInterior {
		if agg.Rule == scheme.RuleSmooth {
			return true
		}
		// Shallow levels can pair an extraordinary smooth corner with a
		// sharp feature elsewhere on the face; the composite alone cannot
		// see it.
		if level.Depth() < 2 {
			for _, t := range tags {
				if t.XOrdinary && t.Rule == scheme.RuleSmooth {
					return true
				}
			}
		}
	}

	// All corners smooth and regular from here on.
	if agg.Rule == scheme.RuleSmooth {
		return false
	}

	// No corner smooth at all: the face is fully inside sharpened
	// topology and its own subdivision never smooths it.
	if agg.Rule&scheme.RuleSmooth == 0 {
		return true
	}

	if agg.SemiSharp || agg.SemiSharpEdges {
		if mask.SemiSharpSingle && mask.SemiSharpNonSingle {
			return true
		}
		if level.IsSingleCreasePatch(face) {
			return mask.SemiSharpSingle
		}
		return mask.SemiSharpNonSingle
	}

	if agg.InfSharp || agg.InfSharpEdges {
		return infSharpFaceHasFeatures(agg, mask)
	}

	return false
}

// faceHasDistinctFVarFeatures classifies a face against the seam features
// of one face-varying channel. Only consulted when the channel's topology
// diverges from the vertex topology at the face.
func faceHasDistinctFVarFeatures(level *vtr.Level, face int, mask *FeatureMask, channel int) bool {
	var stack [4]vtr.VTag
	tags := stack[:0]
	for _, v := range level.FaceVertices(face) {
		tags = append(tags, level.VertexCompositeFVarTag(v, channel))
	}
	agg := vtr.CombineVTags(tags)

	if agg.Incomplete {
		return false
	}
	if agg.NonManifold && mask.NonManifold {
		return true
	}
	if agg.XOrdinary && mask.XOrdinaryInterior {
		return true
	}
	if agg.Rule&scheme.RuleSmooth == 0 {
		return true
	}
	return infSharpFaceHasFeatures(agg, mask)
}

// collectFaceSelection classifies the faces in [lo, hi) of a level and
// appends those needing refinement to out. At depth 0 irregular faces are
// swept in regardless of the mask, together with their one-ring when the
// scheme's rules reach beyond the face.
func (r *Refiner) collectFaceSelection(level *vtr.Level, mask *FeatureMask, lo, hi int, out []int) []int {
	selectIrregular := level.Depth() == 0
	if mask.IsEmpty() && !selectIrregular {
		return out
	}

	numFVar := 0
	if mask.FVarFeatures {
		numFVar = level.NumFVarChannels()
	}

	for f := lo; f < hi; f++ {
		if level.IsFaceHole(f) {
			continue
		}

		if selectIrregular {
			verts := level.FaceVertices(f)
			if len(verts) != r.traits.RegularFaceSize {
				if r.traits.LocalNeighborhoodSize == 0 {
					out = append(out, f)
				} else {
					// The irregular face perturbs its whole one-ring.
					for _, v := range verts {
						out = append(out, level.VertexFaces(v)...)
					}
				}
				continue
			}
		}

		selected := faceHasFeatures(level, f, mask)
		for ch := 0; !selected && ch < numFVar; ch++ {
			if !level.FVarTopologyMatches(f, ch) {
				selected = faceHasDistinctFVarFeatures(level, f, mask, ch)
			}
		}
		if selected {
			out = append(out, f)
		}
	}
	return out
}

// selectFeatureAdaptiveComponents feeds the selector with every face of the
// refinement's parent level that the mask classifies as featured. Large
// levels are classified in parallel spans; the per-span results merge into
// the selector in span order, so the selection is identical either way.
func (r *Refiner) selectFeatureAdaptiveComponents(sel *vtr.SparseSelector, mask *FeatureMask, parallelism int) {
	level := sel.Refinement().Parent()
	n := level.NumFaces()

	if parallelism > 1 && n >= parallelMinFaces {
		spans := parallel.Spans(n, parallelism)
		results := make([][]int, len(spans))

		pool := parallel.NewWorkerPool(parallelism)
		defer pool.Close()

		work := make([]func(), len(spans))
		for i, sp := range spans {
			i, sp := i, sp
			work[i] = func() {
				results[i] = r.collectFaceSelection(level, mask, sp.Lo, sp.Hi, nil)
			}
		}
		pool.ExecuteAll(work)

		for _, faces := range results {
			for _, f := range faces {
				sel.SelectFace(f)
			}
		}
		return
	}

	for _, f := range r.collectFaceSelection(level, mask, 0, n, nil) {
		sel.SelectFace(f)
	}
}

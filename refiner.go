package subd

import (
	"fmt"

	"github.com/gogpu/subd/internal/vtr"
	"github.com/gogpu/subd/scheme"
)

// Refiner builds and owns a refinement hierarchy over a base mesh: a stack
// of topology levels joined by refinement steps. A freshly constructed
// refiner holds only the base level; a single call to RefineUniform or
// RefineAdaptive then fixes the hierarchy. Unrefine resets it to the base
// level so it can be refined again differently.
//
// A Refiner is not safe for concurrent mutation. Once refined, all query
// methods are safe for concurrent use.
type Refiner struct {
	schemeType    scheme.Type
	schemeOptions scheme.Options
	traits        scheme.Traits

	levels      []*vtr.Level
	refinements []*vtr.Refinement
	views       []LevelView

	isUniform bool
	maxLevel  int

	uniformOptions  *UniformOptions
	adaptiveOptions *AdaptiveOptions

	// Hierarchy-wide component inventory, updated as levels append.
	totalVertices     int
	totalEdges        int
	totalFaces        int
	totalFaceVertices int
	maxValence        int
}

// NewRefiner constructs a refiner holding the described base mesh at level
// 0. The descriptor is validated against the derived adjacency: creases
// must name existing edges, and face-varying channels must cover every
// face-vertex slot.
func NewRefiner(desc MeshDescriptor, typ scheme.Type, opts scheme.Options) (*Refiner, error) {
	tr := scheme.TraitsFor(typ)
	if tr.RegularFaceSize == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, typ)
	}
	if err := desc.validate(); err != nil {
		return nil, err
	}

	base := vtr.NewLevel(0)
	if err := base.SetTopology(desc.NumVertices, desc.FaceVertexCounts, desc.FaceVertexIndices); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTopology, err)
	}
	if err := base.Finalize(false); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTopology, err)
	}

	for _, cr := range desc.Creases {
		e := base.FindEdge(cr.V0, cr.V1)
		if e < 0 {
			return nil, fmt.Errorf("%w: crease names missing edge (%d,%d)",
				ErrInvalidTopology, cr.V0, cr.V1)
		}
		base.SetEdgeSharpnessByIndex(e, cr.Sharpness)
	}
	for _, c := range desc.Corners {
		base.SetVertexSharpness(c.Vertex, c.Sharpness)
	}
	for _, h := range desc.Holes {
		base.SetFaceHole(h)
	}
	for i, ch := range desc.FVarChannels {
		if _, err := base.AddFVarChannel(ch.NumValues, ch.ValueIndices, opts.FVarLinearInterpolation); err != nil {
			return nil, fmt.Errorf("%w: channel %d: %v", ErrInvalidTopology, i, err)
		}
	}

	base.ComputeTags(tr, opts)

	r := &Refiner{
		schemeType:    typ,
		schemeOptions: opts,
		traits:        tr,
		levels:        []*vtr.Level{base},
	}
	r.resetInventory()
	r.assembleLevelViews()

	Logger().Debug("refiner constructed",
		"scheme", typ.String(),
		"vertices", base.NumVertices(),
		"faces", base.NumFaces(),
		"edges", base.NumEdges())
	return r, nil
}

// SchemeType returns the subdivision scheme of the hierarchy.
func (r *Refiner) SchemeType() scheme.Type { return r.schemeType }

// SchemeOptions returns the scheme-wide options fixed at construction.
func (r *Refiner) SchemeOptions() scheme.Options { return r.schemeOptions }

// IsUniform reports whether the hierarchy was refined uniformly. A
// just-constructed (or unrefined) refiner reports true.
func (r *Refiner) IsUniform() bool { return len(r.refinements) == 0 || r.isUniform }

// MaxLevel returns the depth of the deepest level.
func (r *Refiner) MaxLevel() int { return r.maxLevel }

// NumLevels returns the number of levels, including the base level.
func (r *Refiner) NumLevels() int { return len(r.levels) }

// Level returns the view of the level at the given depth.
func (r *Refiner) Level(depth int) LevelView { return r.views[depth] }

// Levels returns views of every level, base first.
func (r *Refiner) Levels() []LevelView { return r.views }

// NumVerticesTotal returns the vertex count summed over all levels.
func (r *Refiner) NumVerticesTotal() int { return r.totalVertices }

// NumEdgesTotal returns the edge count summed over all levels.
func (r *Refiner) NumEdgesTotal() int { return r.totalEdges }

// NumFacesTotal returns the face count summed over all levels.
func (r *Refiner) NumFacesTotal() int { return r.totalFaces }

// NumFaceVerticesTotal returns the face-vertex count summed over all levels.
func (r *Refiner) NumFaceVerticesTotal() int { return r.totalFaceVertices }

// MaxValence returns the highest vertex valence over all levels.
func (r *Refiner) MaxValence() int { return r.maxValence }

// NumFVarChannels returns the number of face-varying channels.
func (r *Refiner) NumFVarChannels() int { return r.levels[0].NumFVarChannels() }

// NumFVarValuesTotal returns a channel's value count summed over all levels.
func (r *Refiner) NumFVarValuesTotal(channel int) int {
	total := 0
	for _, l := range r.levels {
		total += l.NumFVarValues(channel)
	}
	return total
}

// HasHoles reports whether any base level face is a hole.
func (r *Refiner) HasHoles() bool { return r.levels[0].HasHoles() }

// RefineUniform refines every face of every level to the requested depth.
// Uniform hierarchies always hold RefinementLevel+1 levels.
func (r *Refiner) RefineUniform(opts UniformOptions) error {
	if len(r.refinements) > 0 {
		return ErrAlreadyRefined
	}
	if r.levels[0].NumFaces() == 0 {
		return ErrEmptyBaseLevel
	}
	if opts.RefinementLevel < 0 {
		opts.RefinementLevel = 0
	}
	if opts.RefinementLevel > maxRefinementLevel {
		opts.RefinementLevel = maxRefinementLevel
	}

	for depth := 1; depth <= opts.RefinementLevel; depth++ {
		parent := r.levels[len(r.levels)-1]
		child := vtr.NewLevel(depth)
		ref := vtr.NewRefinement(parent, child, r.traits, r.schemeOptions)

		// Only the deepest level may shed its adjacency: every other
		// level is itself a parent.
		minimal := !opts.FullTopologyInLastLevel && depth == opts.RefinementLevel

		if err := ref.Refine(vtr.Options{
			MinimalTopology: minimal,
			FaceVertsFirst:  opts.OrderVerticesFromFacesFirst,
		}); err != nil {
			return err
		}
		r.appendLevel(child, ref)
	}

	r.isUniform = true
	r.maxLevel = opts.RefinementLevel
	r.uniformOptions = &opts
	r.assembleLevelViews()

	Logger().Info("uniform refinement complete",
		"levels", len(r.levels),
		"vertices", r.totalVertices,
		"faces", r.totalFaces)
	return nil
}

// RefineAdaptive refines sparsely, isolating irregular features to the
// requested depth. Refinement stops early at depths where no face is
// selected, so MaxLevel may come out below IsolationLevel.
func (r *Refiner) RefineAdaptive(opts AdaptiveOptions) error {
	if len(r.refinements) > 0 {
		return ErrAlreadyRefined
	}
	if r.levels[0].NumFaces() == 0 {
		return ErrEmptyBaseLevel
	}
	if !r.traits.SupportsAdaptive {
		return fmt.Errorf("%w: %s", ErrAdaptiveUnsupported, r.schemeType)
	}
	if opts.IsolationLevel < 0 {
		opts.IsolationLevel = 0
	}
	if opts.IsolationLevel > maxRefinementLevel {
		opts.IsolationLevel = maxRefinementLevel
	}

	// Depths beyond the secondary level select with a reduced mask.
	shallow := opts.IsolationLevel
	if opts.SecondaryLevel > 0 && opts.SecondaryLevel < shallow {
		shallow = opts.SecondaryLevel
	}
	moreMask := NewFeatureMask(opts, r.traits)
	lessMask := moreMask
	if shallow < opts.IsolationLevel {
		lessMask.ReduceFeatures(opts)
	}

	if r.traits.LocalNeighborhoodSize == 0 {
		// Subdivision never reaches beyond the face: isolating level-0
		// irregular faces once regularizes everything.
		moreMask.Clear()
		lessMask.Clear()
	} else if moreMask.FVarFeatures {
		// Linear channels carry no features worth classifying.
		base := r.levels[0]
		nonLinear := false
		for ch := 0; ch < base.NumFVarChannels(); ch++ {
			if !base.IsFVarChannelLinear(ch) {
				nonLinear = true
				break
			}
		}
		if !nonLinear {
			moreMask.FVarFeatures = false
			lessMask.FVarFeatures = false
		}
	}

	for depth := 1; depth <= opts.IsolationLevel; depth++ {
		parent := r.levels[len(r.levels)-1]
		child := vtr.NewLevel(depth)
		ref := vtr.NewRefinement(parent, child, r.traits, r.schemeOptions)
		sel := vtr.NewSparseSelector(ref)

		mask := &moreMask
		if depth > shallow {
			mask = &lessMask
		}
		r.selectFeatureAdaptiveComponents(sel, mask, opts.Parallelism)
		if sel.IsSelectionEmpty() {
			break
		}

		if err := ref.Refine(vtr.Options{
			Sparse:         true,
			FaceVertsFirst: opts.OrderVerticesFromFacesFirst,
		}); err != nil {
			return err
		}
		r.appendLevel(child, ref)

		Logger().Debug("adaptive level refined",
			"depth", depth,
			"selected", sel.NumSelected(),
			"childFaces", child.NumFaces())
	}

	r.isUniform = false
	r.maxLevel = len(r.refinements)
	r.adaptiveOptions = &opts
	r.assembleLevelViews()

	Logger().Info("adaptive refinement complete",
		"levels", len(r.levels),
		"vertices", r.totalVertices,
		"faces", r.totalFaces)
	return nil
}

// Unrefine discards every level beyond the base, returning the refiner to
// its just-constructed state. The base level and its tags are untouched.
func (r *Refiner) Unrefine() {
	r.levels = r.levels[:1]
	r.refinements = nil
	r.isUniform = false
	r.maxLevel = 0
	r.uniformOptions = nil
	r.adaptiveOptions = nil
	r.resetInventory()
	r.assembleLevelViews()
}

// appendLevel adds a refined level and its producing step to the hierarchy
// and folds it into the inventory.
func (r *Refiner) appendLevel(l *vtr.Level, ref *vtr.Refinement) {
	r.levels = append(r.levels, l)
	r.refinements = append(r.refinements, ref)
	r.addToInventory(l)
}

// resetInventory recomputes the inventory from the retained levels.
func (r *Refiner) resetInventory() {
	r.totalVertices = 0
	r.totalEdges = 0
	r.totalFaces = 0
	r.totalFaceVertices = 0
	r.maxValence = 0
	for _, l := range r.levels {
		r.addToInventory(l)
	}
}

func (r *Refiner) addToInventory(l *vtr.Level) {
	r.totalVertices += l.NumVertices()
	r.totalEdges += l.NumEdges()
	r.totalFaces += l.NumFaces()
	r.totalFaceVertices += l.NumFaceVerticesTotal()
	if l.MaxValence() > r.maxValence {
		r.maxValence = l.MaxValence()
	}
}

// assembleLevelViews rebuilds the per-level views, linking each level to
// the refinement steps on either side of it.
func (r *Refiner) assembleLevelViews() {
	r.views = make([]LevelView, len(r.levels))
	for i, l := range r.levels {
		v := LevelView{level: l}
		if i > 0 {
			v.toParent = r.refinements[i-1]
		}
		if i < len(r.refinements) {
			v.toChild = r.refinements[i]
		}
		r.views[i] = v
	}
}

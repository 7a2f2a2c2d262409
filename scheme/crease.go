package scheme

// Crease sharpness values and the per-vertex crease rule classification.
//
// Sharpness is a non-negative float. Zero is smooth; values at or above
// InfinitelySharp never decay and denote permanent creases. Anything in
// between is semi-sharp and loses one unit of sharpness per refinement
// level (under uniform creasing) until it smooths out.

// InfinitelySharp is the sharpness at or above which a crease or corner is
// considered permanent.
const InfinitelySharp float32 = 10.0

// IsSharp reports whether the sharpness marks any crease at all.
func IsSharp(s float32) bool { return s > 0 }

// IsInfSharp reports whether the sharpness marks a permanent crease.
func IsInfSharp(s float32) bool { return s >= InfinitelySharp }

// IsSemiSharp reports whether the sharpness marks a decaying crease.
func IsSemiSharp(s float32) bool { return s > 0 && s < InfinitelySharp }

// ClampSharpness limits a sharpness value to [0, InfinitelySharp].
func ClampSharpness(s float32) float32 {
	if s < 0 {
		return 0
	}
	if s > InfinitelySharp {
		return InfinitelySharp
	}
	return s
}

// SubdividedSharpness returns the sharpness a crease passes to its children
// under uniform creasing: infinite sharpness persists, semi-sharpness decays
// by one unit per level.
func SubdividedSharpness(s float32) float32 {
	if IsInfSharp(s) {
		return s
	}
	if s <= 1 {
		return 0
	}
	return s - 1
}

// ChaikinSubdividedSharpness returns a child edge sharpness under Chaikin
// creasing: the parent edge's sharpness is blended with the average
// sharpness of the other sharp edges meeting it at the shared end vertex.
// peerSum and peerCount describe those other sharp edges.
func ChaikinSubdividedSharpness(s float32, peerSum float32, peerCount int) float32 {
	if IsInfSharp(s) {
		return s
	}
	if peerCount == 0 {
		return SubdividedSharpness(s)
	}
	blended := (3*s + peerSum/float32(peerCount)) * 0.25
	if blended <= 1 {
		return 0
	}
	return blended - 1
}

// Rule classifies a vertex by the crease features incident to it. Values
// are single bits so rules aggregated across the corners of a face can be
// combined with bitwise OR and then queried per bit.
type Rule uint8

const (
	RuleUnknown Rule = 0
	RuleSmooth  Rule = 1 << 0
	RuleDart    Rule = 1 << 1
	RuleCrease  Rule = 1 << 2
	RuleCorner  Rule = 1 << 3
)

// String returns the rule name, or a combination for aggregated rules.
func (r Rule) String() string {
	switch r {
	case RuleUnknown:
		return "unknown"
	case RuleSmooth:
		return "smooth"
	case RuleDart:
		return "dart"
	case RuleCrease:
		return "crease"
	case RuleCorner:
		return "corner"
	}
	return "mixed"
}

// DetermineVertexRule classifies a vertex from its own sharpness and the
// number of sharp edges incident to it.
func DetermineVertexRule(vertexSharpness float32, sharpEdgeCount int) Rule {
	if IsSharp(vertexSharpness) {
		return RuleCorner
	}
	switch sharpEdgeCount {
	case 0:
		return RuleSmooth
	case 1:
		return RuleDart
	case 2:
		return RuleCrease
	}
	return RuleCorner
}

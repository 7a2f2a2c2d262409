package parallel

// Span is a half-open index range [Lo, Hi) over a component index space.
type Span struct {
	Lo, Hi int
}

// Len returns the number of indices in the span.
func (s Span) Len() int { return s.Hi - s.Lo }

// Spans partitions [0, n) into at most parts contiguous spans of near-equal
// size. Earlier spans are one larger when n does not divide evenly, so the
// spans cover the range exactly and in order. Returns nil when n <= 0.
func Spans(n, parts int) []Span {
	if n <= 0 {
		return nil
	}
	if parts <= 1 || parts > n {
		if parts > n {
			parts = n
		}
		if parts <= 1 {
			return []Span{{0, n}}
		}
	}

	out := make([]Span, 0, parts)
	size := n / parts
	rem := n % parts
	lo := 0
	for i := 0; i < parts; i++ {
		hi := lo + size
		if i < rem {
			hi++
		}
		out = append(out, Span{lo, hi})
		lo = hi
	}
	return out
}

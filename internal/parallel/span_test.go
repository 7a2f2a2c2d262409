package parallel

import "testing"

func TestSpans(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		parts int
		want  []Span
	}{
		{name: "empty", n: 0, parts: 4, want: nil},
		{name: "negative", n: -3, parts: 4, want: nil},
		{name: "single part", n: 10, parts: 1, want: []Span{{0, 10}}},
		{name: "even split", n: 8, parts: 4, want: []Span{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{name: "uneven split", n: 10, parts: 3, want: []Span{{0, 4}, {4, 7}, {7, 10}}},
		{name: "more parts than items", n: 2, parts: 8, want: []Span{{0, 1}, {1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Spans(tt.n, tt.parts)
			if len(got) != len(tt.want) {
				t.Fatalf("Spans(%d, %d) = %v, want %v", tt.n, tt.parts, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("span %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSpansCoverRange(t *testing.T) {
	for _, n := range []int{1, 7, 100, 4097} {
		for _, parts := range []int{1, 2, 3, 8, 200} {
			spans := Spans(n, parts)
			covered := 0
			prev := 0
			for _, s := range spans {
				if s.Lo != prev {
					t.Fatalf("Spans(%d, %d): span starts at %d, want %d", n, parts, s.Lo, prev)
				}
				if s.Len() <= 0 {
					t.Fatalf("Spans(%d, %d): empty span %v", n, parts, s)
				}
				covered += s.Len()
				prev = s.Hi
			}
			if covered != n {
				t.Errorf("Spans(%d, %d) covers %d indices", n, parts, covered)
			}
		}
	}
}

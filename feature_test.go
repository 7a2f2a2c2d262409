package subd

import (
	"testing"

	"github.com/gogpu/subd/scheme"
)

func TestNewFeatureMaskDefaults(t *testing.T) {
	catmark := scheme.TraitsFor(scheme.CatmullClark)

	m := NewFeatureMask(AdaptiveOptions{}, catmark)
	want := FeatureMask{
		XOrdinaryInterior:       true,
		XOrdinaryBoundary:       true,
		SemiSharpSingle:         true,
		SemiSharpNonSingle:      true,
		InfSharpRegularCrease:   true,
		InfSharpRegularCorner:   true,
		InfSharpIrregularDart:   true,
		InfSharpIrregularCrease: true,
		InfSharpIrregularCorner: true,
		NonManifold:             true,
	}
	if m != want {
		t.Errorf("NewFeatureMask(defaults) = %+v, want %+v", m, want)
	}
}

func TestNewFeatureMaskOptions(t *testing.T) {
	catmark := scheme.TraitsFor(scheme.CatmullClark)
	loop := scheme.TraitsFor(scheme.Loop)

	tests := []struct {
		name  string
		opts  AdaptiveOptions
		tr    scheme.Traits
		check func(t *testing.T, m FeatureMask)
	}{
		{
			name: "single crease patch on quads",
			opts: AdaptiveOptions{UseSingleCreasePatch: true},
			tr:   catmark,
			check: func(t *testing.T, m FeatureMask) {
				if m.SemiSharpSingle {
					t.Error("SemiSharpSingle should be false with single-crease patches")
				}
				if !m.SemiSharpNonSingle {
					t.Error("SemiSharpNonSingle should stay true")
				}
				if m.InfSharpRegularCrease {
					t.Error("InfSharpRegularCrease should be false with single-crease patches")
				}
				if !m.InfSharpRegularCorner {
					t.Error("InfSharpRegularCorner should stay true")
				}
			},
		},
		{
			name: "single crease patch ignored on triangles",
			opts: AdaptiveOptions{UseSingleCreasePatch: true},
			tr:   loop,
			check: func(t *testing.T, m FeatureMask) {
				if !m.SemiSharpSingle {
					t.Error("SemiSharpSingle should stay true for a triangle scheme")
				}
				if !m.InfSharpRegularCrease {
					t.Error("InfSharpRegularCrease should stay true for a triangle scheme")
				}
			},
		},
		{
			name: "inf sharp patch",
			opts: AdaptiveOptions{UseInfSharpPatch: true},
			tr:   catmark,
			check: func(t *testing.T, m FeatureMask) {
				if m.InfSharpRegularCrease || m.InfSharpRegularCorner {
					t.Error("regular inf-sharp features should be excluded with inf-sharp patches")
				}
				if !m.InfSharpIrregularCorner || !m.InfSharpIrregularCrease || !m.InfSharpIrregularDart {
					t.Error("irregular inf-sharp features should stay true")
				}
			},
		},
		{
			name: "fvar channels",
			opts: AdaptiveOptions{ConsiderFVarChannels: true},
			tr:   catmark,
			check: func(t *testing.T, m FeatureMask) {
				if !m.FVarFeatures {
					t.Error("FVarFeatures should follow ConsiderFVarChannels")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewFeatureMask(tt.opts, tt.tr))
		})
	}
}

func TestReduceFeatures(t *testing.T) {
	catmark := scheme.TraitsFor(scheme.CatmullClark)

	t.Run("clears extraordinary flags", func(t *testing.T) {
		m := NewFeatureMask(AdaptiveOptions{}, catmark)
		m.ReduceFeatures(AdaptiveOptions{})
		if m.XOrdinaryInterior || m.XOrdinaryBoundary {
			t.Error("reduction should clear both extraordinary flags")
		}
		if !m.InfSharpRegularCrease || !m.InfSharpRegularCorner {
			t.Error("reduction without inf-sharp patches should keep regular inf-sharp flags")
		}
	})

	t.Run("inf sharp patch keeps irregular corners", func(t *testing.T) {
		opts := AdaptiveOptions{UseInfSharpPatch: true}
		m := NewFeatureMask(opts, catmark)
		m.ReduceFeatures(opts)
		if m.InfSharpIrregularDart || m.InfSharpIrregularCrease {
			t.Error("reduction with inf-sharp patches should clear irregular dart and crease flags")
		}
		if !m.InfSharpIrregularCorner {
			t.Error("reduction must leave InfSharpIrregularCorner set")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		opts := AdaptiveOptions{UseInfSharpPatch: true, UseSingleCreasePatch: true}
		once := NewFeatureMask(opts, catmark)
		once.ReduceFeatures(opts)
		twice := once
		twice.ReduceFeatures(opts)
		if once != twice {
			t.Errorf("ReduceFeatures not idempotent: once %+v, twice %+v", once, twice)
		}
	})
}

func TestFeatureMaskClearIsEmpty(t *testing.T) {
	m := NewFeatureMask(AdaptiveOptions{}, scheme.TraitsFor(scheme.CatmullClark))
	if m.IsEmpty() {
		t.Fatal("freshly built mask should not be empty")
	}
	m.Clear()
	if !m.IsEmpty() {
		t.Errorf("cleared mask should be empty, got %+v", m)
	}
	if (FeatureMask{}).IsEmpty() != true {
		t.Error("zero-value mask should be empty")
	}
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/subd/scheme"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") = %v", err)
	}
	st, err := cfg.SchemeType()
	if err != nil {
		t.Fatalf("SchemeType() = %v", err)
	}
	if st != scheme.CatmullClark {
		t.Errorf("scheme = %v, want catmull-clark", st)
	}
	opts, err := cfg.SchemeOptions()
	if err != nil {
		t.Fatalf("SchemeOptions() = %v", err)
	}
	if opts != (scheme.Options{}) {
		t.Errorf("options = %+v, want zero value", opts)
	}
	if cfg.Uniform.Level != 2 || cfg.Adaptive.Isolation != 4 {
		t.Errorf("defaults = %d/%d, want 2/4", cfg.Uniform.Level, cfg.Adaptive.Isolation)
	}
}

func TestLoadConfigFile(t *testing.T) {
	const src = `
scheme: loop
boundary: edge-and-corner
creasing: chaikin
fvarLinear: none
uniform:
  level: 3
  fullTopology: true
adaptive:
  isolation: 6
  secondary: 2
  infSharpPatch: true
  parallelism: 4
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}
	st, err := cfg.SchemeType()
	if err != nil {
		t.Fatalf("SchemeType() = %v", err)
	}
	if st != scheme.Loop {
		t.Errorf("scheme = %v, want loop", st)
	}
	opts, err := cfg.SchemeOptions()
	if err != nil {
		t.Fatalf("SchemeOptions() = %v", err)
	}
	if opts.VtxBoundaryInterpolation != scheme.BoundaryEdgeAndCorner {
		t.Errorf("boundary = %v", opts.VtxBoundaryInterpolation)
	}
	if opts.CreasingMethod != scheme.CreasingChaikin {
		t.Errorf("creasing = %v", opts.CreasingMethod)
	}
	if opts.FVarLinearInterpolation != scheme.FVarLinearNone {
		t.Errorf("fvar = %v", opts.FVarLinearInterpolation)
	}

	uo := cfg.UniformOptions()
	if uo.RefinementLevel != 3 || !uo.FullTopologyInLastLevel {
		t.Errorf("uniform options = %+v", uo)
	}
	ao := cfg.AdaptiveOptions()
	if ao.IsolationLevel != 6 || ao.SecondaryLevel != 2 || !ao.UseInfSharpPatch || ao.Parallelism != 4 {
		t.Errorf("adaptive options = %+v", ao)
	}
}

func TestConfigRejectsUnknownNames(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "scheme", mutate: func(c *Config) { c.Scheme = "doo-sabin" }},
		{name: "boundary", mutate: func(c *Config) { c.Boundary = "sharp" }},
		{name: "creasing", mutate: func(c *Config) { c.Creasing = "smooth" }},
		{name: "fvar", mutate: func(c *Config) { c.FVarLinear = "corners" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			_, errType := cfg.SchemeType()
			_, errOpts := cfg.SchemeOptions()
			if errType == nil && errOpts == nil {
				t.Error("config accepted, want error")
			}
		})
	}
}

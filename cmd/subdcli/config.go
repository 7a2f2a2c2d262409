package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/subd"
	"github.com/gogpu/subd/scheme"
)

// Config holds the refinement settings read from a YAML file. Command line
// flags override whatever the file sets.
type Config struct {
	Scheme     string `yaml:"scheme"`
	Boundary   string `yaml:"boundary"`
	Creasing   string `yaml:"creasing"`
	FVarLinear string `yaml:"fvarLinear"`

	Uniform struct {
		Level        int  `yaml:"level"`
		FullTopology bool `yaml:"fullTopology"`
		FacesFirst   bool `yaml:"facesFirst"`
	} `yaml:"uniform"`

	Adaptive struct {
		Isolation         int  `yaml:"isolation"`
		Secondary         int  `yaml:"secondary"`
		InfSharpPatch     bool `yaml:"infSharpPatch"`
		SingleCreasePatch bool `yaml:"singleCreasePatch"`
		FVarChannels      bool `yaml:"fvarChannels"`
		Parallelism       int  `yaml:"parallelism"`
	} `yaml:"adaptive"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{
		Scheme:     "catmull-clark",
		Boundary:   "edge-only",
		Creasing:   "uniform",
		FVarLinear: "all",
	}
	cfg.Uniform.Level = 2
	cfg.Adaptive.Isolation = 4
	return cfg
}

// LoadConfig reads a config file over the defaults. An empty path returns
// the defaults untouched.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SchemeType resolves the configured scheme name.
func (c *Config) SchemeType() (scheme.Type, error) {
	switch c.Scheme {
	case "bilinear":
		return scheme.Bilinear, nil
	case "catmull-clark", "catmark", "":
		return scheme.CatmullClark, nil
	case "loop":
		return scheme.Loop, nil
	}
	return 0, fmt.Errorf("unknown scheme %q", c.Scheme)
}

// SchemeOptions resolves the configured boundary, creasing, and
// face-varying interpolation names.
func (c *Config) SchemeOptions() (scheme.Options, error) {
	var opts scheme.Options
	switch c.Boundary {
	case "edge-only", "":
		opts.VtxBoundaryInterpolation = scheme.BoundaryEdgeOnly
	case "edge-and-corner":
		opts.VtxBoundaryInterpolation = scheme.BoundaryEdgeAndCorner
	case "none":
		opts.VtxBoundaryInterpolation = scheme.BoundaryNone
	default:
		return opts, fmt.Errorf("unknown boundary interpolation %q", c.Boundary)
	}
	switch c.Creasing {
	case "uniform", "":
		opts.CreasingMethod = scheme.CreasingUniform
	case "chaikin":
		opts.CreasingMethod = scheme.CreasingChaikin
	default:
		return opts, fmt.Errorf("unknown creasing method %q", c.Creasing)
	}
	switch c.FVarLinear {
	case "all", "":
		opts.FVarLinearInterpolation = scheme.FVarLinearAll
	case "boundaries":
		opts.FVarLinearInterpolation = scheme.FVarLinearBoundaries
	case "none":
		opts.FVarLinearInterpolation = scheme.FVarLinearNone
	default:
		return opts, fmt.Errorf("unknown face-varying interpolation %q", c.FVarLinear)
	}
	return opts, nil
}

// UniformOptions assembles the configured uniform refinement options.
func (c *Config) UniformOptions() subd.UniformOptions {
	return subd.UniformOptions{
		RefinementLevel:             c.Uniform.Level,
		OrderVerticesFromFacesFirst: c.Uniform.FacesFirst,
		FullTopologyInLastLevel:     c.Uniform.FullTopology,
	}
}

// AdaptiveOptions assembles the configured adaptive refinement options.
func (c *Config) AdaptiveOptions() subd.AdaptiveOptions {
	return subd.AdaptiveOptions{
		IsolationLevel:       c.Adaptive.Isolation,
		SecondaryLevel:       c.Adaptive.Secondary,
		UseSingleCreasePatch: c.Adaptive.SingleCreasePatch,
		UseInfSharpPatch:     c.Adaptive.InfSharpPatch,
		ConsiderFVarChannels: c.Adaptive.FVarChannels,
		Parallelism:          c.Adaptive.Parallelism,
	}
}

// buildRefiner loads the mesh and constructs a refiner from the config.
func buildRefiner(cfg *Config, meshPath string) (*subd.Refiner, error) {
	st, err := cfg.SchemeType()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.SchemeOptions()
	if err != nil {
		return nil, err
	}
	desc, err := loadMesh(meshPath)
	if err != nil {
		return nil, err
	}
	return subd.NewRefiner(desc, st, opts)
}

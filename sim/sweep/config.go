// Package sweep expands a parameter-grid config into independent
// simulation runs and executes them as a batch. Each run owns a fresh
// Topology, Simulation, and RNG; nothing mutable is shared between runs.
package sweep

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"
)

// axisKeys are the parameter-grid axes the runner understands.
var axisKeys = map[string]bool{
	"alpha":  true, // infection probability
	"beta":   true, // synergy coefficient
	"tau":    true, // fixed recovery duration (steps)
	"gamma":  true, // geometric per-step recovery probability
	"size":   true, // grid side length / small-world node count
	"rewire": true, // small-world rewiring probability
}

// Config describes a parameter sweep loaded from YAML.
type Config struct {
	ExperimentName string `yaml:"experiment_name" validate:"required"`
	RunsPerPoint   int    `yaml:"runs_per_point" validate:"min=1"`
	MaxSteps       int    `yaml:"max_steps" validate:"min=0"`
	BaseSeed       int64  `yaml:"base_seed"`

	Topology Topology `yaml:"topology"`

	// ParameterGrid maps axis names to value lists. Axis values may be
	// written inline ([0.1, 0.2]) or as arange(min, max, step) /
	// linspace(min, max, n) expressions.
	ParameterGrid map[string]Axis `yaml:"parameter_grid" validate:"required,min=1"`
}

// Topology selects and parameterizes the network family for a sweep.
// The size and rewire grid axes, when present, override the static
// values here point by point.
type Topology struct {
	Kind string `yaml:"kind" validate:"required,oneof=grid smallworld"`

	// Grid family.
	Rows     int  `yaml:"rows"`
	Cols     int  `yaml:"cols"`
	Diagonal bool `yaml:"diagonal"`
	Wrap     bool `yaml:"wrap"`

	// Small-world family.
	Nodes  int     `yaml:"nodes"`
	Degree int     `yaml:"degree"`
	Rewire float64 `yaml:"rewire"`
}

// Axis is one parameter-grid dimension: an explicit value list, or an
// arange/linspace expression expanded at load time.
type Axis []float64

func (a *Axis) UnmarshalYAML(value *yaml.Node) error {
	var values []float64
	if err := value.Decode(&values); err == nil {
		*a = values
		return nil
	}

	var expr string
	if err := value.Decode(&expr); err != nil {
		return fmt.Errorf("axis must be a list of numbers or an arange/linspace string")
	}
	values, err := expandAxisExpr(expr)
	if err != nil {
		return err
	}
	*a = values
	return nil
}

// expandAxisExpr parses "arange(min, max, step)" (half-open, like the
// numpy function) and "linspace(min, max, n)" (inclusive endpoints).
func expandAxisExpr(expr string) ([]float64, error) {
	name, args, err := splitCall(expr)
	if err != nil {
		return nil, err
	}
	switch name {
	case "arange":
		if len(args) != 3 {
			return nil, fmt.Errorf("arange expects 3 arguments, got %d in %q", len(args), expr)
		}
		min, max, step := args[0], args[1], args[2]
		if step <= 0 || max <= min {
			return nil, fmt.Errorf("arange requires max > min and step > 0 in %q", expr)
		}
		var values []float64
		for i := 0; ; i++ {
			v := min + float64(i)*step
			if v >= max {
				break
			}
			values = append(values, v)
		}
		return values, nil
	case "linspace":
		if len(args) != 3 {
			return nil, fmt.Errorf("linspace expects 3 arguments, got %d in %q", len(args), expr)
		}
		n := int(args[2])
		if n < 2 {
			return nil, fmt.Errorf("linspace requires n >= 2 in %q", expr)
		}
		return floats.Span(make([]float64, n), args[0], args[1]), nil
	default:
		return nil, fmt.Errorf("unknown axis expression %q (want arange or linspace)", name)
	}
}

func splitCall(expr string) (name string, args []float64, err error) {
	expr = strings.TrimSpace(expr)
	open := strings.IndexByte(expr, '(')
	if open < 0 || !strings.HasSuffix(expr, ")") {
		return "", nil, fmt.Errorf("malformed axis expression %q", expr)
	}
	name = strings.TrimSpace(expr[:open])
	for _, part := range strings.Split(expr[open+1:len(expr)-1], ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return "", nil, fmt.Errorf("malformed axis expression %q: %w", expr, err)
		}
		args = append(args, v)
	}
	return name, args, nil
}

// Load reads and validates a sweep config from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sweep config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing sweep config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks structural constraints and rejects unknown or empty
// grid axes before any run starts.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("sweep config: %w", err)
	}
	for key, axis := range c.ParameterGrid {
		if !axisKeys[key] {
			return fmt.Errorf("sweep config: unknown parameter_grid axis %q", key)
		}
		if len(axis) == 0 {
			return fmt.Errorf("sweep config: parameter_grid axis %q is empty", key)
		}
	}
	// tau and size are consumed as integers; a fractional value would be
	// silently truncated mid-sweep.
	for _, key := range []string{"tau", "size"} {
		for _, v := range c.ParameterGrid[key] {
			if v != math.Trunc(v) {
				return fmt.Errorf("sweep config: %s axis values must be integers, got %v", key, v)
			}
		}
	}
	if _, ok := c.ParameterGrid["alpha"]; !ok {
		return fmt.Errorf("sweep config: parameter_grid must include an alpha axis")
	}
	if _, both := c.ParameterGrid["tau"]; both {
		if _, g := c.ParameterGrid["gamma"]; g {
			return fmt.Errorf("sweep config: tau and gamma axes are mutually exclusive")
		}
	}
	return nil
}

// Point is one cell of the expanded parameter grid.
type Point map[string]float64

// Get returns the point's value for an axis, or fallback when the axis
// is not part of the sweep.
func (p Point) Get(key string, fallback float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return fallback
}

// Points expands the parameter grid into its cartesian product. Axes are
// iterated in sorted name order so the expansion is deterministic.
func (c *Config) Points() []Point {
	names := make([]string, 0, len(c.ParameterGrid))
	for name := range c.ParameterGrid {
		names = append(names, name)
	}
	sort.Strings(names)

	points := []Point{{}}
	for _, name := range names {
		axis := c.ParameterGrid[name]
		next := make([]Point, 0, len(points)*len(axis))
		for _, base := range points {
			for _, v := range axis {
				p := make(Point, len(base)+1)
				for k, bv := range base {
					p[k] = bv
				}
				p[name] = v
				next = append(next, p)
			}
		}
		points = next
	}
	return points
}

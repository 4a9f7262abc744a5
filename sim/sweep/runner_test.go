package sweep

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contagion-sim/contagion-sim/sim/track"
)

func testConfig() *Config {
	return &Config{
		ExperimentName: "test-sweep",
		RunsPerPoint:   3,
		MaxSteps:       200,
		BaseSeed:       7,
		Topology:       Topology{Kind: "grid", Rows: 7, Cols: 7},
		ParameterGrid: map[string]Axis{
			"alpha": {0, 1},
		},
	}
}

func TestRunner_AggregatesPerPoint(t *testing.T) {
	runner := &Runner{Config: testConfig()}
	results, err := runner.Run()
	require.NoError(t, err)
	require.Len(t, results, 2)

	// alpha=0: only the seed is ever infected.
	zero := results[0]
	assert.Equal(t, 0.0, zero.Point["alpha"])
	assert.Equal(t, 3, zero.Runs)
	assert.InDelta(t, 1.0/49.0, zero.OutbreakMean, 1e-12)
	assert.InDelta(t, 0.0, zero.OutbreakStdDev, 1e-12)
	assert.Equal(t, 3, zero.ExtinctRuns)
	assert.Equal(t, 0, zero.SpanningRuns)

	// alpha=1 with default tau=1 sweeps the whole grid deterministically.
	one := results[1]
	assert.Equal(t, 1.0, one.OutbreakMean)
	assert.Equal(t, 3, one.ExtinctRuns)
	assert.Equal(t, 3, one.SpanningRuns)
}

func TestRunner_DeterministicAcrossExecutions(t *testing.T) {
	cfg := testConfig()
	cfg.ParameterGrid["alpha"] = Axis{0.35}
	cfg.ParameterGrid["beta"] = Axis{0.2}
	cfg.ParameterGrid["gamma"] = Axis{0.3}

	first, err := (&Runner{Config: cfg}).Run()
	require.NoError(t, err)
	second, err := (&Runner{Config: cfg}).Run()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunner_SmallWorldTopology(t *testing.T) {
	cfg := testConfig()
	cfg.Topology = Topology{Kind: "smallworld", Nodes: 40, Degree: 4}
	cfg.ParameterGrid = map[string]Axis{
		"alpha":  {0.5},
		"rewire": {0, 0.5},
	}

	results, err := (&Runner{Config: cfg}).Run()
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, res := range results {
		assert.Equal(t, 3, res.Runs)
		assert.Positive(t, res.OutbreakMean)
		assert.Equal(t, 0, res.SpanningRuns, "spanning class is grid-only")
	}
}

func TestRunner_SizeAxisOverridesShape(t *testing.T) {
	cfg := testConfig()
	cfg.ParameterGrid = map[string]Axis{
		"alpha": {0},
		"size":  {5},
	}

	results, err := (&Runner{Config: cfg}).Run()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 1.0/25.0, results[0].OutbreakMean, 1e-12, "5x5 grid from the size axis")
}

func TestRunner_PersistsToStore(t *testing.T) {
	store, err := track.Open(filepath.Join(t.TempDir(), "sweep.db"))
	require.NoError(t, err)
	defer store.Close()

	cfg := testConfig()
	runner := &Runner{Config: cfg, Store: store}
	_, err = runner.Run()
	require.NoError(t, err)

	n, err := store.CountRuns("test-sweep")
	require.NoError(t, err)
	assert.Equal(t, 2*3, n, "every run of every point is persisted")
}

func TestRunner_InvalidTopologyKind(t *testing.T) {
	cfg := testConfig()
	cfg.Topology.Kind = "torus"
	_, err := (&Runner{Config: cfg}).Run()
	assert.Error(t, err)
}

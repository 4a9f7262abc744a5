package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynergyExposure_BaselineIsNeighborCount(t *testing.T) {
	for k := 0; k <= 10; k++ {
		assert.Equal(t, float64(k), synergyExposure(k, 0), "k=%d", k)
	}
}

func TestSynergyExposure_SingleNeighborUnaffected(t *testing.T) {
	for _, beta := range []float64{-5, -0.5, 0, 0.5, 5} {
		assert.Equal(t, 1.0, synergyExposure(1, beta), "beta=%v", beta)
	}
}

func TestSynergyExposure_ClampedAtZero(t *testing.T) {
	// Strongly competitive synergy can suppress infection entirely but
	// never produce a negative exposure.
	assert.Equal(t, 0.0, synergyExposure(3, -2))
	assert.Equal(t, 0.0, synergyExposure(0, 1))
}

func TestInfectionProbability_SynergyFreeBaseline(t *testing.T) {
	alpha := 0.3
	for k := 0; k <= 6; k++ {
		want := 1 - math.Pow(1-alpha, float64(k))
		assert.InDelta(t, want, InfectionProbability(alpha, 0, k), 1e-12, "k=%d", k)
	}
}

func TestInfectionProbability_MonotoneInBeta(t *testing.T) {
	alpha := 0.4
	for k := 2; k <= 5; k++ {
		base := InfectionProbability(alpha, 0, k)
		assert.Greater(t, InfectionProbability(alpha, 0.5, k), base, "collaborative, k=%d", k)
		assert.Less(t, InfectionProbability(alpha, -0.2, k), base, "competitive, k=%d", k)
	}
	// k=1: synergy needs at least two simultaneous exposures to act.
	assert.Equal(t, InfectionProbability(alpha, 0, 1), InfectionProbability(alpha, 0.5, 1))
}

func TestInfectionProbability_Extremes(t *testing.T) {
	assert.Equal(t, 0.0, InfectionProbability(0.9, 0.5, 0), "no neighbors, no spontaneous infection")
	assert.Equal(t, 0.0, InfectionProbability(0, 0.5, 4), "alpha=0 never infects")
	assert.Equal(t, 1.0, InfectionProbability(1, 0, 1), "alpha=1 always infects")
	assert.Equal(t, 1.0, InfectionProbability(1, -0.1, 3))
}

func TestNextCell_Susceptible(t *testing.T) {
	p := &Params{Alpha: 0.5, Beta: 0, Recovery: FixedDuration{Steps: 2}}

	// Draw below P(k) infects, draw above it does not.
	got := nextCell(Cell{State: Susceptible}, 1, p, 0.2)
	assert.Equal(t, Cell{State: Infected, Age: 0}, got)

	got = nextCell(Cell{State: Susceptible}, 1, p, 0.9)
	assert.Equal(t, Cell{State: Susceptible}, got)

	// Zero infectious neighbors never infects, whatever the draw.
	got = nextCell(Cell{State: Susceptible}, 0, p, math.NaN())
	assert.Equal(t, Cell{State: Susceptible}, got)
}

func TestNextCell_InfectedAgesUntilFixedRecovery(t *testing.T) {
	p := &Params{Alpha: 0.5, Recovery: FixedDuration{Steps: 3}}

	c := Cell{State: Infected, Age: 0}
	c = nextCell(c, 0, p, math.NaN())
	require.Equal(t, Cell{State: Infected, Age: 1}, c)
	c = nextCell(c, 0, p, math.NaN())
	require.Equal(t, Cell{State: Infected, Age: 2}, c)
	c = nextCell(c, 0, p, math.NaN())
	require.Equal(t, Cell{State: Recovered}, c)
}

func TestNextCell_GeometricRecovery(t *testing.T) {
	p := &Params{Alpha: 0.5, Recovery: Geometric{Gamma: 0.25}}

	got := nextCell(Cell{State: Infected, Age: 4}, 0, p, 0.1)
	assert.Equal(t, Cell{State: Recovered}, got)

	got = nextCell(Cell{State: Infected, Age: 4}, 0, p, 0.9)
	assert.Equal(t, Cell{State: Infected, Age: 5}, got)
}

func TestNextCell_RecoveredIsTerminal(t *testing.T) {
	p := &Params{Alpha: 1, Recovery: FixedDuration{Steps: 1}}
	got := nextCell(Cell{State: Recovered}, 5, p, 0.0)
	assert.Equal(t, Cell{State: Recovered}, got)
}

func TestValidateRecovery(t *testing.T) {
	assert.NoError(t, validateRecovery(FixedDuration{Steps: 1}))
	assert.NoError(t, validateRecovery(Geometric{Gamma: 1}))

	assert.ErrorIs(t, validateRecovery(nil), ErrConfiguration)
	assert.ErrorIs(t, validateRecovery(FixedDuration{Steps: 0}), ErrConfiguration)
	assert.ErrorIs(t, validateRecovery(Geometric{Gamma: 0}), ErrConfiguration)
	assert.ErrorIs(t, validateRecovery(Geometric{Gamma: 1.5}), ErrConfiguration)
}

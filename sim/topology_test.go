package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_Shape(t *testing.T) {
	g, err := NewGrid(GridConfig{Rows: 3, Cols: 5})
	require.NoError(t, err)
	assert.Equal(t, 15, g.NumNodes())
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 5, g.Cols())
	assert.Equal(t, "grid", g.Kind())
}

func TestNewGrid_InvalidShape(t *testing.T) {
	tests := []struct {
		name string
		cfg  GridConfig
	}{
		{"zero rows", GridConfig{Rows: 0, Cols: 5}},
		{"zero cols", GridConfig{Rows: 5, Cols: 0}},
		{"negative rows", GridConfig{Rows: -1, Cols: 5}},
		{"wrap too narrow", GridConfig{Rows: 2, Cols: 5, Wrap: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.cfg)
			require.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestGrid_NeighborCounts(t *testing.T) {
	g, err := NewGrid(GridConfig{Rows: 4, Cols: 4})
	require.NoError(t, err)

	assert.Len(t, g.Neighbors(g.Index(0, 0)), 2, "corner")
	assert.Len(t, g.Neighbors(g.Index(0, 1)), 3, "edge")
	assert.Len(t, g.Neighbors(g.Index(1, 1)), 4, "interior")
}

func TestGrid_DiagonalNeighborCounts(t *testing.T) {
	g, err := NewGrid(GridConfig{Rows: 4, Cols: 4, Diagonal: true})
	require.NoError(t, err)

	assert.Len(t, g.Neighbors(g.Index(0, 0)), 3, "corner")
	assert.Len(t, g.Neighbors(g.Index(0, 1)), 5, "edge")
	assert.Len(t, g.Neighbors(g.Index(1, 1)), 8, "interior")
}

func TestGrid_WrapUniformDegree(t *testing.T) {
	g, err := NewGrid(GridConfig{Rows: 5, Cols: 5, Wrap: true})
	require.NoError(t, err)

	for id := 0; id < g.NumNodes(); id++ {
		assert.Len(t, g.Neighbors(id), 4, "node %d", id)
	}
}

func TestGrid_IndexCoordRoundTrip(t *testing.T) {
	g, err := NewGrid(GridConfig{Rows: 3, Cols: 7})
	require.NoError(t, err)

	for id := 0; id < g.NumNodes(); id++ {
		r, c := g.Coord(id)
		assert.Equal(t, id, g.Index(r, c))
	}
	assert.Equal(t, g.Index(1, 3), g.Center())
}

// assertSymmetric checks that adjacency is symmetric with no self-loops
// or duplicate entries, for any topology.
func assertSymmetric(t *testing.T, topo Topology) {
	t.Helper()
	for id := 0; id < topo.NumNodes(); id++ {
		seen := make(map[int]bool)
		for _, nb := range topo.Neighbors(id) {
			require.NotEqual(t, id, nb, "self-loop at node %d", id)
			require.False(t, seen[nb], "duplicate edge %d-%d", id, nb)
			seen[nb] = true

			back := false
			for _, rev := range topo.Neighbors(nb) {
				if rev == id {
					back = true
					break
				}
			}
			require.True(t, back, "edge %d->%d has no reverse", id, nb)
		}
	}
}

func TestGrid_SymmetricAdjacency(t *testing.T) {
	for _, cfg := range []GridConfig{
		{Rows: 4, Cols: 6},
		{Rows: 4, Cols: 6, Diagonal: true},
		{Rows: 5, Cols: 5, Wrap: true},
		{Rows: 3, Cols: 3, Diagonal: true, Wrap: true},
		{Rows: 1, Cols: 8},
	} {
		g, err := NewGrid(cfg)
		require.NoError(t, err)
		assertSymmetric(t, g)
	}
}

package sim

import "fmt"

// Topology is the fixed contact graph an epidemic spreads over. Nodes are
// dense integer ids in [0, NumNodes). Adjacency is symmetric, has no
// self-loops, and never changes after construction; identical parameters
// (and, for randomized families, identical seeds) always produce an
// identical structure.
type Topology interface {
	NumNodes() int
	// Neighbors returns the adjacency list of id. Callers must not mutate
	// the returned slice.
	Neighbors(id int) []int
	Kind() string
}

// GridConfig describes a rectilinear grid topology.
type GridConfig struct {
	Rows, Cols int
	// Diagonal adds the 4 diagonal neighbors (8-neighbor model).
	Diagonal bool
	// Wrap applies periodic boundary conditions instead of clipping at
	// the edges.
	Wrap bool
}

// Grid is a rows x cols rectilinear network. Node ids are row-major:
// id = row*cols + col.
type Grid struct {
	rows, cols int
	diagonal   bool
	wrap       bool
	adj        [][]int
}

var orthogonalOffsets = [][2]int{
	{-1, 0}, // north
	{1, 0},  // south
	{0, -1}, // west
	{0, 1},  // east
}

var diagonalOffsets = [][2]int{
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// NewGrid builds a grid topology. Adjacency is precomputed once so that
// Neighbors is an allocation-free lookup during stepping.
func NewGrid(cfg GridConfig) (*Grid, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("%w: grid shape must be positive, got %dx%d", ErrConfiguration, cfg.Rows, cfg.Cols)
	}
	if cfg.Wrap && (cfg.Rows < 3 || cfg.Cols < 3) {
		// Wrapping a 1- or 2-wide axis would create self-loops or
		// duplicate edges.
		return nil, fmt.Errorf("%w: periodic grid requires shape >= 3x3, got %dx%d", ErrConfiguration, cfg.Rows, cfg.Cols)
	}

	g := &Grid{
		rows:     cfg.Rows,
		cols:     cfg.Cols,
		diagonal: cfg.Diagonal,
		wrap:     cfg.Wrap,
	}

	offsets := orthogonalOffsets
	if cfg.Diagonal {
		offsets = append(append([][2]int{}, orthogonalOffsets...), diagonalOffsets...)
	}

	g.adj = make([][]int, cfg.Rows*cfg.Cols)
	for r := 0; r < cfg.Rows; r++ {
		for c := 0; c < cfg.Cols; c++ {
			id := g.Index(r, c)
			for _, off := range offsets {
				nr, nc := r+off[0], c+off[1]
				if cfg.Wrap {
					nr = ((nr % cfg.Rows) + cfg.Rows) % cfg.Rows
					nc = ((nc % cfg.Cols) + cfg.Cols) % cfg.Cols
				} else if nr < 0 || nr >= cfg.Rows || nc < 0 || nc >= cfg.Cols {
					continue
				}
				g.adj[id] = append(g.adj[id], g.Index(nr, nc))
			}
		}
	}
	return g, nil
}

func (g *Grid) NumNodes() int          { return g.rows * g.cols }
func (g *Grid) Neighbors(id int) []int { return g.adj[id] }
func (g *Grid) Kind() string           { return "grid" }

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Index maps a (row, col) coordinate to its node id.
func (g *Grid) Index(row, col int) int { return row*g.cols + col }

// Coord maps a node id back to its (row, col) coordinate.
func (g *Grid) Coord(id int) (row, col int) { return id / g.cols, id % g.cols }

// Center returns the id of the central cell, the conventional seed site.
func (g *Grid) Center() int { return g.Index(g.rows/2, g.cols/2) }

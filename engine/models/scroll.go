package models

import (
	"fmt"

	"github.com/spaghettifunk/lathe/engine/core"
	"github.com/spaghettifunk/lathe/engine/math"
)

// ScrollConfig locates the attributes GridScroll touches inside a vertex.
type ScrollConfig struct {
	Stride      int
	HeightIndex int
	// Normals enables normal maintenance. Positions are then read as
	// (x, y, z) starting at PositionIndex and normals are written at
	// NormalIndex.
	Normals       bool
	PositionIndex int
	NormalIndex   int
}

// ScrollConfigFor derives the scroll configuration of a grid built by
// GridModel: heights live in y for 3D grids and in the second component
// otherwise.
func ScrollConfigFor(layout VertexLayout) ScrollConfig {
	return ScrollConfig{
		Stride:        layout.Stride(),
		HeightIndex:   1,
		Normals:       layout.PositionSize == 3 && layout.Normal,
		PositionIndex: 0,
		NormalIndex:   layout.NormalOffset(),
	}
}

// GridScroll treats a grid vertex buffer as a conveyor belt: every Scroll
// moves the rows one step towards row 0 and feeds a new last row. The
// buffer is mutated in place; callers must not read it while Scroll runs.
type GridScroll struct {
	vertices []float32
	rows     int
	cols     int
	config   ScrollConfig
}

func NewGridScroll(vertices []float32, rows, cols int, config ScrollConfig) (*GridScroll, error) {
	if rows <= 1 || cols <= 1 {
		return nil, fmt.Errorf("scroll over %dx%d grid: %w", rows, cols, core.ErrInvalidGridDimensions)
	}
	stride := config.Stride
	if stride <= 0 || config.HeightIndex < 0 || config.HeightIndex >= stride {
		return nil, fmt.Errorf("height index %d with stride %d: %w", config.HeightIndex, stride, core.ErrInvalidLayout)
	}
	if config.Normals {
		if config.PositionIndex < 0 || config.PositionIndex+3 > stride || config.NormalIndex < 0 || config.NormalIndex+3 > stride {
			return nil, fmt.Errorf("position index %d, normal index %d with stride %d: %w", config.PositionIndex, config.NormalIndex, stride, core.ErrInvalidLayout)
		}
	}
	if len(vertices) != rows*cols*stride {
		return nil, fmt.Errorf("buffer holds %d components, %dx%d grid with stride %d needs %d: %w",
			len(vertices), rows, cols, stride, rows*cols*stride, core.ErrInvalidLayout)
	}
	return &GridScroll{vertices: vertices, rows: rows, cols: cols, config: config}, nil
}

func (gs *GridScroll) Rows() int { return gs.rows }

func (gs *GridScroll) Cols() int { return gs.cols }

// Vertices returns the underlying buffer, not a copy.
func (gs *GridScroll) Vertices() []float32 { return gs.vertices }

func (gs *GridScroll) offset(row, col int) int {
	return (row*gs.cols + col) * gs.config.Stride
}

// Height returns the height component of vertex (row, col).
func (gs *GridScroll) Height(row, col int) float32 {
	return gs.vertices[gs.offset(row, col)+gs.config.HeightIndex]
}

// Scroll shifts every row's height (and normal) from the row after it,
// writes data into the last row and recomputes the normals of the two rows
// whose neighbourhood changed.
func (gs *GridScroll) Scroll(data []float32) error {
	if len(data) != gs.cols {
		return fmt.Errorf("got %d values for %d columns: %w", len(data), gs.cols, core.ErrScrollDataLength)
	}

	cfg := gs.config
	for row := 0; row < gs.rows-1; row++ {
		for col := 0; col < gs.cols; col++ {
			dst := gs.offset(row, col)
			src := gs.offset(row+1, col)
			gs.vertices[dst+cfg.HeightIndex] = gs.vertices[src+cfg.HeightIndex]
			if cfg.Normals {
				copy(gs.vertices[dst+cfg.NormalIndex:dst+cfg.NormalIndex+3], gs.vertices[src+cfg.NormalIndex:src+cfg.NormalIndex+3])
			}
		}
	}

	last := gs.rows - 1
	for col, value := range data {
		gs.vertices[gs.offset(last, col)+cfg.HeightIndex] = value
	}

	if cfg.Normals {
		for row := last - 1; row <= last; row++ {
			for col := 0; col < gs.cols; col++ {
				gs.updateNormal(row, col)
			}
		}
	}
	return nil
}

func (gs *GridScroll) position(row, col int) math.Vec3 {
	i := gs.offset(row, col) + gs.config.PositionIndex
	return math.NewVec3(float64(gs.vertices[i]), float64(gs.vertices[i+1]), float64(gs.vertices[i+2]))
}

// updateNormal uses central differences, falling back to one-sided ones on
// the border.
func (gs *GridScroll) updateNormal(row, col int) {
	left := gs.position(row, math.Clamp(col-1, 0, gs.cols-1))
	right := gs.position(row, math.Clamp(col+1, 0, gs.cols-1))
	prev := gs.position(math.Clamp(row-1, 0, gs.rows-1), col)
	next := gs.position(math.Clamp(row+1, 0, gs.rows-1), col)

	n := right.Sub(left).Cross(next.Sub(prev)).Normalize()

	i := gs.offset(row, col) + gs.config.NormalIndex
	gs.vertices[i] = float32(n.X)
	gs.vertices[i+1] = float32(n.Y)
	gs.vertices[i+2] = float32(n.Z)
}

package models

import (
	"fmt"

	"github.com/spaghettifunk/lathe/engine/core"
)

type GridMode uint8

const (
	// Grid2D emits (x, z) pairs; the height is left to the consumer.
	Grid2D GridMode = iota
	// Grid3D emits (x, 0, z) on the Y = 0 plane.
	Grid3D
)

type GridConfig struct {
	Rows int
	Cols int
	// Size is the edge length of the square the grid spans, centered on
	// the origin. Zero means 1.
	Size float64
	Mode GridMode
	// Normals adds a (0, 1, 0) normal per vertex. Only valid with Grid3D.
	Normals bool
	UV      bool
}

// DefaultGridConfig is a unit 2D grid with texture coordinates.
func DefaultGridConfig(rows, cols int) GridConfig {
	return GridConfig{Rows: rows, Cols: cols, Size: 1, Mode: Grid2D, UV: true}
}

func (c GridConfig) Layout() VertexLayout {
	layout := VertexLayout{PositionSize: 2, UV: c.UV}
	if c.Mode == Grid3D {
		layout.PositionSize = 3
		layout.Normal = c.Normals
	}
	return layout
}

// GridModel builds a rows x cols lattice. Vertex (row, col) sits at index
// row*cols+col; x follows the row and z follows the column. Each cell is
// split into the triangles (lb, rb, rt) and (lb, rt, lt).
func GridModel(config GridConfig) (*SimpleModel, error) {
	rows, cols := config.Rows, config.Cols
	if rows <= 1 || cols <= 1 {
		err := fmt.Errorf("can't create grid model with %d rows and %d columns: %w", rows, cols, core.ErrInvalidGridDimensions)
		core.LogError(err.Error())
		return nil, err
	}
	if config.Mode == Grid2D && config.Normals {
		core.LogWarn("grid normals need a 3D grid, ignoring them for the %dx%d grid", rows, cols)
		config.Normals = false
	}

	size := config.Size
	if size == 0 {
		size = 1
	}
	start := -size / 2

	layout := config.Layout()
	vertices := make([]float32, 0, rows*cols*layout.Stride())
	indices := make([]uint32, 0, (rows-1)*(cols-1)*6)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			u := float64(row) / float64(rows-1)
			v := float64(col) / float64(cols-1)
			x := start + size*u
			z := start + size*v

			if config.Mode == Grid3D {
				vertices = append(vertices, float32(x), 0, float32(z))
				if config.Normals {
					vertices = append(vertices, 0, 1, 0)
				}
			} else {
				vertices = append(vertices, float32(x), float32(z))
			}
			if config.UV {
				vertices = append(vertices, float32(u), float32(v))
			}

			if row == 0 || col == 0 {
				continue
			}

			// LRTB - left/right/top/bottom corners of the cell.
			rt := uint32(row*cols + col)
			lt := rt - 1
			rb := rt - uint32(cols)
			lb := rb - 1

			indices = append(indices, lb, rb, rt)
			indices = append(indices, lb, rt, lt)
		}
	}

	core.LogDebug("generated %dx%d grid (%s): %d vertices, %d indices", rows, cols, layout, rows*cols, len(indices))
	return NewSimpleModel(layout, vertices, indices), nil
}

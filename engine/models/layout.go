package models

import (
	"fmt"

	"github.com/spaghettifunk/lathe/engine/core"
)

// VertexLayout describes the interleaved attributes of one vertex. Attributes
// are always stored in the order position, normal, color, uv.
type VertexLayout struct {
	// PositionSize is 2 for (x, y) vertices or 3 for (x, y, z).
	PositionSize int
	Normal       bool
	Color        bool
	UV           bool
}

var (
	LayoutPosition2UV       = VertexLayout{PositionSize: 2, UV: true}
	LayoutPosition2Color    = VertexLayout{PositionSize: 2, Color: true}
	LayoutPosition3NormalUV = VertexLayout{PositionSize: 3, Normal: true, UV: true}
)

func (l VertexLayout) Validate() error {
	if l.PositionSize != 2 && l.PositionSize != 3 {
		return fmt.Errorf("position size %d: %w", l.PositionSize, core.ErrInvalidLayout)
	}
	return nil
}

// Stride is the number of float32 components per vertex.
func (l VertexLayout) Stride() int {
	stride := l.PositionSize
	if l.Normal {
		stride += 3
	}
	if l.Color {
		stride += 3
	}
	if l.UV {
		stride += 2
	}
	return stride
}

// NormalOffset returns the component offset of the normal, or -1.
func (l VertexLayout) NormalOffset() int {
	if !l.Normal {
		return -1
	}
	return l.PositionSize
}

// ColorOffset returns the component offset of the color, or -1.
func (l VertexLayout) ColorOffset() int {
	if !l.Color {
		return -1
	}
	offset := l.PositionSize
	if l.Normal {
		offset += 3
	}
	return offset
}

// UVOffset returns the component offset of the texture coordinates, or -1.
func (l VertexLayout) UVOffset() int {
	if !l.UV {
		return -1
	}
	return l.Stride() - 2
}

func (l VertexLayout) String() string {
	s := fmt.Sprintf("position%d", l.PositionSize)
	if l.Normal {
		s += "+normal3"
	}
	if l.Color {
		s += "+color3"
	}
	if l.UV {
		s += "+uv2"
	}
	return s
}

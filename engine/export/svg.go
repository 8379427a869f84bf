package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jbeda/geom"
	"github.com/spaghettifunk/lathe/engine/core"
	"github.com/spaghettifunk/lathe/engine/math"
)

////////////////////////////////////////////////////////////////////////////
// SVG serialization helper
type SVG struct {
	writer io.Writer
	err    error
}

func NewSVG(w io.Writer) *SVG {
	return &SVG{writer: w}
}

// printf keeps the first write error, later calls become no-ops.
func (svg *SVG) printf(format string, a ...interface{}) {
	if svg.err != nil {
		return
	}
	_, svg.err = fmt.Fprintf(svg.writer, format, a...)
}

func (svg *SVG) Err() error {
	return svg.err
}

// attributes turns name=value pairs into attributes and anything else into
// a style attribute.
func attributes(s []string) string {
	var b strings.Builder
	for _, a := range s {
		switch {
		case strings.Index(a, "=") > 0:
			b.WriteString(a + " ")
		case len(a) > 0:
			fmt.Fprintf(&b, "style='%s' ", a)
		}
	}
	return b.String()
}

func (svg *SVG) Start(viewBox geom.Rect, s ...string) {
	svg.printf(`<?xml version="1.0"?>
<svg version="1.1"
     viewBox="%f %f %f %f"
     xmlns="http://www.w3.org/2000/svg" %s>
`, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height(), attributes(s))
}

func (svg *SVG) End() {
	svg.printf("</svg>\n")
}

func (svg *SVG) Circle(c geom.Coord, r float64, s ...string) {
	svg.printf("<circle cx='%f' cy='%f' r='%f' %s/>\n", c.X, c.Y, r, attributes(s))
}

func (svg *SVG) StartPath(p geom.Coord, s ...string) {
	svg.printf("<path %sd='M%f,%f", attributes(s), p.X, p.Y)
}

func (svg *SVG) PathLineTo(p geom.Coord) {
	svg.printf("\n  L%f,%f", p.X, p.Y)
}

func (svg *SVG) EndPath() {
	svg.printf("'/>\n")
}

// toCoord flips y, SVG grows downwards.
func toCoord(p math.Vec2) geom.Coord {
	return geom.Coord{X: p.X, Y: -p.Y}
}

// profileBounds contains every point plus a margin of size on each side.
func profileBounds(margin float64, sets ...[]math.Vec2) geom.Rect {
	var bounds geom.Rect
	first := true
	for _, points := range sets {
		for _, p := range points {
			c := toCoord(p)
			if first {
				bounds = geom.Rect{Min: c, Max: c}
				first = false
				continue
			}
			bounds.ExpandToContainCoord(c)
		}
	}
	bounds.Min.X -= margin
	bounds.Min.Y -= margin
	bounds.Max.X += margin
	bounds.Max.Y += margin
	return bounds
}

// ProfileSVG draws the flattened profile as one path and every control
// point as a marker circle of the given size.
func ProfileSVG(w io.Writer, curve, control []math.Vec2, markerSize float64) error {
	svg := NewSVG(w)
	svg.Start(profileBounds(markerSize*4, curve, control))
	if len(curve) > 0 {
		svg.StartPath(toCoord(curve[0]), "fill='none'", "stroke='blue'", fmt.Sprintf("stroke-width='%f'", markerSize/2))
		for _, p := range curve[1:] {
			svg.PathLineTo(toCoord(p))
		}
		svg.EndPath()
	}
	for _, p := range control {
		svg.Circle(toCoord(p), markerSize, "fill:red")
	}
	svg.End()
	return svg.Err()
}

func WriteProfileSVG(path string, curve, control []math.Vec2, markerSize float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	if err := ProfileSVG(buf, curve, control, markerSize); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	core.LogInfo("wrote %s (%d curve points, %d control points)", path, len(curve), len(control))
	return f.Close()
}

package export

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	m "math"
	"os"
	"sort"

	"github.com/spaghettifunk/lathe/engine/core"
	"github.com/spaghettifunk/lathe/engine/geometry"
	"github.com/spaghettifunk/lathe/engine/math"
	"github.com/spaghettifunk/lathe/engine/models"
	"github.com/spaghettifunk/lathe/engine/renderer/components"
	"golang.org/x/image/vector"
)

// ambient keeps faces turned away from the light visible.
const ambient = 0.15

// Preview is a flat shaded software rendering of one model through a
// camera. Faces are culled by winding and drawn back to front.
type Preview struct {
	Width, Height int
	Camera        components.Camera
	Light         *components.PointLight
	Color         color.RGBA
	Background    color.RGBA
}

type screenTriangle struct {
	xy    [3][2]float32
	depth float64
	shade float64
}

// project returns the window coordinates and NDC depth of a world space
// point, or false when it lies behind the eye.
func (pv *Preview) project(mvp math.Mat4, p math.Vec3) ([2]float32, float64, bool) {
	clip := mvp.MulVec4(p.ToVec4(1))
	if clip.W <= 0 {
		return [2]float32{}, 0, false
	}
	ndc := math.NewVec3(clip.X/clip.W, clip.Y/clip.W, clip.Z/clip.W)
	x := (ndc.X + 1) / 2 * float64(pv.Width)
	y := (1 - ndc.Y) / 2 * float64(pv.Height)
	return [2]float32{float32(x), float32(y)}, ndc.Z, true
}

func (pv *Preview) triangles(model *models.SimpleModel, transform math.Mat4) []screenTriangle {
	mvp := pv.Camera.Projection().Mul(pv.Camera.View()).Mul(transform)

	var out []screenTriangle
	model.Triangles(func(a, b, c math.Vec3) {
		world := [3]math.Vec3{transform.TransformPoint(a), transform.TransformPoint(b), transform.TransformPoint(c)}
		normal, ok := geometry.FaceNormal(world[0], world[1], world[2])
		if !ok {
			return
		}

		var t screenTriangle
		for i, p := range [3]math.Vec3{a, b, c} {
			xy, depth, visible := pv.project(mvp, p)
			if !visible {
				return
			}
			t.xy[i] = xy
			t.depth += depth / 3
		}
		// window y points down, so counter-clockwise faces have negative area here
		area := (t.xy[1][0]-t.xy[0][0])*(t.xy[2][1]-t.xy[0][1]) - (t.xy[2][0]-t.xy[0][0])*(t.xy[1][1]-t.xy[0][1])
		if area >= 0 {
			return
		}

		centroid := world[0].Add(world[1]).Add(world[2]).MulScalar(1.0 / 3)
		lambert := 1.0
		if pv.Light != nil {
			lambert = m.Max(normal.Dot(pv.Light.DirectionTo(centroid)), 0)
		}
		t.shade = ambient + (1-ambient)*lambert
		out = append(out, t)
	})

	// far first, NDC depth grows away from the eye
	sort.SliceStable(out, func(i, j int) bool { return out[i].depth > out[j].depth })
	return out
}

func (pv *Preview) shaded(shade float64) color.RGBA {
	scale := func(c uint8) uint8 { return uint8(m.Round(float64(c) * shade)) }
	return color.RGBA{R: scale(pv.Color.R), G: scale(pv.Color.G), B: scale(pv.Color.B), A: 0xff}
}

// Render draws model, placed in the world by transform, into a new image.
func (pv *Preview) Render(model *models.SimpleModel, transform math.Mat4) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, pv.Width, pv.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(pv.Background), image.Point{}, draw.Src)

	z := vector.NewRasterizer(1, 1)
	for _, t := range pv.triangles(model, transform) {
		// rasterize inside the triangle's bounding box only
		minX, minY := float32(m.MaxFloat32), float32(m.MaxFloat32)
		maxX, maxY := float32(-m.MaxFloat32), float32(-m.MaxFloat32)
		for _, p := range t.xy {
			minX, maxX = min(minX, p[0]), max(maxX, p[0])
			minY, maxY = min(minY, p[1]), max(maxY, p[1])
		}
		box := image.Rect(int(m.Floor(float64(minX))), int(m.Floor(float64(minY))),
			int(m.Ceil(float64(maxX)))+1, int(m.Ceil(float64(maxY)))+1).Intersect(img.Bounds())
		if box.Empty() {
			continue
		}

		z.Reset(box.Dx(), box.Dy())
		z.DrawOp = draw.Over
		ox, oy := float32(box.Min.X), float32(box.Min.Y)
		z.MoveTo(t.xy[0][0]-ox, t.xy[0][1]-oy)
		z.LineTo(t.xy[1][0]-ox, t.xy[1][1]-oy)
		z.LineTo(t.xy[2][0]-ox, t.xy[2][1]-oy)
		z.ClosePath()
		z.Draw(img, box, image.NewUniform(pv.shaded(t.shade)), image.Point{})
	}
	return img
}

func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	if err := png.Encode(buf, img); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	core.LogInfo("wrote %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy())
	return f.Close()
}

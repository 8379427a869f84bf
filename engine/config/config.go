package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/lathe/engine/core"
	"github.com/spaghettifunk/lathe/engine/math"
	"github.com/spaghettifunk/lathe/engine/renderer/components"
)

// Vector3 is a TOML friendly [x, y, z].
type Vector3 [3]float64

func (v Vector3) Vec3() math.Vec3 {
	return math.NewVec3(v[0], v[1], v[2])
}

// RGB is a TOML friendly [r, g, b] with channels in 0-255.
type RGB [3]int

func (c RGB) valid() bool {
	for _, v := range c {
		if v < 0 || v > 255 {
			return false
		}
	}
	return true
}

func (c RGB) Color() color.RGBA {
	return color.RGBA{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2]), A: 0xff}
}

// Point2 is a TOML friendly [x, y].
type Point2 [2]float64

func (p Point2) Vec2() math.Vec2 {
	return math.NewVec2(p[0], p[1])
}

type ApplicationConfig struct {
	Name      string `toml:"name"`
	LogLevel  string `toml:"log_level" comment:"debug, info, warn or error"`
	OutputDir string `toml:"output_dir"`
}

type CameraConfig struct {
	Position Vector3 `toml:"position" comment:"world to eye offset, the view matrix is the transform itself"`
	Rotation Vector3 `toml:"rotation" comment:"euler degrees"`
	// Half height of the parallel box; the width follows AspectRatio.
	BoxSize     float64 `toml:"box_size"`
	AspectRatio float64 `toml:"aspect_ratio"`
	ViewAngle   float64 `toml:"view_angle" comment:"perspective vertical field of view in degrees"`
	Near        float64 `toml:"near"`
	Far         float64 `toml:"far"`
	Active      string  `toml:"active" comment:"parallel or perspective"`
}

type LightConfig struct {
	Position Vector3 `toml:"position"`
	// Orbit turns the light about OrbitAxis before anything is rendered.
	OrbitAxis    Vector3 `toml:"orbit_axis"`
	OrbitDegrees float64 `toml:"orbit_degrees"`
	Raise        float64 `toml:"raise"`
}

type ProfileConfig struct {
	Points     []Point2 `toml:"points" comment:"bezier control points, x is the radius and y the height"`
	Tolerance  float64  `toml:"tolerance"`
	Distance   float64  `toml:"distance"`
	MarkerSize float64  `toml:"marker_size"`
	LineWidth  float64  `toml:"line_width"`
}

type RevolutionConfig struct {
	Axis     Vector3 `toml:"axis"`
	Segments int     `toml:"segments"`
	Cap      bool    `toml:"cap"`
	Rotation Vector3 `toml:"rotation" comment:"model rotation in euler degrees"`
}

type GridConfig struct {
	Rows int     `toml:"rows"`
	Cols int     `toml:"cols"`
	Size float64 `toml:"size"`
	// Frames of the waterfall loop, 0 skips it.
	Frames    int     `toml:"frames"`
	QueueSize int     `toml:"queue_size"`
	Amplitude float64 `toml:"amplitude"`
	Seed      uint64  `toml:"seed"`
	// Frame pacing, 0 runs as fast as possible.
	FrameRate float64 `toml:"frame_rate"`
}

type ExportConfig struct {
	STL        string `toml:"stl" comment:"empty paths skip the export"`
	SVG        string `toml:"svg"`
	PNG        string `toml:"png"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Color      RGB    `toml:"color" comment:"preview surface color, 0-255 per channel"`
	Background RGB    `toml:"background"`
}

// Scene is everything the engine needs to build and export one scene.
type Scene struct {
	Application ApplicationConfig `toml:"application"`
	Camera      CameraConfig      `toml:"camera"`
	Light       LightConfig       `toml:"light"`
	Profile     ProfileConfig     `toml:"profile"`
	Revolution  RevolutionConfig  `toml:"revolution"`
	Grid        GridConfig        `toml:"grid"`
	Export      ExportConfig      `toml:"export"`
}

// Default returns the vase scene.
func Default() *Scene {
	return &Scene{
		Application: ApplicationConfig{
			Name:      "lathe",
			LogLevel:  "info",
			OutputDir: "out",
		},
		Camera: CameraConfig{
			Position:    Vector3{0, 0, -20},
			BoxSize:     5,
			AspectRatio: 16.0 / 9.0,
			ViewAngle:   60,
			Near:        0.001,
			Far:         100,
			Active:      components.DEFAULT_PARALLEL_CAMERA_NAME,
		},
		Light: LightConfig{
			Position:  Vector3{50, 10, 0},
			OrbitAxis: Vector3{0, 1, 0},
		},
		Profile: ProfileConfig{
			Points: []Point2{
				{0, -3}, {2.5, -3}, {3, -1}, {1.5, 0},
				{1, 2}, {1.5, 3},
			},
			Tolerance:  0.0001,
			Distance:   0.0001,
			MarkerSize: 0.05,
			LineWidth:  0.01,
		},
		Revolution: RevolutionConfig{
			Axis:     Vector3{0, 1, 0},
			Segments: 24,
			Cap:      true,
		},
		Grid: GridConfig{
			Rows:      64,
			Cols:      64,
			Size:      10,
			QueueSize: 8,
			Amplitude: 1,
			Seed:      1,
		},
		Export: ExportConfig{
			STL:        "body.stl",
			SVG:        "profile.svg",
			PNG:        "preview.png",
			Width:      800,
			Height:     450,
			Color:      RGB{255, 0, 0},
			Background: RGB{128, 128, 128},
		},
	}
}

// Load decodes the TOML file at path over the defaults and validates the
// result. Unknown keys are rejected.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scene, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var details *toml.DecodeError
		if errors.As(err, &details) {
			row, col := details.Position()
			return nil, fmt.Errorf("scene config at %d:%d: %w", row, col, err)
		}
		return nil, fmt.Errorf("scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as TOML. The file is replaced in one rename so a
// watcher never reads it half written.
func Save(path string, cfg *Scene) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".scene-*.toml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Validate reports every problem at once, each wrapping core.ErrInvalidConfig.
func (s *Scene) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), core.ErrInvalidConfig))
		}
	}

	_, err := core.ParseLogLevel(s.Application.LogLevel)
	check(err == nil, "application.log_level %q", s.Application.LogLevel)

	c := s.Camera
	check(c.BoxSize > 0, "camera.box_size must be positive")
	check(c.AspectRatio > 0, "camera.aspect_ratio must be positive")
	check(c.ViewAngle > 0 && c.ViewAngle < 180, "camera.view_angle must be in (0, 180)")
	check(c.Near > 0 && c.Far > c.Near, "camera.near and camera.far must satisfy 0 < near < far")
	check(c.Active == components.DEFAULT_PARALLEL_CAMERA_NAME || c.Active == components.DEFAULT_PERSPECTIVE_CAMERA_NAME,
		"camera.active %q", c.Active)

	l := s.Light
	check(l.OrbitDegrees == 0 || l.OrbitAxis.Vec3().LengthSquared() > 0, "light.orbit_axis must not be zero")

	p := s.Profile
	check(p.Tolerance >= 0, "profile.tolerance must not be negative")
	check(p.Distance >= 0, "profile.distance must not be negative")
	check(p.MarkerSize > 0, "profile.marker_size must be positive")
	check(p.LineWidth > 0, "profile.line_width must be positive")

	r := s.Revolution
	check(r.Segments >= 1, "revolution.segments must be at least 1")
	check(r.Axis.Vec3().LengthSquared() > 0, "revolution.axis must not be zero")
	check(!r.Cap || r.Axis.Vec3() == math.NewVec3Up(), "revolution.cap needs axis [0, 1, 0]")

	g := s.Grid
	check(g.Rows > 1 && g.Cols > 1, "grid.rows and grid.cols must be more than 1")
	check(g.Size > 0, "grid.size must be positive")
	check(g.Frames >= 0, "grid.frames must not be negative")
	check(g.QueueSize >= 1, "grid.queue_size must be at least 1")
	check(g.FrameRate >= 0, "grid.frame_rate must not be negative")

	e := s.Export
	check(e.PNG == "" || (e.Width > 0 && e.Height > 0), "export.width and export.height must be positive")
	check(e.Color.valid() && e.Background.valid(), "export.color and export.background channels must be in 0-255")

	return errors.Join(errs...)
}

// ParallelBox is the viewing volume of the parallel camera.
func (c CameraConfig) ParallelBox() math.BoundingBox {
	return math.BoundingBox{
		Near:   c.Near,
		Far:    c.Far,
		Left:   -c.BoxSize * c.AspectRatio,
		Right:  c.BoxSize * c.AspectRatio,
		Bottom: -c.BoxSize,
		Top:    c.BoxSize,
	}
}

func (p ProfileConfig) Vec2s() []math.Vec2 {
	points := make([]math.Vec2, len(p.Points))
	for i, q := range p.Points {
		points[i] = q.Vec2()
	}
	return points
}

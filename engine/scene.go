package engine

import (
	"os"
	"path/filepath"

	"github.com/spaghettifunk/lathe/engine/core"
	"github.com/spaghettifunk/lathe/engine/export"
	"github.com/spaghettifunk/lathe/engine/geometry"
	"github.com/spaghettifunk/lathe/engine/math"
	"github.com/spaghettifunk/lathe/engine/models"
)

// Names the scene geometry is registered under.
const (
	GEOMETRY_NAME_BODY      = "body"
	GEOMETRY_NAME_PROFILE   = "profile"
	GEOMETRY_NAME_MARKERS   = "profile_markers"
	GEOMETRY_NAME_WATERFALL = "waterfall"
	GEOMETRY_NAME_CUBE      = "cube"
)

// buildScene generates every mesh of the current scene, registers them
// with the geometry system and writes the exports.
func (e *Engine) buildScene() error {
	s := e.scene

	profile := geometry.NewPointsModel(s.Profile.Vec2s()...)
	curve := profile.BezierCurve(s.Profile.Tolerance, s.Profile.Distance)
	if curve.Len() == 0 {
		core.LogWarn("the profile needs at least 4 control points, got %d", profile.Len())
	}
	body, err := geometry.RevolutionBody(curve.Points(), s.Revolution.Axis.Vec3(), s.Revolution.Segments, s.Revolution.Cap)
	if err != nil {
		core.LogError(err.Error())
		return err
	}

	grid, err := models.GridModel(models.GridConfig{
		Rows:    s.Grid.Rows,
		Cols:    s.Grid.Cols,
		Size:    s.Grid.Size,
		Mode:    models.Grid3D,
		Normals: true,
		UV:      true,
	})
	if err != nil {
		return err
	}
	waterfall, err := models.NewGridScroll(grid.Vertices, s.Grid.Rows, s.Grid.Cols, models.ScrollConfigFor(grid.Layout))
	if err != nil {
		core.LogError(err.Error())
		return err
	}

	gs := e.systemManager.GeometrySystem
	for _, g := range []struct {
		name  string
		model *models.SimpleModel
	}{
		{GEOMETRY_NAME_BODY, body},
		{GEOMETRY_NAME_PROFILE, curve.Lines(s.Profile.LineWidth)},
		{GEOMETRY_NAME_MARKERS, profile.Squares(s.Profile.MarkerSize)},
		{GEOMETRY_NAME_WATERFALL, grid},
		{GEOMETRY_NAME_CUBE, models.CubeModel(models.DefaultCubeColors)},
	} {
		if _, err := gs.Register(g.name, g.model, false); err != nil {
			return err
		}
	}

	e.profile, e.curve = profile, curve
	e.body, e.grid, e.waterfall = body, grid, waterfall
	core.LogInfo("built scene: %d control points, %d profile points, %d body triangles",
		profile.Len(), curve.Len(), body.TriangleCount())

	return e.exportScene()
}

// modelTransform places the body in the world for the preview.
func (e *Engine) modelTransform() *math.Transform {
	return math.NewTransformFromPositionRotationScale(math.NewVec3Zero(), e.scene.Revolution.Rotation.Vec3(), math.NewVec3One())
}

// exportScene writes the enabled artifacts into the output directory.
func (e *Engine) exportScene() error {
	s := e.scene
	out := s.Application.OutputDir
	if err := os.MkdirAll(out, 0o755); err != nil {
		core.LogError(err.Error())
		return err
	}

	if s.Export.STL != "" {
		if e.body.IsEmpty() {
			core.LogWarn("skipping %s, the body has no triangles", s.Export.STL)
		} else if _, err := export.WriteSTL(filepath.Join(out, s.Export.STL), e.body); err != nil {
			core.LogError(err.Error())
			return err
		}
	}

	if s.Export.SVG != "" {
		path := filepath.Join(out, s.Export.SVG)
		if err := export.WriteProfileSVG(path, e.curve.Points(), e.profile.Points(), s.Profile.MarkerSize); err != nil {
			core.LogError(err.Error())
			return err
		}
	}

	if s.Export.PNG != "" {
		preview := &export.Preview{
			Width:      s.Export.Width,
			Height:     s.Export.Height,
			Camera:     e.systemManager.CameraSystem.Active(),
			Light:      e.light,
			Color:      s.Export.Color.Color(),
			Background: s.Export.Background.Color(),
		}
		img := preview.Render(e.body, e.modelTransform().AsMatrix())
		if err := export.WritePNG(filepath.Join(out, s.Export.PNG), img); err != nil {
			core.LogError(err.Error())
			return err
		}
	}
	return nil
}

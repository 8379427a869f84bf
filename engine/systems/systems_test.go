package systems

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/spaghettifunk/lathe/engine/core"
	"github.com/spaghettifunk/lathe/engine/math"
	"github.com/spaghettifunk/lathe/engine/models"
	"github.com/spaghettifunk/lathe/engine/renderer/components"
	"github.com/spaghettifunk/lathe/engine/renderer/metadata"
)

func newCameraSystem(t *testing.T, max uint16) *CameraSystem {
	t.Helper()
	cs, err := NewCameraSystem(&CameraSystemConfig{MaxCameraCount: max}, math.NewTransformFromPosition(math.NewVec3(0, 0, -20)))
	if err != nil {
		t.Fatal(err)
	}
	return cs
}

func TestNewSystemsRejectZeroCapacity(t *testing.T) {
	if _, err := NewCameraSystem(&CameraSystemConfig{}, nil); err == nil {
		t.Error("NewCameraSystem() with no capacity succeeded")
	}
	if _, err := NewGeometrySystem(&metadata.GeometrySystemConfig{}); err == nil {
		t.Error("NewGeometrySystem() with no capacity succeeded")
	}
}

func TestCameraSystemToggle(t *testing.T) {
	cs := newCameraSystem(t, 4)
	if cs.Active() != nil || cs.Toggle() != nil {
		t.Fatal("empty system has an active camera")
	}

	box := math.BoundingBox{Near: 0.1, Far: 100, Left: -5, Right: 5, Bottom: -3, Top: 3}
	if err := cs.RegisterDefaults(box, math.Degrees(60), 16.0/9.0, 0.1, 100); err != nil {
		t.Fatal(err)
	}
	if cs.ActiveName() != components.DEFAULT_PARALLEL_CAMERA_NAME {
		t.Errorf("ActiveName() = %q, want the parallel camera", cs.ActiveName())
	}
	if _, ok := cs.Active().(*components.ParallelProjectionCamera); !ok {
		t.Errorf("Active() = %T", cs.Active())
	}

	if _, ok := cs.Toggle().(*components.PerspectiveProjectionCamera); !ok {
		t.Errorf("first Toggle() = %T", cs.Active())
	}
	if _, ok := cs.Toggle().(*components.ParallelProjectionCamera); !ok {
		t.Errorf("second Toggle() = %T", cs.Active())
	}

	// switching cameras keeps the eye where it is
	cs.Transform.Move(math.NewVec3(0, 1, 0))
	parallel := cs.Active().View()
	perspective := cs.Toggle().View()
	if parallel != perspective {
		t.Errorf("views differ after toggle: %v vs %v", parallel, perspective)
	}
}

func TestCameraSystemLookup(t *testing.T) {
	cs := newCameraSystem(t, 2)
	overview := components.NewParallelProjectionCamera(cs.Transform, math.BoundingBox{Near: 1, Far: 2, Left: -1, Right: 1, Bottom: -1, Top: 1})
	if err := cs.Register("overview", overview); err != nil {
		t.Fatal(err)
	}
	if got, err := cs.Acquire("overview"); err != nil || got != overview {
		t.Errorf("Acquire() = %v, %v", got, err)
	}
	if _, err := cs.Acquire("missing"); !errors.Is(err, core.ErrUnknownCamera) {
		t.Errorf("Acquire(missing) error = %v", err)
	}
	if err := cs.SetActive("missing"); !errors.Is(err, core.ErrUnknownCamera) {
		t.Errorf("SetActive(missing) error = %v", err)
	}

	if err := cs.Register("close", components.NewPerspectiveProjectionCamera(cs.Transform, math.Degrees(30), 1, 1, 10)); err != nil {
		t.Fatal(err)
	}
	if err := cs.Register("third", overview); !errors.Is(err, core.ErrSystemFull) {
		t.Errorf("Register() past capacity error = %v", err)
	}
	// re-registering an existing name is not a new slot
	if err := cs.Register("overview", overview); err != nil {
		t.Errorf("Register() of an existing name error = %v", err)
	}

	if err := cs.SetActive("close"); err != nil {
		t.Fatal(err)
	}
	if cs.ActiveName() != "close" {
		t.Errorf("ActiveName() = %q", cs.ActiveName())
	}

	if err := cs.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if cs.Active() != nil {
		t.Error("camera still active after Shutdown()")
	}
}

func TestGeometrySystemRegister(t *testing.T) {
	gs, err := NewGeometrySystem(&metadata.GeometrySystemConfig{MaxGeometryCount: 2})
	if err != nil {
		t.Fatal(err)
	}

	cube := models.CubeModel(models.DefaultCubeColors)
	g, err := gs.Register("cube", cube, false)
	if err != nil {
		t.Fatal(err)
	}
	if g.ID == uuid.Nil || g.Generation != 0 || g.Name != "cube" {
		t.Errorf("Register() = %+v", g)
	}
	if !g.Extents.Min.Compare(math.NewVec3(-1, -1, -1), 1e-6) || !g.Extents.Max.Compare(math.NewVec3(1, 1, 1), 1e-6) {
		t.Errorf("cube extents = %+v", g.Extents)
	}
	if !g.Center.Compare(math.NewVec3Zero(), 1e-6) {
		t.Errorf("cube center = %v", g.Center)
	}

	grid, err := models.GridModel(models.DefaultGridConfig(3, 3))
	if err != nil {
		t.Fatal(err)
	}
	again, err := gs.Register("cube", grid, false)
	if err != nil {
		t.Fatal(err)
	}
	if again != g || again.ID != g.ID || again.Generation != 1 || again.Model != grid {
		t.Errorf("re-Register() = %+v, want the same geometry at generation 1", again)
	}

	if _, err := gs.Register("grid", grid, true); err != nil {
		t.Fatal(err)
	}
	if _, err := gs.Register("overflow", grid, true); !errors.Is(err, core.ErrSystemFull) {
		t.Errorf("Register() past capacity error = %v", err)
	}
	if got := gs.Names(); len(got) != 2 || got[0] != "cube" || got[1] != "grid" {
		t.Errorf("Names() = %v", got)
	}
}

func TestGeometrySystemGenerationKeepsCounting(t *testing.T) {
	gs, err := NewGeometrySystem(&metadata.GeometrySystemConfig{MaxGeometryCount: 1})
	if err != nil {
		t.Fatal(err)
	}
	cube := models.CubeModel(models.DefaultCubeColors)
	g, err := gs.Register("waterfall", cube, false)
	if err != nil {
		t.Fatal(err)
	}

	// a waterfall re-registers once per frame for hours
	g.Generation = 1<<16 - 1
	again, err := gs.Register("waterfall", cube, false)
	if err != nil {
		t.Fatal(err)
	}
	if again.Generation != 1<<16 {
		t.Errorf("Generation = %d after %d, want %d", again.Generation, 1<<16-1, 1<<16)
	}
}

func TestGeometrySystemReferences(t *testing.T) {
	gs, err := NewGeometrySystem(&metadata.GeometrySystemConfig{MaxGeometryCount: 8})
	if err != nil {
		t.Fatal(err)
	}
	model := models.TriangleModel()
	if _, err := gs.Register("kept", model, false); err != nil {
		t.Fatal(err)
	}
	if _, err := gs.Register("temporary", model, true); err != nil {
		t.Fatal(err)
	}

	if _, err := gs.Acquire("temporary"); err != nil {
		t.Fatal(err)
	}
	gs.Release("temporary")
	if _, err := gs.Get("temporary"); err != nil {
		t.Errorf("geometry dropped while still referenced: %v", err)
	}
	gs.Release("temporary")
	if _, err := gs.Get("temporary"); !errors.Is(err, core.ErrUnknownGeometry) {
		t.Errorf("Get() after last Release error = %v", err)
	}

	gs.Release("kept")
	if _, err := gs.Get("kept"); err != nil {
		t.Errorf("geometry without auto release was dropped: %v", err)
	}
	if _, err := gs.Acquire("missing"); !errors.Is(err, core.ErrUnknownGeometry) {
		t.Errorf("Acquire(missing) error = %v", err)
	}
	gs.Release("missing")

	if gs.Count() != 1 {
		t.Errorf("Count() = %d, want 1", gs.Count())
	}
}

func TestSystemManager(t *testing.T) {
	transform := math.NewTransform()
	sm, err := NewSystemManager(transform)
	if err != nil {
		t.Fatal(err)
	}
	if sm.CameraSystem.Transform != transform {
		t.Error("camera system does not use the given transform")
	}
	if _, err := sm.GeometrySystem.Register("triangle", models.TriangleModel(), false); err != nil {
		t.Fatal(err)
	}
	if err := sm.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if sm.GeometrySystem.Count() != 0 {
		t.Errorf("Count() after Shutdown = %d", sm.GeometrySystem.Count())
	}
}

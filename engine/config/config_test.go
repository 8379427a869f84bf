package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spaghettifunk/lathe/engine/core"
	"github.com/spaghettifunk/lathe/engine/math"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if len(cfg.Profile.Points) < 4 {
		t.Errorf("default profile has %d points, a curve needs 4", len(cfg.Profile.Points))
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[application]
log_level = "debug"

[camera]
position = [0.0, 1.0, -30.0]
active = "perspective"

[profile]
points = [[1.0, 0.0], [2.0, 1.0], [2.0, 2.0], [1.0, 3.0]]

[revolution]
segments = 8
cap = false
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Application.LogLevel != "debug" || cfg.Application.Name != "lathe" {
		t.Errorf("application = %+v", cfg.Application)
	}
	if cfg.Camera.Position.Vec3() != math.NewVec3(0, 1, -30) || cfg.Camera.Active != "perspective" {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if cfg.Camera.ViewAngle != 60 {
		t.Errorf("camera.view_angle = %v, want the default", cfg.Camera.ViewAngle)
	}
	if got := cfg.Profile.Vec2s(); len(got) != 4 || got[3] != math.NewVec2(1, 3) {
		t.Errorf("profile points = %v", got)
	}
	if cfg.Revolution.Segments != 8 || cfg.Revolution.Cap {
		t.Errorf("revolution = %+v", cfg.Revolution)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		invalid bool
	}{
		{"unknown key", "[camera]\nzoom = 2.0\n", false},
		{"bad syntax", "[camera\n", false},
		{"wrong type", "[revolution]\nsegments = \"many\"\n", false},
		{"no segments", "[revolution]\nsegments = 0\n", true},
		{"cap around x", "[revolution]\naxis = [1.0, 0.0, 0.0]\n", true},
		{"tiny grid", "[grid]\nrows = 1\n", true},
		{"bad log level", "[application]\nlog_level = \"chatty\"\n", true},
		{"far before near", "[camera]\nnear = 10.0\nfar = 1.0\n", true},
		{"unknown camera", "[camera]\nactive = \"fisheye\"\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("Parse() succeeded")
			}
			if got := errors.Is(err, core.ErrInvalidConfig); got != tt.invalid {
				t.Errorf("errors.Is(%v, ErrInvalidConfig) = %t, want %t", err, got, tt.invalid)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Grid.Rows = 0
	cfg.Revolution.Segments = 0
	cfg.Export.Width = 0
	err := cfg.Validate()
	for _, want := range []string{"grid.rows", "revolution.segments", "export.width"} {
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() = %v, want a mention of %s", err, want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	want := Default()
	want.Grid.Frames = 120
	want.Light.OrbitDegrees = 45
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load(Save(cfg)) = %+v, want %+v", got, want)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v", err)
	}
}

func TestParallelBox(t *testing.T) {
	c := Default().Camera
	c.AspectRatio = 2
	box := c.ParallelBox()
	want := math.BoundingBox{Near: c.Near, Far: c.Far, Left: -10, Right: 10, Bottom: -5, Top: 5}
	if box != want {
		t.Errorf("ParallelBox() = %+v, want %+v", box, want)
	}
}

func TestWatcherFiresSceneChanged(t *testing.T) {
	core.EventShutdown()
	core.EventInitialize()
	defer core.EventShutdown()

	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, Default())
	if err != nil {
		t.Fatal(err)
	}
	changed := make(chan *Scene, 16)
	listener := "test"
	core.EventRegister(core.EVENT_CODE_SCENE_CHANGED, &listener, func(code core.SystemEventCode, sender, _ interface{}, data core.EventContext) bool {
		select {
		case changed <- data.Payload.(*Scene):
		default:
		}
		return true
	})
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// other files in the directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	edited := Default()
	edited.Revolution.Segments = 12
	if err := Save(path, edited); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changed:
			// a write may be observed before it is complete
			if cfg.Revolution.Segments != 12 {
				continue
			}
			if w.Current().Revolution.Segments != 12 {
				t.Error("Current() does not return the reloaded scene")
			}
			return
		case <-deadline:
			t.Fatal("no scene change event within 5s")
		}
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "scene.toml"), Default())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if err := w.Start(); err == nil {
		t.Error("Start() after Close() succeeded")
	}
}

func TestWatcherCloseWithoutStart(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name  string
		path  string
		start bool
	}{
		{name: "never started", path: filepath.Join(dir, "scene.toml")},
		{name: "start failed", path: filepath.Join(dir, "missing", "scene.toml"), start: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWatcher(tt.path, Default())
			if err != nil {
				t.Fatal(err)
			}
			if tt.start {
				if err := w.Start(); err == nil {
					t.Fatal("Start() on a missing directory succeeded")
				}
			}

			closed := make(chan error, 1)
			go func() { closed <- w.Close() }()
			select {
			case err := <-closed:
				if err != nil {
					t.Errorf("Close() = %v", err)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("Close() blocked")
			}
			if err := w.Close(); err != nil {
				t.Errorf("second Close() = %v", err)
			}
		})
	}
}

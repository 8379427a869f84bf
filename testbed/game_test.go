package testbed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/lathe/engine"
)

func TestInitializeNeedsSystems(t *testing.T) {
	tg := NewTestGame(&engine.ApplicationConfig{})
	if err := tg.Initialize(); err == nil {
		t.Error("Initialize() without a system manager succeeded")
	}
}

func TestRunThroughEngine(t *testing.T) {
	out := t.TempDir()
	tg := NewTestGame(&engine.ApplicationConfig{LogLevel: "error", OutputDir: out})

	e, err := engine.New(tg.Game)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := e.Shutdown(); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(out, "body.stl")); err != nil {
		t.Error(err)
	}
	state := tg.State.(*gameState)
	if state.frames != 0 || state.rebuilds != 0 {
		t.Errorf("state = %+v, want no frames and no rebuilds", state)
	}
}

package testbed

import (
	"fmt"

	"github.com/spaghettifunk/lathe/engine"
	"github.com/spaghettifunk/lathe/engine/config"
	"github.com/spaghettifunk/lathe/engine/core"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	// seconds between two frame reports
	reportEvery float64
	sinceReport float64
	frames      uint64
	rebuilds    int
}

func NewTestGame(app *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: app,
			State: &gameState{
				reportEvery: 1,
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnOnSceneChanged = tg.OnSceneChanged
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}

	cs := g.SystemManager.CameraSystem
	pos := cs.Transform.Position
	core.LogInfo("looking through the %s camera from [%.3f, %.3f, %.3f]", cs.ActiveName(), pos.X, pos.Y, pos.Z)
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	state.frames++
	state.sinceReport += deltaTime
	if state.sinceReport < state.reportEvery {
		return nil
	}
	state.sinceReport = 0

	fps, frameTime := core.MetricsFrame()
	geometry, err := g.SystemManager.GeometrySystem.Get(engine.GEOMETRY_NAME_WATERFALL)
	if err != nil {
		return err
	}
	core.LogInfo("FPS: %5.1f(%4.3fms) frame %d, waterfall generation %d, height [%.3f, %.3f]",
		fps, frameTime, state.frames, geometry.Generation, geometry.Extents.Min.Y, geometry.Extents.Max.Y)
	return nil
}

func (g *TestGame) OnSceneChanged(scene *config.Scene) error {
	state := g.State.(*gameState)
	state.rebuilds++

	for _, name := range g.SystemManager.GeometrySystem.Names() {
		geometry, err := g.SystemManager.GeometrySystem.Get(name)
		if err != nil {
			return err
		}
		core.LogDebug("%-16s generation %-5d %d vertices", name, geometry.Generation, geometry.Model.VertexCount())
	}
	core.LogInfo("rebuild #%d of '%s' done, outputs in %s", state.rebuilds, scene.Application.Name, scene.Application.OutputDir)
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	core.LogInfo("testbed shutting down after %d frames and %d rebuilds", state.frames, state.rebuilds)
	return nil
}

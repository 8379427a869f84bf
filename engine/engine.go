package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/spaghettifunk/lathe/engine/config"
	"github.com/spaghettifunk/lathe/engine/core"
	"github.com/spaghettifunk/lathe/engine/geometry"
	"github.com/spaghettifunk/lathe/engine/math"
	"github.com/spaghettifunk/lathe/engine/models"
	"github.com/spaghettifunk/lathe/engine/renderer/components"
	"github.com/spaghettifunk/lathe/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     atomic.Bool
	scene         *config.Scene
	watcher       *config.Watcher
	systemManager *systems.SystemManager
	light         *components.PointLight
	clock         *core.Clock
	lastTime      float64

	// Built by the last successful buildScene.
	profile   *geometry.PointsModel
	curve     *geometry.PointsModel
	body      *models.SimpleModel
	grid      *models.SimpleModel
	waterfall *models.GridScroll

	changes  chan *config.Scene
	quit     chan struct{}
	quitOnce sync.Once
}

// New loads the scene named by the game's application config, or the
// default one, and creates the systems. Nothing is built until Run.
func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, errors.New("engine needs a game with an application config")
	}

	scene := config.Default()
	if path := g.ApplicationConfig.ScenePath; path != "" {
		s, err := config.Load(path)
		if err != nil {
			core.LogError(err.Error())
			return nil, err
		}
		scene = s
	}
	if err := applyOverrides(scene, g.ApplicationConfig); err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	sm, err := systems.NewSystemManager(nil)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	g.SystemManager = sm

	e := &Engine{
		currentStage:  EngineStageBootComplete,
		gameInstance:  g,
		scene:         scene,
		systemManager: sm,
		clock:         core.NewClock(),
		changes:       make(chan *config.Scene, 1),
		quit:          make(chan struct{}),
	}
	return e, nil
}

// applyOverrides lets command line settings win over the scene file.
func applyOverrides(scene *config.Scene, app *ApplicationConfig) error {
	if app.Name != "" {
		scene.Application.Name = app.Name
	}
	if app.LogLevel != "" {
		scene.Application.LogLevel = app.LogLevel
	}
	if app.OutputDir != "" {
		scene.Application.OutputDir = app.OutputDir
	}
	return scene.Validate()
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	// initialize events
	if !core.EventInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_SCENE_CHANGED, e, e.onEvent)

	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	if err := e.applyScene(e.scene); err != nil {
		return err
	}

	app := e.gameInstance.ApplicationConfig
	if app.Watch {
		if app.ScenePath == "" {
			core.LogWarn("watch mode needs a scene file, running once")
		} else {
			w, err := config.NewWatcher(app.ScenePath, e.scene)
			if err != nil {
				core.LogError(err.Error())
				return err
			}
			if err := w.Start(); err != nil {
				core.LogError(err.Error())
				w.Close()
				return err
			}
			e.watcher = w
		}
	}

	if fn := e.gameInstance.FnInitialize; fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("%s initialized", e.scene.Application.Name)
	return nil
}

// applyScene points the cameras and the light at scene. The camera
// transform is updated in place so every camera keeps sharing it.
func (e *Engine) applyScene(scene *config.Scene) error {
	level, err := core.ParseLogLevel(scene.Application.LogLevel)
	if err != nil {
		return err
	}
	core.SetLogLevel(level)

	c := scene.Camera
	cs := e.systemManager.CameraSystem
	cs.Transform.SetPositionRotationScale(c.Position.Vec3(), c.Rotation.Vec3(), math.NewVec3One())
	if err := cs.RegisterDefaults(c.ParallelBox(), math.Degrees(c.ViewAngle), c.AspectRatio, c.Near, c.Far); err != nil {
		return err
	}
	if err := cs.SetActive(c.Active); err != nil {
		core.LogError(err.Error())
		return err
	}

	e.light = newLight(scene.Light)
	e.scene = scene
	return nil
}

func newLight(cfg config.LightConfig) *components.PointLight {
	light := components.NewPointLight(cfg.Position.Vec3())
	if cfg.OrbitDegrees != 0 {
		light.Orbit(cfg.OrbitAxis.Vec3(), math.Degrees(cfg.OrbitDegrees))
	}
	if cfg.Raise != 0 {
		light.Raise(cfg.Raise)
	}
	return light
}

/**
 * @brief Builds and exports the scene, then runs the waterfall. In watch
 * mode it keeps rebuilding on every scene change until ctx is cancelled
 * or the application quits.
 */
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine must be initialized before running, stage is %d", e.currentStage)
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)
	defer e.isRunning.Store(false)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	if err := e.buildScene(); err != nil {
		return err
	}
	if err := e.runWaterfall(ctx); err != nil {
		return err
	}

	if e.watcher == nil {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-e.quit:
			return nil
		case scene := <-e.changes:
			if err := e.rebuild(ctx, scene); err != nil {
				// the artifacts of the last good scene stay on disk
				core.LogError("scene rebuild failed: %s", err)
			}
		}
	}
}

func (e *Engine) rebuild(ctx context.Context, scene *config.Scene) error {
	if err := applyOverrides(scene, e.gameInstance.ApplicationConfig); err != nil {
		return err
	}
	if err := e.applyScene(scene); err != nil {
		return err
	}
	if err := e.buildScene(); err != nil {
		return err
	}
	if err := e.runWaterfall(ctx); err != nil {
		return err
	}
	if fn := e.gameInstance.FnOnSceneChanged; fn != nil {
		return fn(scene)
	}
	return nil
}

// IsRunning reports whether Run is in progress.
func (e *Engine) IsRunning() bool {
	return e.isRunning.Load()
}

func (e *Engine) Scene() *config.Scene {
	return e.scene
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.stop()

	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			return err
		}
	}
	if fn := e.gameInstance.FnShutdown; fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	core.EventUnregister(core.EVENT_CODE_APPLICATION_QUIT, e)
	core.EventUnregister(core.EVENT_CODE_SCENE_CHANGED, e)
	if err := core.EventShutdown(); err != nil {
		return err
	}
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	return nil
}

func (e *Engine) stop() {
	e.quitOnce.Do(func() { close(e.quit) })
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listenerInst interface{}, data core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.stop()
		return true
	case core.EVENT_CODE_SCENE_CHANGED:
		scene, ok := data.Payload.(*config.Scene)
		if !ok {
			core.LogError("wrong payload associated with the event code `%d`", code)
			return false
		}
		// keep only the newest scene when rebuilds fall behind
		select {
		case <-e.changes:
		default:
		}
		e.changes <- scene
	}
	return false
}

package engine

import (
	"github.com/spaghettifunk/lathe/engine/config"
	"github.com/spaghettifunk/lathe/engine/systems"
)

// Game hooks an application into the engine lifecycle. Every hook is
// optional.
type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnSpectrum        Spectrum
	FnOnSceneChanged  OnSceneChanged
	FnShutdown        Shutdown
}

type Initialize func() error

// Update runs once per waterfall frame, after the grid scrolled.
type Update func(deltaTime float64) error

// Spectrum produces the row fed into the waterfall grid for a frame. The
// row must hold exactly cols values.
type Spectrum func(frame uint64, cols int) []float32

// OnSceneChanged runs after a reloaded scene was built and exported.
type OnSceneChanged func(scene *config.Scene) error

type Shutdown func() error

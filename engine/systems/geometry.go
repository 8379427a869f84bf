package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/lathe/engine/core"
	"github.com/spaghettifunk/lathe/engine/models"
	"github.com/spaghettifunk/lathe/engine/renderer/metadata"
	"golang.org/x/exp/slices"
)

type GeometrySystem struct {
	Config *metadata.GeometrySystemConfig

	mu sync.RWMutex
	// Registered geometries by name.
	registered map[string]*metadata.GeometryReference
}

/**
 * @brief Initializes the geometry system.
 *
 * @param config The configuration for this system.
 * @return The system, or an error if the configuration is unusable.
 */
func NewGeometrySystem(config *metadata.GeometrySystemConfig) (*GeometrySystem, error) {
	if config.MaxGeometryCount == 0 {
		err := fmt.Errorf("func NewGeometrySystem - config.MaxGeometryCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &GeometrySystem{
		Config:     config,
		registered: make(map[string]*metadata.GeometryReference, config.MaxGeometryCount),
	}, nil
}

/**
 * @brief Registers model under name. Registering a name again replaces
 * the buffers, keeps the id and reference count, and bumps the generation.
 *
 * @param name The name of the geometry.
 * @param model The generated vertex and index data.
 * @param autoRelease Drop the geometry when its last reference is released.
 * @return The registered geometry.
 */
func (gs *GeometrySystem) Register(name string, model *models.SimpleModel, autoRelease bool) (*metadata.Geometry, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if ref, ok := gs.registered[name]; ok {
		ref.Geometry.SetModel(model)
		ref.Geometry.Generation++
		ref.AutoRelease = autoRelease
		core.LogDebug("geometry '%s' updated to generation %d (%d vertices, %d indices)",
			name, ref.Geometry.Generation, model.VertexCount(), model.IndexCount())
		return ref.Geometry, nil
	}

	if uint32(len(gs.registered)) >= gs.Config.MaxGeometryCount {
		err := fmt.Errorf("func Register '%s' - %d geometries already registered: %w",
			name, len(gs.registered), core.ErrSystemFull)
		core.LogError(err.Error())
		return nil, err
	}

	g := metadata.NewGeometry(name, model)
	gs.registered[name] = &metadata.GeometryReference{
		ReferenceCount: 1,
		Geometry:       g,
		AutoRelease:    autoRelease,
	}
	core.LogDebug("geometry '%s' registered as %s (%d vertices, %d indices)",
		name, g.ID, model.VertexCount(), model.IndexCount())
	return g, nil
}

/**
 * @brief Acquires a registered geometry by name.
 * Internal reference counter is incremented.
 */
func (gs *GeometrySystem) Acquire(name string) (*metadata.Geometry, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	ref, ok := gs.registered[name]
	if !ok {
		return nil, fmt.Errorf("acquire geometry '%s': %w", name, core.ErrUnknownGeometry)
	}
	ref.ReferenceCount++
	return ref.Geometry, nil
}

// Get looks a geometry up without taking a reference.
func (gs *GeometrySystem) Get(name string) (*metadata.Geometry, error) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	ref, ok := gs.registered[name]
	if !ok {
		return nil, fmt.Errorf("get geometry '%s': %w", name, core.ErrUnknownGeometry)
	}
	return ref.Geometry, nil
}

/**
 * @brief Releases a reference to the named geometry. When the
 * counter reaches 0 and the geometry was registered with autoRelease,
 * it is removed from the system.
 */
func (gs *GeometrySystem) Release(name string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	ref, ok := gs.registered[name]
	if !ok {
		core.LogWarn("GeometrySystem.Release failed lookup for '%s'. Nothing was done.", name)
		return
	}
	if ref.ReferenceCount > 0 {
		ref.ReferenceCount--
	}
	if ref.ReferenceCount < 1 && ref.AutoRelease {
		delete(gs.registered, name)
		core.LogDebug("geometry '%s' released", name)
	}
}

func (gs *GeometrySystem) Count() int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return len(gs.registered)
}

// Names returns the registered names in lexical order.
func (gs *GeometrySystem) Names() []string {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	names := make([]string, 0, len(gs.registered))
	for name := range gs.registered {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

/**
 * @brief Shuts down the geometry system.
 */
func (gs *GeometrySystem) Shutdown() error {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.registered = make(map[string]*metadata.GeometryReference)
	return nil
}

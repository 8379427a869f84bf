package systems

import (
	"fmt"

	"github.com/spaghettifunk/lathe/engine/core"
	"github.com/spaghettifunk/lathe/engine/math"
	"github.com/spaghettifunk/lathe/engine/renderer/components"
	"golang.org/x/exp/slices"
)

/**
 * @brief Keeps the named cameras of a scene. All cameras look
 * through the same transform, so switching between them never
 * moves the eye.
 */
type CameraSystem struct {
	Config *CameraSystemConfig
	// The transform every registered camera shares.
	Transform *math.Transform

	lookup map[string]components.Camera
	// Registration order, used by Toggle.
	names  []string
	active int
}

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/**
	 * @brief NOTE: The maximum number of cameras that can be managed by
	 * the system.
	 */
	MaxCameraCount uint16
}

/**
 * @brief Initializes the camera system.
 *
 * @param config The configuration for this system.
 * @param transform The transform shared by the cameras. A nil transform gets a fresh identity one.
 * @return The system, or an error if the configuration is unusable.
 */
func NewCameraSystem(config *CameraSystemConfig, transform *math.Transform) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	if transform == nil {
		transform = math.NewTransform()
	}
	return &CameraSystem{
		Config:    config,
		Transform: transform,
		lookup:    make(map[string]components.Camera, config.MaxCameraCount),
		active:    -1,
	}, nil
}

/**
 * @brief Shuts down the camera system.
 */
func (cs *CameraSystem) Shutdown() error {
	cs.lookup = make(map[string]components.Camera)
	cs.names = nil
	cs.active = -1
	return nil
}

/**
 * @brief Registers a camera under name. The first registered camera
 * becomes the active one. Registering a name again replaces its camera
 * and keeps its place in the toggle order.
 */
func (cs *CameraSystem) Register(name string, camera components.Camera) error {
	if _, ok := cs.lookup[name]; ok {
		cs.lookup[name] = camera
		return nil
	}
	if len(cs.names) >= int(cs.Config.MaxCameraCount) {
		err := fmt.Errorf("func Register '%s' - adjust camera system config to allow more cameras: %w", name, core.ErrSystemFull)
		core.LogError(err.Error())
		return err
	}
	cs.lookup[name] = camera
	cs.names = append(cs.names, name)
	if cs.active < 0 {
		cs.active = 0
	}
	core.LogDebug("camera '%s' registered", name)
	return nil
}

// RegisterDefaults registers the parallel and perspective cameras on the
// shared transform, with the parallel one active.
func (cs *CameraSystem) RegisterDefaults(box math.BoundingBox, viewAngle math.Angle, aspectRatio, near, far float64) error {
	if err := cs.Register(components.DEFAULT_PARALLEL_CAMERA_NAME,
		components.NewParallelProjectionCamera(cs.Transform, box)); err != nil {
		return err
	}
	return cs.Register(components.DEFAULT_PERSPECTIVE_CAMERA_NAME,
		components.NewPerspectiveProjectionCamera(cs.Transform, viewAngle, aspectRatio, near, far))
}

/**
 * @brief Acquires a camera by name.
 *
 * @param name The name of the camera to acquire.
 * @return The camera, or core.ErrUnknownCamera.
 */
func (cs *CameraSystem) Acquire(name string) (components.Camera, error) {
	camera, ok := cs.lookup[name]
	if !ok {
		return nil, fmt.Errorf("acquire camera '%s': %w", name, core.ErrUnknownCamera)
	}
	return camera, nil
}

// Active returns the active camera, or nil when none is registered.
func (cs *CameraSystem) Active() components.Camera {
	if cs.active < 0 {
		return nil
	}
	return cs.lookup[cs.names[cs.active]]
}

func (cs *CameraSystem) ActiveName() string {
	if cs.active < 0 {
		return ""
	}
	return cs.names[cs.active]
}

func (cs *CameraSystem) SetActive(name string) error {
	i := slices.Index(cs.names, name)
	if i < 0 {
		return fmt.Errorf("activate camera '%s': %w", name, core.ErrUnknownCamera)
	}
	cs.active = i
	return nil
}

// Toggle activates the next camera in registration order, wrapping around,
// and returns it.
func (cs *CameraSystem) Toggle() components.Camera {
	if len(cs.names) == 0 {
		return nil
	}
	cs.active = (cs.active + 1) % len(cs.names)
	core.LogDebug("switched to camera '%s'", cs.names[cs.active])
	return cs.Active()
}

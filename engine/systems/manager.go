package systems

import (
	"github.com/spaghettifunk/lathe/engine/math"
	"github.com/spaghettifunk/lathe/engine/renderer/metadata"
)

type SystemManager struct {
	CameraSystem   *CameraSystem
	GeometrySystem *GeometrySystem
}

func NewSystemManager(cameraTransform *math.Transform) (*SystemManager, error) {
	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 16,
	}, cameraTransform)
	if err != nil {
		return nil, err
	}
	gs, err := NewGeometrySystem(&metadata.GeometrySystemConfig{
		MaxGeometryCount: 1000,
	})
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		CameraSystem:   cs,
		GeometrySystem: gs,
	}, nil
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.GeometrySystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.CameraSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}

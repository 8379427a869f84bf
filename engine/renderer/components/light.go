package components

import (
	"github.com/spaghettifunk/lathe/engine/math"
)

/**
 * @brief A point light in world coordinates. Shading code only
 * reads the position; sliders move it around the scene.
 */
type PointLight struct {
	Position math.Vec3
}

func NewPointLight(position math.Vec3) *PointLight {
	return &PointLight{Position: position}
}

// Orbit rotates the light about axis, which passes through the origin.
func (l *PointLight) Orbit(axis math.Vec3, angle math.Angle) {
	l.Position = math.RotatePoint(l.Position, axis, angle)
}

func (l *PointLight) Raise(delta float64) {
	l.Position.Y += delta
}

// DirectionTo returns the unit vector from p towards the light.
func (l *PointLight) DirectionTo(p math.Vec3) math.Vec3 {
	return l.Position.Sub(p).Normalize()
}

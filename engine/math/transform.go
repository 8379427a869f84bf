package math

func NewTransform() *Transform {
	return NewTransformFromPositionRotationScale(NewVec3Zero(), NewVec3Zero(), NewVec3One())
}

func NewTransformFromPosition(position Vec3) *Transform {
	return NewTransformFromPositionRotationScale(position, NewVec3Zero(), NewVec3One())
}

func NewTransformFromPositionRotationScale(position, rotation, scale Vec3) *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(position, rotation, scale)
	return t
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
}

func (t *Transform) SetRotation(rotation Vec3) {
	t.Rotation = rotation
}

func (t *Transform) SetScale(scale Vec3) {
	t.Scale = scale
}

func (t *Transform) SetPositionRotationScale(position, rotation, scale Vec3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
}

// Move adds delta to the position.
func (t *Transform) Move(delta Vec3) {
	t.Position = t.Position.Add(delta)
}

// Rotate adds delta, in degrees, to the Euler angles.
func (t *Transform) Rotate(delta Vec3) {
	t.Rotation = t.Rotation.Add(delta)
}

// Resize adds delta to the scale. Scale is additive: Resize(0.5, 0.5, 0.5)
// on a unit transform yields 1.5, not 0.5.
func (t *Transform) Resize(delta Vec3) {
	t.Scale = t.Scale.Add(delta)
}

/**
 * @brief Returns the model matrix T(position) · Rx · Ry · Rz · S(scale).
 * A nil transform yields the identity.
 */
func (t *Transform) AsMatrix() Mat4 {
	if t == nil {
		return NewMat4Identity()
	}
	return NewMat4Translation(t.Position).
		Mul(NewMat4RotationX(Degrees(t.Rotation.X))).
		Mul(NewMat4RotationY(Degrees(t.Rotation.Y))).
		Mul(NewMat4RotationZ(Degrees(t.Rotation.Z))).
		Mul(NewMat4Scale(t.Scale))
}

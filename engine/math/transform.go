package math

func TransformFromPosition(position Vec3) Transform {
	return TransformFromPositionRotationScale(position, NewQuatIdentity(), NewVec3One())
}

func TransformFromPositionRotationScale(position Vec3, rotation Quaternion, scale Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: rotation,
		Scale:    scale,
		Local:    NewMat4Identity(),
		IsDirty:  true,
	}
}

// GetLocal rebuilds the local matrix if anything changed since the last call
// and returns it. The result is translate * rotate * scale.
func (t *Transform) GetLocal() Mat4 {
	if t == nil {
		return NewMat4Identity()
	}
	if t.IsDirty {
		tr := t.Rotation.ToMat4().Mul(NewMat4Translation(t.Position))
		t.Local = NewMat4Scale(t.Scale).Mul(tr)
		t.IsDirty = false
	}
	return t.Local
}

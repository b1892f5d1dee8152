package math

// WorldUp is the up direction of the world. The world is right-handed with Z up.
var WorldUp = Vec3{0, 0, 1}

// BasisFromEulers derives the forward, right and up directions of a viewer
// looking along yaw (around Z) and pitch (towards Z), both in degrees.
//
// right is forward x WorldUp and is not normalized: its length is cos(pitch).
// up is right x forward.
func BasisFromEulers(yawDegrees, pitchDegrees float32) (forward, right, up Vec3) {
	yaw := DegToRad(yawDegrees)
	pitch := DegToRad(pitchDegrees)

	forward = Vec3{
		X: kcos(yaw) * kcos(pitch),
		Y: ksin(yaw) * kcos(pitch),
		Z: ksin(pitch),
	}
	right = forward.Cross(WorldUp)
	up = right.Cross(forward)
	return forward, right, up
}

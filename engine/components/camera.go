package components

import (
	"fmt"

	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/math"
)

const (
	MinPitch float32 = -89
	MaxPitch float32 = 89
)

/**
 * @brief A first-person camera. Eulers holds the orientation in degrees:
 * Y is the pitch and Z is the yaw, X is unused.
 * Forward, Right, Up and View are derived and only refreshed by Update.
 */
type Camera struct {
	Position math.Vec3
	Eulers   math.Vec3
	Forward  math.Vec3
	Right    math.Vec3
	Up       math.Vec3
	View     math.Mat4
}

// CameraState is the persisted subset of a camera.
type CameraState struct {
	Position [3]float32 `toml:"position"`
	Yaw      float32    `toml:"yaw"`
	Pitch    float32    `toml:"pitch"`
}

// NewCamera creates a camera with its basis and view already derived, so a
// Move issued before the first Update has a direction to follow.
func NewCamera(position math.Vec3, yawDegrees, pitchDegrees float32) Camera {
	c := Camera{
		Position: position,
		Eulers: math.Vec3{
			Y: math.Clamp(pitchDegrees, MinPitch, MaxPitch),
			Z: math.WrapDegrees(yawDegrees),
		},
	}
	return c.Update()
}

// DefaultCamera is where the player starts without a saved state.
func DefaultCamera() Camera {
	return NewCamera(math.Vec3{X: -2, Y: 0, Z: 0.5}, 0, 0)
}

func (c Camera) Yaw() float32 {
	return c.Eulers.Z
}

func (c Camera) Pitch() float32 {
	return c.Eulers.Y
}

// Update recomputes the basis from the eulers and rebuilds the view matrix.
func (c Camera) Update() Camera {
	c.Forward, c.Right, c.Up = math.BasisFromEulers(c.Eulers.Z, c.Eulers.Y)
	target := c.Position.Add(c.Forward)
	c.View = math.NewMat4LookAt(c.Position, target, c.Up)
	return c
}

// Spin turns the camera. Positive deltaYaw turns right, positive deltaPitch
// looks up. The basis is left as is until the next Update.
func (c Camera) Spin(deltaYaw, deltaPitch float32) Camera {
	// a NaN would stick to the angle forever
	if math.IsFinite(deltaYaw) {
		c.Eulers.Z = math.WrapDegrees(c.Eulers.Z - deltaYaw)
	}
	if math.IsFinite(deltaPitch) {
		c.Eulers.Y = math.Clamp(c.Eulers.Y+deltaPitch, MinPitch, MaxPitch)
	}
	return c
}

// Move translates the camera along the basis computed by the last Update.
// Non-finite amounts leave the camera where it is.
func (c Camera) Move(forwardAmount, rightAmount, upAmount float32) Camera {
	if !math.NewVec3(forwardAmount, rightAmount, upAmount).IsFinite() {
		return c
	}
	c.Position = c.Position.
		ScaleAndAdd(c.Forward, forwardAmount).
		ScaleAndAdd(c.Right, rightAmount).
		ScaleAndAdd(c.Up, upAmount)
	return c
}

func (c Camera) State() CameraState {
	return CameraState{
		Position: [3]float32{c.Position.X, c.Position.Y, c.Position.Z},
		Yaw:      c.Eulers.Z,
		Pitch:    c.Eulers.Y,
	}
}

// CameraFromState restores a camera. Out of range angles are brought back
// into range; non-finite components are rejected.
func CameraFromState(state CameraState) (Camera, error) {
	position := math.NewVec3(state.Position[0], state.Position[1], state.Position[2])
	angles := math.NewVec3(state.Yaw, state.Pitch, 0)
	if !position.IsFinite() || !angles.IsFinite() {
		return Camera{}, fmt.Errorf("non-finite camera state %+v: %w", state, core.ErrCameraStateMalformed)
	}
	return NewCamera(position, state.Yaw, state.Pitch), nil
}

package components

import (
	"errors"
	m "math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/math"
)

func TestCameraSpinStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := DefaultCamera()
	for i := 0; i < 10000; i++ {
		dYaw := (rng.Float32() - 0.5) * 2000
		dPitch := (rng.Float32() - 0.5) * 400
		c = c.Spin(dYaw, dPitch)
		if c.Pitch() < MinPitch || c.Pitch() > MaxPitch {
			t.Fatalf("spin %d: pitch=%v out of [%v,%v]", i, c.Pitch(), MinPitch, MaxPitch)
		}
		if c.Yaw() < 0 || c.Yaw() >= 360 {
			t.Fatalf("spin %d: yaw=%v out of [0,360)", i, c.Yaw())
		}
	}

	nan := float32(m.NaN())
	inf := float32(m.Inf(1))
	for _, d := range [][2]float32{{nan, nan}, {inf, -inf}, {-inf, inf}, {nan, 10}, {10, inf}} {
		yaw, pitch := c.Yaw(), c.Pitch()
		c = c.Spin(d[0], d[1])
		if !math.IsFinite(d[0]) && c.Yaw() != yaw {
			t.Fatalf("spin %v: yaw=%v want %v", d, c.Yaw(), yaw)
		}
		if !math.IsFinite(d[1]) && c.Pitch() != pitch {
			t.Fatalf("spin %v: pitch=%v want %v", d, c.Pitch(), pitch)
		}
		if c.Pitch() < MinPitch || c.Pitch() > MaxPitch || c.Yaw() < 0 || c.Yaw() >= 360 {
			t.Fatalf("spin %v: yaw=%v pitch=%v out of range", d, c.Yaw(), c.Pitch())
		}
	}
}

func TestCameraSpinSigns(t *testing.T) {
	c := NewCamera(math.Vec3{}, 10, 0).Spin(20, 30)
	if c.Yaw() != 350 {
		t.Fatalf("yaw=%v want 350", c.Yaw())
	}
	if c.Pitch() != 30 {
		t.Fatalf("pitch=%v want 30", c.Pitch())
	}
	if c = c.Spin(0, 100); c.Pitch() != MaxPitch {
		t.Fatalf("pitch=%v want %v", c.Pitch(), MaxPitch)
	}
}

func TestCameraSpinLeavesBasis(t *testing.T) {
	c := DefaultCamera()
	spun := c.Spin(90, 0)
	if spun.Forward != c.Forward || spun.View != c.View {
		t.Fatalf("Spin recomputed the basis")
	}
}

func TestCameraMoveUsesLastBasis(t *testing.T) {
	c := DefaultCamera()
	forward := c.Forward

	// the spin only affects the basis after the next Update
	c = c.Spin(90, 0).Move(1, 0, 0)
	want := math.NewVec3(-2, 0, 0.5).Add(forward)
	if c.Position != want {
		t.Fatalf("position=%v want %v", c.Position, want)
	}

	c = c.Update()
	if c.Forward == forward {
		t.Fatalf("Update did not refresh the basis")
	}
}

func TestCameraMoveAllAxes(t *testing.T) {
	c := NewCamera(math.Vec3{}, 0, 0)
	c = c.Move(1, 2, 3)
	// yaw 0, pitch 0: forward +X, right -Y, up +Z
	want := math.NewVec3(1, -2, 3)
	if !c.Position.Compare(want, 1e-6) {
		t.Fatalf("position=%v want %v", c.Position, want)
	}
}

func TestCameraMoveIgnoresNonFinite(t *testing.T) {
	c := DefaultCamera()
	for _, amounts := range [][3]float32{
		{float32(m.NaN()), 0, 0},
		{0, float32(m.Inf(1)), 0},
		{1, 1, float32(m.Inf(-1))},
	} {
		if got := c.Move(amounts[0], amounts[1], amounts[2]); got.Position != c.Position {
			t.Fatalf("Move%v: position=%v want %v", amounts, got.Position, c.Position)
		}
	}
}

func TestCameraViewMatchesMathgl(t *testing.T) {
	c := NewCamera(math.NewVec3(-2, 1, 0.5), 30, -20)
	eye := mgl32.Vec3{-2, 1, 0.5}
	f := mgl32.Vec3{c.Forward.X, c.Forward.Y, c.Forward.Z}
	up := mgl32.Vec3{c.Up.X, c.Up.Y, c.Up.Z}
	want := mgl32.LookAtV(eye, eye.Add(f), up)
	for i := range want {
		if d := c.View.Data[i] - want[i]; d > 1e-5 || d < -1e-5 {
			t.Fatalf("view[%d]=%v want %v", i, c.View.Data[i], want[i])
		}
	}
}

func TestCameraStateRoundTrip(t *testing.T) {
	c := NewCamera(math.NewVec3(1, 2, 3), 123, -45)
	restored, err := CameraFromState(c.State())
	if err != nil {
		t.Fatalf("CameraFromState: %v", err)
	}
	if restored != c {
		t.Fatalf("restored=%+v want %+v", restored, c)
	}
}

func TestCameraFromStateNormalizes(t *testing.T) {
	restored, err := CameraFromState(CameraState{Yaw: -30, Pitch: 120})
	if err != nil {
		t.Fatalf("CameraFromState: %v", err)
	}
	if restored.Yaw() != 330 || restored.Pitch() != MaxPitch {
		t.Fatalf("yaw=%v pitch=%v want 330, %v", restored.Yaw(), restored.Pitch(), MaxPitch)
	}
}

func TestCameraFromStateRejectsNonFinite(t *testing.T) {
	nan := float32(m.NaN())
	inf := float32(m.Inf(1))
	for _, state := range []CameraState{
		{Position: [3]float32{nan, 0, 0}},
		{Position: [3]float32{0, 0, inf}},
		{Yaw: nan},
		{Pitch: inf},
	} {
		if _, err := CameraFromState(state); !errors.Is(err, core.ErrCameraStateMalformed) {
			t.Fatalf("state %+v: err=%v want ErrCameraStateMalformed", state, err)
		}
	}
}

package components

import (
	"fmt"

	"github.com/spaghettifunk/tessera/engine/math"
)

// Kind identifies the class of a renderable entity. Kinds are listed in the
// order their instances are laid out in the transform buffer.
type Kind uint8

const (
	KindTriangle Kind = iota
	KindQuadrilateral
	KindCube
	KindCount
)

// Kinds returns every entity kind in buffer order.
func Kinds() []Kind {
	return []Kind{KindTriangle, KindQuadrilateral, KindCube}
}

func (k Kind) String() string {
	switch k {
	case KindTriangle:
		return "triangle"
	case KindQuadrilateral:
		return "quadrilateral"
	case KindCube:
		return "cube"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// VertexCount is the number of vertices drawn for one instance of the kind.
func (k Kind) VertexCount() uint32 {
	switch k {
	case KindTriangle:
		return 3
	case KindQuadrilateral:
		return 6
	case KindCube:
		return 36
	default:
		return 0
	}
}

// Moves reports whether an Update can change the model of the kind.
func (k Kind) Moves() bool {
	return k == KindTriangle || k == KindCube
}

// Angle is a rotation in hundredths of a degree, always in [0, 36000).
type Angle uint16

const (
	AngleFullTurn Angle = 36000

	triangleStep Angle = 100 // 1 degree
	cubeStep     Angle = 1   // 0.01 degree
)

// AngleFromDegrees rounds the given degrees to the nearest hundredth and
// wraps the result into a single turn.
func AngleFromDegrees(degrees float32) Angle {
	cd := int64(math.WrapDegrees(degrees)*100 + 0.5)
	cd %= int64(AngleFullTurn)
	return Angle(cd)
}

func (a Angle) Add(step Angle) Angle {
	return Angle((uint32(a) + uint32(step)) % uint32(AngleFullTurn))
}

func (a Angle) Degrees() float32 {
	return float32(a) / 100
}

func (a Angle) Radians() float32 {
	return math.DegToRad(a.Degrees())
}

var (
	cubeAxis  = math.Vec3{X: 1, Y: 1, Z: 1}
	cubeScale = math.Vec3{X: 8, Y: 8, Z: 8}
)

// Entity is a renderable object of one of the closed set of kinds.
// Entities are values: Update returns the next state and leaves the
// receiver untouched.
type Entity struct {
	Kind     Kind
	Position math.Vec3
	Rotation Angle
	Model    math.Mat4
}

func NewTriangle(position math.Vec3, thetaDegrees float32) Entity {
	e := Entity{Kind: KindTriangle, Position: position, Rotation: AngleFromDegrees(thetaDegrees)}
	e.Model = e.buildModel()
	return e
}

// NewQuadrilateral creates a static quad. Its model is computed here and never
// changes afterwards.
func NewQuadrilateral(position math.Vec3) Entity {
	e := Entity{Kind: KindQuadrilateral, Position: position}
	e.Model = e.buildModel()
	return e
}

func NewCube(position math.Vec3) Entity {
	e := Entity{Kind: KindCube, Position: position}
	e.Model = e.buildModel()
	return e
}

// Update advances the entity by one frame.
func (e Entity) Update() Entity {
	switch e.Kind {
	case KindTriangle:
		e.Rotation = e.Rotation.Add(triangleStep)
	case KindCube:
		e.Rotation = e.Rotation.Add(cubeStep)
	default:
		return e
	}
	e.Model = e.buildModel()
	return e
}

func (e Entity) buildModel() math.Mat4 {
	var t math.Transform
	switch e.Kind {
	case KindTriangle:
		// translate * rotateZ
		return math.NewMat4EulerZ(e.Rotation.Radians()).Mul(math.NewMat4Translation(e.Position))
	case KindCube:
		t = math.TransformFromPositionRotationScale(
			e.Position,
			math.NewQuatFromAxisAngle(cubeAxis, e.Rotation.Radians()),
			cubeScale,
		)
	default:
		t = math.TransformFromPosition(e.Position)
	}
	return t.GetLocal()
}

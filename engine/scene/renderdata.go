package scene

import (
	"github.com/spaghettifunk/tessera/engine/components"
	"github.com/spaghettifunk/tessera/engine/math"
)

// MatrixFloats is the number of float32 values one model matrix occupies in
// the transform buffer.
const MatrixFloats = 16

// KindRun describes the contiguous block of buffer slots owned by one kind.
type KindRun struct {
	Kind        components.Kind
	Count       uint32
	Offset      uint32
	VertexCount uint32
}

// RenderData is everything the renderer needs to draw one frame.
//
// ModelTransforms is the scene's transform buffer itself, not a copy: the
// same backing slice is handed out every frame. Counts is a copy, ordered as
// the runs are laid out in the buffer.
type RenderData struct {
	ViewTransform   math.Mat4
	ModelTransforms []float32
	Counts          []KindRun
}

func (rd RenderData) run(kind components.Kind) (KindRun, bool) {
	for _, r := range rd.Counts {
		if r.Kind == kind {
			return r, true
		}
	}
	return KindRun{}, false
}

func (rd RenderData) CountOf(kind components.Kind) uint32 {
	r, _ := rd.run(kind)
	return r.Count
}

func (rd RenderData) OffsetOf(kind components.Kind) uint32 {
	r, _ := rd.run(kind)
	return r.Offset
}

// Instances returns the number of matrices in use.
func (rd RenderData) Instances() uint32 {
	var n uint32
	for _, r := range rd.Counts {
		n += r.Count
	}
	return n
}

// Model returns the matrix stored at the given slot.
func (rd RenderData) Model(slot uint32) math.Mat4 {
	var mt math.Mat4
	copy(mt.Data[:], rd.ModelTransforms[slot*MatrixFloats:(slot+1)*MatrixFloats])
	return mt
}

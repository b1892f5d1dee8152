package metadata

import (
	"github.com/spaghettifunk/tessera/engine/components"
)

// VertexStride is the size in bytes of one vertex: position (x, y, z)
// followed by texture coordinates (u, v), all float32.
const VertexStride uint32 = 20

const vertexFloats = VertexStride / 4

// Mesh is the vertex data shared by every instance of a kind.
type Mesh struct {
	Name     string
	Kind     components.Kind
	Vertices []float32
	// Buffer is the backend buffer holding Vertices once uploaded.
	Buffer *RenderBuffer
}

func (m *Mesh) VertexCount() uint32 {
	return uint32(len(m.Vertices)) / vertexFloats
}

func (m *Mesh) Size() uint64 {
	return uint64(len(m.Vertices)) * 4
}

// MeshFor returns a fresh, not yet uploaded mesh for the given kind.
func MeshFor(kind components.Kind) *Mesh {
	var vertices []float32
	switch kind {
	case components.KindTriangle:
		vertices = triangleVertices()
	case components.KindQuadrilateral:
		vertices = quadrilateralVertices()
	case components.KindCube:
		vertices = cubeVertices()
	}
	return &Mesh{
		Name:     kind.String(),
		Kind:     kind,
		Vertices: vertices,
	}
}

func triangleVertices() []float32 {
	return []float32{
		// x, y, z        u, v
		0, 0, .5, .5, 0,
		0, -.5, -.5, 0, 1,
		0, .5, -.5, 1, 1,
	}
}

func quadrilateralVertices() []float32 {
	return []float32{
		-.5, -.5, 0, 0, 0,
		.5, -.5, 0, 1, 0,
		.5, .5, 0, 1, 1,

		.5, .5, 0, 1, 1,
		-.5, .5, 0, 0, 1,
		-.5, -.5, 0, 0, 0,
	}
}

func cubeVertices() []float32 {
	var (
		a = [3]float32{-.5, .5, .5}
		b = [3]float32{-.5, .5, -.5}
		c = [3]float32{-.5, -.5, -.5}
		d = [3]float32{-.5, -.5, .5}
		e = [3]float32{.5, .5, .5}
		f = [3]float32{.5, .5, -.5}
		g = [3]float32{.5, -.5, -.5}
		h = [3]float32{.5, -.5, .5}
	)
	// each face is two triangles sharing the same uv layout
	faces := [][4][3]float32{
		{a, b, d, c}, // front
		{h, g, e, f}, // back
		{d, c, h, g}, // right
		{e, f, a, b}, // left
		{e, a, h, d}, // top
		{b, f, c, g}, // bottom
	}

	vertices := make([]float32, 0, 36*vertexFloats)
	add := func(p [3]float32, u, v float32) {
		vertices = append(vertices, p[0], p[1], p[2], u, v)
	}
	for _, q := range faces {
		add(q[0], 0, 0)
		add(q[1], 0, 1)
		add(q[2], 1, 0)

		add(q[1], 0, 1)
		add(q[3], 1, 1)
		add(q[2], 1, 0)
	}
	return vertices
}

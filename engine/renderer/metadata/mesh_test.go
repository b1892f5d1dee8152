package metadata

import (
	"testing"

	"github.com/spaghettifunk/tessera/engine/components"
)

func TestMeshVertexCounts(t *testing.T) {
	for _, kind := range components.Kinds() {
		mesh := MeshFor(kind)
		if mesh.VertexCount() != kind.VertexCount() {
			t.Fatalf("%s: %d vertices want %d", kind, mesh.VertexCount(), kind.VertexCount())
		}
		if mesh.Size() != uint64(kind.VertexCount()*VertexStride) {
			t.Fatalf("%s: size=%d", kind, mesh.Size())
		}
	}
}

func TestCubeMeshIsUnitCube(t *testing.T) {
	mesh := MeshFor(components.KindCube)
	corners := map[[3]float32]int{}
	for i := 0; i < len(mesh.Vertices); i += int(vertexFloats) {
		p := [3]float32{mesh.Vertices[i], mesh.Vertices[i+1], mesh.Vertices[i+2]}
		for _, c := range p {
			if c != .5 && c != -.5 {
				t.Fatalf("vertex %d=%v not on the unit cube", i/int(vertexFloats), p)
			}
		}
		corners[p]++
	}
	if len(corners) != 8 {
		t.Fatalf("corners=%d want 8", len(corners))
	}
}

func TestMaterialSampler(t *testing.T) {
	mat := MaterialFor(components.KindQuadrilateral)
	dm := mat.DiffuseMap
	if dm.RepeatU != TextureRepeatRepeat || dm.RepeatV != TextureRepeatRepeat {
		t.Fatalf("repeat=(%v,%v)", dm.RepeatU, dm.RepeatV)
	}
	if dm.FilterMagnify != TextureFilterModeLinear || dm.FilterMinify != TextureFilterModeNearest || dm.FilterMip != TextureFilterModeNearest {
		t.Fatalf("filters mag=%s min=%s mip=%s", dm.FilterMagnify, dm.FilterMinify, dm.FilterMip)
	}
	if dm.TextureName != FloorTextureName {
		t.Fatalf("texture=%q", dm.TextureName)
	}
	if MaterialFor(components.KindTriangle).DiffuseMap.TextureName != PortraitTextureName {
		t.Fatalf("triangle texture mismatch")
	}
}

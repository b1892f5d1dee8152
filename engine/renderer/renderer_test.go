package renderer

import (
	"encoding/binary"
	"errors"
	"io"
	m "math"
	"os"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tessera/engine/components"
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/math"
	"github.com/spaghettifunk/tessera/engine/renderer/headless"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
	"github.com/spaghettifunk/tessera/engine/scene"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func decodeFloats(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = m.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

func newTestRenderer(t *testing.T, capacity int) (*Renderer, *headless.HeadlessRenderer) {
	t.Helper()
	backend := headless.New()
	r := New(backend, DefaultProjectionConfig())
	if err := r.Initialize("test", 800, 600, capacity); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return r, backend
}

func TestDrawFrameIssuesOneDrawPerKind(t *testing.T) {
	s := scene.New(scene.DefaultConfig(), nil)
	r, backend := newTestRenderer(t, s.Capacity())

	if err := r.DrawFrame(s.RenderData(), 0.016); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}

	want := []headless.DrawCall{
		{Mesh: "triangle", Material: "triangle", Texture: metadata.PortraitTextureName, VertexCount: 3, InstanceCount: 11, FirstVertex: 0, FirstInstance: 0},
		{Mesh: "quadrilateral", Material: "quadrilateral", Texture: metadata.FloorTextureName, VertexCount: 6, InstanceCount: 441, FirstVertex: 0, FirstInstance: 11},
		{Mesh: "cube", Material: "cube", Texture: metadata.FloorTextureName, VertexCount: 36, InstanceCount: 1, FirstVertex: 0, FirstInstance: 452},
	}
	frame := backend.LastFrame()
	if len(frame.Draws) != len(want) {
		t.Fatalf("draws=%d want %d", len(frame.Draws), len(want))
	}
	for i := range want {
		if frame.Draws[i] != want[i] {
			t.Fatalf("draw %d=%+v want %+v", i, frame.Draws[i], want[i])
		}
	}
	if frame.DeltaTime != 0.016 || frame.Number != 1 {
		t.Fatalf("frame=%+v", frame)
	}
}

func TestDrawFrameUploadsTransformsAndUniforms(t *testing.T) {
	s := scene.New(scene.DefaultConfig(), nil)
	r, backend := newTestRenderer(t, s.Capacity())
	s.Update()
	rd := s.RenderData()

	if err := r.DrawFrame(rd, 0.016); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}

	instances, ok := backend.BufferData(r.instanceBuffer)
	if !ok {
		t.Fatalf("instance buffer missing")
	}
	if len(instances) != 1024*64 {
		t.Fatalf("instance buffer=%d bytes want %d", len(instances), 1024*64)
	}
	for i, f := range decodeFloats(instances) {
		if f != rd.ModelTransforms[i] {
			t.Fatalf("instance float %d=%v want %v", i, f, rd.ModelTransforms[i])
		}
	}

	uniforms, _ := backend.BufferData(r.uniformBuffer)
	floats := decodeFloats(uniforms)
	for i := 0; i < 16; i++ {
		if floats[i] != rd.ViewTransform.Data[i] {
			t.Fatalf("view[%d]=%v want %v", i, floats[i], rd.ViewTransform.Data[i])
		}
		if floats[16+i] != r.Projection().Data[i] {
			t.Fatalf("projection[%d]=%v want %v", i, floats[16+i], r.Projection().Data[i])
		}
	}
}

func TestProjectionFollowsResize(t *testing.T) {
	r, backend := newTestRenderer(t, 4)
	check := func(aspect float32) {
		t.Helper()
		want := mgl32.Perspective(math.K_QUARTER_PI, aspect, 0.1, 20)
		for i := range want {
			if d := r.Projection().Data[i] - want[i]; d > 1e-5 || d < -1e-5 {
				t.Fatalf("projection[%d]=%v want %v", i, r.Projection().Data[i], want[i])
			}
		}
	}
	check(800.0 / 600.0)

	if err := r.OnResize(1920, 1080); err != nil {
		t.Fatalf("OnResize: %v", err)
	}
	check(1920.0 / 1080.0)
	if w, h := backend.Size(); w != 1920 || h != 1080 {
		t.Fatalf("backend size=%dx%d", w, h)
	}
}

func TestDrawFrameSkipsEmptyKinds(t *testing.T) {
	s := scene.New(scene.Config{Capacity: 4, Quadrilaterals: []math.Vec3{{}, {X: 1}}}, nil)
	r, backend := newTestRenderer(t, s.Capacity())
	if err := r.DrawFrame(s.RenderData(), 0); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}
	draws := backend.LastFrame().Draws
	if len(draws) != 1 || draws[0].Mesh != "quadrilateral" || draws[0].InstanceCount != 2 || draws[0].FirstInstance != 0 {
		t.Fatalf("draws=%+v", draws)
	}
}

func TestDrawFrameRecoversAfterFailedDraw(t *testing.T) {
	s := scene.New(scene.DefaultConfig(), nil)
	r, backend := newTestRenderer(t, s.Capacity())

	bad := s.RenderData()
	bad.Counts[0].VertexCount = 99
	if err := r.DrawFrame(bad, 0.016); !errors.Is(err, headless.ErrOutOfBounds) {
		t.Fatalf("err=%v want ErrOutOfBounds", err)
	}
	if err := r.DrawFrame(s.RenderData(), 0.016); err != nil {
		t.Fatalf("frame after a failed draw: %v", err)
	}
	if frame := backend.LastFrame(); frame.Number != 2 || len(frame.Draws) != 3 {
		t.Fatalf("frame=%+v", frame)
	}
}

func TestDrawFrameRequiresInitialize(t *testing.T) {
	r := New(headless.New(), DefaultProjectionConfig())
	s := scene.New(scene.Config{Capacity: 1}, nil)
	if err := r.DrawFrame(s.RenderData(), 0); !errors.Is(err, core.ErrBackendNotInitialized) {
		t.Fatalf("err=%v want ErrBackendNotInitialized", err)
	}
}

func TestDrawFrameRejectsLargerScene(t *testing.T) {
	r, _ := newTestRenderer(t, 2)
	s := scene.New(scene.Config{Capacity: 8}, nil)
	if err := r.DrawFrame(s.RenderData(), 0); !errors.Is(err, core.ErrSceneCapacityExceeded) {
		t.Fatalf("err=%v want ErrSceneCapacityExceeded", err)
	}
}

func TestMeshesUploaded(t *testing.T) {
	r, backend := newTestRenderer(t, 1)
	for _, kind := range components.Kinds() {
		mesh := r.meshes[kind]
		data, ok := backend.BufferData(mesh.Buffer)
		if !ok {
			t.Fatalf("%s mesh buffer missing", kind)
		}
		if uint32(len(data)) != kind.VertexCount()*metadata.VertexStride {
			t.Fatalf("%s mesh=%d bytes want %d", kind, len(data), kind.VertexCount()*metadata.VertexStride)
		}
		for i, f := range decodeFloats(data) {
			if f != mesh.Vertices[i] {
				t.Fatalf("%s vertex float %d=%v want %v", kind, i, f, mesh.Vertices[i])
			}
		}
	}
}

func TestShutdownReleasesBuffers(t *testing.T) {
	r, backend := newTestRenderer(t, 1)
	// instance + uniform + one mesh per kind
	if got := backend.BufferCount(); got != 2+int(components.KindCount) {
		t.Fatalf("buffers=%d want %d", got, 2+int(components.KindCount))
	}
	if err := r.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if got := backend.BufferCount(); got != 0 {
		t.Fatalf("buffers=%d after shutdown", got)
	}
}

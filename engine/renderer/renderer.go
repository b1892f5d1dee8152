package renderer

import (
	"encoding/binary"
	"errors"
	"fmt"
	m "math"

	"github.com/spaghettifunk/tessera/engine/components"
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/math"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
	"github.com/spaghettifunk/tessera/engine/scene"
)

type ProjectionConfig struct {
	FOV  float32 `toml:"fov"`
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`
}

func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		FOV:  math.K_QUARTER_PI,
		Near: 0.1,
		Far:  20,
	}
}

// Renderer owns the GPU side copies of the scene: one storage buffer of model
// matrices, one uniform buffer with view and projection, and a mesh and
// material per kind.
type Renderer struct {
	backend    RendererBackend
	projection ProjectionConfig

	width  uint32
	height uint32
	// projectionMatrix is rebuilt on every resize.
	projectionMatrix math.Mat4

	instanceBuffer *metadata.RenderBuffer
	uniformBuffer  *metadata.RenderBuffer
	meshes         [components.KindCount]*metadata.Mesh
	materials      [components.KindCount]*metadata.Material

	scratch []byte
}

func New(backend RendererBackend, projection ProjectionConfig) *Renderer {
	return &Renderer{
		backend:    backend,
		projection: projection,
	}
}

// Initialize brings up the backend and allocates an instance buffer able to
// hold capacity model matrices.
func (r *Renderer) Initialize(appName string, width, height uint32, capacity int) error {
	if err := r.backend.Initialize(metadata.RendererBackendConfig{
		ApplicationName: appName,
		Width:           width,
		Height:          height,
	}); err != nil {
		return fmt.Errorf("failed to initialize renderer backend: %w", err)
	}

	var err error
	r.instanceBuffer, err = r.backend.CreateBuffer(metadata.RENDERBUFFER_TYPE_STORAGE, uint64(capacity)*metadata.MatrixSize)
	if err != nil {
		return fmt.Errorf("failed to create instance buffer: %w", err)
	}
	r.uniformBuffer, err = r.backend.CreateBuffer(metadata.RENDERBUFFER_TYPE_UNIFORM, metadata.UniformBufferSize)
	if err != nil {
		return fmt.Errorf("failed to create uniform buffer: %w", err)
	}

	for _, kind := range components.Kinds() {
		mesh := metadata.MeshFor(kind)
		mesh.Buffer, err = r.backend.CreateBuffer(metadata.RENDERBUFFER_TYPE_VERTEX, mesh.Size())
		if err != nil {
			return fmt.Errorf("failed to create %s mesh buffer: %w", kind, err)
		}
		if err := r.backend.WriteBuffer(mesh.Buffer, 0, encodeFloats(nil, mesh.Vertices)); err != nil {
			return fmt.Errorf("failed to upload %s mesh: %w", kind, err)
		}
		r.meshes[kind] = mesh
		r.materials[kind] = metadata.MaterialFor(kind)
	}

	r.resize(width, height)
	core.LogInfo("renderer initialized (%dx%d, %d instances)", width, height, capacity)
	return nil
}

func (r *Renderer) Shutdown() error {
	for _, mesh := range r.meshes {
		if mesh != nil && mesh.Buffer != nil {
			r.backend.DestroyBuffer(mesh.Buffer)
			mesh.Buffer = nil
		}
	}
	if r.instanceBuffer != nil {
		r.backend.DestroyBuffer(r.instanceBuffer)
		r.instanceBuffer = nil
	}
	if r.uniformBuffer != nil {
		r.backend.DestroyBuffer(r.uniformBuffer)
		r.uniformBuffer = nil
	}
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint32) error {
	r.resize(width, height)
	return r.backend.Resized(width, height)
}

func (r *Renderer) resize(width, height uint32) {
	r.width, r.height = width, height
	aspect := float32(1)
	if height != 0 {
		aspect = float32(width) / float32(height)
	}
	r.projectionMatrix = math.NewMat4Perspective(r.projection.FOV, aspect, r.projection.Near, r.projection.Far)
}

func (r *Renderer) Projection() math.Mat4 {
	return r.projectionMatrix
}

// DrawFrame uploads the frame and issues one instanced draw per non-empty kind,
// in the order the kinds are laid out in the transform buffer.
func (r *Renderer) DrawFrame(rd scene.RenderData, deltaTime float64) error {
	if r.instanceBuffer == nil {
		return core.ErrBackendNotInitialized
	}
	if uint64(len(rd.ModelTransforms))*4 > r.instanceBuffer.TotalSize {
		return fmt.Errorf("%d transforms do not fit an instance buffer of %d bytes: %w",
			len(rd.ModelTransforms)/scene.MatrixFloats, r.instanceBuffer.TotalSize, core.ErrSceneCapacityExceeded)
	}

	if err := r.backend.BeginFrame(deltaTime); err != nil {
		core.LogError(err.Error())
		return err
	}
	if err := r.submit(rd); err != nil {
		// close the frame so the next one can begin
		if endErr := r.backend.EndFrame(deltaTime); endErr != nil {
			err = errors.Join(err, endErr)
		}
		core.LogError(err.Error())
		return err
	}

	if err := r.backend.EndFrame(deltaTime); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return err
	}
	return nil
}

func (r *Renderer) submit(rd scene.RenderData) error {
	r.scratch = encodeFloats(r.scratch[:0], rd.ModelTransforms)
	if err := r.backend.WriteBuffer(r.instanceBuffer, 0, r.scratch); err != nil {
		return fmt.Errorf("failed to upload model transforms: %w", err)
	}

	r.scratch = encodeFloats(r.scratch[:0], rd.ViewTransform.Data[:])
	r.scratch = encodeFloats(r.scratch, r.projectionMatrix.Data[:])
	if err := r.backend.WriteBuffer(r.uniformBuffer, metadata.UniformViewOffset, r.scratch); err != nil {
		return fmt.Errorf("failed to upload camera uniforms: %w", err)
	}

	for _, run := range rd.Counts {
		if run.Count == 0 {
			continue
		}
		if err := r.backend.BindMesh(r.meshes[run.Kind]); err != nil {
			return err
		}
		if err := r.backend.BindMaterial(r.materials[run.Kind]); err != nil {
			return err
		}
		if err := r.backend.Draw(run.VertexCount, run.Count, 0, run.Offset); err != nil {
			return fmt.Errorf("failed to draw %s instances: %w", run.Kind, err)
		}
	}
	return nil
}

func encodeFloats(dst []byte, src []float32) []byte {
	for _, f := range src {
		dst = binary.LittleEndian.AppendUint32(dst, m.Float32bits(f))
	}
	return dst
}

package headless

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

var (
	ErrNotInFrame     = errors.New("no frame in progress")
	ErrUnknownBuffer  = errors.New("unknown buffer")
	ErrOutOfBounds    = errors.New("write out of buffer bounds")
	ErrNothingBound   = errors.New("draw without a bound mesh and material")
	ErrFrameInProcess = errors.New("frame already in progress")
)

type DrawCall struct {
	Mesh          string
	Material      string
	Texture       string
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

type Frame struct {
	Number    uint64
	DeltaTime float64
	Draws     []DrawCall
}

// HeadlessRenderer keeps every buffer in host memory and records the draws
// of each frame instead of submitting them to a GPU.
type HeadlessRenderer struct {
	FrameNumber uint64
	width       uint32
	height      uint32

	initialized bool
	buffers     map[string][]byte
	current     *Frame
	lastFrame   Frame
	mesh        *metadata.Mesh
	material    *metadata.Material
}

func New() *HeadlessRenderer {
	return &HeadlessRenderer{
		buffers: make(map[string][]byte),
	}
}

func (hr *HeadlessRenderer) Initialize(config metadata.RendererBackendConfig) error {
	hr.width = config.Width
	hr.height = config.Height
	hr.initialized = true
	core.LogDebug("headless renderer backend initialized for `%s`", config.ApplicationName)
	return nil
}

func (hr *HeadlessRenderer) Shutdown() error {
	hr.buffers = make(map[string][]byte)
	hr.initialized = false
	return nil
}

func (hr *HeadlessRenderer) Resized(width, height uint32) error {
	hr.width = width
	hr.height = height
	return nil
}

func (hr *HeadlessRenderer) Size() (uint32, uint32) {
	return hr.width, hr.height
}

func (hr *HeadlessRenderer) BeginFrame(deltaTime float64) error {
	if !hr.initialized {
		return core.ErrBackendNotInitialized
	}
	if hr.current != nil {
		return ErrFrameInProcess
	}
	hr.FrameNumber++
	hr.current = &Frame{Number: hr.FrameNumber, DeltaTime: deltaTime}
	return nil
}

func (hr *HeadlessRenderer) EndFrame(deltaTime float64) error {
	if hr.current == nil {
		return ErrNotInFrame
	}
	hr.lastFrame = *hr.current
	hr.current = nil
	hr.mesh = nil
	hr.material = nil
	return nil
}

func (hr *HeadlessRenderer) CreateBuffer(bufferType metadata.RenderBufferType, totalSize uint64) (*metadata.RenderBuffer, error) {
	if !hr.initialized {
		return nil, core.ErrBackendNotInitialized
	}
	name := fmt.Sprintf("%s-%s", bufferType, uuid.NewString())
	hr.buffers[name] = make([]byte, totalSize)
	return &metadata.RenderBuffer{
		Name:             name,
		RenderBufferType: bufferType,
		TotalSize:        totalSize,
	}, nil
}

func (hr *HeadlessRenderer) WriteBuffer(buffer *metadata.RenderBuffer, offset uint64, data []byte) error {
	memory, ok := hr.buffers[buffer.Name]
	if !ok {
		return fmt.Errorf("%s: %w", buffer.Name, ErrUnknownBuffer)
	}
	if offset+uint64(len(data)) > uint64(len(memory)) {
		return fmt.Errorf("%d bytes at %d into %s (%d bytes): %w", len(data), offset, buffer.Name, len(memory), ErrOutOfBounds)
	}
	copy(memory[offset:], data)
	return nil
}

func (hr *HeadlessRenderer) DestroyBuffer(buffer *metadata.RenderBuffer) {
	delete(hr.buffers, buffer.Name)
}

// BufferData exposes the host copy of a buffer. The slice aliases the buffer.
func (hr *HeadlessRenderer) BufferData(buffer *metadata.RenderBuffer) ([]byte, bool) {
	memory, ok := hr.buffers[buffer.Name]
	return memory, ok
}

func (hr *HeadlessRenderer) BufferCount() int {
	return len(hr.buffers)
}

func (hr *HeadlessRenderer) BindMesh(mesh *metadata.Mesh) error {
	if hr.current == nil {
		return ErrNotInFrame
	}
	if mesh == nil || mesh.Buffer == nil {
		return fmt.Errorf("mesh not uploaded: %w", ErrUnknownBuffer)
	}
	if _, ok := hr.buffers[mesh.Buffer.Name]; !ok {
		return fmt.Errorf("%s: %w", mesh.Buffer.Name, ErrUnknownBuffer)
	}
	hr.mesh = mesh
	return nil
}

func (hr *HeadlessRenderer) BindMaterial(material *metadata.Material) error {
	if hr.current == nil {
		return ErrNotInFrame
	}
	hr.material = material
	return nil
}

func (hr *HeadlessRenderer) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	if hr.current == nil {
		return ErrNotInFrame
	}
	if hr.mesh == nil || hr.material == nil {
		return ErrNothingBound
	}
	if firstVertex+vertexCount > hr.mesh.VertexCount() {
		return fmt.Errorf("%d vertices from %d on mesh %s of %d: %w",
			vertexCount, firstVertex, hr.mesh.Name, hr.mesh.VertexCount(), ErrOutOfBounds)
	}
	hr.current.Draws = append(hr.current.Draws, DrawCall{
		Mesh:          hr.mesh.Name,
		Material:      hr.material.Name,
		Texture:       hr.material.DiffuseMap.TextureName,
		VertexCount:   vertexCount,
		InstanceCount: instanceCount,
		FirstVertex:   firstVertex,
		FirstInstance: firstInstance,
	})
	return nil
}

// LastFrame returns the draws recorded by the most recently ended frame.
func (hr *HeadlessRenderer) LastFrame() Frame {
	return hr.lastFrame
}

package renderer

import "github.com/spaghettifunk/tessera/engine/renderer/metadata"

// RendererBackend is the narrow surface of a graphics API the renderer needs
// to upload the frame data and issue one instanced draw per kind.
type RendererBackend interface {
	Initialize(config metadata.RendererBackendConfig) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	CreateBuffer(bufferType metadata.RenderBufferType, totalSize uint64) (*metadata.RenderBuffer, error)
	WriteBuffer(buffer *metadata.RenderBuffer, offset uint64, data []byte) error
	DestroyBuffer(buffer *metadata.RenderBuffer)
	BindMesh(mesh *metadata.Mesh) error
	BindMaterial(material *metadata.Material) error
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error
}

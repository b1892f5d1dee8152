package metadata

import "github.com/spaghettifunk/tessera/engine/scene"

type RendererBackendConfig struct {
	/** @brief The name of the application */
	ApplicationName string
	Width           uint32
	Height          uint32
}

type RenderBufferType int

const (
	/** @brief Buffer use is unknown. Default, but usually invalid. */
	RENDERBUFFER_TYPE_UNKNOWN RenderBufferType = iota
	/** @brief Buffer is used for vertex data. */
	RENDERBUFFER_TYPE_VERTEX
	/** @brief Buffer is used for uniform data. */
	RENDERBUFFER_TYPE_UNIFORM
	/** @brief Buffer is used for data storage, e.g. per instance model matrices. */
	RENDERBUFFER_TYPE_STORAGE
)

func (t RenderBufferType) String() string {
	switch t {
	case RENDERBUFFER_TYPE_VERTEX:
		return "vertex"
	case RENDERBUFFER_TYPE_UNIFORM:
		return "uniform"
	case RENDERBUFFER_TYPE_STORAGE:
		return "storage"
	default:
		return "unknown"
	}
}

type RenderBuffer struct {
	/** @brief Backend assigned label, unique for the lifetime of the backend. */
	Name string
	/** @brief The type of buffer, which typically determines its use. */
	RenderBufferType RenderBufferType
	/** @brief The total size of the buffer in bytes. */
	TotalSize uint64
}

// Byte layout of the frame uniform buffer.
const (
	UniformViewOffset       uint64 = 0
	UniformProjectionOffset uint64 = 64
	UniformBufferSize       uint64 = 128
	MatrixSize              uint64 = 64
)

/**
 * @brief A structure which is generated by the application and sent once
 * to the renderer to render a given frame.
 */
type RenderPacket struct {
	DeltaTime float64
	Frame     scene.RenderData
}

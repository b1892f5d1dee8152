package engine

import (
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/renderer"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	// ConfigPath is watched for [input] changes when set.
	ConfigPath string
	// Backend defaults to the headless backend.
	Backend        renderer.RendererBackend
	State          interface{}
	FnBoot         Boot
	FnInitialize   Initialize
	FnUpdate       Update
	FnProcessInput ProcessInput
	FnRender       Render
	FnOnResize     OnResize
	FnShutdown     Shutdown
}

type Boot func() error
type Initialize func() error
type Update func(deltaTime float64) error
type ProcessInput func(input core.InputSnapshot) error
type Render func(packet *metadata.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error

package testbed

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/tessera/engine"
	"github.com/spaghettifunk/tessera/engine/components"
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
	"github.com/spaghettifunk/tessera/engine/scene"
	"github.com/spaghettifunk/tessera/engine/storage"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	scene *scene.Scene
	store storage.KeyValueStore

	width  uint32
	height uint32
}

// NewTestGame wires the demo scene into the engine hooks. configPath may be
// empty, in which case the config is not watched for changes.
func NewTestGame(config *engine.ApplicationConfig, configPath string) (*TestGame, error) {
	if config == nil {
		return nil, errors.New("missing application config")
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			ConfigPath:        configPath,
			State: &gameState{
				width:  config.StartWidth,
				height: config.StartHeight,
			},
		},
	}

	tg.FnBoot = tg.Boot
	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnProcessInput = tg.ProcessInput
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Boot() error {
	core.LogInfo("booting testbed...")

	state := g.state()
	if g.ApplicationConfig.SavePath == "" {
		state.store = storage.NewMemoryStore()
		return nil
	}
	store, err := storage.OpenFileStore(g.ApplicationConfig.SavePath)
	if err != nil {
		// a corrupt save file must not keep the game from starting
		core.LogWarn("ignoring save file: %s", err)
		state.store = storage.NewMemoryStore()
		return nil
	}
	state.store = store
	return nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	state := g.state()
	if state.store == nil {
		return fmt.Errorf("the testbed was not booted")
	}

	var saved *components.CameraState
	camera, err := storage.LoadCamera(state.store)
	switch {
	case err == nil:
		s := camera.State()
		saved = &s
	case errors.Is(err, core.ErrKeyNotFound):
		core.LogInfo("no saved camera, starting at the default position")
	default:
		core.LogWarn("saved camera discarded: %s", err)
	}

	state.scene = scene.New(g.ApplicationConfig.Scene, saved)
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	g.state().scene.Update()
	return nil
}

func (g *TestGame) ProcessInput(input core.InputSnapshot) error {
	g.state().scene.ApplyInput(input)
	return nil
}

func (g *TestGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	packet.Frame = g.state().scene.RenderData()
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.state()
	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.state()
	if state.scene == nil {
		return nil
	}
	if err := storage.SaveCamera(state.store, state.scene.Camera()); err != nil {
		core.LogError("failed to save camera: %s", err)
		return err
	}
	pos := state.scene.Camera().Position
	core.LogInfo("camera saved at [%.3f, %.3f, %.3f]", pos.X, pos.Y, pos.Z)
	return nil
}

// Scene exposes the running scene, mostly for diagnostics.
func (g *TestGame) Scene() *scene.Scene {
	return g.state().scene
}

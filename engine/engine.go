package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/tessera/engine/assets"
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/platform"
	"github.com/spaghettifunk/tessera/engine/renderer"
	"github.com/spaghettifunk/tessera/engine/renderer/headless"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool
	platform     *platform.Platform
	input        *core.InputCollector
	renderer     *renderer.Renderer
	watcher      *assets.Watcher[core.InputConfig]
	metrics      *core.Metrics
	width        uint32
	height       uint32
	clock        *core.Clock
	lastTime     float64
	frameCount   uint64

	shutdownOnce sync.Once
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, errors.New("game without an application config")
	}
	config := g.ApplicationConfig

	level, err := core.ParseLogLevel(config.LogLevel)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	core.SetLogLevel(level)

	backend := g.Backend
	if backend == nil {
		backend = headless.New()
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		platform:     platform.New(),
		input:        core.NewInputCollector(config.Input),
		renderer:     renderer.New(backend, config.Projection),
		metrics:      core.NewMetrics(),
		isRunning:    true,
		isSuspended:  false,
		width:        config.StartWidth,
		height:       config.StartHeight,
	}, nil
}

func (e *Engine) Initialize() error {
	config := e.gameInstance.ApplicationConfig

	e.currentStage = EngineStageBooting
	if e.gameInstance.FnBoot != nil {
		if err := e.gameInstance.FnBoot(); err != nil {
			core.LogError("game boot failed: %s", err)
			return err
		}
	}
	e.currentStage = EngineStageBootComplete

	e.currentStage = EngineStageInitializing
	if err := e.platform.Startup(config.Name, config.StartPosX, config.StartPosY, config.StartWidth, config.StartHeight, platform.Handlers{
		Input:    e.input,
		OnResize: e.onResized,
	}); err != nil {
		return err
	}

	if err := e.renderer.Initialize(config.Name, e.width, e.height, config.Scene.Capacity); err != nil {
		core.LogError(err.Error())
		return err
	}

	if err := e.gameInstance.FnInitialize(); err != nil {
		core.LogError("game failed to initialize: %s", err)
		return err
	}

	if e.gameInstance.ConfigPath != "" {
		w, err := assets.NewWatcher[core.InputConfig](e.gameInstance.ConfigPath, LoadInputConfig)
		if err != nil {
			return fmt.Errorf("failed to create config watcher: %w", err)
		}
		if err := w.Start(); err != nil {
			// keep running with the tuning loaded at startup
			core.LogWarn("config hot reload disabled: %s", err)
			_ = w.Close()
		} else {
			e.watcher = w
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Input is the collector platform events are pushed into.
func (e *Engine) Input() *core.InputCollector {
	return e.input
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

// FrameCount returns the number of frames rendered so far.
func (e *Engine) FrameCount() uint64 {
	return e.frameCount
}

// Run drives the frame loop until the context is cancelled, the platform or
// the player asks to quit, or the configured frame limit is reached. Each
// frame updates the game, applies the polled input, then renders.
func (e *Engine) Run(ctx context.Context) error {
	config := e.gameInstance.ApplicationConfig
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var targetFrameSeconds float64 = 1.0 / 60.0
	if config.TargetFPS > 0 {
		targetFrameSeconds = 1.0 / config.TargetFPS
	}

	for e.isRunning {
		select {
		case <-ctx.Done():
			core.LogInfo("context cancelled, shutting down.")
			e.isRunning = false
			continue
		default:
		}

		if !e.platform.PumpMessages() {
			e.isRunning = false
			continue
		}

		if e.watcher != nil {
			if tuning, ok := e.watcher.Poll(); ok {
				e.input.SetConfig(tuning)
				core.LogInfo("input tuning reloaded: move_speed=%v mouse_sensitivity=%v", tuning.MoveSpeed, tuning.MouseSensitivity)
			}
		}

		if e.isSuspended {
			e.platform.Sleep(targetFrameSeconds * 1000)
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()
		var currentTime float64 = e.clock.Elapsed()
		var delta float64 = (currentTime - e.lastTime)
		var frameStartTime float64 = platform.GetAbsoluteTime()

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("Game update failed, shutting down.")
			return err
		}

		snapshot := e.input.Poll()
		if err := e.gameInstance.FnProcessInput(snapshot); err != nil {
			core.LogError("Game input failed, shutting down.")
			return err
		}

		packet := &metadata.RenderPacket{DeltaTime: delta}
		if err := e.gameInstance.FnRender(packet, delta); err != nil {
			core.LogError("Game render failed, shutting down.")
			return err
		}
		if err := e.renderer.DrawFrame(packet.Frame, delta); err != nil {
			return err
		}

		if delta > 0 {
			e.metrics.Update(delta)
		}
		e.frameCount++
		if e.frameCount%600 == 0 {
			fps, ms := e.metrics.Frame()
			core.LogDebug("%.0f fps (%.2f ms/frame)", fps, ms)
		}

		// Figure out how long the frame took and, if below
		var frameElapsedTime float64 = platform.GetAbsoluteTime() - frameStartTime
		var remainingSeconds float64 = targetFrameSeconds - frameElapsedTime
		if remainingSeconds > 0 && config.LimitFrames {
			// If there is time left, give it back to the OS.
			e.platform.Sleep(remainingSeconds*1000 - 1)
		}

		if snapshot.Quit {
			core.LogInfo("quit requested, shutting down.")
			e.isRunning = false
		}
		if config.FrameLimit > 0 && e.frameCount >= config.FrameLimit {
			e.isRunning = false
		}

		e.lastTime = currentTime
	}

	return nil
}

// Shutdown stops every subsystem. It is safe to call more than once.
func (e *Engine) Shutdown() error {
	var errs []error
	e.shutdownOnce.Do(func() {
		e.currentStage = EngineStageShuttingDown
		e.isRunning = false

		if e.gameInstance.FnShutdown != nil {
			if err := e.gameInstance.FnShutdown(); err != nil {
				errs = append(errs, err)
			}
		}
		if e.watcher != nil {
			if err := e.watcher.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if err := e.renderer.Shutdown(); err != nil {
			errs = append(errs, err)
		}
		if err := e.platform.Shutdown(); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

// GetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onResized(width, height uint32) {
	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height

	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	if err := e.renderer.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
}

//go:build glfw

package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/tessera/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

type Platform struct {
	Window   *glfw.Window
	handlers Handlers

	cursorSeen bool
	lastX      float64
	lastY      float64
}

func New() *Platform {
	return &Platform{
		Window: nil,
	}
}

func (p *Platform) Startup(applicationName string, x, y, width, height uint32, handlers Handlers) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		return err
	}
	p.Window = window
	p.handlers = handlers

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetCursorPosCallback(p.cursorPosCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	// first-person look: hide the pointer and report unbounded motion
	p.Window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

func (p *Platform) PumpMessages() bool {
	if p.Window == nil {
		return false
	}
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if p.handlers.Input == nil || action == glfw.Repeat {
		return
	}
	code, ok := translateKey(key)
	if !ok {
		return
	}
	p.handlers.Input.ProcessKey(code, action == glfw.Press)
}

func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if !p.cursorSeen {
		p.cursorSeen = true
		p.lastX, p.lastY = xpos, ypos
		return
	}
	dx, dy := xpos-p.lastX, ypos-p.lastY
	p.lastX, p.lastY = xpos, ypos
	if p.handlers.Input != nil {
		p.handlers.Input.ProcessMouseMove(float32(dx), float32(dy))
	}
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	if p.handlers.OnResize != nil {
		p.handlers.OnResize(uint32(width), uint32(height))
	}
}

func translateKey(key glfw.Key) (core.KeyCode, bool) {
	switch key {
	case glfw.KeyW:
		return core.KEY_W, true
	case glfw.KeyA:
		return core.KEY_A, true
	case glfw.KeyS:
		return core.KEY_S, true
	case glfw.KeyD:
		return core.KEY_D, true
	case glfw.KeyQ:
		return core.KEY_Q, true
	case glfw.KeyE:
		return core.KEY_E, true
	case glfw.KeySpace:
		return core.KEY_SPACE, true
	case glfw.KeyLeftShift:
		return core.KEY_LSHIFT, true
	case glfw.KeyRightShift:
		return core.KEY_RSHIFT, true
	case glfw.KeyEscape:
		return core.KEY_ESCAPE, true
	default:
		return 0, false
	}
}

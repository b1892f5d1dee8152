//go:build !glfw

package platform

import "github.com/spaghettifunk/tessera/engine/core"

// Platform is the windowless platform: it never produces OS events, so input
// only reaches the engine through the collector directly.
type Platform struct {
	handlers Handlers
	running  bool
}

func New() *Platform {
	return &Platform{}
}

func (p *Platform) Startup(applicationName string, x, y, width, height uint32, handlers Handlers) error {
	p.handlers = handlers
	p.running = true
	core.LogDebug("headless platform started for `%s` (%dx%d)", applicationName, width, height)
	return nil
}

func (p *Platform) Shutdown() error {
	p.running = false
	return nil
}

// PumpMessages reports whether the platform is still alive.
func (p *Platform) PumpMessages() bool {
	return p.running
}

package platform

import (
	"time"

	"github.com/spaghettifunk/tessera/engine/core"
)

// Handlers are the engine hooks the platform layer forwards OS events to.
type Handlers struct {
	Input    *core.InputCollector
	OnResize func(width, height uint32)
}

var startTime = time.Now()

// GetAbsoluteTime returns the seconds elapsed since the process started.
func GetAbsoluteTime() float64 {
	return time.Since(startTime).Seconds()
}

// Sleep gives the remaining milliseconds of a frame back to the OS.
func (p *Platform) Sleep(ms float64) {
	if ms <= 0 {
		return
	}
	time.Sleep(time.Duration(ms * float64(time.Millisecond)))
}

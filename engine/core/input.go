package core

import (
	"sync"

	"github.com/spaghettifunk/tessera/engine/containers"
)

// Key code definitions
type KeyCode uint16

const (
	KEY_SHIFT  KeyCode = 0x10
	KEY_ESCAPE KeyCode = 0x1B
	KEY_SPACE  KeyCode = 0x20
	KEY_A      KeyCode = 0x41
	KEY_D      KeyCode = 0x44
	KEY_E      KeyCode = 0x45
	KEY_Q      KeyCode = 0x51
	KEY_S      KeyCode = 0x53
	KEY_W      KeyCode = 0x57
	KEY_LSHIFT KeyCode = 0xA0
	KEY_RSHIFT KeyCode = 0xA1
)

type InputEventType uint8

const (
	InputEventKeyPressed InputEventType = iota
	InputEventKeyReleased
	InputEventMouseMoved
)

// InputEvent is a raw event as delivered by the platform layer.
type InputEvent struct {
	Type InputEventType
	Key  KeyCode
	// Pointer motion since the previous mouse event, in pixels.
	DeltaX float32
	DeltaY float32
}

// InputConfig holds the tuning of the input map.
type InputConfig struct {
	// Magnitude of every movement velocity while its key is held.
	MoveSpeed float32 `toml:"move_speed"`
	// Pointer motion is divided by this before it becomes a spin delta.
	MouseSensitivity float32 `toml:"mouse_sensitivity"`
	// Number of raw events buffered between two polls.
	QueueSize int `toml:"queue_size"`
}

func DefaultInputConfig() InputConfig {
	return InputConfig{
		MoveSpeed:        0.02,
		MouseSensitivity: 5,
		QueueSize:        256,
	}
}

// InputSnapshot is what a frame tick consumes: level-triggered movement
// velocities and the spin accumulated since the previous poll.
type InputSnapshot struct {
	MoveForward float32
	MoveRight   float32
	MoveUp      float32
	SpinYaw     float32
	SpinPitch   float32
	Quit        bool
}

func (s InputSnapshot) Moving() bool {
	return s.MoveForward != 0 || s.MoveRight != 0 || s.MoveUp != 0
}

func (s InputSnapshot) Spinning() bool {
	return s.SpinYaw != 0 || s.SpinPitch != 0
}

// InputCollector buffers platform events between frames and folds them into
// an InputSnapshot once per tick. Push may be called from the platform's
// callback goroutine; Poll belongs to the frame loop.
type InputCollector struct {
	mu     sync.Mutex
	config InputConfig
	queue  *containers.RingQueue[InputEvent]
	state  InputSnapshot
}

func NewInputCollector(config InputConfig) *InputCollector {
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultInputConfig().QueueSize
	}
	return &InputCollector{
		config: config,
		queue:  containers.NewRingQueue[InputEvent](config.QueueSize),
	}
}

// Push queues a raw event. A full queue is folded into the state first so no
// event is lost.
func (ic *InputCollector) Push(event InputEvent) {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	if ic.queue.IsFull() {
		ic.drain()
	}
	// cannot fail after the drain above
	_ = ic.queue.Enqueue(event)
}

func (ic *InputCollector) ProcessKey(key KeyCode, pressed bool) {
	t := InputEventKeyReleased
	if pressed {
		t = InputEventKeyPressed
	}
	ic.Push(InputEvent{Type: t, Key: key})
}

func (ic *InputCollector) ProcessMouseMove(deltaX, deltaY float32) {
	ic.Push(InputEvent{Type: InputEventMouseMoved, DeltaX: deltaX, DeltaY: deltaY})
}

// Poll applies every queued event, returns the resulting snapshot and resets
// the spin deltas. Movement velocities persist until their key is released.
func (ic *InputCollector) Poll() InputSnapshot {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	ic.drain()
	snapshot := ic.state
	ic.state.SpinYaw = 0
	ic.state.SpinPitch = 0
	ic.state.Quit = false
	return snapshot
}

// SetConfig swaps the tuning. Held movement keys are rescaled to the new speed.
func (ic *InputCollector) SetConfig(config InputConfig) {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	ic.drain()
	ic.state.MoveForward = rescale(ic.state.MoveForward, config.MoveSpeed)
	ic.state.MoveRight = rescale(ic.state.MoveRight, config.MoveSpeed)
	ic.state.MoveUp = rescale(ic.state.MoveUp, config.MoveSpeed)
	queueSize := ic.config.QueueSize
	ic.config = config
	// the queue keeps its capacity for the lifetime of the collector
	ic.config.QueueSize = queueSize
}

func (ic *InputCollector) Config() InputConfig {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.config
}

func (ic *InputCollector) drain() {
	for !ic.queue.IsEmpty() {
		event, err := ic.queue.Dequeue()
		if err != nil {
			return
		}
		ic.apply(event)
	}
}

func (ic *InputCollector) apply(event InputEvent) {
	speed := ic.config.MoveSpeed
	switch event.Type {
	case InputEventKeyPressed:
		switch event.Key {
		case KEY_Q, KEY_SPACE:
			ic.state.MoveUp = speed
		case KEY_E, KEY_SHIFT, KEY_LSHIFT, KEY_RSHIFT:
			ic.state.MoveUp = -speed
		case KEY_W:
			ic.state.MoveForward = speed
		case KEY_S:
			ic.state.MoveForward = -speed
		case KEY_A:
			ic.state.MoveRight = -speed
		case KEY_D:
			ic.state.MoveRight = speed
		case KEY_ESCAPE:
			ic.state.Quit = true
		}
	case InputEventKeyReleased:
		switch event.Key {
		case KEY_Q, KEY_SPACE, KEY_E, KEY_SHIFT, KEY_LSHIFT, KEY_RSHIFT:
			ic.state.MoveUp = 0
		case KEY_W, KEY_S:
			ic.state.MoveForward = 0
		case KEY_A, KEY_D:
			ic.state.MoveRight = 0
		}
	case InputEventMouseMoved:
		sensitivity := ic.config.MouseSensitivity
		if sensitivity == 0 {
			sensitivity = 1
		}
		ic.state.SpinYaw += event.DeltaX / sensitivity
		ic.state.SpinPitch += event.DeltaY / sensitivity
	default:
		LogWarn("unknown input event type `%d`", event.Type)
	}
}

func rescale(velocity, speed float32) float32 {
	switch {
	case velocity > 0:
		return speed
	case velocity < 0:
		return -speed
	default:
		return 0
	}
}

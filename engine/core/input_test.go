package core

import "testing"

func TestInputMovementIsLevelTriggered(t *testing.T) {
	ic := NewInputCollector(DefaultInputConfig())
	ic.ProcessKey(KEY_W, true)
	ic.ProcessKey(KEY_D, true)
	ic.ProcessKey(KEY_SPACE, true)

	for i := 0; i < 3; i++ {
		s := ic.Poll()
		if s.MoveForward != 0.02 || s.MoveRight != 0.02 || s.MoveUp != 0.02 {
			t.Fatalf("poll %d: snapshot=%+v want all velocities 0.02", i, s)
		}
	}

	ic.ProcessKey(KEY_W, false)
	ic.ProcessKey(KEY_SPACE, false)
	s := ic.Poll()
	if s.MoveForward != 0 || s.MoveUp != 0 {
		t.Fatalf("released keys still move: %+v", s)
	}
	if s.MoveRight != 0.02 {
		t.Fatalf("MoveRight=%v want 0.02", s.MoveRight)
	}
}

func TestInputNegativeKeys(t *testing.T) {
	ic := NewInputCollector(DefaultInputConfig())
	ic.ProcessKey(KEY_S, true)
	ic.ProcessKey(KEY_A, true)
	ic.ProcessKey(KEY_LSHIFT, true)
	s := ic.Poll()
	if s.MoveForward != -0.02 || s.MoveRight != -0.02 || s.MoveUp != -0.02 {
		t.Fatalf("snapshot=%+v want all velocities -0.02", s)
	}
}

func TestInputSpinAccumulatesAndResets(t *testing.T) {
	ic := NewInputCollector(DefaultInputConfig())
	ic.ProcessMouseMove(10, -5)
	ic.ProcessMouseMove(5, 15)

	s := ic.Poll()
	if s.SpinYaw != 3 || s.SpinPitch != 2 {
		t.Fatalf("spin=(%v,%v) want (3,2)", s.SpinYaw, s.SpinPitch)
	}
	if !s.Spinning() {
		t.Fatalf("Spinning()=false want true")
	}

	s = ic.Poll()
	if s.Spinning() {
		t.Fatalf("spin not reset after poll: %+v", s)
	}
}

func TestInputQueueOverflowKeepsEvents(t *testing.T) {
	cfg := DefaultInputConfig()
	cfg.QueueSize = 4
	ic := NewInputCollector(cfg)
	for i := 0; i < 10; i++ {
		ic.ProcessMouseMove(5, 0)
	}
	if s := ic.Poll(); s.SpinYaw != 10 {
		t.Fatalf("SpinYaw=%v want 10", s.SpinYaw)
	}
}

func TestInputEscapeRequestsQuitOnce(t *testing.T) {
	ic := NewInputCollector(DefaultInputConfig())
	ic.ProcessKey(KEY_ESCAPE, true)
	if s := ic.Poll(); !s.Quit {
		t.Fatalf("Quit=false want true")
	}
	if s := ic.Poll(); s.Quit {
		t.Fatalf("Quit persisted across polls")
	}
}

func TestInputSetConfigRescalesHeldKeys(t *testing.T) {
	ic := NewInputCollector(DefaultInputConfig())
	ic.ProcessKey(KEY_S, true)
	ic.ProcessMouseMove(10, 0)

	ic.SetConfig(InputConfig{MoveSpeed: 0.5, MouseSensitivity: 2})
	s := ic.Poll()
	if s.MoveForward != -0.5 {
		t.Fatalf("MoveForward=%v want -0.5", s.MoveForward)
	}
	// events queued before the swap use the old sensitivity
	if s.SpinYaw != 2 {
		t.Fatalf("SpinYaw=%v want 2", s.SpinYaw)
	}
	if got := ic.Config().QueueSize; got != DefaultInputConfig().QueueSize {
		t.Fatalf("QueueSize=%d want %d", got, DefaultInputConfig().QueueSize)
	}
}

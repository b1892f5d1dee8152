package scene

import (
	"fmt"
	"slices"

	"github.com/spaghettifunk/tessera/engine/components"
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/math"
)

// Config describes the population of a scene.
type Config struct {
	// Capacity is the number of matrices the transform buffer can hold.
	Capacity       int         `toml:"capacity"`
	Triangles      []math.Vec3 `toml:"-"`
	Quadrilaterals []math.Vec3 `toml:"-"`
	Cubes          []math.Vec3 `toml:"-"`
}

// DefaultConfig is the demo scene: a column of spinning triangles, a flat
// grid of quads and one large cube.
func DefaultConfig() Config {
	cfg := Config{Capacity: 1024}
	for y := -5; y <= 5; y++ {
		cfg.Triangles = append(cfg.Triangles, math.NewVec3(2, float32(y), 0))
	}
	for x := -10; x <= 10; x++ {
		for y := -10; y <= 10; y++ {
			cfg.Quadrilaterals = append(cfg.Quadrilaterals, math.NewVec3(float32(x), float32(y), 0))
		}
	}
	cfg.Cubes = append(cfg.Cubes, math.NewVec3(15, 0, 6))
	return cfg
}

// Entities is the number of entities the config creates.
func (c Config) Entities() int {
	return len(c.Triangles) + len(c.Quadrilaterals) + len(c.Cubes)
}

// Scene owns the entities, the player camera and the transform buffer they
// are packed into. It is driven from a single goroutine.
type Scene struct {
	entities   []components.Entity
	runs       []KindRun
	camera     components.Camera
	transforms []float32
}

// New builds the scene described by cfg. When saved is not nil the camera is
// restored from it, falling back to the default camera if it is unusable.
//
// New panics with core.ErrSceneCapacityExceeded if the entities do not fit.
func New(cfg Config, saved *components.CameraState) *Scene {
	total := cfg.Entities()
	if cfg.Capacity <= 0 || total > cfg.Capacity {
		panic(fmt.Errorf("%d entities in a buffer of %d matrices: %w", total, cfg.Capacity, core.ErrSceneCapacityExceeded))
	}

	s := &Scene{
		entities:   make([]components.Entity, 0, total),
		runs:       make([]KindRun, 0, components.KindCount),
		transforms: make([]float32, cfg.Capacity*MatrixFloats),
	}

	for _, kind := range components.Kinds() {
		var positions []math.Vec3
		switch kind {
		case components.KindTriangle:
			positions = cfg.Triangles
		case components.KindQuadrilateral:
			positions = cfg.Quadrilaterals
		case components.KindCube:
			positions = cfg.Cubes
		}

		run := KindRun{
			Kind:        kind,
			Count:       uint32(len(positions)),
			Offset:      uint32(len(s.entities)),
			VertexCount: kind.VertexCount(),
		}
		for _, p := range positions {
			s.entities = append(s.entities, newEntity(kind, p))
		}
		s.runs = append(s.runs, run)
	}

	for slot, e := range s.entities {
		s.writeSlot(slot, e.Model)
	}

	s.camera = components.DefaultCamera()
	if saved != nil {
		c, err := components.CameraFromState(*saved)
		if err != nil {
			core.LogWarn("ignoring saved camera: %s", err)
		} else {
			s.camera = c
		}
	}

	core.LogDebug("scene created: %d triangles, %d quadrilaterals, %d cubes (capacity %d)",
		len(cfg.Triangles), len(cfg.Quadrilaterals), len(cfg.Cubes), cfg.Capacity)
	return s
}

func newEntity(kind components.Kind, position math.Vec3) components.Entity {
	switch kind {
	case components.KindTriangle:
		return components.NewTriangle(position, 0)
	case components.KindCube:
		return components.NewCube(position)
	default:
		return components.NewQuadrilateral(position)
	}
}

func (s *Scene) writeSlot(slot int, model math.Mat4) {
	copy(s.transforms[slot*MatrixFloats:(slot+1)*MatrixFloats], model.Data[:])
}

// Update advances every moving entity by one frame and rewrites their slots,
// then refreshes the camera basis and view.
func (s *Scene) Update() {
	for _, run := range s.runs {
		if !run.Kind.Moves() {
			continue
		}
		for i := run.Offset; i < run.Offset+run.Count; i++ {
			s.entities[i] = s.entities[i].Update()
			s.writeSlot(int(i), s.entities[i].Model)
		}
	}
	s.camera = s.camera.Update()
}

// MovePlayer translates the camera along its current basis.
func (s *Scene) MovePlayer(forwardAmount, rightAmount, upAmount float32) {
	s.camera = s.camera.Move(forwardAmount, rightAmount, upAmount)
}

// SpinPlayer turns the camera. The new orientation shows up after the next Update.
func (s *Scene) SpinPlayer(deltaYaw, deltaPitch float32) {
	s.camera = s.camera.Spin(deltaYaw, deltaPitch)
}

// ApplyInput applies one polled input snapshot: movement first, then spin.
func (s *Scene) ApplyInput(input core.InputSnapshot) {
	if input.Moving() {
		s.MovePlayer(input.MoveForward, input.MoveRight, input.MoveUp)
	}
	if input.Spinning() {
		s.SpinPlayer(input.SpinYaw, input.SpinPitch)
	}
}

func (s *Scene) RenderData() RenderData {
	return RenderData{
		ViewTransform:   s.camera.View,
		ModelTransforms: s.transforms,
		Counts:          slices.Clone(s.runs),
	}
}

func (s *Scene) Camera() components.Camera {
	return s.camera
}

// Capacity is the number of matrices the transform buffer holds.
func (s *Scene) Capacity() int {
	return len(s.transforms) / MatrixFloats
}

package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/renderer"
	"github.com/spaghettifunk/tessera/engine/scene"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	// Stop after this many frames. Zero runs until quit.
	FrameLimit uint64 `toml:"frame_limit"`
	// Sleep away the rest of each frame to hold TargetFPS.
	LimitFrames bool    `toml:"limit_frames"`
	TargetFPS   float64 `toml:"target_fps"`
	// Where the camera is saved between runs. Empty keeps it in memory.
	SavePath string `toml:"save_path"`

	Scene      scene.Config              `toml:"scene"`
	Projection renderer.ProjectionConfig `toml:"projection"`
	Input      core.InputConfig          `toml:"input"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  1280,
		StartHeight: 720,
		Name:        "Tessera",
		LogLevel:    core.DebugLevel.String(),
		TargetFPS:   60,
		SavePath:    "save.toml",
		Scene:       scene.DefaultConfig(),
		Projection:  renderer.DefaultProjectionConfig(),
		Input:       core.DefaultInputConfig(),
	}
}

// LoadApplicationConfig reads the TOML file at path on top of the defaults.
// A missing file yields the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogInfo("no config at %s, using defaults", path)
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// LoadInputConfig extracts the [input] table; used to hot-reload the tuning.
func LoadInputConfig(path string) (core.InputConfig, error) {
	config, err := LoadApplicationConfig(path)
	if err != nil {
		return core.InputConfig{}, err
	}
	return config.Input, nil
}

func (c *ApplicationConfig) Validate() error {
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Scene.Capacity <= 0 || c.Scene.Entities() > c.Scene.Capacity {
		return fmt.Errorf("scene capacity %d for %d entities: %w", c.Scene.Capacity, c.Scene.Entities(), core.ErrSceneCapacityExceeded)
	}
	if c.Projection.Near <= 0 || c.Projection.Far <= c.Projection.Near {
		return fmt.Errorf("projection planes near=%v far=%v", c.Projection.Near, c.Projection.Far)
	}
	if c.Input.MouseSensitivity == 0 {
		return errors.New("input mouse_sensitivity must not be zero")
	}
	return nil
}

package storage

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/tessera/engine/components"
	"github.com/spaghettifunk/tessera/engine/core"
)

const CameraKey = "camera"

func SaveCamera(store KeyValueStore, camera components.Camera) error {
	data, err := toml.Marshal(camera.State())
	if err != nil {
		return fmt.Errorf("failed to encode camera: %w", err)
	}
	if err := store.Set(CameraKey, data); err != nil {
		return fmt.Errorf("failed to save camera: %w", err)
	}
	return nil
}

// LoadCamera restores the saved camera. When there is nothing usable to
// restore it returns the default camera together with the reason, so callers
// may carry on and only log the error.
func LoadCamera(store KeyValueStore) (components.Camera, error) {
	data, err := store.Get(CameraKey)
	if err != nil {
		if !errors.Is(err, core.ErrKeyNotFound) {
			core.LogWarn("could not read saved camera: %s", err)
		}
		return components.DefaultCamera(), err
	}

	var state components.CameraState
	if err := toml.Unmarshal(data, &state); err != nil {
		core.LogWarn("saved camera is not valid TOML: %s", err)
		return components.DefaultCamera(), fmt.Errorf("%w: %s", core.ErrCameraStateMalformed, err)
	}

	camera, err := components.CameraFromState(state)
	if err != nil {
		core.LogWarn("saved camera rejected: %s", err)
		return components.DefaultCamera(), err
	}
	return camera, nil
}

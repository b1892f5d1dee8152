package core

import (
	"errors"
)

var (
	ErrSceneCapacityExceeded = errors.New("scene entity count exceeds transform buffer capacity")
	ErrKeyNotFound           = errors.New("key not found")
	ErrCameraStateMalformed  = errors.New("malformed camera state")
	ErrBackendNotInitialized = errors.New("renderer backend not initialized")
)

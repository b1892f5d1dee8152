package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/tessera/engine/core"
)

// KeyValueStore is a small string keyed record store. Get returns an error
// wrapping core.ErrKeyNotFound for absent keys.
type KeyValueStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (ms *MemoryStore) Get(key string) ([]byte, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	v, ok := ms.records[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, core.ErrKeyNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (ms *MemoryStore) Set(key string, value []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.records[key] = append([]byte(nil), value...)
	return nil
}

func (ms *MemoryStore) Delete(key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.records, key)
	return nil
}

// FileStore keeps its records as a flat TOML table on disk. Every Set and
// Delete rewrites the whole file.
type FileStore struct {
	mu      sync.Mutex
	path    string
	records map[string]string
}

// OpenFileStore loads the store at path. A missing file is an empty store.
func OpenFileStore(path string) (*FileStore, error) {
	fsStore := &FileStore{
		path:    path,
		records: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fsStore, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &fsStore.records); err != nil {
		return nil, fmt.Errorf("failed to parse store %s: %w", path, err)
	}
	return fsStore, nil
}

func (fsStore *FileStore) Path() string {
	return fsStore.path
}

func (fsStore *FileStore) Get(key string) ([]byte, error) {
	fsStore.mu.Lock()
	defer fsStore.mu.Unlock()

	v, ok := fsStore.records[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, core.ErrKeyNotFound)
	}
	return []byte(v), nil
}

func (fsStore *FileStore) Set(key string, value []byte) error {
	fsStore.mu.Lock()
	defer fsStore.mu.Unlock()

	fsStore.records[key] = string(value)
	return fsStore.flush()
}

func (fsStore *FileStore) Delete(key string) error {
	fsStore.mu.Lock()
	defer fsStore.mu.Unlock()

	if _, ok := fsStore.records[key]; !ok {
		return nil
	}
	delete(fsStore.records, key)
	return fsStore.flush()
}

func (fsStore *FileStore) flush() error {
	data, err := toml.Marshal(fsStore.records)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(fsStore.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := fsStore.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, fsStore.path)
}

package testbed

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/tessera/engine"
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/math"
	"github.com/spaghettifunk/tessera/engine/storage"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func runGame(t *testing.T, savePath string, frames uint64, keys ...core.KeyCode) *TestGame {
	t.Helper()
	config := engine.DefaultApplicationConfig()
	config.LogLevel = "error"
	config.SavePath = savePath
	config.FrameLimit = frames

	tb, err := NewTestGame(config, "")
	if err != nil {
		t.Fatalf("NewTestGame: %v", err)
	}
	e, err := engine.New(tb.Game)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	for _, k := range keys {
		e.Input().ProcessKey(k, true)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := e.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	return tb
}

func TestCameraPersistsAcrossRuns(t *testing.T) {
	savePath := filepath.Join(t.TempDir(), "save.toml")

	first := runGame(t, savePath, 5, core.KEY_W)
	moved := first.Scene().Camera()
	if moved.Position.X <= -2 {
		t.Fatalf("camera did not move forward: %v", moved.Position)
	}

	store, err := storage.OpenFileStore(savePath)
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}
	saved, err := storage.LoadCamera(store)
	if err != nil {
		t.Fatalf("LoadCamera: %v", err)
	}
	if saved.Position != moved.Position {
		t.Fatalf("saved=%v want %v", saved.Position, moved.Position)
	}

	// no input on the second run: the camera starts where the first left it
	second := runGame(t, savePath, 1)
	if got := second.Scene().Camera().Position; got != moved.Position {
		t.Fatalf("restored=%v want %v", got, moved.Position)
	}
}

func TestCorruptSaveFileFallsBack(t *testing.T) {
	savePath := filepath.Join(t.TempDir(), "save.toml")
	if err := os.WriteFile(savePath, []byte("not = = toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	tb := runGame(t, savePath, 1)
	if got := tb.Scene().Camera().Position; got != math.NewVec3(-2, 0, 0.5) {
		t.Fatalf("camera=%v want the default position", got)
	}
}

func TestSceneIsTheDemoScene(t *testing.T) {
	tb := runGame(t, "", 1)
	rd := tb.Scene().RenderData()
	if rd.Instances() != 453 {
		t.Fatalf("instances=%d want 453", rd.Instances())
	}
}

//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the engine without a window until interrupted.
func (Run) Headless() error {
	mg.Deps(Build.Headless)
	fmt.Println("Run engine...")
	_, err := executeCmd("bin/tessera", withArgs("-config", "tessera.toml"), withStream())
	return err
}

// Runs the engine with a GLFW window.
func (Run) Window() error {
	mg.Deps(Build.Window)
	fmt.Println("Run engine...")
	_, err := executeCmd("bin/tessera-window", withArgs("-config", "tessera.toml"), withStream())
	return err
}

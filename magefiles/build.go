//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the headless binary into bin/.
func (Build) Headless() error {
	mg.Deps(tidy)
	_, err := executeCmd("go", withArgs("build", "-o", "bin/tessera", "."), withStream())
	return err
}

// Builds the binary with a GLFW window for input. Requires cgo and the GLFW system packages.
func (Build) Window() error {
	mg.Deps(tidy)
	_, err := executeCmd("go", withArgs("build", "-tags", "glfw", "-o", "bin/tessera-window", "."), withStream())
	return err
}

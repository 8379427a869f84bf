//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

const sceneFile = "scene.toml"

// Builds the default scene once, writing scene.toml first if it is missing.
func (Run) Scene() error {
	if err := ensureScene(); err != nil {
		return err
	}
	fmt.Println("Run lathe...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", sceneFile), withStream()); err != nil {
		return err
	}
	return nil
}

// Rebuilds the scene every time scene.toml changes, until interrupted.
func (Run) Watch() error {
	if err := ensureScene(); err != nil {
		return err
	}
	fmt.Println("Watching scene...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", sceneFile, "-watch"), withStream()); err != nil {
		return err
	}
	return nil
}

func ensureScene() error {
	if _, err := os.Stat(sceneFile); err == nil {
		return nil
	}
	_, err := executeCmd("go", withArgs("run", ".", "-init", "-config", sceneFile))
	return err
}

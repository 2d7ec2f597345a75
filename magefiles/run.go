//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the preset named by $PRESET (default "validation").
func (Run) Preset() error {
	return goV(presetArgs(os.Getenv)...)
}

// Prints the instance layers the installed driver exposes.
func (Run) Layers() error {
	return goV("run", ".", "-list-layers")
}

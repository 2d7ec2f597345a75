//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "bin/vkinstance"

// goV runs the go tool with its output attached to the terminal.
func goV(args ...string) error {
	return sh.RunV(mg.GoCmd(), args...)
}

func buildArgs(release bool) []string {
	args := []string{"build"}
	if release {
		args = append(args, "-tags", "release", "-trimpath")
	}
	return append(args, "-o", binary, ".")
}

// testRuns covers both build modes. Only engine changes between them.
func testRuns() [][]string {
	return [][]string{
		{"test", "./..."},
		{"test", "-tags", "release", "./engine/..."},
	}
}

func presetArgs(lookup func(string) string) []string {
	preset := lookup("PRESET")
	if preset == "" {
		preset = "validation"
	}
	return []string{"run", ".", "-preset", preset}
}

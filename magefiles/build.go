//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds bin/vkinstance with validation layers on by default.
func (Build) Debug() error {
	return goV(buildArgs(false)...)
}

// Builds bin/vkinstance with the release tag; validation is off by default.
func (Build) Release() error {
	return goV(buildArgs(true)...)
}

// Runs the unit tests for both build modes.
func Test() error {
	for _, args := range testRuns() {
		if err := goV(args...); err != nil {
			return err
		}
	}
	return nil
}

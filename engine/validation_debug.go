//go:build !release

package engine

// DefaultValidationEnabled applies when no other source set the toggle.
const DefaultValidationEnabled = true

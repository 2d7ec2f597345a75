//go:build release

package engine

const DefaultValidationEnabled = false

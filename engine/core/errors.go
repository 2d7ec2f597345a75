package core

import (
	"github.com/cockroachdb/errors"
)

// Startup error kinds. Every error returned by the bootstrap carries exactly
// one of these marks so callers can classify it with errors.Is.
var (
	ErrDriverAbsent     = errors.New("vulkan driver not present")
	ErrLayerUnsupported = errors.New("validation layer not supported")
	ErrDriverCallFailed = errors.New("vulkan driver call failed")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrUnknown          = errors.New("unknown")
)

// DriverAbsent marks err as a missing-driver failure.
func DriverAbsent(err error, format string, args ...interface{}) error {
	return mark(err, ErrDriverAbsent, format, args...)
}

// LayerUnsupported reports a required layer missing from the driver.
func LayerUnsupported(layer string) error {
	return errors.Mark(errors.Newf("validation layer not supported: %s", layer), ErrLayerUnsupported)
}

// DriverCallFailed marks err as a failed driver entry point.
func DriverCallFailed(err error, format string, args ...interface{}) error {
	return mark(err, ErrDriverCallFailed, format, args...)
}

// InvalidConfig marks err as a configuration problem.
func InvalidConfig(err error, format string, args ...interface{}) error {
	return mark(err, ErrInvalidConfig, format, args...)
}

func mark(err error, kind error, format string, args ...interface{}) error {
	if err == nil {
		return errors.Mark(errors.Newf(format, args...), kind)
	}
	return errors.Mark(errors.Wrapf(err, format, args...), kind)
}

// ErrorKind names the startup error kind carried by err.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDriverAbsent):
		return "DriverAbsent"
	case errors.Is(err, ErrLayerUnsupported):
		return "LayerUnsupported"
	case errors.Is(err, ErrDriverCallFailed):
		return "DriverCallFailed"
	case errors.Is(err, ErrInvalidConfig):
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

package metadata

import "runtime"

// TargetPlatform is the operating system the binary was compiled for, using
// GOOS names.
type TargetPlatform string

const (
	TargetDarwin  TargetPlatform = "darwin"
	TargetIOS     TargetPlatform = "ios"
	TargetLinux   TargetPlatform = "linux"
	TargetWindows TargetPlatform = "windows"
)

// CurrentTarget is fixed at compile time.
func CurrentTarget() TargetPlatform {
	return TargetPlatform(runtime.GOOS)
}

// IsApple reports whether the target belongs to the Apple family, where
// drivers are only enumerated through the portability extension.
func (t TargetPlatform) IsApple() bool {
	return t == TargetDarwin || t == TargetIOS
}

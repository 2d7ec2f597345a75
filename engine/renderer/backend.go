package renderer

import "github.com/spaghettifunk/vkinstance/engine/renderer/metadata"

// Driver is the instance-level surface of a loaded graphics driver entry
// point. Every method is a blocking call into the driver.
type Driver interface {
	EnumerateInstanceLayerProperties() ([]metadata.LayerProperties, error)
	// CreateInstance may only read info for the duration of the call.
	CreateInstance(info *InstanceCreateInfo) (metadata.Instance, error)
	DestroyInstance(instance metadata.Instance)
	// DebugUtils loads the messenger entry points for an instance.
	DebugUtils(instance metadata.Instance) (DebugUtils, error)
}

// DebugUtils creates and destroys debug messengers for one instance.
type DebugUtils interface {
	CreateDebugMessenger(config *metadata.DebugMessengerConfig) (metadata.DebugMessenger, error)
	DestroyDebugMessenger(messenger metadata.DebugMessenger)
}

package renderer

import (
	"github.com/spaghettifunk/vkinstance/engine/core"
	"github.com/spaghettifunk/vkinstance/engine/renderer/metadata"
)

// InstanceContext owns an instance and, in validation builds, its debug
// messenger.
type InstanceContext struct {
	Instance  metadata.Instance
	Messenger *DebugMessenger

	driver Driver
}

// Bootstrap creates the instance and then the debug messenger. If the
// messenger cannot be created the instance is destroyed before returning.
func Bootstrap(driver Driver, config *InstanceConfig, target metadata.TargetPlatform) (*InstanceContext, error) {
	instance, err := CreateInstance(driver, config, target)
	if err != nil {
		return nil, err
	}

	messenger, err := SetupDebugMessenger(driver, instance, config)
	if err != nil {
		core.LogError("debug messenger setup failed, destroying instance: %s", err)
		driver.DestroyInstance(instance)
		return nil, err
	}

	return &InstanceContext{
		Instance:  instance,
		Messenger: messenger,
		driver:    driver,
	}, nil
}

// Destroy releases the messenger before the instance that owns it.
func (c *InstanceContext) Destroy() {
	if c == nil || c.Instance == metadata.NullInstance {
		return
	}
	if c.Messenger != nil {
		core.LogDebug("Destroying Vulkan debugger...")
		c.Messenger.Destroy()
		c.Messenger = nil
	}
	core.LogDebug("Destroying Vulkan instance...")
	c.driver.DestroyInstance(c.Instance)
	c.Instance = metadata.NullInstance
}

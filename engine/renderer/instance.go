package renderer

import (
	"github.com/spaghettifunk/vkinstance/engine/core"
	"github.com/spaghettifunk/vkinstance/engine/renderer/metadata"
)

// InstanceConfig is everything the bootstrap needs to know about the
// application. EnableValidationLayers is decided by the caller, never by a
// package-level switch.
type InstanceConfig struct {
	Application            metadata.ApplicationInfo
	EnableValidationLayers bool
	RequiredLayers         []string
	DebugSeverity          metadata.DebugMessageSeverity
	DebugTypes             metadata.DebugMessageType
	// DebugCallback defaults to LogDebugMessage. It stays bound to the
	// messenger it was created with, also when instances are re-created.
	DebugCallback metadata.DebugCallback
}

// InstanceCreateInfo is the descriptor handed to Driver.CreateInstance.
type InstanceCreateInfo struct {
	ApplicationInfo       *metadata.ApplicationInfo
	EnabledExtensionNames *NameTable
	EnabledLayerNames     *NameTable
	Flags                 metadata.InstanceCreateFlags
}

type platformStrategy struct {
	extensions []string
	flags      metadata.InstanceCreateFlags
}

var platformStrategies = map[metadata.TargetPlatform]platformStrategy{
	metadata.TargetDarwin: {
		extensions: []string{metadata.KhrPortabilityEnumerationExtensionName},
		flags:      metadata.InstanceCreateEnumeratePortabilityBit,
	},
	metadata.TargetIOS: {
		extensions: []string{metadata.KhrPortabilityEnumerationExtensionName},
		flags:      metadata.InstanceCreateEnumeratePortabilityBit,
	},
}

// BuildInstanceCreateInfo assembles the creation descriptor. It does not talk
// to the driver; the layer support check happens in CreateInstance.
func BuildInstanceCreateInfo(config *InstanceConfig, target metadata.TargetPlatform) *InstanceCreateInfo {
	appInfo := config.Application

	strategy := platformStrategies[target]
	extensions := append([]string{}, strategy.extensions...)

	var layers *NameTable
	if config.EnableValidationLayers {
		// The debug messenger is registered through the report extension.
		extensions = append(extensions, metadata.ExtDebugReportExtensionName)
		layers = NewLayerNameTable(config.RequiredLayers)
	} else {
		layers = NewLayerNameTable(nil)
	}

	return &InstanceCreateInfo{
		ApplicationInfo:       &appInfo,
		EnabledExtensionNames: NewNameTable(extensions),
		EnabledLayerNames:     layers,
		Flags:                 strategy.flags,
	}
}

// CreateInstance checks layer support when validation is enabled and then
// calls the driver's instance-creation entry point exactly once.
func CreateInstance(driver Driver, config *InstanceConfig, target metadata.TargetPlatform) (metadata.Instance, error) {
	if config.EnableValidationLayers {
		core.LogInfo("Validation layers enabled. Enumerating...")
		if err := checkDriverLayerSupport(driver, config.RequiredLayers); err != nil {
			return metadata.NullInstance, err
		}
	}

	info := BuildInstanceCreateInfo(config, target)
	for _, name := range info.EnabledExtensionNames.Strings() {
		core.LogDebug("Required extension: %s", name[:len(name)-1])
	}

	instance, err := driver.CreateInstance(info)
	if err != nil {
		return metadata.NullInstance, core.DriverCallFailed(err, "creating vulkan instance")
	}

	core.LogInfo("Vulkan Instance created (api %s).", info.ApplicationInfo.APIVersion)
	return instance, nil
}

package renderer

import (
	"github.com/spaghettifunk/vkinstance/engine/core"
	"github.com/spaghettifunk/vkinstance/engine/renderer/metadata"
)

const (
	DefaultDebugSeverity = metadata.DebugMessageSeverityError |
		metadata.DebugMessageSeverityWarning |
		metadata.DebugMessageSeverityInfo
	DefaultDebugTypes = metadata.DebugMessageTypeGeneral |
		metadata.DebugMessageTypeValidation |
		metadata.DebugMessageTypePerformance
)

// DebugMessenger pairs the messenger entry points with the messenger they
// created. It must be destroyed before its instance.
type DebugMessenger struct {
	Utils     DebugUtils
	Messenger metadata.DebugMessenger
}

func (m *DebugMessenger) Destroy() {
	if m == nil || m.Messenger == metadata.NullDebugMessenger {
		return
	}
	m.Utils.DestroyDebugMessenger(m.Messenger)
	m.Messenger = metadata.NullDebugMessenger
}

// LogDebugMessage writes one log line per driver diagnostic, choosing the
// level from the severity. It never asks the driver to abort.
func LogDebugMessage(msg *metadata.DebugMessage) bool {
	switch msg.Severity {
	case metadata.DebugMessageSeverityVerbose:
		core.LogDebug("%s - %s", msg.Type, msg.Message)
	case metadata.DebugMessageSeverityInfo:
		core.LogInfo("%s - %s", msg.Type, msg.Message)
	case metadata.DebugMessageSeverityWarning:
		core.LogWarn("%s - %s", msg.Type, msg.Message)
	default:
		core.LogError("%s - %s", msg.Type, msg.Message)
	}
	return false
}

// DebugMessengerConfigFor fills in the defaults for unset masks and callback.
func DebugMessengerConfigFor(config *InstanceConfig) *metadata.DebugMessengerConfig {
	dc := &metadata.DebugMessengerConfig{
		Severity: config.DebugSeverity,
		Types:    config.DebugTypes,
		Callback: config.DebugCallback,
	}
	if dc.Severity == 0 {
		dc.Severity = DefaultDebugSeverity
	}
	if dc.Types == 0 {
		dc.Types = DefaultDebugTypes
	}
	if dc.Callback == nil {
		dc.Callback = LogDebugMessage
	}
	return dc
}

// SetupDebugMessenger registers the debug callback when validation is
// enabled. With validation disabled it returns nil without touching the driver.
func SetupDebugMessenger(driver Driver, instance metadata.Instance, config *InstanceConfig) (*DebugMessenger, error) {
	if !config.EnableValidationLayers {
		return nil, nil
	}

	core.LogDebug("Creating Vulkan debugger...")
	utils, err := driver.DebugUtils(instance)
	if err != nil {
		return nil, core.DriverCallFailed(err, "loading debug messenger entry points")
	}

	dc := DebugMessengerConfigFor(config)
	messenger, err := utils.CreateDebugMessenger(dc)
	if err != nil {
		return nil, core.DriverCallFailed(err, "creating debug messenger")
	}
	core.LogDebug("Vulkan debugger created (severity %s, types %s).", dc.Severity, dc.Types)

	return &DebugMessenger{Utils: utils, Messenger: messenger}, nil
}

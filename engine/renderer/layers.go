package renderer

import (
	"github.com/spaghettifunk/vkinstance/engine/core"
	"github.com/spaghettifunk/vkinstance/engine/renderer/metadata"
)

// CheckValidationLayerSupport verifies that every required layer appears in
// the supported list. Names are compared exactly and case-sensitively.
func CheckValidationLayerSupport(supported []metadata.LayerProperties, required []string) error {
	for _, name := range required {
		core.LogDebug("Searching for layer: %s...", name)
		found := false
		for _, layer := range supported {
			if layer.LayerName == name {
				found = true
				break
			}
		}
		if !found {
			return core.LayerUnsupported(name)
		}
	}
	core.LogDebug("All required validation layers are present.")
	return nil
}

func checkDriverLayerSupport(driver Driver, required []string) error {
	supported, err := driver.EnumerateInstanceLayerProperties()
	if err != nil {
		return core.DriverCallFailed(err, "enumerating instance layers")
	}
	return CheckValidationLayerSupport(supported, required)
}

package metadata

// Instance is an opaque handle to a driver instance. NullInstance is never
// handed out by a driver.
type Instance uint64

const NullInstance Instance = 0

// DebugMessenger is an opaque handle to a registered debug callback.
type DebugMessenger uint64

const NullDebugMessenger DebugMessenger = 0

type InstanceCreateFlags uint32

// InstanceCreateEnumeratePortabilityBit is VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR.
const InstanceCreateEnumeratePortabilityBit InstanceCreateFlags = 0x00000001

const (
	KhrPortabilityEnumerationExtensionName = "VK_KHR_portability_enumeration"
	ExtDebugReportExtensionName            = "VK_EXT_debug_report"
	KhronosValidationLayerName             = "VK_LAYER_KHRONOS_validation"
)

type ApplicationInfo struct {
	ApplicationName    string
	ApplicationVersion APIVersion
	EngineName         string
	EngineVersion      APIVersion
	APIVersion         APIVersion
}

// LayerProperties is one entry of the driver's supported layer list.
type LayerProperties struct {
	LayerName             string
	SpecVersion           APIVersion
	ImplementationVersion uint32
	Description           string
}

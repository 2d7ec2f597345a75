package vulkan

import (
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkinstance/engine/core"
	"github.com/spaghettifunk/vkinstance/engine/renderer"
	"github.com/spaghettifunk/vkinstance/engine/renderer/metadata"
)

// Loader is the platform side of the entry point: it owns the dynamic
// library that exports vkGetInstanceProcAddr. platform.Platform implements it.
type Loader interface {
	Startup() error
	VulkanSupported() bool
	GetInstanceProcAddress() unsafe.Pointer
	Shutdown() error
}

// VulkanDriver implements renderer.Driver on top of the goki Vulkan binding.
type VulkanDriver struct {
	platform Loader
	context  *VulkanContext
}

// LoadEntry starts the platform loader and resolves the Vulkan entry point.
// It fails with a DriverAbsent error when no Vulkan driver is installed; the
// loader is shut down again in that case.
func LoadEntry(p Loader) (*VulkanDriver, error) {
	if err := p.Startup(); err != nil {
		return nil, core.DriverAbsent(err, "starting platform loader")
	}
	if err := resolveEntry(p); err != nil {
		if serr := p.Shutdown(); serr != nil {
			core.LogWarn("platform shutdown after failed load: %s", serr)
		}
		return nil, err
	}

	return &VulkanDriver{
		platform: p,
		context:  newVulkanContext(),
	}, nil
}

func resolveEntry(p Loader) error {
	if !p.VulkanSupported() {
		return core.DriverAbsent(nil, "no Vulkan loader or compatible driver found")
	}

	procAddr := p.GetInstanceProcAddress()
	if procAddr == nil {
		return core.DriverAbsent(nil, "GetInstanceProcAddress is nil")
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		return core.DriverAbsent(err, "failed to initialize vk")
	}
	return nil
}

var _ renderer.Driver = (*VulkanDriver)(nil)

func (vd *VulkanDriver) EnumerateInstanceLayerProperties() ([]metadata.LayerProperties, error) {
	var count uint32
	if res := vk.EnumerateInstanceLayerProperties(&count, nil); res != vk.Success {
		return nil, resultError(res)
	}

	available := make([]vk.LayerProperties, count)
	if res := vk.EnumerateInstanceLayerProperties(&count, available); res != vk.Success {
		return nil, resultError(res)
	}

	layers := make([]metadata.LayerProperties, 0, count)
	for i := range available[:count] {
		available[i].Deref()
		layers = append(layers, metadata.LayerProperties{
			LayerName:             cString(available[i].LayerName[:]),
			SpecVersion:           metadata.APIVersion(available[i].SpecVersion),
			ImplementationVersion: available[i].ImplementationVersion,
			Description:           cString(available[i].Description[:]),
		})
	}
	return layers, nil
}

func (vd *VulkanDriver) CreateInstance(info *renderer.InstanceCreateInfo) (metadata.Instance, error) {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   VulkanSafeString(info.ApplicationInfo.ApplicationName),
		ApplicationVersion: uint32(info.ApplicationInfo.ApplicationVersion),
		PEngineName:        VulkanSafeString(info.ApplicationInfo.EngineName),
		EngineVersion:      uint32(info.ApplicationInfo.EngineVersion),
		ApiVersion:         uint32(info.ApplicationInfo.APIVersion),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		Flags:                   vk.InstanceCreateFlags(info.Flags),
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(info.EnabledExtensionNames.Len()),
		PpEnabledExtensionNames: info.EnabledExtensionNames.Strings(),
		EnabledLayerCount:       uint32(info.EnabledLayerNames.Len()),
		PpEnabledLayerNames:     info.EnabledLayerNames.Strings(),
	}

	var instance vk.Instance
	res := vk.CreateInstance(&createInfo, vd.context.Allocator, &instance)
	if res != vk.Success {
		return metadata.NullInstance, resultError(res)
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, vd.context.Allocator)
		return metadata.NullInstance, err
	}

	return vd.context.addInstance(instance), nil
}

func (vd *VulkanDriver) DestroyInstance(h metadata.Instance) {
	instance, ok := vd.context.removeInstance(h)
	if !ok {
		core.LogWarn("DestroyInstance called with unknown handle %d", h)
		return
	}
	vk.DestroyInstance(instance, vd.context.Allocator)
}

func (vd *VulkanDriver) DebugUtils(h metadata.Instance) (renderer.DebugUtils, error) {
	instance, ok := vd.context.instance(h)
	if !ok {
		return nil, core.DriverCallFailed(nil, "unknown instance handle %d", h)
	}
	return &debugReporter{instance: instance, context: vd.context}, nil
}

// Shutdown releases the platform loader. Every instance must already be destroyed.
func (vd *VulkanDriver) Shutdown() error {
	return vd.platform.Shutdown()
}

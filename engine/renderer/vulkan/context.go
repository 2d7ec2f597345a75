package vulkan

import (
	"sync"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkinstance/engine/renderer/metadata"
)

// VulkanContext maps the opaque handles given to the renderer back to the
// native objects they stand for.
type VulkanContext struct {
	mutex sync.Mutex

	Allocator *vk.AllocationCallbacks

	instances  map[metadata.Instance]vk.Instance
	messengers map[metadata.DebugMessenger]messenger
	nextHandle uint64
}

type messenger struct {
	callback vk.DebugReportCallback
	sink     reportSinkID
}

func newVulkanContext() *VulkanContext {
	return &VulkanContext{
		Allocator:  nil,
		instances:  make(map[metadata.Instance]vk.Instance),
		messengers: make(map[metadata.DebugMessenger]messenger),
	}
}

func (vc *VulkanContext) addInstance(instance vk.Instance) metadata.Instance {
	vc.mutex.Lock()
	defer vc.mutex.Unlock()
	vc.nextHandle++
	h := metadata.Instance(vc.nextHandle)
	vc.instances[h] = instance
	return h
}

func (vc *VulkanContext) instance(h metadata.Instance) (vk.Instance, bool) {
	vc.mutex.Lock()
	defer vc.mutex.Unlock()
	instance, ok := vc.instances[h]
	return instance, ok
}

func (vc *VulkanContext) removeInstance(h metadata.Instance) (vk.Instance, bool) {
	vc.mutex.Lock()
	defer vc.mutex.Unlock()
	instance, ok := vc.instances[h]
	delete(vc.instances, h)
	return instance, ok
}

func (vc *VulkanContext) addMessenger(m messenger) metadata.DebugMessenger {
	vc.mutex.Lock()
	defer vc.mutex.Unlock()
	vc.nextHandle++
	h := metadata.DebugMessenger(vc.nextHandle)
	vc.messengers[h] = m
	return h
}

func (vc *VulkanContext) removeMessenger(h metadata.DebugMessenger) (messenger, bool) {
	vc.mutex.Lock()
	defer vc.mutex.Unlock()
	m, ok := vc.messengers[h]
	delete(vc.messengers, h)
	return m, ok
}

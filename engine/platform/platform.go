package platform

import (
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/vkinstance/engine/core"
)

func init() {
	// GLFW must run on the main OS thread
	runtime.LockOSThread()
}

// Platform is the GLFW-backed Vulkan loader. No window is ever created.
type Platform struct {
	started bool
}

func New() *Platform {
	return &Platform{}
}

func (p *Platform) Startup() error {
	if p.started {
		return nil
	}
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}
	p.started = true
	return nil
}

// VulkanSupported reports whether GLFW found a Vulkan loader and a minimally
// functional driver.
func (p *Platform) VulkanSupported() bool {
	return p.started && glfw.VulkanSupported()
}

func (p *Platform) GetInstanceProcAddress() unsafe.Pointer {
	return glfw.GetVulkanGetInstanceProcAddress()
}

func (p *Platform) Shutdown() error {
	if !p.started {
		return nil
	}
	glfw.Terminate()
	p.started = false
	return nil
}

package renderer_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/gomega"

	"github.com/spaghettifunk/vkinstance/engine/core"
	"github.com/spaghettifunk/vkinstance/engine/renderer"
	"github.com/spaghettifunk/vkinstance/engine/renderer/metadata"
	"github.com/spaghettifunk/vkinstance/engine/renderer/rendertest"
)

func TestBuildInstanceCreateInfoPlainLinux(t *testing.T) {
	g := NewWithT(t)

	info := renderer.BuildInstanceCreateInfo(tutorialConfig(false), metadata.TargetLinux)

	g.Expect(info.ApplicationInfo.ApplicationName).To(Equal("Vulkan Application"))
	g.Expect(info.ApplicationInfo.EngineName).To(Equal("No Engine"))

	api := info.ApplicationInfo.APIVersion
	g.Expect(api.Variant()).To(BeZero())
	g.Expect(api.Major()).To(Equal(uint32(1)))
	g.Expect(api.Minor()).To(Equal(uint32(3)))
	g.Expect(api.Patch()).To(Equal(uint32(290)))

	g.Expect(info.EnabledExtensionNames.Len()).To(BeZero())
	g.Expect(info.EnabledLayerNames.Len()).To(BeZero())
	g.Expect(info.Flags).To(BeZero())
}

func TestBuildInstanceCreateInfoPlatformStrategy(t *testing.T) {
	for _, target := range []metadata.TargetPlatform{metadata.TargetDarwin, metadata.TargetIOS} {
		for range 3 {
			g := NewWithT(t)
			info := renderer.BuildInstanceCreateInfo(tutorialConfig(false), target)

			g.Expect(info.EnabledExtensionNames.Strings()).To(Equal([]string{
				metadata.KhrPortabilityEnumerationExtensionName + "\x00",
			}))
			g.Expect(info.Flags & metadata.InstanceCreateEnumeratePortabilityBit).NotTo(BeZero())
		}
	}

	for _, target := range []metadata.TargetPlatform{metadata.TargetLinux, metadata.TargetWindows, "freebsd", "android"} {
		for range 3 {
			g := NewWithT(t)
			info := renderer.BuildInstanceCreateInfo(tutorialConfig(false), target)

			g.Expect(info.EnabledExtensionNames.Contains(metadata.KhrPortabilityEnumerationExtensionName)).To(BeFalse())
			g.Expect(info.Flags).To(BeZero())
		}
	}
}

func TestBuildInstanceCreateInfoWithValidation(t *testing.T) {
	g := NewWithT(t)

	info := renderer.BuildInstanceCreateInfo(tutorialConfig(true), metadata.TargetDarwin)

	g.Expect(info.EnabledLayerNames.Strings()).To(Equal([]string{metadata.KhronosValidationLayerName + "\x00"}))
	g.Expect(info.EnabledExtensionNames.Contains(metadata.ExtDebugReportExtensionName)).To(BeTrue())
	g.Expect(info.EnabledExtensionNames.Contains(metadata.KhrPortabilityEnumerationExtensionName)).To(BeTrue())
	g.Expect(info.EnabledExtensionNames.Len()).To(Equal(2))
}

func TestBuildInstanceCreateInfoCopiesApplicationInfo(t *testing.T) {
	g := NewWithT(t)

	cfg := tutorialConfig(false)
	info := renderer.BuildInstanceCreateInfo(cfg, metadata.TargetLinux)
	cfg.Application.ApplicationName = "changed"

	g.Expect(info.ApplicationInfo.ApplicationName).To(Equal("Vulkan Application"))
}

func TestCreateInstance(t *testing.T) {
	g := NewWithT(t)
	captureLogs(t)

	driver := rendertest.NewFakeDriver()
	instance, err := renderer.CreateInstance(driver, tutorialConfig(false), metadata.TargetLinux)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(instance).NotTo(Equal(metadata.NullInstance))
	g.Expect(driver.Calls).To(Equal([]string{rendertest.CallCreateInstance}))
	g.Expect(driver.LastCreateInfo.Extensions).To(BeEmpty())
	g.Expect(driver.LastCreateInfo.Layers).To(BeEmpty())
	g.Expect(driver.LastCreateInfo.ApplicationInfo.ApplicationName).To(Equal("Vulkan Application"))
}

func TestCreateInstanceChecksLayersFirst(t *testing.T) {
	g := NewWithT(t)
	captureLogs(t)

	driver := rendertest.NewFakeDriver(metadata.KhronosValidationLayerName)
	_, err := renderer.CreateInstance(driver, tutorialConfig(true), metadata.TargetLinux)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(driver.Calls).To(Equal([]string{rendertest.CallEnumerateLayers, rendertest.CallCreateInstance}))
	g.Expect(driver.LastCreateInfo.Layers).To(Equal([]string{metadata.KhronosValidationLayerName}))
}

func TestCreateInstanceMissingLayerNeverCallsDriver(t *testing.T) {
	g := NewWithT(t)
	captureLogs(t)

	driver := rendertest.NewFakeDriver("VK_LAYER_LUNARG_api_dump")
	instance, err := renderer.CreateInstance(driver, tutorialConfig(true), metadata.TargetLinux)

	g.Expect(errors.Is(err, core.ErrLayerUnsupported)).To(BeTrue())
	g.Expect(instance).To(Equal(metadata.NullInstance))
	g.Expect(driver.CountCalls(rendertest.CallCreateInstance)).To(BeZero())
}

func TestCreateInstanceEnumerateFailure(t *testing.T) {
	g := NewWithT(t)
	captureLogs(t)

	driver := rendertest.NewFakeDriver()
	driver.EnumerateErr = errors.New("VK_ERROR_OUT_OF_HOST_MEMORY")
	_, err := renderer.CreateInstance(driver, tutorialConfig(true), metadata.TargetLinux)

	g.Expect(errors.Is(err, core.ErrDriverCallFailed)).To(BeTrue())
	g.Expect(driver.CountCalls(rendertest.CallCreateInstance)).To(BeZero())
}

func TestCreateInstanceDriverFailure(t *testing.T) {
	g := NewWithT(t)
	captureLogs(t)

	driver := rendertest.NewFakeDriver()
	driver.CreateInstanceErr = errors.New("VK_ERROR_INCOMPATIBLE_DRIVER")
	instance, err := renderer.CreateInstance(driver, tutorialConfig(false), metadata.TargetLinux)

	g.Expect(instance).To(Equal(metadata.NullInstance))
	g.Expect(errors.Is(err, core.ErrDriverCallFailed)).To(BeTrue())
	g.Expect(err.Error()).To(ContainSubstring("VK_ERROR_INCOMPATIBLE_DRIVER"))
	g.Expect(driver.CountCalls(rendertest.CallCreateInstance)).To(Equal(1))
}

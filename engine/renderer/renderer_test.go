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

func TestBootstrapWithoutValidation(t *testing.T) {
	g := NewWithT(t)
	captureLogs(t)

	driver := rendertest.NewFakeDriver()
	ctx, err := renderer.Bootstrap(driver, tutorialConfig(false), metadata.TargetLinux)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ctx.Messenger).To(BeNil())
	g.Expect(driver.Calls).To(Equal([]string{rendertest.CallCreateInstance}))

	ctx.Destroy()
	g.Expect(driver.LiveInstances).To(BeEmpty())
	g.Expect(driver.CountCalls(rendertest.CallDestroyDebugMessenger)).To(BeZero())
}

func TestBootstrapTeardownOrder(t *testing.T) {
	g := NewWithT(t)
	captureLogs(t)

	driver := rendertest.NewFakeDriver(metadata.KhronosValidationLayerName)
	ctx, err := renderer.Bootstrap(driver, tutorialConfig(true), metadata.TargetLinux)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ctx.Messenger).NotTo(BeNil())

	ctx.Destroy()
	ctx.Destroy()

	g.Expect(driver.Calls).To(Equal([]string{
		rendertest.CallEnumerateLayers,
		rendertest.CallCreateInstance,
		rendertest.CallDebugUtils,
		rendertest.CallCreateDebugMessenger,
		rendertest.CallDestroyDebugMessenger,
		rendertest.CallDestroyInstance,
	}))
	g.Expect(driver.LiveInstances).To(BeEmpty())
	g.Expect(driver.LiveMessengers).To(BeEmpty())
}

func TestBootstrapDestroysInstanceWhenMessengerFails(t *testing.T) {
	g := NewWithT(t)
	captureLogs(t)

	driver := rendertest.NewFakeDriver(metadata.KhronosValidationLayerName)
	driver.CreateMessengerErr = errors.New("VK_ERROR_OUT_OF_HOST_MEMORY")

	ctx, err := renderer.Bootstrap(driver, tutorialConfig(true), metadata.TargetLinux)

	g.Expect(ctx).To(BeNil())
	g.Expect(errors.Is(err, core.ErrDriverCallFailed)).To(BeTrue())
	g.Expect(driver.LiveInstances).To(BeEmpty())
	g.Expect(driver.CountCalls(rendertest.CallDestroyInstance)).To(Equal(1))
}

func TestBootstrapMissingLayer(t *testing.T) {
	g := NewWithT(t)
	captureLogs(t)

	driver := rendertest.NewFakeDriver()
	ctx, err := renderer.Bootstrap(driver, tutorialConfig(true), metadata.TargetDarwin)

	g.Expect(ctx).To(BeNil())
	g.Expect(core.ErrorKind(err)).To(Equal("LayerUnsupported"))
	g.Expect(driver.Calls).To(Equal([]string{rendertest.CallEnumerateLayers}))
}

func TestNilInstanceContextDestroy(t *testing.T) {
	var ctx *renderer.InstanceContext
	ctx.Destroy()
}

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

func TestSetupDebugMessengerDisabled(t *testing.T) {
	g := NewWithT(t)
	captureLogs(t)

	driver := rendertest.NewFakeDriver()
	messenger, err := renderer.SetupDebugMessenger(driver, metadata.Instance(1), tutorialConfig(false))

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(messenger).To(BeNil())
	g.Expect(driver.Calls).To(BeEmpty())
}

func TestSetupDebugMessengerEnabled(t *testing.T) {
	g := NewWithT(t)
	captureLogs(t)

	driver := rendertest.NewFakeDriver(metadata.KhronosValidationLayerName)
	instance, err := renderer.CreateInstance(driver, tutorialConfig(true), metadata.TargetLinux)
	g.Expect(err).NotTo(HaveOccurred())

	messenger, err := renderer.SetupDebugMessenger(driver, instance, tutorialConfig(true))

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(messenger).NotTo(BeNil())
	g.Expect(messenger.Utils).NotTo(BeNil())
	g.Expect(messenger.Messenger).NotTo(Equal(metadata.NullDebugMessenger))
	g.Expect(driver.CountCalls(rendertest.CallCreateDebugMessenger)).To(Equal(1))
	g.Expect(driver.LiveMessengers).To(HaveKey(messenger.Messenger))

	messenger.Destroy()
	messenger.Destroy()
	g.Expect(driver.CountCalls(rendertest.CallDestroyDebugMessenger)).To(Equal(1))
	g.Expect(driver.LiveMessengers).To(BeEmpty())
}

func TestSetupDebugMessengerFailures(t *testing.T) {
	captureLogs(t)

	t.Run("entry points", func(t *testing.T) {
		g := NewWithT(t)
		driver := rendertest.NewFakeDriver()
		driver.DebugUtilsErr = errors.New("vkCreateDebugReportCallbackEXT not found")

		messenger, err := renderer.SetupDebugMessenger(driver, metadata.Instance(1), tutorialConfig(true))
		g.Expect(messenger).To(BeNil())
		g.Expect(errors.Is(err, core.ErrDriverCallFailed)).To(BeTrue())
		g.Expect(driver.CountCalls(rendertest.CallCreateDebugMessenger)).To(BeZero())
	})

	t.Run("creation", func(t *testing.T) {
		g := NewWithT(t)
		driver := rendertest.NewFakeDriver()
		instance, err := driver.CreateInstance(renderer.BuildInstanceCreateInfo(tutorialConfig(false), metadata.TargetLinux))
		g.Expect(err).NotTo(HaveOccurred())
		driver.CreateMessengerErr = errors.New("VK_ERROR_OUT_OF_HOST_MEMORY")

		messenger, err := renderer.SetupDebugMessenger(driver, instance, tutorialConfig(true))
		g.Expect(messenger).To(BeNil())
		g.Expect(errors.Is(err, core.ErrDriverCallFailed)).To(BeTrue())
	})
}

func TestDebugMessengerConfigDefaults(t *testing.T) {
	g := NewWithT(t)

	dc := renderer.DebugMessengerConfigFor(tutorialConfig(true))
	g.Expect(dc.Severity).To(Equal(renderer.DefaultDebugSeverity))
	g.Expect(dc.Severity.Has(metadata.DebugMessageSeverityVerbose)).To(BeFalse())
	g.Expect(dc.Types).To(Equal(renderer.DefaultDebugTypes))
	g.Expect(dc.Callback).NotTo(BeNil())

	var seen *metadata.DebugMessage
	cfg := tutorialConfig(true)
	cfg.DebugSeverity = metadata.DebugMessageSeverityError
	cfg.DebugTypes = metadata.DebugMessageTypeValidation
	cfg.DebugCallback = func(msg *metadata.DebugMessage) bool {
		seen = msg
		return false
	}

	dc = renderer.DebugMessengerConfigFor(cfg)
	g.Expect(dc.Severity).To(Equal(metadata.DebugMessageSeverityError))
	g.Expect(dc.Types).To(Equal(metadata.DebugMessageTypeValidation))
	dc.Callback(&metadata.DebugMessage{Message: "hello"})
	g.Expect(seen.Message).To(Equal("hello"))
}

func TestLogDebugMessageSeverityMapping(t *testing.T) {
	cases := []struct {
		severity metadata.DebugMessageSeverity
		level    string
	}{
		{metadata.DebugMessageSeverityVerbose, "debug"},
		{metadata.DebugMessageSeverityInfo, "info"},
		{metadata.DebugMessageSeverityWarning, "warn"},
		{metadata.DebugMessageSeverityError, "error"},
		{metadata.DebugMessageSeverityError | metadata.DebugMessageSeverityWarning, "error"},
		{0, "error"},
	}

	for _, c := range cases {
		t.Run(c.severity.String(), func(t *testing.T) {
			g := NewWithT(t)
			logs := captureLogs(t)

			abort := renderer.LogDebugMessage(&metadata.DebugMessage{
				Severity: c.severity,
				Type:     metadata.DebugMessageTypeValidation,
				Message:  "vkCreateDevice: invalid pNext",
			})

			g.Expect(abort).To(BeFalse())
			lines := logs()
			g.Expect(lines).To(HaveLen(1))
			g.Expect(lines[0].Level).To(Equal(c.level))
			g.Expect(lines[0].Msg).To(Equal("VALIDATION - vkCreateDevice: invalid pNext"))
		})
	}
}

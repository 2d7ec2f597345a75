package metadata

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestMakeAPIVersion(t *testing.T) {
	g := NewWithT(t)

	v := MakeAPIVersion(0, 1, 3, 290)
	g.Expect(uint32(v)).To(Equal(uint32(1<<22 | 3<<12 | 290)))
	g.Expect(v.Variant()).To(BeZero())
	g.Expect(v.Major()).To(Equal(uint32(1)))
	g.Expect(v.Minor()).To(Equal(uint32(3)))
	g.Expect(v.Patch()).To(Equal(uint32(290)))
	g.Expect(v.String()).To(Equal("1.3.290"))

	g.Expect(MakeAPIVersion(0, 0, 1, 0).String()).To(Equal("0.1.0"))
	g.Expect(APIVersion1_0.String()).To(Equal("1.0.0"))
	g.Expect(MakeAPIVersion(1, 1, 2, 3).String()).To(Equal("1.2.3 (variant 1)"))
}

func TestAPIVersionFieldLimits(t *testing.T) {
	g := NewWithT(t)

	v := MakeAPIVersion(7, 127, 1023, 4095)
	g.Expect(v.Variant()).To(Equal(uint32(7)))
	g.Expect(v.Major()).To(Equal(uint32(127)))
	g.Expect(v.Minor()).To(Equal(uint32(1023)))
	g.Expect(v.Patch()).To(Equal(uint32(4095)))
}

func TestDebugFlagStrings(t *testing.T) {
	g := NewWithT(t)

	g.Expect(DebugMessageSeverity(0).String()).To(Equal("NONE"))
	g.Expect(DebugMessageSeverityError.String()).To(Equal("ERROR"))
	g.Expect((DebugMessageSeverityError | DebugMessageSeverityWarning).String()).To(Equal("WARNING | ERROR"))
	g.Expect((DebugMessageSeverityInfo | 0x2).String()).To(Equal("INFO | UNKNOWN"))
	g.Expect((DebugMessageTypeGeneral | DebugMessageTypePerformance).String()).To(Equal("GENERAL | PERFORMANCE"))
}

func TestTargetPlatformIsApple(t *testing.T) {
	g := NewWithT(t)

	g.Expect(TargetDarwin.IsApple()).To(BeTrue())
	g.Expect(TargetIOS.IsApple()).To(BeTrue())
	g.Expect(TargetLinux.IsApple()).To(BeFalse())
	g.Expect(TargetWindows.IsApple()).To(BeFalse())
	g.Expect(CurrentTarget()).NotTo(BeEmpty())
}

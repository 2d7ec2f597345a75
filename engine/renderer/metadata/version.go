package metadata

import "fmt"

// APIVersion is a version packed the way Vulkan packs it:
// variant in bits 29-31, major in 22-28, minor in 12-21, patch in 0-11.
type APIVersion uint32

func MakeAPIVersion(variant, major, minor, patch uint32) APIVersion {
	return APIVersion(variant<<29 | major<<22 | minor<<12 | patch)
}

func (v APIVersion) Variant() uint32 { return uint32(v) >> 29 }
func (v APIVersion) Major() uint32   { return (uint32(v) >> 22) & 0x7F }
func (v APIVersion) Minor() uint32   { return (uint32(v) >> 12) & 0x3FF }
func (v APIVersion) Patch() uint32   { return uint32(v) & 0xFFF }

func (v APIVersion) String() string {
	if v.Variant() != 0 {
		return fmt.Sprintf("%d.%d.%d (variant %d)", v.Major(), v.Minor(), v.Patch(), v.Variant())
	}
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

var (
	APIVersion1_0 = MakeAPIVersion(0, 1, 0, 0)
	APIVersion1_2 = MakeAPIVersion(0, 1, 2, 0)
	APIVersion1_3 = MakeAPIVersion(0, 1, 3, 0)
)

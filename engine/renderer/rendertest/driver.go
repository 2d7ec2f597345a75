// Package rendertest provides an in-memory renderer.Driver that records the
// calls made against it.
package rendertest

import (
	"github.com/cockroachdb/errors"

	"github.com/spaghettifunk/vkinstance/engine/renderer"
	"github.com/spaghettifunk/vkinstance/engine/renderer/metadata"
)

// Call names recorded in FakeDriver.Calls.
const (
	CallEnumerateLayers       = "EnumerateInstanceLayerProperties"
	CallCreateInstance        = "CreateInstance"
	CallDestroyInstance       = "DestroyInstance"
	CallDebugUtils            = "DebugUtils"
	CallCreateDebugMessenger  = "CreateDebugMessenger"
	CallDestroyDebugMessenger = "DestroyDebugMessenger"
)

type FakeDriver struct {
	Layers []metadata.LayerProperties

	EnumerateErr       error
	CreateInstanceErr  error
	DebugUtilsErr      error
	CreateMessengerErr error

	// Calls lists every driver entry point invoked, in order.
	Calls []string

	// LastCreateInfo is a copy of what CreateInstance read during the call.
	LastCreateInfo *CapturedCreateInfo
	// LastMessengerConfig is the config passed to CreateDebugMessenger.
	LastMessengerConfig *metadata.DebugMessengerConfig

	LiveInstances  map[metadata.Instance]bool
	LiveMessengers map[metadata.DebugMessenger]bool

	next uint64
}

// CapturedCreateInfo holds the descriptor contents as seen inside the call.
type CapturedCreateInfo struct {
	ApplicationInfo metadata.ApplicationInfo
	Extensions      []string
	Layers          []string
	Flags           metadata.InstanceCreateFlags
}

func NewFakeDriver(layers ...string) *FakeDriver {
	d := &FakeDriver{
		LiveInstances:  make(map[metadata.Instance]bool),
		LiveMessengers: make(map[metadata.DebugMessenger]bool),
	}
	for _, l := range layers {
		d.Layers = append(d.Layers, metadata.LayerProperties{
			LayerName:   l,
			SpecVersion: metadata.MakeAPIVersion(0, 1, 3, 290),
			Description: l + " layer",
		})
	}
	return d
}

var _ renderer.Driver = (*FakeDriver)(nil)

func (d *FakeDriver) EnumerateInstanceLayerProperties() ([]metadata.LayerProperties, error) {
	d.Calls = append(d.Calls, CallEnumerateLayers)
	if d.EnumerateErr != nil {
		return nil, d.EnumerateErr
	}
	return append([]metadata.LayerProperties{}, d.Layers...), nil
}

func (d *FakeDriver) CreateInstance(info *renderer.InstanceCreateInfo) (metadata.Instance, error) {
	d.Calls = append(d.Calls, CallCreateInstance)
	captured := &CapturedCreateInfo{
		ApplicationInfo: *info.ApplicationInfo,
		Flags:           info.Flags,
		Extensions:      []string{},
		Layers:          []string{},
	}
	for i := range info.EnabledExtensionNames.Len() {
		captured.Extensions = append(captured.Extensions, info.EnabledExtensionNames.At(i))
	}
	for i := range info.EnabledLayerNames.Len() {
		captured.Layers = append(captured.Layers, info.EnabledLayerNames.At(i))
	}
	d.LastCreateInfo = captured

	if d.CreateInstanceErr != nil {
		return metadata.NullInstance, d.CreateInstanceErr
	}
	d.next++
	h := metadata.Instance(d.next)
	d.LiveInstances[h] = true
	return h, nil
}

func (d *FakeDriver) DestroyInstance(instance metadata.Instance) {
	d.Calls = append(d.Calls, CallDestroyInstance)
	delete(d.LiveInstances, instance)
}

func (d *FakeDriver) DebugUtils(instance metadata.Instance) (renderer.DebugUtils, error) {
	d.Calls = append(d.Calls, CallDebugUtils)
	if d.DebugUtilsErr != nil {
		return nil, d.DebugUtilsErr
	}
	if !d.LiveInstances[instance] {
		return nil, errors.Newf("unknown instance %d", instance)
	}
	return &fakeDebugUtils{driver: d}, nil
}

// CountCalls returns how many times the named entry point was invoked.
func (d *FakeDriver) CountCalls(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c == name {
			n++
		}
	}
	return n
}

type fakeDebugUtils struct {
	driver *FakeDriver
}

func (u *fakeDebugUtils) CreateDebugMessenger(config *metadata.DebugMessengerConfig) (metadata.DebugMessenger, error) {
	d := u.driver
	d.Calls = append(d.Calls, CallCreateDebugMessenger)
	d.LastMessengerConfig = config
	if d.CreateMessengerErr != nil {
		return metadata.NullDebugMessenger, d.CreateMessengerErr
	}
	d.next++
	h := metadata.DebugMessenger(d.next)
	d.LiveMessengers[h] = true
	return h, nil
}

func (u *fakeDebugUtils) DestroyDebugMessenger(messenger metadata.DebugMessenger) {
	u.driver.Calls = append(u.driver.Calls, CallDestroyDebugMessenger)
	delete(u.driver.LiveMessengers, messenger)
}

package vulkan

import (
	"sync"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkinstance/engine/core"
	"github.com/spaghettifunk/vkinstance/engine/renderer/metadata"
)

// debugReporter registers debug messengers through VK_EXT_debug_report, the
// callback channel the binding exposes.
type debugReporter struct {
	instance vk.Instance
	context  *VulkanContext
}

func (dr *debugReporter) CreateDebugMessenger(config *metadata.DebugMessengerConfig) (metadata.DebugMessenger, error) {
	flags := reportFlags(config.Severity, config.Types)
	sink := reportSinks.add(flags, config.Callback)
	debugCreateInfo := vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       flags,
		PfnCallback: dispatchReport,
		PNext:       nil,
	}

	var dbg vk.DebugReportCallback
	if res := vk.CreateDebugReportCallback(dr.instance, &debugCreateInfo, dr.context.Allocator, &dbg); res != vk.Success {
		reportSinks.remove(sink)
		return metadata.NullDebugMessenger, resultError(res)
	}
	return dr.context.addMessenger(messenger{callback: dbg, sink: sink}), nil
}

func (dr *debugReporter) DestroyDebugMessenger(h metadata.DebugMessenger) {
	m, ok := dr.context.removeMessenger(h)
	if !ok {
		core.LogWarn("DestroyDebugMessenger called with unknown handle %d", h)
		return
	}
	if m.callback != vk.NullDebugReportCallback {
		vk.DestroyDebugReportCallback(dr.instance, m.callback, dr.context.Allocator)
	}
	reportSinks.remove(m.sink)
}

type reportSinkID uint64

type reportSink struct {
	flags    vk.DebugReportFlags
	callback metadata.DebugCallback
}

// reportSinkSet holds the callbacks of every live messenger. The binding
// keeps the first Go function handed to it as PfnCallback for the life of
// the process, so every messenger registers dispatchReport and the message
// is routed from here.
type reportSinkSet struct {
	mutex  sync.RWMutex
	nextID reportSinkID
	sinks  map[reportSinkID]reportSink
}

var reportSinks = &reportSinkSet{sinks: make(map[reportSinkID]reportSink)}

func (s *reportSinkSet) add(flags vk.DebugReportFlags, callback metadata.DebugCallback) reportSinkID {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.nextID++
	s.sinks[s.nextID] = reportSink{flags: flags, callback: callback}
	return s.nextID
}

func (s *reportSinkSet) remove(id reportSinkID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.sinks, id)
}

// deliver hands the message to every sink whose flags match and reports
// whether any of them asked for the call to be aborted.
func (s *reportSinkSet) deliver(flags vk.DebugReportFlags, layerPrefix string, code int32, message string) bool {
	severity, types := translateReportFlags(flags)

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	abort := false
	for _, sink := range s.sinks {
		if sink.flags&flags == 0 || sink.callback == nil {
			continue
		}
		msg := &metadata.DebugMessage{
			Severity:    severity,
			Type:        types,
			LayerPrefix: layerPrefix,
			Code:        code,
			Message:     message,
		}
		if sink.callback(msg) {
			abort = true
		}
	}
	return abort
}

func dispatchReport(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	if reportSinks.deliver(flags, pLayerPrefix, messageCode, pMessage) {
		return vk.Bool32(vk.True)
	}
	return vk.Bool32(vk.False)
}

// reportFlags maps the severity and type masks onto debug report flags.
// Performance messages only exist as warnings in the report extension.
func reportFlags(severity metadata.DebugMessageSeverity, types metadata.DebugMessageType) vk.DebugReportFlags {
	var flags vk.DebugReportFlagBits
	if severity.Has(metadata.DebugMessageSeverityVerbose) {
		flags |= vk.DebugReportDebugBit
	}
	if severity.Has(metadata.DebugMessageSeverityInfo) {
		flags |= vk.DebugReportInformationBit
	}
	if severity.Has(metadata.DebugMessageSeverityWarning) {
		flags |= vk.DebugReportWarningBit
		if types.Has(metadata.DebugMessageTypePerformance) {
			flags |= vk.DebugReportPerformanceWarningBit
		}
	}
	if severity.Has(metadata.DebugMessageSeverityError) {
		flags |= vk.DebugReportErrorBit
	}
	return vk.DebugReportFlags(flags)
}

func translateReportFlags(flags vk.DebugReportFlags) (metadata.DebugMessageSeverity, metadata.DebugMessageType) {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		return metadata.DebugMessageSeverityError, metadata.DebugMessageTypeValidation
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		return metadata.DebugMessageSeverityWarning, metadata.DebugMessageTypePerformance
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		return metadata.DebugMessageSeverityWarning, metadata.DebugMessageTypeValidation
	case flags&vk.DebugReportFlags(vk.DebugReportInformationBit) != 0:
		return metadata.DebugMessageSeverityInfo, metadata.DebugMessageTypeGeneral
	case flags&vk.DebugReportFlags(vk.DebugReportDebugBit) != 0:
		return metadata.DebugMessageSeverityVerbose, metadata.DebugMessageTypeGeneral
	default:
		return metadata.DebugMessageSeverityInfo, metadata.DebugMessageTypeGeneral
	}
}

package metadata

import "strings"

type DebugMessageSeverity uint32

const (
	DebugMessageSeverityVerbose DebugMessageSeverity = 0x00000001
	DebugMessageSeverityInfo    DebugMessageSeverity = 0x00000010
	DebugMessageSeverityWarning DebugMessageSeverity = 0x00000100
	DebugMessageSeverityError   DebugMessageSeverity = 0x00001000
)

func (s DebugMessageSeverity) Has(bit DebugMessageSeverity) bool {
	return s&bit == bit
}

func (s DebugMessageSeverity) String() string {
	return flagString(uint32(s), []flagName{
		{uint32(DebugMessageSeverityVerbose), "VERBOSE"},
		{uint32(DebugMessageSeverityInfo), "INFO"},
		{uint32(DebugMessageSeverityWarning), "WARNING"},
		{uint32(DebugMessageSeverityError), "ERROR"},
	})
}

type DebugMessageType uint32

const (
	DebugMessageTypeGeneral     DebugMessageType = 0x00000001
	DebugMessageTypeValidation  DebugMessageType = 0x00000002
	DebugMessageTypePerformance DebugMessageType = 0x00000004
)

func (t DebugMessageType) Has(bit DebugMessageType) bool {
	return t&bit == bit
}

func (t DebugMessageType) String() string {
	return flagString(uint32(t), []flagName{
		{uint32(DebugMessageTypeGeneral), "GENERAL"},
		{uint32(DebugMessageTypeValidation), "VALIDATION"},
		{uint32(DebugMessageTypePerformance), "PERFORMANCE"},
	})
}

// DebugMessage is a single diagnostic event delivered by the driver.
type DebugMessage struct {
	Severity    DebugMessageSeverity
	Type        DebugMessageType
	LayerPrefix string
	Code        int32
	Message     string
}

// DebugCallback receives driver diagnostics. Returning true asks the driver
// to abort the call that triggered the message.
type DebugCallback func(msg *DebugMessage) bool

type DebugMessengerConfig struct {
	Severity DebugMessageSeverity
	Types    DebugMessageType
	Callback DebugCallback
}

type flagName struct {
	bit  uint32
	name string
}

func flagString(v uint32, names []flagName) string {
	if v == 0 {
		return "NONE"
	}
	parts := []string{}
	for _, n := range names {
		if v&n.bit != 0 {
			parts = append(parts, n.name)
			v &^= n.bit
		}
	}
	if v != 0 {
		parts = append(parts, "UNKNOWN")
	}
	return strings.Join(parts, " | ")
}

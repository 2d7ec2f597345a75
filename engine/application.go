package engine

import (
	"bytes"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/vkinstance/engine/core"
	"github.com/spaghettifunk/vkinstance/engine/renderer"
	"github.com/spaghettifunk/vkinstance/engine/renderer/metadata"
)

// EnableValidationEnv overrides the validation toggle of the build and of
// any config file.
const EnableValidationEnv = "ENABLE_VALIDATION_LAYERS"

type ApplicationConfig struct {
	Preset   string `toml:"preset"`
	LogLevel string `toml:"log_level"`

	Application ApplicationSection `toml:"application"`
	Validation  ValidationSection  `toml:"validation"`
}

// ApplicationSection mirrors the driver's application info. Versions are
// written as "major.minor.patch".
type ApplicationSection struct {
	Name          string `toml:"name"`
	Version       string `toml:"version"`
	EngineName    string `toml:"engine_name"`
	EngineVersion string `toml:"engine_version"`
	APIVersion    string `toml:"api_version"`
}

type ValidationSection struct {
	// Enabled is nil when nothing chose a value; the build default applies.
	Enabled  *bool    `toml:"enabled"`
	Layers   []string `toml:"layers"`
	Severity []string `toml:"severity"`
	Types    []string `toml:"types"`
}

// LoadConfigFile decodes the TOML file at path over config. Keys missing from
// the file keep the values config already holds.
func LoadConfigFile(path string, config *ApplicationConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.InvalidConfig(err, "reading config %s", path)
	}
	return DecodeConfig(data, config)
}

func DecodeConfig(data []byte, config *ApplicationConfig) error {
	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	if err := d.Decode(config); err != nil {
		return core.InvalidConfig(err, "decoding config")
	}
	return nil
}

// ApplyEnv reads ENABLE_VALIDATION_LAYERS through lookup.
func (c *ApplicationConfig) ApplyEnv(lookup func(string) (string, bool)) error {
	raw, ok := lookup(EnableValidationEnv)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return core.InvalidConfig(err, "%s=%q", EnableValidationEnv, raw)
	}
	c.Validation.Enabled = &v
	return nil
}

// SetValidation forces the validation toggle.
func (c *ApplicationConfig) SetValidation(enabled bool) {
	c.Validation.Enabled = &enabled
}

func (c *ApplicationConfig) ValidationEnabled() bool {
	if c.Validation.Enabled != nil {
		return *c.Validation.Enabled
	}
	return DefaultValidationEnabled
}

// ToInstanceConfig converts the decoded settings into what the bootstrap uses.
func (c *ApplicationConfig) ToInstanceConfig() (*renderer.InstanceConfig, error) {
	appVersion, err := ParseVersion(c.Application.Version)
	if err != nil {
		return nil, err
	}
	engineVersion, err := ParseVersion(c.Application.EngineVersion)
	if err != nil {
		return nil, err
	}
	apiVersion, err := ParseVersion(c.Application.APIVersion)
	if err != nil {
		return nil, err
	}
	if apiVersion == 0 {
		apiVersion = metadata.APIVersion1_0
	}

	severity, err := parseSeverity(c.Validation.Severity)
	if err != nil {
		return nil, err
	}
	types, err := parseTypes(c.Validation.Types)
	if err != nil {
		return nil, err
	}

	layers := c.Validation.Layers
	if len(layers) == 0 {
		layers = []string{metadata.KhronosValidationLayerName}
	}

	return &renderer.InstanceConfig{
		Application: metadata.ApplicationInfo{
			ApplicationName:    c.Application.Name,
			ApplicationVersion: appVersion,
			EngineName:         c.Application.EngineName,
			EngineVersion:      engineVersion,
			APIVersion:         apiVersion,
		},
		EnableValidationLayers: c.ValidationEnabled(),
		RequiredLayers:         layers,
		DebugSeverity:          severity,
		DebugTypes:             types,
	}, nil
}

// ParseVersion reads "major.minor.patch" or "major.minor". An empty string
// is version zero.
func ParseVersion(s string) (metadata.APIVersion, error) {
	if s == "" {
		return 0, nil
	}
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, core.InvalidConfig(nil, "version %q is not major.minor.patch", s)
	}

	limits := []uint64{0x7F, 0x3FF, 0xFFF}
	nums := [3]uint32{}
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return 0, core.InvalidConfig(err, "version %q", s)
		}
		if n > limits[i] {
			return 0, core.InvalidConfig(nil, "version %q: component %d out of range", s, n)
		}
		nums[i] = uint32(n)
	}
	return metadata.MakeAPIVersion(0, nums[0], nums[1], nums[2]), nil
}

var severityNames = map[string]metadata.DebugMessageSeverity{
	"verbose": metadata.DebugMessageSeverityVerbose,
	"info":    metadata.DebugMessageSeverityInfo,
	"warning": metadata.DebugMessageSeverityWarning,
	"error":   metadata.DebugMessageSeverityError,
}

var typeNames = map[string]metadata.DebugMessageType{
	"general":     metadata.DebugMessageTypeGeneral,
	"validation":  metadata.DebugMessageTypeValidation,
	"performance": metadata.DebugMessageTypePerformance,
}

func parseSeverity(names []string) (metadata.DebugMessageSeverity, error) {
	var s metadata.DebugMessageSeverity
	for _, n := range names {
		bit, ok := severityNames[strings.ToLower(n)]
		if !ok {
			return 0, core.InvalidConfig(nil, "unknown debug severity %q", n)
		}
		s |= bit
	}
	return s, nil
}

func parseTypes(names []string) (metadata.DebugMessageType, error) {
	var t metadata.DebugMessageType
	for _, n := range names {
		bit, ok := typeNames[strings.ToLower(n)]
		if !ok {
			return 0, core.InvalidConfig(nil, "unknown debug message type %q", n)
		}
		t |= bit
	}
	return t, nil
}

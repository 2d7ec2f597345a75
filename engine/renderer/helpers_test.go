package renderer_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/spaghettifunk/vkinstance/engine/core"
	"github.com/spaghettifunk/vkinstance/engine/renderer"
	"github.com/spaghettifunk/vkinstance/engine/renderer/metadata"
)

type logLine struct {
	Level string `json:"level"`
	Msg   string `json:"msg"`
}

// captureLogs routes the engine logger into a buffer for the test's duration.
func captureLogs(t *testing.T) func() []logLine {
	t.Helper()
	var buf bytes.Buffer
	core.SetLogger(log.NewWithOptions(&buf, log.Options{
		Formatter: log.JSONFormatter,
		Level:     log.DebugLevel,
	}))
	t.Cleanup(func() {
		core.SetLogger(log.NewWithOptions(&bytes.Buffer{}, log.Options{}))
	})

	return func() []logLine {
		var lines []logLine
		scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
		for scanner.Scan() {
			var l logLine
			if err := json.Unmarshal(scanner.Bytes(), &l); err != nil {
				t.Fatalf("decoding log line %q: %s", scanner.Text(), err)
			}
			lines = append(lines, l)
		}
		return lines
	}
}

func tutorialConfig(validation bool) *renderer.InstanceConfig {
	return &renderer.InstanceConfig{
		Application: metadata.ApplicationInfo{
			ApplicationName:    "Vulkan Application",
			ApplicationVersion: metadata.MakeAPIVersion(0, 0, 1, 0),
			EngineName:         "No Engine",
			EngineVersion:      metadata.MakeAPIVersion(0, 0, 1, 0),
			APIVersion:         metadata.MakeAPIVersion(0, 1, 3, 290),
		},
		EnableValidationLayers: validation,
		RequiredLayers:         []string{metadata.KhronosValidationLayerName},
	}
}

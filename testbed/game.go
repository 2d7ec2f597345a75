package testbed

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spaghettifunk/vkinstance/engine"
	"github.com/spaghettifunk/vkinstance/engine/core"
	"github.com/spaghettifunk/vkinstance/engine/renderer"
)

const (
	PresetPlain      = "plain"
	PresetAppInfo    = "app-info"
	PresetValidation = "validation"
)

// CreatedMessage is printed once the instance exists.
const CreatedMessage = "vulkan instance created"

var presets = map[string]func() *engine.ApplicationConfig{
	PresetPlain: func() *engine.ApplicationConfig {
		cfg := &engine.ApplicationConfig{
			Preset: PresetPlain,
			Application: engine.ApplicationSection{
				APIVersion: "1.0.0",
			},
		}
		cfg.SetValidation(false)
		return cfg
	},
	PresetAppInfo: func() *engine.ApplicationConfig {
		cfg := &engine.ApplicationConfig{
			Preset:      PresetAppInfo,
			Application: tutorialApplication("1.3.290"),
		}
		cfg.SetValidation(false)
		return cfg
	},
	// validation follows the build default
	PresetValidation: func() *engine.ApplicationConfig {
		return &engine.ApplicationConfig{
			Preset:      PresetValidation,
			Application: tutorialApplication("1.2.0"),
		}
	},
}

func tutorialApplication(apiVersion string) engine.ApplicationSection {
	return engine.ApplicationSection{
		Name:          "Vulkan Application",
		Version:       "0.1.0",
		EngineName:    "No Engine",
		EngineVersion: "0.1.0",
		APIVersion:    apiVersion,
	}
}

// Presets lists the preset names in a stable order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetConfig returns a fresh config for the named preset.
func PresetConfig(name string) (*engine.ApplicationConfig, error) {
	build, ok := presets[name]
	if !ok {
		return nil, core.InvalidConfig(nil, "unknown preset %q (have %v)", name, Presets())
	}
	return build(), nil
}

type TestGame struct {
	*engine.Game

	out io.Writer
}

type gameState struct {
	created int
}

// NewTestGame wraps config in hooks that report progress on out.
func NewTestGame(config *engine.ApplicationConfig, out io.Writer) *TestGame {
	if out == nil {
		out = os.Stdout
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
		out: out,
	}

	tg.FnBoot = tg.Boot
	tg.FnInitialize = tg.Initialize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Boot() error {
	core.LogInfo("booting testbed preset %q (validation %t)...",
		g.ApplicationConfig.Preset, g.ApplicationConfig.ValidationEnabled())
	return nil
}

func (g *TestGame) Initialize(ctx *renderer.InstanceContext) error {
	state := g.State.(*gameState)
	state.created++
	if _, err := fmt.Fprintln(g.out, CreatedMessage); err != nil {
		return err
	}
	core.LogDebug("instance %d ready (messenger %t)", ctx.Instance, ctx.Messenger != nil)
	return nil
}

func (g *TestGame) Shutdown() error {
	core.LogDebug("testbed shutting down")
	return nil
}

// Created counts successful bootstraps of this game.
func (g *TestGame) Created() int {
	return g.State.(*gameState).created
}

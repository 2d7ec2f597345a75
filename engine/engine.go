package engine

import (
	"fmt"
	"slices"
	"time"

	"github.com/xlab/tablewriter"

	"github.com/spaghettifunk/vkinstance/engine/core"
	"github.com/spaghettifunk/vkinstance/engine/platform"
	"github.com/spaghettifunk/vkinstance/engine/renderer"
	"github.com/spaghettifunk/vkinstance/engine/renderer/metadata"
	"github.com/spaghettifunk/vkinstance/engine/renderer/vulkan"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is loading the driver and creating the instance
	EngineStageBooting
	// Instance (and messenger) are alive
	EngineStageInitialized
	// Engine is releasing driver objects
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageBooting:
		return "booting"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageShuttingDown:
		return "shutting down"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// DriverLoader resolves the driver entry points. The returned release func
// is called once after every driver object is gone.
type DriverLoader func() (renderer.Driver, func() error, error)

type Option func(*Engine)

// WithDriverLoader replaces the GLFW + Vulkan loader.
func WithDriverLoader(loader DriverLoader) Option {
	return func(e *Engine) {
		e.loader = loader
	}
}

// WithTarget overrides the compile-time platform.
func WithTarget(target metadata.TargetPlatform) Option {
	return func(e *Engine) {
		e.target = target
	}
}

type Engine struct {
	currentStage Stage
	gameInstance *Game
	sessionID    string
	clock        *core.Clock
	target       metadata.TargetPlatform

	loader        DriverLoader
	driver        renderer.Driver
	releaseDriver func() error
	context       *renderer.InstanceContext
	config        *renderer.InstanceConfig
}

func New(g *Game, opts ...Option) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, core.InvalidConfig(nil, "game has no application config")
	}

	e := &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		sessionID:    core.NewSessionID(),
		clock:        core.NewClock(),
		target:       metadata.CurrentTarget(),
		loader:       loadVulkanDriver,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func loadVulkanDriver() (renderer.Driver, func() error, error) {
	d, err := vulkan.LoadEntry(platform.New())
	if err != nil {
		return nil, nil, err
	}
	return d, d.Shutdown, nil
}

// Initialize loads the driver and bootstraps the instance. On failure every
// object created so far is released and the engine returns to Uninitialized.
func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return core.InvalidConfig(nil, "engine already %s", e.currentStage)
	}
	e.currentStage = EngineStageBooting
	core.SetSessionID(e.sessionID)
	e.clock.Start()

	if err := e.boot(); err != nil {
		e.release()
		e.currentStage = EngineStageUninitialized
		return err
	}

	e.clock.Update()
	e.currentStage = EngineStageInitialized
	core.LogInfo("engine initialized in %s", e.clock.Elapsed().Round(time.Microsecond))

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e.context); err != nil {
			_ = e.Shutdown()
			return err
		}
	}
	return nil
}

func (e *Engine) boot() error {
	if e.gameInstance.FnBoot != nil {
		if err := e.gameInstance.FnBoot(); err != nil {
			return err
		}
	}

	config, err := e.gameInstance.ApplicationConfig.ToInstanceConfig()
	if err != nil {
		return err
	}
	e.config = config

	if err := e.loadDriver(); err != nil {
		return err
	}

	ctx, err := renderer.Bootstrap(e.driver, config, e.target)
	if err != nil {
		return err
	}
	e.context = ctx
	return nil
}

func (e *Engine) loadDriver() error {
	if e.driver != nil {
		return nil
	}
	driver, release, err := e.loader()
	if err != nil {
		return err
	}
	e.driver = driver
	e.releaseDriver = release
	return nil
}

// LayerReport renders the layers the driver exposes, marking the required
// ones. It loads the driver if Initialize has not.
func (e *Engine) LayerReport() (string, error) {
	if err := e.loadDriver(); err != nil {
		return "", err
	}
	layers, err := e.driver.EnumerateInstanceLayerProperties()
	if err != nil {
		return "", core.DriverCallFailed(err, "enumerating instance layers")
	}

	config, err := e.gameInstance.ApplicationConfig.ToInstanceConfig()
	if err != nil {
		return "", err
	}
	found := map[string]bool{}

	table := tablewriter.CreateTable()
	table.UTF8Box()
	table.AddTitle("INSTANCE LAYERS")
	table.AddRow("#", "Layer", "Spec", "Impl", "Required")
	table.AddSeparator()
	for i, l := range layers {
		mark := ""
		if slices.Contains(config.RequiredLayers, l.LayerName) {
			mark = "yes"
			found[l.LayerName] = true
		}
		table.AddRow(i+1, l.LayerName, l.SpecVersion.String(), l.ImplementationVersion, mark)
	}
	for _, name := range config.RequiredLayers {
		if !found[name] {
			table.AddRow("-", name, "", "", "missing")
		}
	}
	return table.Render(), nil
}

// Shutdown runs the game hook and destroys the messenger, the instance and
// the driver, in that order.
func (e *Engine) Shutdown() error {
	if e.currentStage != EngineStageInitialized {
		return e.release()
	}
	e.currentStage = EngineStageShuttingDown

	var hookErr error
	if e.gameInstance.FnShutdown != nil {
		hookErr = e.gameInstance.FnShutdown()
	}
	err := e.release()
	e.currentStage = EngineStageUninitialized
	e.clock.Stop()

	if hookErr != nil {
		return hookErr
	}
	return err
}

func (e *Engine) release() error {
	if e.context != nil {
		e.context.Destroy()
		e.context = nil
	}
	var err error
	if e.releaseDriver != nil {
		err = e.releaseDriver()
	}
	e.driver = nil
	e.releaseDriver = nil
	return err
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) SessionID() string {
	return e.sessionID
}

// Context is nil unless the engine is initialized.
func (e *Engine) Context() *renderer.InstanceContext {
	return e.context
}

// InstanceConfig is the configuration the last Initialize bootstrapped with.
func (e *Engine) InstanceConfig() *renderer.InstanceConfig {
	return e.config
}

package engine

import (
	"github.com/spaghettifunk/vkinstance/engine/renderer"
)

// Game is what the engine drives: a configuration plus optional hooks run
// around the bootstrap.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnBoot            Boot
	FnInitialize      Initialize
	FnShutdown        Shutdown
}

type Boot func() error
type Initialize func(ctx *renderer.InstanceContext) error
type Shutdown func() error

/*
vkinstance creates a Vulkan instance, optionally with the Khronos validation
layer and a debug messenger, then tears it down again.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/xlab/closer"

	"github.com/spaghettifunk/vkinstance/engine"
	"github.com/spaghettifunk/vkinstance/engine/assets"
	"github.com/spaghettifunk/vkinstance/engine/core"
	"github.com/spaghettifunk/vkinstance/testbed"
)

type options struct {
	preset     string
	configPath string
	validation *bool
	logLevel   string
	listLayers bool
	watch      bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*options, error) {
	opts := &options{}
	var validation bool
	fs.StringVar(&opts.preset, "preset", testbed.PresetValidation, "tutorial preset: plain, app-info or validation")
	fs.StringVar(&opts.configPath, "config", "", "TOML file applied over the preset")
	fs.BoolVar(&validation, "validation", engine.DefaultValidationEnabled, "enable validation layers (overrides config and "+engine.EnableValidationEnv+")")
	fs.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn, error or fatal")
	fs.BoolVar(&opts.listLayers, "list-layers", false, "print the instance layers and exit")
	fs.BoolVar(&opts.watch, "watch", false, "re-create the instance whenever -config changes")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "validation" {
			opts.validation = &validation
		}
	})
	if opts.watch && opts.configPath == "" {
		return nil, core.InvalidConfig(nil, "-watch needs -config")
	}
	return opts, nil
}

// resolveConfig layers the preset, the config file, the environment and the
// -validation flag, later sources winning.
func resolveConfig(opts *options, lookup func(string) (string, bool)) (*engine.ApplicationConfig, error) {
	cfg, err := testbed.PresetConfig(opts.preset)
	if err != nil {
		return nil, err
	}
	if opts.configPath != "" {
		if err := engine.LoadConfigFile(opts.configPath, cfg); err != nil {
			return nil, err
		}
		if cfg.Preset != "" && cfg.Preset != opts.preset {
			// the file picked another preset; start from that one instead
			if cfg, err = testbed.PresetConfig(cfg.Preset); err != nil {
				return nil, err
			}
			if err := engine.LoadConfigFile(opts.configPath, cfg); err != nil {
				return nil, err
			}
		}
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if opts.validation != nil {
		cfg.SetValidation(*opts.validation)
	}
	return cfg, nil
}

func applyLogLevel(opts *options, cfg *engine.ApplicationConfig) error {
	name := opts.logLevel
	if cfg.LogLevel != "" {
		name = cfg.LogLevel
	}
	level, err := core.ParseLogLevel(name)
	if err != nil {
		return core.InvalidConfig(err, "log level %q", name)
	}
	core.SetLogLevel(level)
	return nil
}

func fatal(err error) {
	core.LogError("startup failed [%s]: %+v", core.ErrorKind(err), err)
	closer.Fatalln(err)
}

// bootstrap builds a fresh engine from the current config and initializes it.
func bootstrap(opts *options) (*engine.Engine, error) {
	cfg, err := resolveConfig(opts, os.LookupEnv)
	if err != nil {
		return nil, err
	}
	if err := applyLogLevel(opts, cfg); err != nil {
		return nil, err
	}

	e, err := engine.New(testbed.NewTestGame(cfg, os.Stdout).Game)
	if err != nil {
		return nil, err
	}
	if err := e.Initialize(); err != nil {
		return nil, err
	}
	return e, nil
}

// session is one live instance the process owns.
type session interface {
	Shutdown() error
}

func release(s session) {
	if s == nil {
		return
	}
	if err := s.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
}

// watch replaces current with a fresh session on every change until ctx is
// done or changes closes. Whatever is current at that point is released
// before watch returns.
func watch(ctx context.Context, changes <-chan string, current session, reload func() (session, error)) {
	defer func() { release(current) }()

	for {
		select {
		case <-ctx.Done():
			core.LogInfo("shutting down")
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			release(current)
			current = nil
			next, err := reload()
			if err != nil {
				// keep watching; the next save may fix it
				core.LogError("reload failed [%s]: %s", core.ErrorKind(err), err)
				continue
			}
			current = next
		}
	}
}

func run(ctx context.Context, args []string) error {
	opts, err := parseFlags(flag.CommandLine, args)
	if err != nil {
		return err
	}

	if opts.listLayers {
		cfg, err := resolveConfig(opts, os.LookupEnv)
		if err != nil {
			return err
		}
		e, err := engine.New(&engine.Game{ApplicationConfig: cfg})
		if err != nil {
			return err
		}
		defer release(e)
		report, err := e.LayerReport()
		if err != nil {
			return err
		}
		fmt.Println(report)
		return nil
	}

	current, err := bootstrap(opts)
	if err != nil {
		return err
	}
	if !opts.watch {
		release(current)
		return nil
	}

	watcher, err := assets.NewConfigWatcher(opts.configPath)
	if err != nil {
		release(current)
		return err
	}
	defer watcher.Close()
	core.LogInfo("watching %s for changes", watcher.Path())

	watch(ctx, watcher.Changes(), current, func() (session, error) {
		next, err := bootstrap(opts)
		if err != nil {
			return nil, err
		}
		return next, nil
	})
	return nil
}

func main() {
	// closer would exit the process on these before the instance is released
	signal.Reset(closer.DebugSignalSet...)
	ctx, stop := signal.NotifyContext(context.Background(), closer.DebugSignalSet...)

	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		fatal(err)
	}
}

package assets

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/vkinstance/engine/core"
)

// ConfigWatcher reports changes to a single configuration file. It watches
// the parent directory so editors that replace the file on save are seen.
type ConfigWatcher struct {
	path string

	mutex    sync.Mutex
	fsnotify *fsnotify.Watcher
	isClosed bool
	done     chan struct{}
	changes  chan string
	errors   chan error

	debounce time.Duration
}

func NewConfigWatcher(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, core.InvalidConfig(err, "resolving %s", path)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, core.InvalidConfig(err, "watching %s", path)
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating file watcher")
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, errors.Wrapf(err, "watching %s", filepath.Dir(abs))
	}

	cw := &ConfigWatcher{
		path:     abs,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		changes:  make(chan string, 1),
		errors:   make(chan error, 1),
		debounce: 100 * time.Millisecond,
	}
	go cw.start()
	return cw, nil
}

// Changes delivers the file path once a burst of writes has been quiet for
// the debounce period.
func (cw *ConfigWatcher) Changes() <-chan string {
	return cw.changes
}

func (cw *ConfigWatcher) Errors() <-chan error {
	return cw.errors
}

func (cw *ConfigWatcher) Path() string {
	return cw.path
}

func (cw *ConfigWatcher) Close() error {
	cw.mutex.Lock()
	defer cw.mutex.Unlock()
	if cw.isClosed {
		return nil
	}
	cw.isClosed = true
	close(cw.done)
	return nil
}

func (cw *ConfigWatcher) start() {
	var quiet *time.Timer
	var fire <-chan time.Time

	defer func() {
		if quiet != nil {
			quiet.Stop()
		}
		cw.fsnotify.Close()
		close(cw.changes)
		close(cw.errors)
	}()

	for {
		select {
		case e, ok := <-cw.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != cw.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if quiet == nil {
				quiet = time.NewTimer(cw.debounce)
			} else {
				quiet.Reset(cw.debounce)
			}
			fire = quiet.C

		case <-fire:
			fire = nil
			core.LogDebug("config changed: %s", cw.path)
			select {
			case cw.changes <- cw.path:
			default:
				// a reload is already pending
			}

		case err, ok := <-cw.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())
			select {
			case cw.errors <- err:
			default:
			}

		case <-cw.done:
			return
		}
	}
}

package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vrscreencap/vrscreencap"
)

// debounceInterval coalesces the burst of filesystem events an editor
// save produces into one reload.
const debounceInterval = time.Second

// Watcher re-reads a config file whenever it changes and delivers the
// parsed result on Changes. Reload failures keep the previous config and
// are logged, so a half-written file never tears down the session.
type Watcher struct {
	path    string
	fw      *fsnotify.Watcher
	changes chan *Config
	done    chan struct{}
}

// Watch loads cfgFile and starts watching it. The initial parse must
// succeed; later parse failures only log.
func Watch(cfgFile string) (*Config, *Watcher, error) {
	cfg, _, err := load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("config: watcher: %w", err)
	}
	// Watch the directory, not the file: editors replace files on save
	// and a direct watch dies with the old inode.
	if err := fw.Add(filepath.Dir(cfgFile)); err != nil {
		fw.Close()
		return nil, nil, fmt.Errorf("config: watch %q: %w", cfgFile, err)
	}

	w := &Watcher{
		path:    cfgFile,
		fw:      fw,
		changes: make(chan *Config, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return cfg, w, nil
}

// Changes delivers each successfully reloaded config. The channel holds
// one pending config; an unconsumed value is replaced by a newer one.
func (w *Watcher) Changes() <-chan *Config { return w.changes }

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) run() {
	var pending *time.Timer
	var pendingC <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(debounceInterval)
				pendingC = pending.C
			} else {
				pending.Reset(debounceInterval)
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			vrscreencap.Logger().Warn("config watch error", "error", err)
		case <-pendingC:
			pending = nil
			pendingC = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, _, err := load(w.path)
	if err != nil {
		vrscreencap.Logger().Warn("config reload failed, keeping previous",
			"path", w.path, "error", err)
		return
	}
	// Drop a stale unconsumed config rather than blocking the watcher.
	select {
	case <-w.changes:
	default:
	}
	w.changes <- cfg
	vrscreencap.Logger().Info("config reloaded", "path", w.path)
}

// Package propwatcher provides property file monitoring for vessel.
// When enabled, it watches the configured property files for changes,
// reloads them into the environment and publishes a change event.
package propwatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vessel-labs/vessel/pkg/env"
	"github.com/vessel-labs/vessel/pkg/event"
	"github.com/vessel-labs/vessel/pkg/lifecycle"
	"github.com/vessel-labs/vessel/pkg/log"
)

// ChangedEvent is published after changed property files have been
// reloaded into the environment.
type ChangedEvent struct {
	event.Base
	Paths []string
}

// Config holds configuration options for the property watcher plugin.
type Config struct {
	// Paths are the property files to watch.
	Paths []string

	// DebounceDelay is the delay to wait after a file change before
	// reloading. Editors often produce several events per save.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// Phase is the lifecycle phase the watcher starts in. The watcher
	// usually belongs in an early phase so later participants observe
	// fresh properties. Default: -100
	Phase int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
		Phase:         -100,
	}
}

// Publisher is the outbound side of the event bus.
type Publisher interface {
	Publish(e event.Event) error
}

// Plugin watches property files and keeps an Environment current.
// It participates in the phased lifecycle and is safe to start and stop
// repeatedly.
type Plugin struct {
	mu sync.RWMutex

	paths         []string
	debounceDelay time.Duration
	phase         int

	environment *env.Environment
	publisher   Publisher
	logger      log.Logger

	running  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer

	// pending collects paths seen since the last reload.
	pending map[string]struct{}
}

// New creates a property watcher plugin. The environment receives
// reloaded files; the publisher receives ChangedEvent notifications and
// may be nil.
func New(cfg Config, environment *env.Environment, publisher Publisher, logger log.Logger) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Plugin{
		paths:         append([]string(nil), cfg.Paths...),
		debounceDelay: cfg.DebounceDelay,
		phase:         cfg.Phase,
		environment:   environment,
		publisher:     publisher,
		logger:        logger.With(log.Component("propwatcher")),
		pending:       make(map[string]struct{}),
	}
}

// Phase returns the configured lifecycle phase.
func (p *Plugin) Phase() int { return p.phase }

// AutoStartup reports that the watcher starts with the container.
func (p *Plugin) AutoStartup() bool { return true }

// IsRunning reports whether the watch loop is active.
func (p *Plugin) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

// Start begins watching the configured files. A watcher with no paths
// starts successfully and does nothing.
func (p *Plugin) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}
	if len(p.paths) == 0 {
		p.logger.Warn("property watcher started with no files to watch")
		p.running = true
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the parent directories. Editors replace files on save, which
	// removes the original watch target.
	dirs := make(map[string]struct{})
	for _, path := range p.paths {
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return err
		}
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.running = true

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	p.logger.Info("property watcher started", log.Int("files", len(p.paths)))
	return nil
}

// Stop terminates the watch loop and waits for it to exit.
func (p *Plugin) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	cancel := p.cancel
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			path, watched := p.matchPath(ev.Name)
			if !watched {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceReload(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("property watcher error", log.Err(err))
		}
	}
}

// matchPath resolves an fsnotify event path against the watched files.
func (p *Plugin) matchPath(name string) (string, bool) {
	base := filepath.Base(name)
	for _, path := range p.paths {
		if filepath.Base(path) == base && filepath.Dir(path) == filepath.Dir(name) {
			return path, true
		}
	}
	return "", false
}

func (p *Plugin) debounceReload(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending[path] = struct{}{}
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, p.reloadPending)
}

func (p *Plugin) reloadPending() {
	p.mu.Lock()
	paths := make([]string, 0, len(p.pending))
	for path := range p.pending {
		paths = append(paths, path)
	}
	p.pending = make(map[string]struct{})
	p.mu.Unlock()

	if len(paths) == 0 {
		return
	}

	reloaded := paths[:0]
	for _, path := range paths {
		if err := p.environment.LoadFile(path); err != nil {
			p.logger.Error("property reload failed", log.String("path", path), log.Err(err))
			continue
		}
		reloaded = append(reloaded, path)
	}
	if len(reloaded) == 0 {
		return
	}

	p.logger.Info("properties reloaded", log.Int("files", len(reloaded)))
	if p.publisher != nil {
		if err := p.publisher.Publish(ChangedEvent{Base: event.NewBase(p), Paths: reloaded}); err != nil {
			p.logger.Error("change event listener failed", log.Err(err))
		}
	}
}

// Ensure Plugin participates in the phased lifecycle.
var _ lifecycle.Phased = (*Plugin)(nil)

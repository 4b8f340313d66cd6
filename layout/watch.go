package layout

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher keeps a layout in sync with its file. Whenever the file is
// written, it is reloaded and the registered callbacks receive the new
// layout. A file that fails to load is reported on Errors and the previous
// layout stays in effect.
type Watcher struct {
	path     string
	debounce time.Duration
	mu       sync.RWMutex
	layout   *Layout
	watcher  *fsnotify.Watcher
	onChange []func(*Layout)
	ctx      context.Context
	cancel   context.CancelFunc
	errChan  chan error
}

// NewWatcher loads the layout at path and prepares to watch it. Call Watch
// to start watching.
func NewWatcher(path string) (*Watcher, error) {
	l, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     path,
		debounce: 100 * time.Millisecond,
		layout:   l,
		ctx:      ctx,
		cancel:   cancel,
		errChan:  make(chan error, 1),
	}, nil
}

// Layout returns the current layout.
func (w *Watcher) Layout() *Layout {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.layout
}

// OnChange registers a callback invoked after each successful reload.
// Reloads and callbacks run one after another on the watcher's goroutine.
// Register callbacks before Watch.
func (w *Watcher) OnChange(cb func(*Layout)) {
	w.onChange = append(w.onChange, cb)
}

// Errors returns a channel for reload and watch errors.
func (w *Watcher) Errors() <-chan error {
	return w.errChan
}

// Done is closed when the watcher is closed.
func (w *Watcher) Done() <-chan struct{} {
	return w.ctx.Done()
}

// Watch starts watching the layout file.
func (w *Watcher) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// editors often replace files, so the directory is watched
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	w.watcher = watcher
	go w.watchLoop()
	return nil
}

func (w *Watcher) watchLoop() {
	var timer *time.Timer
	var fire <-chan time.Time // nil while no reload is due
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-fire:
			fire = nil
			w.reload()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) reload() {
	if w.ctx.Err() != nil {
		return
	}
	l, err := LoadFile(w.path)
	if err != nil {
		tracer().Errorf("reload of %s failed, keeping previous layout", w.path)
		w.report(fmt.Errorf("reload layout: %w", err))
		return
	}
	w.mu.Lock()
	w.layout = l
	w.mu.Unlock()
	for _, cb := range w.onChange {
		cb(l)
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.errChan <- err:
	default:
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.cancel()
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

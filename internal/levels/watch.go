package levels

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before it is reported.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changed level files under one or more directories.
// Events carries file paths; Errors carries watcher failures. Both channels
// are closed once the watcher stops.
type Watcher struct {
	watcher  *fsnotify.Watcher
	Events   chan string
	Errors   chan error
	closeCh  chan struct{}
	once     sync.Once
	debounce time.Duration
	logger   *log.Logger
}

// NewWatcher starts watching dirs. A nil logger uses the default logger.
func NewWatcher(logger *log.Logger, dirs ...string) (*Watcher, error) {
	return newWatcher(logger, DefaultDebounce, dirs...)
}

func newWatcher(logger *log.Logger, debounce time.Duration, dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	if logger == nil {
		logger = log.Default()
	}
	watcher := &Watcher{
		watcher:  w,
		Events:   make(chan string, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		debounce: debounce,
		logger:   logger,
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// run reports each changed file once it has been quiet for the debounce
// window, so a save made of several writes arrives as one event for the
// finished file.
func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	pending := make(map[string]time.Time) // path -> last event
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !IsLevelFile(event.Name) {
				continue
			}
			w.logger.Debug("level file changed", "path", event.Name, "op", event.Op.String())
			if len(pending) == 0 {
				timer.Reset(w.debounce)
			}
			pending[event.Name] = time.Now()

		case <-timer.C:
			now := time.Now()
			var wait time.Duration
			for path, last := range pending {
				quiet := now.Sub(last)
				if quiet < w.debounce {
					if left := w.debounce - quiet; wait == 0 || left < wait {
						wait = left
					}
					continue
				}
				delete(pending, path)
				select {
				case w.Events <- path:
				case <-w.closeCh:
					return
				}
			}
			if len(pending) > 0 {
				timer.Reset(wait)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			default:
				w.logger.Warn("dropping watcher error", "error", err)
			}
		case <-w.closeCh:
			return
		}
	}
}

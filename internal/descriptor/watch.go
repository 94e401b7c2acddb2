package descriptor

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"

	"building-editor/internal/logger"
)

// Watcher signals when a local descriptor file is written or replaced.
// Remote sources are ignored.
type Watcher struct {
	w       *fsnotify.Watcher
	names   map[string]bool
	changed chan struct{}
	done    chan struct{}
	log     *logger.Logger

	mu      sync.Mutex
	pending map[string]bool
}

// Watch starts watching the directories of the local sources. Changed paths
// accumulate until drained with Pending; each path is reported once per
// drain no matter how many events it produced.
func Watch(sources []string, log *logger.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch descriptors: %w", err)
	}
	w := &Watcher{
		w:       fw,
		names:   make(map[string]bool),
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     log,
		pending: make(map[string]bool),
	}
	dirs := make(map[string]bool)
	for _, src := range sources {
		if IsRemote(src) {
			continue
		}
		p := filepath.Clean(src)
		w.names[p] = true
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		// Watch the directory so editors that save by rename are seen.
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	go w.run()
	return w, nil
}

// Changed is signalled when at least one path is pending.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Pending drains the changed paths, sorted.
func (w *Watcher) Pending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.pending))
	for p := range w.pending {
		out = append(out, p)
	}
	sort.Strings(out)
	w.pending = make(map[string]bool)
	return out
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.w.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			p := filepath.Clean(ev.Name)
			if !w.names[p] {
				continue
			}
			w.mu.Lock()
			w.pending[p] = true
			w.mu.Unlock()
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.log.Warnf("descriptor watch: %v", err)
		}
	}
}

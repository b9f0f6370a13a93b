package automap

import (
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher collects changed files in a set of directories and hands them out
// in batches. A batch is sent once no matching event has arrived for the
// quiet period, so an editor saving a file in several writes yields one
// batch holding the path once.
type Watcher struct {
	// Changes receives sorted, duplicate free path lists. It is closed by
	// Close.
	Changes <-chan []string

	fs      *fsnotify.Watcher
	match   func(path string) bool
	quiet   time.Duration
	changes chan []string
	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewWatcher watches dirs, keeping only the paths match accepts.
// Registry.Watches is the filter for rule directories.
func NewWatcher(match func(path string) bool, quiet time.Duration, dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("automap: watch: %w", err)
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("automap: watch %s: %w", dir, err)
		}
	}

	changes := make(chan []string, 4)
	w := &Watcher{
		Changes: changes,
		fs:      fw,
		match:   match,
		quiet:   quiet,
		changes: changes,
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.stopped
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.stopped)
	defer close(w.changes)

	pending := map[string]bool{}
	flush := time.NewTimer(w.quiet)
	flush.Stop()
	defer flush.Stop()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod || !w.match(ev.Name) {
				continue
			}
			pending[ev.Name] = true
			flush.Reset(w.quiet)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("automap: watch: %v", err)
		case <-flush.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for path := range pending {
				batch = append(batch, path)
			}
			slices.Sort(batch)
			clear(pending)
			select {
			case w.changes <- batch:
			case <-w.stop:
				return
			}
		case <-w.stop:
			return
		}
	}
}

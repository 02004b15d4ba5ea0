package levels

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reports level files that changed on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches dirs and every directory below them.
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return w.Add(p)
			}
			return nil
		})
		if err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
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
		<-w.done
	})
	return err
}

// pending is a path waiting for its writes to settle. gen tells a fired
// timer apart from one that was superseded by a later event.
type pending struct {
	timer *time.Timer
	gen   int
}

type settled struct {
	path string
	gen  int
}

// run forwards a level path once no event has touched it for debounce, so
// a save that truncates then writes is reported after the final write.
func (w *Watcher) run() {
	waiting := make(map[string]*pending)
	ready := make(chan settled)

	defer func() {
		for _, p := range waiting {
			p.timer.Stop()
		}
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	schedule := func(path string) {
		p, ok := waiting[path]
		if !ok {
			p = &pending{}
			waiting[path] = p
		} else {
			p.timer.Stop()
		}
		p.gen++
		gen := p.gen
		p.timer = time.AfterFunc(debounce, func() {
			select {
			case ready <- settled{path: path, gen: gen}:
			case <-w.closeCh:
			}
		})
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != 0 {
				w.addDir(event.Name, schedule)
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !IsLevelFile(event.Name) {
				continue
			}
			schedule(event.Name)

		case s := <-ready:
			p, ok := waiting[s.path]
			if !ok || p.gen != s.gen {
				continue
			}
			delete(waiting, s.path)
			select {
			case w.Events <- s.path:
			case <-w.closeCh:
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)

		case <-w.closeCh:
			return
		}
	}
}

// addDir starts watching a directory created after NewWatcher, with its
// subdirectories. Level files already inside are reported too.
func (w *Watcher) addDir(path string, schedule func(string)) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(p)
		}
		if IsLevelFile(p) {
			schedule(p)
		}
		return nil
	})
	if err != nil {
		w.report(err)
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}

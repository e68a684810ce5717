package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file on change and delivers the parsed result.
// Editors fire several filesystem events per save, so changes within the
// debounce window collapse into one reload.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Configs chan *Config
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

const reloadDebounce = 100 * time.Millisecond

func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors that replace the file on save would
	// otherwise drop the watch with the old inode.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    path,
		Configs: make(chan *Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		close(w.Configs)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	var lastReload time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !sameFile(event.Name, w.path) {
				continue
			}
			now := time.Now()
			if now.Sub(lastReload) < reloadDebounce {
				continue
			}
			lastReload = now

			cfg, err := Load(w.path)
			if err != nil {
				w.deliverError(err)
				continue
			}
			w.deliver(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.deliverError(err)
		case <-w.closeCh:
			return
		}
	}
}

// deliver replaces a pending config so the consumer always picks up the
// newest one.
func (w *Watcher) deliver(cfg *Config) {
	select {
	case w.Configs <- cfg:
	default:
		select {
		case <-w.Configs:
		default:
		}
		w.Configs <- cfg
	}
}

func (w *Watcher) deliverError(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}

func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	return strings.EqualFold(filepath.Base(a), filepath.Base(b))
}

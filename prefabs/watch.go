package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce is the minimum gap between two reports of one file.
const reloadDebounce = 100 * time.Millisecond

// FileKind tells the reload path how to apply a changed file.
type FileKind uint8

const (
	KindPrefab FileKind = iota + 1
	KindSettings
)

func (k FileKind) String() string {
	switch k {
	case KindPrefab:
		return "prefab"
	case KindSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// Classify reports the kind of path, or false when a change to it is not
// reloadable.
func Classify(path string) (FileKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return KindPrefab, true
	case ".toml":
		return KindSettings, true
	default:
		return 0, false
	}
}

// Change is a reloadable file that was written, created, renamed or removed.
type Change struct {
	Path string
	Kind FileKind
}

// debouncer passes at most one report per path per window.
type debouncer struct {
	window time.Duration
	last   map[string]time.Time
}

func (d *debouncer) allow(path string, now time.Time) bool {
	if t, ok := d.last[path]; ok && now.Sub(t) < d.window {
		return false
	}
	d.last[path] = now
	return true
}

// Watcher reports changed prefab and settings files. The channels are
// closed once the watcher stops, after Close or when fsnotify gives up.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Errors)
	defer close(w.Changes)

	d := debouncer{window: reloadDebounce, last: make(map[string]time.Time)}
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			change, ok := toChange(event)
			if !ok || !d.allow(change.Path, time.Now()) {
				continue
			}
			select {
			case w.Changes <- change:
			case <-w.stop:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.stop:
				return
			}
		case <-w.stop:
			return
		}
	}
}

func toChange(event fsnotify.Event) (Change, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return Change{}, false
	}
	kind, ok := Classify(event.Name)
	if !ok {
		return Change{}, false
	}
	return Change{Path: event.Name, Kind: kind}, true
}

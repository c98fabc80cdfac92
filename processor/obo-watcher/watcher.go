// Package obowatcher watches directories for OBO document changes.
package obowatcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// eventChannelBuffer is the size of the watch event channel.
	eventChannelBuffer = 100

	defaultDebounce = 500 * time.Millisecond
)

// Config configures document watching.
type Config struct {
	// Debounce is how long to wait for more changes before emitting.
	Debounce time.Duration

	// Extensions lists file extensions to watch (default [".obo"]).
	Extensions []string

	// ExcludeDirs lists directory names to skip.
	ExcludeDirs []string
}

// Operation indicates the type of file operation.
type Operation string

// OpCreate, OpModify and OpDelete enumerate the watch operations.
const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Event is a settled change to one document.
type Event struct {
	// Path is the absolute file path.
	Path string

	// Operation is the type of change.
	Operation Operation
}

// Watcher watches directories for document changes and emits events once
// a file has been quiet for the debounce delay and its content changed.
type Watcher struct {
	debounce   time.Duration
	roots      []string
	watcher    *fsnotify.Watcher
	logger     *slog.Logger
	extensions map[string]bool
	excludes   map[string]bool

	// files holds the absolute paths of single-file roots. fileDirs holds
	// their directories when no directory root covers them; only the root
	// files are reported from those.
	files    map[string]bool
	fileDirs map[string]bool

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	hashMu sync.RWMutex
	hashes map[string]string

	events chan Event

	droppedEvents atomic.Int64
}

// New creates a watcher over roots. Each root may be a directory or a
// single file.
func New(config Config, roots []string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	extensions := make(map[string]bool)
	if len(config.Extensions) == 0 {
		extensions[".obo"] = true
	}
	for _, ext := range config.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[strings.ToLower(ext)] = true
	}

	excludes := map[string]bool{".git": true}
	for _, dir := range config.ExcludeDirs {
		excludes[dir] = true
	}

	debounce := config.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	return &Watcher{
		debounce:   debounce,
		roots:      roots,
		watcher:    fsw,
		logger:     logger,
		extensions: extensions,
		excludes:   excludes,
		files:      make(map[string]bool),
		fileDirs:   make(map[string]bool),
		pending:    make(map[string]fsnotify.Op),
		hashes:     make(map[string]string),
		events:     make(chan Event, eventChannelBuffer),
	}, nil
}

// Events returns the channel of watch events. It is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start adds the watches and begins processing in the background.
func (w *Watcher) Start(ctx context.Context) error {
	var dirRoots []string
	for _, root := range w.roots {
		info, err := os.Stat(root)
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			w.recordHash(abs)
			w.files[abs] = true
			continue
		}
		dirRoots = append(dirRoots, abs)
		if err := w.addWatchesRecursive(root); err != nil {
			return err
		}
	}

	for file := range w.files {
		dir := filepath.Dir(file)
		if w.fileDirs[dir] || coveredBy(dir, dirRoots) {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
		w.fileDirs[dir] = true
	}

	go w.processEvents(ctx)

	w.logger.Info("Document watcher started",
		"roots", w.roots,
		"debounce", w.debounce)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// DroppedEvents returns the number of events dropped due to channel overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			if w.watched(path) {
				abs, _ := filepath.Abs(path)
				w.recordHash(abs)
			}
			return nil
		}

		base := filepath.Base(path)
		if w.excludes[base] || (strings.HasPrefix(base, ".") && base != ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// coveredBy reports whether dir lies inside one of roots.
func coveredBy(dir string, roots []string) bool {
	for _, root := range roots {
		if dir == root || strings.HasPrefix(dir, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// allowed drops events for siblings of single-file roots.
func (w *Watcher) allowed(path string) bool {
	if len(w.fileDirs) == 0 {
		return true
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return w.files[abs] || !w.fileDirs[filepath.Dir(abs)]
}

func (w *Watcher) watched(path string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name
	if !w.allowed(path) {
		return
	}
	if !w.watched(path) {
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				base := filepath.Base(path)
				if !w.excludes[base] && !strings.HasPrefix(base, ".") {
					if err := w.watcher.Add(path); err != nil {
						w.logger.Warn("Failed to watch new directory", "path", path, "error", err)
					}
				}
			}
		}
		return
	}

	w.pendingMu.Lock()
	w.pending[path] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Document change detected", "path", path, "op", event.Op.String())
}

// flushPending emits events for changes that survived the debounce window.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		abs, _ := filepath.Abs(path)
		content, err := os.ReadFile(abs)
		if err != nil {
			if os.IsNotExist(err) || op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
				w.hashMu.Lock()
				delete(w.hashes, abs)
				w.hashMu.Unlock()
				w.sendEvent(Event{Path: abs, Operation: OpDelete})
				continue
			}
			w.logger.Warn("Failed to read changed document", "path", abs, "error", err)
			continue
		}

		hash := contentHash(content)
		w.hashMu.Lock()
		old, had := w.hashes[abs]
		w.hashes[abs] = hash
		w.hashMu.Unlock()
		if had && old == hash {
			continue
		}

		if had {
			w.sendEvent(Event{Path: abs, Operation: OpModify})
		} else {
			w.sendEvent(Event{Path: abs, Operation: OpCreate})
		}
	}
}

func (w *Watcher) recordHash(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		return
	}
	w.hashMu.Lock()
	w.hashes[path] = contentHash(content)
	w.hashMu.Unlock()
}

func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event", "path", event.Path, "op", event.Operation)
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("Event channel full, dropping event",
			"path", event.Path,
			"total_dropped", dropped)
	}
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

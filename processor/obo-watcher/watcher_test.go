package obowatcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

var quiet = slog.New(slog.DiscardHandler)

func TestNew_Defaults(t *testing.T) {
	w, err := New(Config{Extensions: []string{"OBO", ".owl"}}, []string{t.TempDir()}, quiet)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Stop()

	if !w.extensions[".obo"] || !w.extensions[".owl"] {
		t.Errorf("expected .obo and .owl to be watched, got %v", w.extensions)
	}
	if !w.excludes[".git"] {
		t.Error("expected .git to be excluded")
	}
	if w.debounce != defaultDebounce {
		t.Errorf("expected default debounce, got %v", w.debounce)
	}
}

func drain(w *Watcher) []Event {
	var out []Event
	for {
		select {
		case e := <-w.events:
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestFlushPending(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.obo")
	if err := os.WriteFile(path, []byte("format-version: 1.2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(Config{}, []string{dir}, quiet)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Stop()
	ctx := context.Background()

	w.pending[path] = fsnotify.Create
	w.flushPending(ctx)
	events := drain(w)
	if len(events) != 1 || events[0].Operation != OpCreate {
		t.Fatalf("expected one create event, got %v", events)
	}

	w.pending[path] = fsnotify.Write
	w.flushPending(ctx)
	if events := drain(w); len(events) != 0 {
		t.Errorf("unchanged content should not emit, got %v", events)
	}

	if err := os.WriteFile(path, []byte("format-version: 1.4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	w.pending[path] = fsnotify.Write
	w.flushPending(ctx)
	events = drain(w)
	if len(events) != 1 || events[0].Operation != OpModify {
		t.Fatalf("expected one modify event, got %v", events)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	w.pending[path] = fsnotify.Remove
	w.flushPending(ctx)
	events = drain(w)
	if len(events) != 1 || events[0].Operation != OpDelete {
		t.Fatalf("expected one delete event, got %v", events)
	}
}

func TestHandleFSEvent_IgnoresOtherExtensions(t *testing.T) {
	w, err := New(Config{}, []string{t.TempDir()}, quiet)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Stop()

	w.handleFSEvent(fsnotify.Event{Name: "/tmp/notes.txt", Op: fsnotify.Write})
	w.handleFSEvent(fsnotify.Event{Name: "/tmp/go.obo", Op: fsnotify.Write})

	if len(w.pending) != 1 {
		t.Errorf("expected only the .obo file to be pending, got %v", w.pending)
	}
}

func TestWatcher_EmitsModify(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "go.obo")
	if err := os.WriteFile(path, []byte("ontology: go\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(Config{Debounce: 50 * time.Millisecond}, []string{dir}, quiet)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}

	if err := os.WriteFile(path, []byte("ontology: go\ndata-version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-w.Events():
		if e.Operation != OpModify {
			t.Errorf("expected modify, got %s", e.Operation)
		}
		abs, _ := filepath.Abs(path)
		if e.Path != abs {
			t.Errorf("expected path %s, got %s", abs, e.Path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}

func TestHandleFSEvent_FileRootIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "go.obo")
	sibling := filepath.Join(dir, "pato.obo")
	for _, p := range []string{target, sibling} {
		if err := os.WriteFile(p, []byte("ontology: x\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	w, err := New(Config{Debounce: time.Hour}, []string{target}, quiet)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}

	w.handleFSEvent(fsnotify.Event{Name: sibling, Op: fsnotify.Write})
	w.pendingMu.Lock()
	_, siblingPending := w.pending[sibling]
	w.pendingMu.Unlock()
	if siblingPending {
		t.Errorf("expected sibling %s to be ignored", sibling)
	}

	w.handleFSEvent(fsnotify.Event{Name: target, Op: fsnotify.Write})
	w.pendingMu.Lock()
	_, targetPending := w.pending[target]
	w.pendingMu.Unlock()
	if !targetPending {
		t.Errorf("expected %s to be pending", target)
	}
}

func TestWatcher_FileRootSiblingEmitsNothing(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "go.obo")
	if err := os.WriteFile(target, []byte("ontology: go\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(Config{Debounce: 50 * time.Millisecond}, []string{target}, quiet)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}

	sibling := filepath.Join(dir, "pato.obo")
	if err := os.WriteFile(sibling, []byte("ontology: pato\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-w.Events():
		t.Fatalf("expected no event for sibling file, got %s %s", e.Operation, e.Path)
	case <-time.After(300 * time.Millisecond):
	}

	if err := os.WriteFile(target, []byte("ontology: go\ndata-version: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-w.Events():
		abs, _ := filepath.Abs(target)
		if e.Path != abs || e.Operation != OpModify {
			t.Errorf("expected modify of %s, got %s %s", abs, e.Operation, e.Path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}

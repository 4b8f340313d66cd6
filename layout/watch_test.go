package layout

import (
	"os"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestWatcherReloads(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tifinagh.layout")
	defer teardown()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "live.toml")
	if err := os.WriteFile(path, []byte("[latin]\nz = \"ⵣ\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if g, _ := w.Layout().Latin.Lookup("z"); g != "ⵣ" {
		t.Fatalf("expected initial z → ⵣ, got %q", g)
	}
	changed := make(chan *Layout, 4)
	w.OnChange(func(l *Layout) { changed <- l })
	if err := w.Watch(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("[latin]\nz = \"ⵥ\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case l := <-changed:
		if g, _ := l.Latin.Lookup("z"); g != "ⵥ" {
			t.Fatalf("expected reloaded z → ⵥ, got %q", g)
		}
	case err := <-w.Errors():
		t.Fatalf("unexpected watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("layout was not reloaded")
	}
	if g, _ := w.Layout().Latin.Lookup("z"); g != "ⵥ" {
		t.Fatalf("expected current layout to be the reloaded one, got %q", g)
	}
}

func TestWatcherKeepsLayoutOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.toml")
	if err := os.WriteFile(path, []byte("[latin]\nz = \"ⵣ\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Watch(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[latin]\nz = \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-w.Errors():
		if err == nil {
			t.Fatalf("expected a reload error")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no reload error reported")
	}
	if g, _ := w.Layout().Latin.Lookup("z"); g != "ⵣ" {
		t.Fatalf("expected previous layout to stay, got %q", g)
	}
}

func TestNewWatcherMissingFile(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Fatalf("expected error for missing layout file")
	}
}

func TestWatcherReloadsInOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.toml")
	if err := os.WriteFile(path, []byte("[latin]\nz = \"0\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	var running, overlaps int32
	changed := make(chan string, 64)
	w.OnChange(func(l *Layout) {
		if atomic.AddInt32(&running, 1) > 1 {
			atomic.AddInt32(&overlaps, 1)
		}
		time.Sleep(20 * time.Millisecond)
		g, _ := l.Latin.Lookup("z")
		atomic.AddInt32(&running, -1)
		changed <- g
	})
	if err := w.Watch(); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 5; i++ {
		content := fmt.Sprintf("[latin]\nz = \"%d\"\n", i)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(120 * time.Millisecond)
	}
	deadline := time.After(5 * time.Second)
	for {
		select {
		case g := <-changed:
			if g != "5" {
				continue
			}
			if n := atomic.LoadInt32(&overlaps); n != 0 {
				t.Fatalf("expected reloads one after another, %d overlapped", n)
			}
			if cur, _ := w.Layout().Latin.Lookup("z"); cur != "5" {
				t.Fatalf("expected last written layout to stay current, got %q", cur)
			}
			return
		case <-deadline:
			t.Fatalf("last write was not reloaded")
		}
	}
}

package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("before"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("after"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Events():
	case err := <-w.Errors():
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestReportsRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("before"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	// Save the way most editors do: write a sibling and rename it over.
	tmp := filepath.Join(dir, "doc.txt.tmp")
	if err := os.WriteFile(tmp, []byte("after"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Events():
	case err := <-w.Errors():
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Events():
		t.Fatal("expected no notification for a sibling file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("0"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte{byte('0' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-w.Events():
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}
	// The burst coalesces into at most one more pending notification.
	time.Sleep(2 * debounceWindow)
	n := 0
	for {
		select {
		case <-w.Events():
			n++
			continue
		default:
		}
		break
	}
	if n > 1 {
		t.Errorf("expected the burst debounced, got %d extra notifications", n)
	}
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, err := store.Save(context.Background(), "clip.mp3", []byte("mp3data"), "audio/mpeg")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != filepath.Join(dir, "clip.mp3") {
		t.Fatalf("unexpected locator %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "mp3data" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestLocalStoreStripsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, err := store.Save(context.Background(), "../../evil.mp3", []byte("x"), "audio/mpeg")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != filepath.Join(dir, "evil.mp3") {
		t.Fatalf("expected name to be flattened into the store dir, got %q", path)
	}
}

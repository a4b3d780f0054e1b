package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func writeStray(path string) error {
	return os.WriteFile(path, []byte("not a pipeline"), 0o644)
}

func openFileStore(t *testing.T, dir string) *FileStore {
	t.Helper()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return store
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	store := openFileStore(t, t.TempDir())

	id, err := store.Save("word_count", "counts words", sampleDoc)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	p, err := store.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "word_count" || p.Description != "counts words" {
		t.Errorf("loaded pipeline = %+v", p)
	}
	if string(p.Data) != string(sampleDoc) {
		t.Errorf("data changed: %s", p.Data)
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	id, err := openFileStore(t, dir).Save("persistent", "", sampleDoc)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A second store over the same directory models a new CLI invocation.
	reopened := openFileStore(t, dir)
	if !reopened.Exists(id) {
		t.Fatal("pipeline not visible after reopening the store")
	}
	p, err := reopened.Load(id)
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if p.Name != "persistent" {
		t.Errorf("loaded pipeline = %+v", p)
	}
}

func TestFileStore_Validation(t *testing.T) {
	store := openFileStore(t, t.TempDir())

	if _, err := store.Save("", "", sampleDoc); err == nil {
		t.Error("empty name accepted")
	}
	if _, err := store.Save("a", "", nil); err == nil {
		t.Error("empty data accepted")
	}
	if _, err := store.Save("a", "", []byte(`{broken`)); err == nil {
		t.Error("malformed JSON accepted")
	}
}

func TestFileStore_UpdateDeleteList(t *testing.T) {
	store := openFileStore(t, t.TempDir())
	id, err := store.Save("v1", "", sampleDoc)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Update(id, "v2", "updated", sampleDoc); err != nil {
		t.Fatalf("Update: %v", err)
	}
	p, err := store.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "v2" || p.Description != "updated" {
		t.Errorf("update not applied: %+v", p)
	}
	if err := store.Update("missing", "x", "", sampleDoc); err == nil {
		t.Error("updating a missing pipeline succeeded")
	}

	if got := len(store.List()); got != 1 {
		t.Errorf("List length = %d, want 1", got)
	}

	if err := store.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.Exists(id) {
		t.Error("pipeline still exists after delete")
	}
	if err := store.Delete(id); err == nil {
		t.Error("double delete succeeded")
	}
	if got := len(store.List()); got != 0 {
		t.Errorf("List length after delete = %d, want 0", got)
	}
}

func TestFileStore_ListSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := openFileStore(t, dir)
	if _, err := store.Save("a", "", sampleDoc); err != nil {
		t.Fatal(err)
	}
	// A stray non-pipeline file must not break the listing.
	if err := writeStray(filepath.Join(dir, "notes.txt")); err != nil {
		t.Fatal(err)
	}
	if got := len(store.List()); got != 1 {
		t.Errorf("List length = %d, want 1", got)
	}
}

func TestFileStore_RequiresDirectory(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Error("empty directory accepted")
	}
}

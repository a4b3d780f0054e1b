package storage

import (
	"encoding/json"
	"testing"
)

var sampleDoc = json.RawMessage(`{"pipelines":[{"name":"a","source":{"input":"i"}}],"result":"a"}`)

func TestSaveAndLoad(t *testing.T) {
	store := NewInMemoryStore()

	id, err := store.Save("word_count", "counts words", sampleDoc)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned empty ID")
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
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestSave_Validation(t *testing.T) {
	store := NewInMemoryStore()

	if _, err := store.Save("", "", sampleDoc); err == nil {
		t.Error("empty name accepted")
	}
	if _, err := store.Save("a", "", nil); err == nil {
		t.Error("empty data accepted")
	}
	if _, err := store.Save("a", "", json.RawMessage(`{broken`)); err == nil {
		t.Error("malformed JSON accepted")
	}
}

func TestUpdate(t *testing.T) {
	store := NewInMemoryStore()
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
}

func TestDeleteAndExists(t *testing.T) {
	store := NewInMemoryStore()
	id, err := store.Save("a", "", sampleDoc)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !store.Exists(id) {
		t.Error("Exists returned false for stored pipeline")
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
	if _, err := store.Load(id); err == nil {
		t.Error("loading a deleted pipeline succeeded")
	}
}

func TestList(t *testing.T) {
	store := NewInMemoryStore()
	if len(store.List()) != 0 {
		t.Error("fresh store lists entries")
	}
	if _, err := store.Save("a", "", sampleDoc); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save("b", "", sampleDoc); err != nil {
		t.Fatal(err)
	}
	if got := len(store.List()); got != 2 {
		t.Errorf("List length = %d, want 2", got)
	}
}

func TestLoad_ReturnsCopy(t *testing.T) {
	store := NewInMemoryStore()
	id, err := store.Save("a", "", sampleDoc)
	if err != nil {
		t.Fatal(err)
	}
	p, err := store.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	p.Name = "mutated"

	again, err := store.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if again.Name != "a" {
		t.Error("mutating a loaded pipeline changed the stored entry")
	}
}

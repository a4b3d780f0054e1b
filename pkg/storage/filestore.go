package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileStore implements Store over a directory, one JSON file per
// pipeline, so stored pipelines survive process restarts. It is the
// backend of the CLI's save/list/run-by-ID modes.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore opens a file-backed pipeline store rooted at dir,
// creating the directory when it does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save creates a new pipeline file and returns its ID
func (s *FileStore) Save(name, description string, data json.RawMessage) (string, error) {
	if err := validateEntry(name, data); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	now := time.Now()
	p := &Pipeline{
		ID:          id,
		Name:        name,
		Description: description,
		Data:        data,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.write(p); err != nil {
		return "", err
	}
	return id, nil
}

// Update rewrites an existing pipeline file
func (s *FileStore) Update(id, name, description string, data json.RawMessage) error {
	if err := validateEntry(name, data); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.read(id)
	if err != nil {
		return err
	}
	existing.Name = name
	existing.Description = description
	existing.Data = data
	existing.UpdatedAt = time.Now()
	return s.write(existing)
}

// Load retrieves a pipeline by ID
func (s *FileStore) Load(id string) (*Pipeline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(id)
}

// Delete removes a pipeline by ID
func (s *FileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return fmt.Errorf("pipeline not found: %s", id)
	}
	return err
}

// List returns all pipeline summaries. Files that do not parse as
// pipelines are skipped rather than failing the listing.
func (s *FileStore) List() []PipelineSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	summaries := make([]PipelineSummary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		p, err := s.read(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		summaries = append(summaries, PipelineSummary{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return summaries
}

// Exists checks if a pipeline exists
func (s *FileStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.path(id))
	return err == nil
}

func (s *FileStore) read(id string) (*Pipeline, error) {
	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("pipeline not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading pipeline %s: %w", id, err)
	}
	var p Pipeline
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("reading pipeline %s: %w", id, err)
	}
	return &p, nil
}

func (s *FileStore) write(p *Pipeline) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding pipeline %s: %w", p.ID, err)
	}
	if err := os.WriteFile(s.path(p.ID), data, 0o644); err != nil {
		return fmt.Errorf("writing pipeline %s: %w", p.ID, err)
	}
	return nil
}

package storage

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Pipeline represents a stored pipeline document with metadata
type Pipeline struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Data        json.RawMessage `json:"data"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PipelineSummary represents a lightweight pipeline reference for listing
type PipelineSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Store defines the interface for pipeline storage operations
type Store interface {
	// Save creates a pipeline and returns its ID
	Save(name, description string, data json.RawMessage) (string, error)

	// Update updates an existing pipeline
	Update(id, name, description string, data json.RawMessage) error

	// Load retrieves a pipeline by ID
	Load(id string) (*Pipeline, error)

	// Delete removes a pipeline by ID
	Delete(id string) error

	// List returns all pipeline summaries
	List() []PipelineSummary

	// Exists checks if a pipeline exists
	Exists(id string) bool
}

// validateEntry checks the fields every store write requires. The
// document must at least be valid JSON; full validation happens at
// parse time.
func validateEntry(name string, data json.RawMessage) error {
	if name == "" {
		return fmt.Errorf("pipeline name is required")
	}
	if len(data) == 0 {
		return fmt.Errorf("pipeline data is required")
	}
	var temp interface{}
	if err := json.Unmarshal(data, &temp); err != nil {
		return fmt.Errorf("invalid pipeline data: %w", err)
	}
	return nil
}

// InMemoryStore implements Store using in-memory storage
type InMemoryStore struct {
	pipelines map[string]*Pipeline
	mu        sync.RWMutex
}

// NewInMemoryStore creates a new in-memory pipeline store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		pipelines: make(map[string]*Pipeline),
	}
}

// Save creates a new pipeline and returns its ID
func (s *InMemoryStore) Save(name, description string, data json.RawMessage) (string, error) {
	if err := validateEntry(name, data); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	now := time.Now()
	s.pipelines[id] = &Pipeline{
		ID:          id,
		Name:        name,
		Description: description,
		Data:        data,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return id, nil
}

// Update updates an existing pipeline
func (s *InMemoryStore) Update(id, name, description string, data json.RawMessage) error {
	if err := validateEntry(name, data); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.pipelines[id]
	if !ok {
		return fmt.Errorf("pipeline not found: %s", id)
	}
	existing.Name = name
	existing.Description = description
	existing.Data = data
	existing.UpdatedAt = time.Now()
	return nil
}

// Load retrieves a pipeline by ID
func (s *InMemoryStore) Load(id string) (*Pipeline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pipelines[id]
	if !ok {
		return nil, fmt.Errorf("pipeline not found: %s", id)
	}
	// Return a copy so callers cannot mutate the stored entry.
	clone := *p
	return &clone, nil
}

// Delete removes a pipeline by ID
func (s *InMemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pipelines[id]; !ok {
		return fmt.Errorf("pipeline not found: %s", id)
	}
	delete(s.pipelines, id)
	return nil
}

// List returns all pipeline summaries
func (s *InMemoryStore) List() []PipelineSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]PipelineSummary, 0, len(s.pipelines))
	for _, p := range s.pipelines {
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
func (s *InMemoryStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.pipelines[id]
	return ok
}

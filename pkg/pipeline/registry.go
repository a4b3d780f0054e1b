package pipeline

import (
	"fmt"
	"regexp"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dvpolyakov/computational-graph/pkg/operator"
	"github.com/dvpolyakov/computational-graph/pkg/record"
)

// Registry maps callable names used in pipeline documents to Go
// functions. It is safe for concurrent use.
type Registry struct {
	mappers  map[string]operator.Mapper
	folders  map[string]operator.Folder
	reducers map[string]operator.Reducer
	mu       sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		mappers:  make(map[string]operator.Mapper),
		folders:  make(map[string]operator.Folder),
		reducers: make(map[string]operator.Reducer),
	}
}

// RegisterMapper adds a mapper under the given name.
// Returns an error if the name is taken.
func (r *Registry) RegisterMapper(name string, m operator.Mapper) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.mappers[name]; exists {
		return fmt.Errorf("%w: mapper %q", ErrCallableAlreadyRegistered, name)
	}
	r.mappers[name] = m
	return nil
}

// RegisterFolder adds a folder under the given name.
// Returns an error if the name is taken.
func (r *Registry) RegisterFolder(name string, f operator.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.folders[name]; exists {
		return fmt.Errorf("%w: folder %q", ErrCallableAlreadyRegistered, name)
	}
	r.folders[name] = f
	return nil
}

// RegisterReducer adds a reducer under the given name.
// Returns an error if the name is taken.
func (r *Registry) RegisterReducer(name string, red operator.Reducer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.reducers[name]; exists {
		return fmt.Errorf("%w: reducer %q", ErrCallableAlreadyRegistered, name)
	}
	r.reducers[name] = red
	return nil
}

// MustRegisterMapper registers a mapper and panics on error. Useful for
// building registries at program start.
func (r *Registry) MustRegisterMapper(name string, m operator.Mapper) {
	if err := r.RegisterMapper(name, m); err != nil {
		panic(err)
	}
}

// MustRegisterFolder registers a folder and panics on error
func (r *Registry) MustRegisterFolder(name string, f operator.Folder) {
	if err := r.RegisterFolder(name, f); err != nil {
		panic(err)
	}
}

// MustRegisterReducer registers a reducer and panics on error
func (r *Registry) MustRegisterReducer(name string, red operator.Reducer) {
	if err := r.RegisterReducer(name, red); err != nil {
		panic(err)
	}
}

// Mapper looks up a mapper by name
func (r *Registry) Mapper(name string) (operator.Mapper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.mappers[name]
	if !ok {
		return nil, fmt.Errorf("%w: mapper %q", ErrUnknownCallable, name)
	}
	return m, nil
}

// Folder looks up a folder by name
func (r *Registry) Folder(name string) (operator.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.folders[name]
	if !ok {
		return nil, fmt.Errorf("%w: folder %q", ErrUnknownCallable, name)
	}
	return f, nil
}

// Reducer looks up a reducer by name
func (r *Registry) Reducer(name string) (operator.Reducer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	red, ok := r.reducers[name]
	if !ok {
		return nil, fmt.Errorf("%w: reducer %q", ErrUnknownCallable, name)
	}
	return red, nil
}

// ============================================================================
// Builtin callables
// ============================================================================

// wordPattern matches runs of letters, digits and underscores across
// scripts.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// lowercase folds case across scripts, not just ASCII
var lowercase = cases.Lower(language.Und)

// SplitWords is the builtin "split_words" mapper: it tokenizes the text
// field and emits one {doc_id, word} row per word, lowercased.
func SplitWords(row record.Row) ([]record.Row, error) {
	text, err := row.Field("text")
	if err != nil {
		return nil, err
	}
	docID, err := row.Field("doc_id")
	if err != nil {
		return nil, err
	}
	s, ok := text.AsString()
	if !ok {
		return nil, fmt.Errorf("field \"text\" holds %s, want string", text.Kind())
	}
	words := wordPattern.FindAllString(s, -1)
	out := make([]record.Row, 0, len(words))
	for _, w := range words {
		out = append(out, record.Row{
			"doc_id": docID,
			"word":   record.String(lowercase.String(w)),
		})
	}
	return out, nil
}

// CountRows is the builtin "count_rows" folder: it increments every
// integer field of the accumulator once per row, so an initial
// accumulator of {"docs_count": 0} counts the stream.
func CountRows(acc record.Row, _ record.Row) (record.Row, error) {
	out := acc.Clone()
	for k, v := range out {
		if n, ok := v.AsInt(); ok {
			out[k] = record.Int(n + 1)
		}
	}
	return out, nil
}

// FirstOfGroup is the builtin "first_of_group" reducer: it keeps one
// representative row per group, which deduplicates a sorted stream.
func FirstOfGroup(group []record.Row) ([]record.Row, error) {
	return []record.Row{group[0]}, nil
}

// CountGroup is the builtin "count_group" reducer: it emits the first
// row of the group extended with a count field holding the group size.
func CountGroup(group []record.Row) ([]record.Row, error) {
	out := group[0].Clone()
	out["count"] = record.Int(int64(len(group)))
	return []record.Row{out}, nil
}

// DefaultRegistry returns a registry preloaded with the builtin
// callables: split_words, count_rows, first_of_group and count_group.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegisterMapper("split_words", SplitWords)
	r.MustRegisterFolder("count_rows", CountRows)
	r.MustRegisterReducer("first_of_group", FirstOfGroup)
	r.MustRegisterReducer("count_group", CountGroup)
	return r
}

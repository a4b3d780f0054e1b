package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/dvpolyakov/computational-graph/pkg/graph"
	"github.com/dvpolyakov/computational-graph/pkg/operator"
	"github.com/dvpolyakov/computational-graph/pkg/record"
)

// Document is a parsed pipeline document
type Document struct {
	Pipelines []PipelineDef `json:"pipelines"`
	Result    string        `json:"result"`
}

// PipelineDef declares one chain: its name, source and operation list
type PipelineDef struct {
	Name       string         `json:"name"`
	Source     SourceDef      `json:"source"`
	Operations []OperationDef `json:"operations"`
}

// SourceDef names either an external input or another pipeline
type SourceDef struct {
	Input    string `json:"input,omitempty"`
	Pipeline string `json:"pipeline,omitempty"`
}

// OperationDef declares one operation of a chain. Which fields apply
// depends on Type: map takes a mapper name, fold a folder name and an
// initial accumulator, sort and reduce take keys, join takes the target
// pipeline, a strategy and an optional key list.
type OperationDef struct {
	Type     string          `json:"type"`
	Mapper   string          `json:"mapper,omitempty"`
	Folder   string          `json:"folder,omitempty"`
	Reducer  string          `json:"reducer,omitempty"`
	Initial  json.RawMessage `json:"initial,omitempty"`
	Keys     []string        `json:"keys,omitempty"`
	On       string          `json:"on,omitempty"`
	Strategy string          `json:"strategy,omitempty"`
	Key      []string        `json:"key,omitempty"`
}

// Parse validates raw JSON against the document schema and decodes it.
// Duplicate pipeline names and an unknown result reference are rejected
// here; callable names are resolved later by Build.
func Parse(data []byte) (*Document, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline document: %w", err)
	}

	seen := make(map[string]bool, len(doc.Pipelines))
	for _, def := range doc.Pipelines {
		if seen[def.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePipeline, def.Name)
		}
		seen[def.Name] = true
	}
	if !seen[doc.Result] {
		return nil, fmt.Errorf("%w: result %q", ErrUnknownPipeline, doc.Result)
	}
	for _, def := range doc.Pipelines {
		if def.Source.Pipeline != "" && !seen[def.Source.Pipeline] {
			return nil, fmt.Errorf("%w: source %q of pipeline %q",
				ErrUnknownPipeline, def.Source.Pipeline, def.Name)
		}
		for _, op := range def.Operations {
			if op.Type == "join" && !seen[op.On] {
				return nil, fmt.Errorf("%w: join target %q of pipeline %q",
					ErrUnknownPipeline, op.On, def.Name)
			}
		}
	}

	return &doc, nil
}

// Build wires the document into chains, resolving callable names
// against the registry. It returns the final chain (named by the
// document's result field) and every chain by name.
func Build(doc *Document, reg *Registry) (*graph.Chain, map[string]*graph.Chain, error) {
	chains := make(map[string]*graph.Chain, len(doc.Pipelines))

	// Chains sourced from other pipelines can only be constructed after
	// their source; iterate until every definition resolved. A pass
	// without progress means the sources form a cycle.
	remaining := len(doc.Pipelines)
	for remaining > 0 {
		progress := false
		for _, def := range doc.Pipelines {
			if _, built := chains[def.Name]; built {
				continue
			}
			switch {
			case def.Source.Input != "":
				chains[def.Name] = graph.FromInput(def.Source.Input).WithName(def.Name)
			default:
				src, ok := chains[def.Source.Pipeline]
				if !ok {
					continue
				}
				chains[def.Name] = graph.FromChain(src).WithName(def.Name)
			}
			remaining--
			progress = true
		}
		if !progress {
			return nil, nil, fmt.Errorf("%w: pipeline sources form a cycle", ErrUnresolvedSource)
		}
	}

	for _, def := range doc.Pipelines {
		chain := chains[def.Name]
		for i, opDef := range def.Operations {
			op, err := buildOperation(opDef, reg, chains)
			if err != nil {
				return nil, nil, fmt.Errorf("pipeline %q operation %d: %w", def.Name, i, err)
			}
			if err := chain.Add(op); err != nil {
				return nil, nil, err
			}
		}
	}

	return chains[doc.Result], chains, nil
}

func buildOperation(def OperationDef, reg *Registry, chains map[string]*graph.Chain) (graph.Operation, error) {
	switch def.Type {
	case "map":
		if def.Mapper == "" {
			return nil, fmt.Errorf("%w: map needs a mapper name", ErrMissingParameter)
		}
		mapper, err := reg.Mapper(def.Mapper)
		if err != nil {
			return nil, err
		}
		return operator.NewMap(mapper), nil

	case "fold":
		if def.Folder == "" {
			return nil, fmt.Errorf("%w: fold needs a folder name", ErrMissingParameter)
		}
		folder, err := reg.Folder(def.Folder)
		if err != nil {
			return nil, err
		}
		if len(def.Initial) == 0 {
			return nil, fmt.Errorf("%w: fold needs an initial accumulator", ErrMissingParameter)
		}
		var initial record.Row
		if err := json.Unmarshal(def.Initial, &initial); err != nil {
			return nil, fmt.Errorf("fold initial accumulator: %w", err)
		}
		return operator.NewFold(folder, initial), nil

	case "sort":
		if len(def.Keys) == 0 {
			return nil, fmt.Errorf("%w: sort needs keys", ErrMissingParameter)
		}
		return operator.NewSort(def.Keys...), nil

	case "reduce":
		if def.Reducer == "" {
			return nil, fmt.Errorf("%w: reduce needs a reducer name", ErrMissingParameter)
		}
		reducer, err := reg.Reducer(def.Reducer)
		if err != nil {
			return nil, err
		}
		if len(def.Keys) == 0 {
			return nil, fmt.Errorf("%w: reduce needs keys", ErrMissingParameter)
		}
		return operator.NewReduce(reducer, def.Keys), nil

	case "join":
		if def.On == "" {
			return nil, fmt.Errorf("%w: join needs a target pipeline", ErrMissingParameter)
		}
		target := chains[def.On] // existence checked by Parse
		return operator.NewJoin(target, operator.Strategy(def.Strategy), def.Key...), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, def.Type)
	}
}

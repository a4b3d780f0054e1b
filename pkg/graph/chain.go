package graph

import "fmt"

// Chain is one linear operator chain together with its declared source.
//
// Build a chain with FromInput or FromChain, append operations with Add,
// and hand the final chain to the engine. The zero value is not usable.
type Chain struct {
	name   string
	input  string // external input name; empty when sourced from a chain
	parent *Chain // source chain; nil when sourced from an external input

	ops  []Operation
	deps []*Chain
}

// FromInput creates a chain whose source is the external input with the
// given name. The name is resolved to a file handle when the final chain
// runs.
func FromInput(name string) *Chain {
	return &Chain{input: name}
}

// FromChain creates a chain fed by the result of another chain. The
// source chain is recorded as a dependency, so the scheduler always runs
// it first.
func FromChain(src *Chain) *Chain {
	c := &Chain{parent: src}
	if src != nil {
		c.deps = append(c.deps, src)
	}
	return c
}

// WithName sets a human-readable name used in diagnostics and error
// messages. It returns the chain for call chaining.
func (c *Chain) WithName(name string) *Chain {
	c.name = name
	return c
}

// Name returns the diagnostic name, which may be empty
func (c *Chain) Name() string { return c.name }

// DisplayName returns the diagnostic name, or a placeholder when the
// chain was never named
func (c *Chain) DisplayName() string {
	if c.name == "" {
		return "(unnamed chain)"
	}
	return c.name
}

// InputName returns the external input name and true when the chain is
// sourced from an external input
func (c *Chain) InputName() (string, bool) {
	return c.input, c.parent == nil
}

// SourceChain returns the source chain and true when the chain is fed by
// another chain
func (c *Chain) SourceChain() (*Chain, bool) {
	return c.parent, c.parent != nil
}

// SourceDescription renders the source for diagnostics
func (c *Chain) SourceDescription() string {
	if c.parent != nil {
		return "chain " + c.parent.DisplayName()
	}
	return fmt.Sprintf("input %q", c.input)
}

// Operations returns the ordered operation list. The returned slice is
// the chain's own; callers must not modify it.
func (c *Chain) Operations() []Operation { return c.ops }

// Dependencies returns every chain that must complete before this one
// runs, in the order the edges were recorded.
func (c *Chain) Dependencies() []*Chain { return c.deps }

// Add appends an operation to the chain. The operation's configuration
// is validated here, so a misconfigured operation is rejected before any
// run starts. When the operation consumes another chain's result (Join),
// that chain is appended to the dependency list.
func (c *Chain) Add(op Operation) error {
	if op == nil {
		return fmt.Errorf("chain %s: %w", c.DisplayName(), ErrNilOperation)
	}
	if err := op.Validate(); err != nil {
		return fmt.Errorf("chain %s: %s: %w", c.DisplayName(), op.Name(), err)
	}
	if dep, ok := op.(ChainDependent); ok {
		for _, target := range dep.DependsOn() {
			if target == nil {
				return fmt.Errorf("chain %s: %s: %w", c.DisplayName(), op.Name(), ErrNilChain)
			}
			c.deps = append(c.deps, target)
		}
	}
	c.ops = append(c.ops, op)
	return nil
}

// MustAdd appends an operation and panics on a configuration error.
// Convenient when wiring static pipelines at program start.
func (c *Chain) MustAdd(op Operation) *Chain {
	if err := c.Add(op); err != nil {
		panic(err)
	}
	return c
}

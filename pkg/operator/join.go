package operator

import (
	"fmt"

	"github.com/dvpolyakov/computational-graph/pkg/graph"
	"github.com/dvpolyakov/computational-graph/pkg/record"
)

// Strategy selects how Join matches the two sides
type Strategy string

const (
	// StrategyOuter is the Cartesian cross of the two sides. No key is
	// required; when keys are given, both sides are sorted by them before
	// crossing
	StrategyOuter Strategy = "outer"

	// StrategyLeft groups both sides by their join keys and crosses every
	// left group with the right group sharing its key. Left groups
	// without a matching right key emit nothing — the strategy name is
	// historical; the behavior is an inner equi-join driven by the left
	// side.
	StrategyLeft Strategy = "left"

	// StrategyRight is StrategyLeft with the two sides swapped
	StrategyRight Strategy = "right"
)

// Join merges the upstream (left side) with the materialized result of
// another chain (right side). Output rows are the left row's fields
// overlaid by the right row's fields; the right side wins on key
// collisions. StrategyRight swaps the sides before matching, so there
// the upstream row overlays the other chain's row and wins collisions.
//
// The key configuration is either empty (outer only), one name used on
// both sides, or a pair of names — left key first, right key second.
type Join struct {
	on       *graph.Chain
	strategy Strategy
	keys     []string
}

// NewJoin creates a Join against the given chain. Keys may be empty (for
// StrategyOuter), a single shared key name, or a left/right pair.
func NewJoin(on *graph.Chain, strategy Strategy, keys ...string) *Join {
	return &Join{on: on, strategy: strategy, keys: keys}
}

// Name implements graph.Operation
func (j *Join) Name() string { return "join" }

// DependsOn implements graph.ChainDependent: the joined chain must run
// before the chain carrying this operation.
func (j *Join) DependsOn() []*graph.Chain {
	return []*graph.Chain{j.on}
}

// Validate implements graph.Operation
func (j *Join) Validate() error {
	if j.on == nil {
		return fmt.Errorf("%w: join requires a chain to join against", ErrInvalidConfig)
	}
	switch j.strategy {
	case StrategyOuter, StrategyLeft, StrategyRight:
	default:
		return fmt.Errorf("%w: unknown join strategy %q (want outer, left or right)",
			ErrInvalidConfig, j.strategy)
	}
	if len(j.keys) > 2 {
		return fmt.Errorf("%w: join key must be one name or a left/right pair, got %d names",
			ErrInvalidConfig, len(j.keys))
	}
	for _, k := range j.keys {
		if k == "" {
			return fmt.Errorf("%w: join keys must be non-empty", ErrInvalidConfig)
		}
	}
	if j.strategy != StrategyOuter && len(j.keys) == 0 {
		return fmt.Errorf("%w: %s join requires a key", ErrInvalidConfig, j.strategy)
	}
	return nil
}

func (j *Join) leftKey() string  { return j.keys[0] }
func (j *Join) rightKey() string { return j.keys[len(j.keys)-1] }

// Open implements graph.Operation
func (j *Join) Open(rt graph.Runtime, upstream graph.Iterator) (graph.Iterator, error) {
	return &joinIterator{op: j, rt: rt, upstream: upstream}, nil
}

// pair is one left-group × right-group cross still to be emitted
type pair struct {
	left  []record.Row
	right []record.Row
}

type joinIterator struct {
	op       *Join
	rt       graph.Runtime
	upstream graph.Iterator

	prepared bool
	pairs    []pair
	p, li, ri int
}

func (it *joinIterator) Next() (record.Row, error) {
	if !it.prepared {
		if err := it.prepare(); err != nil {
			return nil, err
		}
		it.prepared = true
	}
	for it.p < len(it.pairs) {
		cur := it.pairs[it.p]
		if len(cur.right) == 0 || it.li >= len(cur.left) {
			it.p++
			it.li, it.ri = 0, 0
			continue
		}
		out := cur.left[it.li].Merge(cur.right[it.ri])
		it.ri++
		if it.ri == len(cur.right) {
			it.ri = 0
			it.li++
		}
		return out, nil
	}
	return nil, graph.ErrEndOfStream
}

// prepare materializes and sorts both sides once, then lays out the
// group crosses to emit. Both tables are sorted with the stable,
// idempotent sort the Sort operation uses, so re-draining is safe.
func (it *joinIterator) prepare() error {
	left, err := graph.Drain(it.upstream)
	if err != nil {
		return err
	}
	right, err := it.rt.ChainResult(it.op.on)
	if err != nil {
		return fmt.Errorf("join: %w", err)
	}

	if it.op.strategy == StrategyOuter {
		if len(it.op.keys) > 0 {
			if left, err = SortRows(left, []string{it.op.leftKey()}); err != nil {
				return err
			}
			if right, err = SortRows(right, []string{it.op.rightKey()}); err != nil {
				return err
			}
		}
		it.pairs = []pair{{left: left, right: right}}
		return nil
	}

	leftKey, rightKey := it.op.leftKey(), it.op.rightKey()
	if it.op.strategy == StrategyRight {
		// Symmetric to left with the sides and keys swapped. The merge
		// still overlays the driving row with the looked-up row, so
		// after the swap the original left side wins collisions.
		left, right = right, left
		leftKey, rightKey = rightKey, leftKey
	}

	if left, err = SortRows(left, []string{leftKey}); err != nil {
		return err
	}
	if right, err = SortRows(right, []string{rightKey}); err != nil {
		return err
	}

	leftGroups, err := groupConsecutive(left, leftKey)
	if err != nil {
		return err
	}
	rightGroups, err := groupConsecutive(right, rightKey)
	if err != nil {
		return err
	}
	lookup := make(map[string][]record.Row, len(rightGroups))
	for _, g := range rightGroups {
		lookup[g.canon] = g.rows
	}

	for _, g := range leftGroups {
		match, ok := lookup[g.canon]
		if !ok {
			continue
		}
		it.pairs = append(it.pairs, pair{left: g.rows, right: match})
	}
	return nil
}

// rowGroup is a maximal run of consecutive rows sharing a key value
type rowGroup struct {
	canon string
	rows  []record.Row
}

// groupConsecutive splits sorted rows into maximal runs of equal key
// values, preserving their order. The canonical form of the key value is
// its JSON encoding, which makes equal numbers group together whether
// they decoded as int or float.
func groupConsecutive(rows []record.Row, key string) ([]rowGroup, error) {
	var groups []rowGroup
	var prev record.Value
	for i, row := range rows {
		v, err := row.Field(key)
		if err != nil {
			return nil, fmt.Errorf("join: %w", err)
		}
		if i == 0 || !v.Equal(prev) {
			canon, err := v.MarshalJSON()
			if err != nil {
				return nil, fmt.Errorf("join key %q: %w", key, err)
			}
			groups = append(groups, rowGroup{canon: string(canon)})
		}
		last := &groups[len(groups)-1]
		last.rows = append(last.rows, row)
		prev = v
	}
	return groups, nil
}

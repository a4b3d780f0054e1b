package operator

import (
	"errors"
	"testing"

	"github.com/dvpolyakov/computational-graph/pkg/graph"
	"github.com/dvpolyakov/computational-graph/pkg/record"
)

func joinFixture(rightRows []record.Row) (*graph.Chain, *mockRuntime) {
	right := graph.FromInput("right_input").WithName("right")
	rt := &mockRuntime{results: map[*graph.Chain][]record.Row{right: rightRows}}
	return right, rt
}

func TestJoin_OuterIsCartesianCross(t *testing.T) {
	left := []record.Row{
		{"doc_id": record.String("d1")},
		{"doc_id": record.String("d2")},
		{"doc_id": record.String("d3")},
	}
	rightChain, rt := joinFixture([]record.Row{
		{"docs_count": record.Int(3)},
		{"docs_count": record.Int(4)},
	})

	out := drain(t, open(t, NewJoin(rightChain, StrategyOuter), rt, left))

	if len(out) != len(left)*2 {
		t.Fatalf("outer join emitted %d rows, want |L|*|R| = %d", len(out), len(left)*2)
	}
	// Left iterated in order with an inner loop over the right.
	if !out[0]["doc_id"].Equal(record.String("d1")) || !out[0]["docs_count"].Equal(record.Int(3)) {
		t.Errorf("first row = %v", out[0])
	}
	if !out[1]["doc_id"].Equal(record.String("d1")) || !out[1]["docs_count"].Equal(record.Int(4)) {
		t.Errorf("second row = %v", out[1])
	}
}

func TestJoin_OuterRightOverlayWins(t *testing.T) {
	left := []record.Row{{"k": record.String("left"), "only_left": record.Int(1)}}
	rightChain, rt := joinFixture([]record.Row{{"k": record.String("right")}})

	out := drain(t, open(t, NewJoin(rightChain, StrategyOuter), rt, left))

	if len(out) != 1 {
		t.Fatalf("emitted %d rows, want 1", len(out))
	}
	if !out[0]["k"].Equal(record.String("right")) {
		t.Errorf("right value must win on collision, got %v", out[0]["k"])
	}
	if !out[0]["only_left"].Equal(record.Int(1)) {
		t.Errorf("left-only field lost: %v", out[0])
	}
}

func TestJoin_LeftMatchesOnSharedKey(t *testing.T) {
	left := []record.Row{
		{"word": record.String("b"), "doc_id": record.String("d1")},
		{"word": record.String("a"), "doc_id": record.String("d2")},
		{"word": record.String("a"), "doc_id": record.String("d3")},
		{"word": record.String("c"), "doc_id": record.String("d4")}, // unmatched
	}
	rightChain, rt := joinFixture([]record.Row{
		{"word": record.String("a"), "idf": record.Float(0.5)},
		{"word": record.String("b"), "idf": record.Float(1.5)},
	})

	out := drain(t, open(t, NewJoin(rightChain, StrategyLeft, "word"), rt, left))

	// Unmatched left rows emit nothing; groups come out in sorted left
	// key order because both sides are sorted before matching.
	if len(out) != 3 {
		t.Fatalf("left join emitted %d rows, want 3", len(out))
	}
	if !out[0]["word"].Equal(record.String("a")) || !out[0]["idf"].Equal(record.Float(0.5)) {
		t.Errorf("row 0 = %v", out[0])
	}
	if !out[1]["word"].Equal(record.String("a")) {
		t.Errorf("row 1 = %v", out[1])
	}
	if !out[2]["word"].Equal(record.String("b")) || !out[2]["idf"].Equal(record.Float(1.5)) {
		t.Errorf("row 2 = %v", out[2])
	}
}

func TestJoin_LeftWithKeyPair(t *testing.T) {
	left := []record.Row{{"w": record.String("x"), "n": record.Int(1)}}
	rightChain, rt := joinFixture([]record.Row{
		{"word": record.String("x"), "m": record.Int(2)},
		{"word": record.String("y"), "m": record.Int(3)},
	})

	out := drain(t, open(t, NewJoin(rightChain, StrategyLeft, "w", "word"), rt, left))

	if len(out) != 1 {
		t.Fatalf("emitted %d rows, want 1", len(out))
	}
	if !out[0]["m"].Equal(record.Int(2)) {
		t.Errorf("joined against the wrong right group: %v", out[0])
	}
}

func TestJoin_RightIsLeftWithSidesSwapped(t *testing.T) {
	left := []record.Row{
		{"word": record.String("a"), "side": record.String("left")},
	}
	rightChain, rt := joinFixture([]record.Row{
		{"word": record.String("a"), "side": record.String("right")},
		{"word": record.String("z"), "side": record.String("right")}, // unmatched right row
	})

	out := drain(t, open(t, NewJoin(rightChain, StrategyRight, "word"), rt, left))

	if len(out) != 1 {
		t.Fatalf("right join emitted %d rows, want 1", len(out))
	}
	// With the sides swapped the original left side overlays the right,
	// so its value wins the collision.
	if !out[0]["side"].Equal(record.String("left")) {
		t.Errorf("side = %v, want left to win after swap", out[0]["side"])
	}
}

func TestJoin_InvalidStrategy(t *testing.T) {
	rightChain, _ := joinFixture(nil)
	err := NewJoin(rightChain, Strategy("inner"), "k").Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestJoin_RejectsLongKeyLists(t *testing.T) {
	rightChain, _ := joinFixture(nil)
	err := NewJoin(rightChain, StrategyLeft, "a", "b", "c").Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestJoin_LeftRequiresKey(t *testing.T) {
	rightChain, _ := joinFixture(nil)
	err := NewJoin(rightChain, StrategyLeft).Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestJoin_MissingKeyFails(t *testing.T) {
	left := []record.Row{{"other": record.Int(1)}}
	rightChain, rt := joinFixture([]record.Row{{"word": record.String("a")}})

	_, err := graph.Drain(open(t, NewJoin(rightChain, StrategyLeft, "word"), rt, left))
	if !errors.Is(err, record.ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestJoin_DependsOnTarget(t *testing.T) {
	rightChain, _ := joinFixture(nil)
	deps := NewJoin(rightChain, StrategyOuter).DependsOn()
	if len(deps) != 1 || deps[0] != rightChain {
		t.Errorf("DependsOn = %v, want the join target", deps)
	}
}

func TestJoin_EmptyRightSide(t *testing.T) {
	left := []record.Row{{"word": record.String("a")}}
	rightChain, rt := joinFixture(nil)

	out := drain(t, open(t, NewJoin(rightChain, StrategyOuter), rt, left))
	if len(out) != 0 {
		t.Errorf("cross with empty right side emitted %d rows", len(out))
	}
}

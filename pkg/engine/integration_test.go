package engine

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dvpolyakov/computational-graph/pkg/dataio"
	"github.com/dvpolyakov/computational-graph/pkg/graph"
	"github.com/dvpolyakov/computational-graph/pkg/observer"
	"github.com/dvpolyakov/computational-graph/pkg/operator"
	"github.com/dvpolyakov/computational-graph/pkg/record"
)

func splitWords(row record.Row) ([]record.Row, error) {
	text, err := row.Field("text")
	if err != nil {
		return nil, err
	}
	s, _ := text.AsString()
	var out []record.Row
	for _, w := range strings.Fields(s) {
		out = append(out, record.Row{
			"doc_id": row["doc_id"],
			"word":   record.String(strings.ToLower(w)),
		})
	}
	return out, nil
}

func wordFrequency(group []record.Row) ([]record.Row, error) {
	return []record.Row{{
		"word":   group[0]["word"],
		"number": record.Int(int64(len(group))),
	}}, nil
}

const corpus = `{"doc_id":"first","text":"the quick fox"}
{"doc_id":"second","text":"the lazy dog"}
`

// TestRun_WordCount drives the classic word-count pipeline end to end:
// map to words, sort by word, reduce to per-word counts.
func TestRun_WordCount(t *testing.T) {
	chain := graph.FromInput("main_input").WithName("count_words_graph")
	for _, op := range []graph.Operation{
		operator.NewMap(splitWords),
		operator.NewSort("word"),
		operator.NewReduce(wordFrequency, []string{"word"}),
	} {
		if err := chain.Add(op); err != nil {
			t.Fatal(err)
		}
	}

	_, out := runChainGraph(t, chain, map[string]io.ReadCloser{
		"main_input": input(corpus),
	})

	rows, err := dataio.ReadAll(strings.NewReader(out.String()), 0)
	if err != nil {
		t.Fatalf("reading output back: %v", err)
	}
	want := []record.Row{
		{"word": record.String("dog"), "number": record.Int(1)},
		{"word": record.String("fox"), "number": record.Int(1)},
		{"word": record.String("lazy"), "number": record.Int(1)},
		{"word": record.String("quick"), "number": record.Int(1)},
		{"word": record.String("the"), "number": record.Int(2)},
	}
	if len(rows) != len(want) {
		t.Fatalf("output has %d rows, want %d:\n%s", len(rows), len(want), out.String())
	}
	for i := range want {
		if !rows[i].Equal(want[i]) {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}

// TestRun_TwoChainsJoined is the cross-chain scenario: chain A folds the
// corpus to a document count, chain B maps and sorts the same input and
// joins A's single row onto every word row.
func TestRun_TwoChainsJoined(t *testing.T) {
	a := graph.FromInput("main_input").WithName("count_documents_graph")
	if err := a.Add(operator.NewFold(countDocs, record.Row{"docs_count": record.Int(0)})); err != nil {
		t.Fatal(err)
	}

	// The reducer sees docs_count on every row because the outer join
	// overlaid chain A's single row onto the whole stream.
	withDocsCount := func(group []record.Row) ([]record.Row, error) {
		return []record.Row{{
			"word":       group[0]["word"],
			"number":     record.Int(int64(len(group))),
			"docs_count": group[0]["docs_count"],
		}}, nil
	}

	b := graph.FromInput("main_input").WithName("split_words_graph")
	for _, op := range []graph.Operation{
		operator.NewMap(splitWords),
		operator.NewSort("word"),
		operator.NewJoin(a, operator.StrategyOuter),
		operator.NewReduce(withDocsCount, []string{"word"}),
	} {
		if err := b.Add(op); err != nil {
			t.Fatal(err)
		}
	}

	rec := &eventRecorder{}
	eng := New()
	eng.AddObserver(rec)

	out := &sinkWriter{}
	result, err := eng.Run(context.Background(), b, RunParams{
		Inputs: map[string]io.ReadCloser{"main_input": input(corpus)},
		Output: out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Chains != 2 {
		t.Errorf("Chains = %d, want 2", result.Chains)
	}

	// A must have run before B.
	chainOrder := rec.chainStarts()
	if len(chainOrder) != 2 || chainOrder[0] != "count_documents_graph" || chainOrder[1] != "split_words_graph" {
		t.Errorf("chain execution order = %v", chainOrder)
	}

	// Every joined row observed docs_count from chain A before reducing.
	rows, err := dataio.ReadAll(strings.NewReader(out.String()), 0)
	if err != nil {
		t.Fatalf("reading output back: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("no output rows")
	}
	for i, row := range rows {
		if !row["docs_count"].Equal(record.Int(2)) {
			t.Errorf("row %d missing docs_count from joined chain: %v", i, row)
		}
	}
}

// eventRecorder captures chain start order
type eventRecorder struct {
	events []observer.Event
}

func (r *eventRecorder) OnEvent(ctx context.Context, event observer.Event) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) chainStarts() []string {
	var names []string
	for _, ev := range r.events {
		if ev.Type == observer.EventChainStart {
			names = append(names, ev.Chain)
		}
	}
	return names
}

// TestRun_ChainSourceBorrowsResult checks that a chain sourced from
// another chain sees exactly the upstream's materialized rows.
func TestRun_ChainSourceBorrowsResult(t *testing.T) {
	upstream := graph.FromInput("main_input").WithName("upstream")
	if err := upstream.Add(operator.NewMap(splitWords)); err != nil {
		t.Fatal(err)
	}

	downstream := graph.FromChain(upstream).WithName("downstream")
	if err := downstream.Add(operator.NewSort("word")); err != nil {
		t.Fatal(err)
	}

	_, out := runChainGraph(t, downstream, map[string]io.ReadCloser{
		"main_input": input(`{"doc_id":"d","text":"b a"}` + "\n"),
	})

	rows, err := dataio.ReadAll(strings.NewReader(out.String()), 0)
	if err != nil {
		t.Fatalf("reading output back: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("output has %d rows, want 2", len(rows))
	}
	if !rows[0]["word"].Equal(record.String("a")) || !rows[1]["word"].Equal(record.String("b")) {
		t.Errorf("downstream did not sort the upstream result: %v", rows)
	}
}

// Reduce groups arrive sorted because the pipeline places a Sort on the
// same keys in front of the Reduce; this test locks in reduce/sort interplay
// through the whole engine rather than operator-by-operator.
func TestRun_SortReduceOnKeyPrefix(t *testing.T) {
	perDoc := func(group []record.Row) ([]record.Row, error) {
		return []record.Row{{
			"doc_id": group[0]["doc_id"],
			"word":   group[0]["word"],
			"freq":   record.Int(int64(len(group))),
		}}, nil
	}

	chain := graph.FromInput("main_input").WithName("frequency_in_doc")
	for _, op := range []graph.Operation{
		operator.NewMap(splitWords),
		operator.NewSort("doc_id", "word"),
		operator.NewReduce(perDoc, []string{"doc_id", "word"}),
	} {
		if err := chain.Add(op); err != nil {
			t.Fatal(err)
		}
	}

	_, out := runChainGraph(t, chain, map[string]io.ReadCloser{
		"main_input": input(`{"doc_id":"d1","text":"a a b"}` + "\n" + `{"doc_id":"d2","text":"a"}` + "\n"),
	})

	rows, err := dataio.ReadAll(strings.NewReader(out.String()), 0)
	if err != nil {
		t.Fatalf("reading output back: %v", err)
	}
	want := []record.Row{
		{"doc_id": record.String("d1"), "word": record.String("a"), "freq": record.Int(2)},
		{"doc_id": record.String("d1"), "word": record.String("b"), "freq": record.Int(1)},
		{"doc_id": record.String("d2"), "word": record.String("a"), "freq": record.Int(1)},
	}
	if len(rows) != len(want) {
		t.Fatalf("output has %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if !rows[i].Equal(want[i]) {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}

package matcher

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	ir "github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang"
	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/doc"
)

func TestSentencePosition(t *testing.T) {
	rice := riceDoc(t)
	toks := []doc.Token{
		{Text: "Hi", Head: 0},
		{Text: ".", Head: 0},
		{Text: "Bye", Head: 2, IsSentStart: true},
		{Text: "now", Head: 2},
	}
	two, err := doc.FromTokens(toks, []bool{false, true, true, false})
	if err != nil {
		t.Fatalf("FromTokens: %v", err)
	}

	runSpanCases(t, []spanCase{
		{"start of doc", IsStartOfSentence(), rice, 0, 1, true},
		{"mid sentence", IsStartOfSentence(), rice, 1, 2, false},
		{"second sentence", IsStartOfSentence(), two, 2, 3, true},
		{"empty span at end", IsStartOfSentence(), rice, 7, 7, false},
		{"end of doc", IsEndOfSentence(), rice, 6, 7, true},
		{"before final token", IsEndOfSentence(), rice, 5, 6, true},
		{"mid sentence end", IsEndOfSentence(), rice, 2, 3, false},
		{"token at end closes sentence", IsEndOfSentence(), two, 0, 1, true},
		{"next token opens sentence", IsEndOfSentence(), two, 0, 2, false},
	})
}

func TestSentenceHas(t *testing.T) {
	rice := riceDoc(t)
	runSpanCases(t, []spanCase{
		{"insensitive", SentenceHas(false, "RICE"), rice, 0, 1, true},
		{"sensitive miss", SentenceHas(true, "RICE"), rice, 0, 1, false},
		{"sensitive hit", SentenceHas(true, "I bought"), rice, 3, 4, true},
		{"whole document scope", SentenceHas(false, "i bought 5"), rice, 6, 7, true},
		{"empty phrase", SentenceHas(false, ""), rice, 0, 1, true},
		{"none", SentenceHas(false, "beans", "wheat"), rice, 0, 1, false},
	})
}

func TestSentenceHasLogsMatchedPhrases(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p, err := NewHookBuilder().WithLogger(zap.New(core)).Build(ir.NewHookSpec("sentence_has", []any{"kg", "rice", "beans"}))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !p.Match(riceDoc(t), 2, 4) {
		t.Fatalf("expected sentence_has to fire")
	}
	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "sentence_has hit" {
		t.Fatalf("unexpected message %q", entry.Message)
	}
	if diff := cmp.Diff([]any{"kg", "rice"}, entry.ContextMap()["phrases"]); diff != "" {
		t.Fatalf("phrases (-want +got):\n%s", diff)
	}

	// miss: không log
	miss, err := NewHookBuilder().WithLogger(zap.New(core)).Build(ir.NewHookSpec("sentence_has", []any{"wheat"}))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if miss.Match(riceDoc(t), 0, 1) || logs.Len() != 1 {
		t.Fatalf("miss must return false without logging, logs=%d", logs.Len())
	}
}

func TestPrecededBySpace(t *testing.T) {
	rice := riceDoc(t)
	tabbed := wordsDoc(t, []bool{false, false, false}, "a", "\t", "b")
	runSpanCases(t, []spanCase{
		{"space", PrecededBySpace(), rice, 1, 2, true},
		{"no space", PrecededBySpace(), rice, 6, 7, false},
		{"start of doc", PrecededBySpace(), rice, 0, 1, false},
		{"tab is not space", PrecededBySpace(), tabbed, 2, 3, false},
	})
}

func TestPartOfCompound(t *testing.T) {
	toks := []doc.Token{
		{Text: "credit", Dep: "compound", Head: 1},
		{Text: "card", Dep: "compound", Head: 2},
		{Text: "bill", Dep: "ROOT", Head: 2},
	}
	cc, err := doc.FromTokens(toks, nil)
	if err != nil {
		t.Fatalf("FromTokens: %v", err)
	}
	rice := riceDoc(t)

	runSpanCases(t, []spanCase{
		{"is compound", PartOfCompound(), cc, 0, 1, true},
		{"has compound child", PartOfCompound(), cc, 2, 3, true},
		{"no compound", PartOfCompound(), rice, 5, 6, false},
		{"empty span at end", PartOfCompound(), rice, 7, 7, false},
	})
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	ir "github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang"
	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/doc"
	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/matcher"
	"github.com/PhucNguyen204/MatchHooks/pkg/hookcfg"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const rulesYAML = `
unit:
  match_hook:
    - name: preceded_by_num
    - name: succeeded_by_phrase
      args: of
no-num:
  match_hook:
    - name: preceded_by_num
      match_if_predicate_is: false
flag:
  suggestions: []
`

// "I bought 5 kg of rice."
func riceDoc(t *testing.T) *doc.Document {
	t.Helper()
	toks := []doc.Token{
		{Text: "I", POS: "PRON", Dep: "nsubj", Head: 1},
		{Text: "bought", POS: "VERB", Dep: "ROOT", Head: 1, Lemma: "buy"},
		{Text: "5", POS: "NUM", Dep: "nummod", Head: 3},
		{Text: "kg", POS: "NOUN", Dep: "dobj", Head: 1},
		{Text: "of", POS: "ADP", Dep: "prep", Head: 3},
		{Text: "rice", POS: "NOUN", Dep: "pobj", Head: 4},
		{Text: ".", POS: "PUNCT", Dep: "punct", Head: 1},
	}
	d, err := doc.FromTokens(toks, []bool{true, true, true, true, true, false, false})
	if err != nil {
		t.Fatalf("FromTokens: %v", err)
	}
	return d
}

func mustRules(t *testing.T) []ir.MatchRule {
	t.Helper()
	rules, err := hookcfg.LoadMatchDictYAML([]byte(rulesYAML))
	if err != nil {
		t.Fatalf("LoadMatchDictYAML: %v", err)
	}
	return rules
}

func mustCompile(t *testing.T, cfg ir.EngineConfig, logger *zap.Logger) *Engine {
	t.Helper()
	e, err := Compile(mustRules(t), cfg, logger)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return e
}

func TestAccept(t *testing.T) {
	e := mustCompile(t, ir.DefaultEngineConfig(), nil)
	d := riceDoc(t)

	cases := []struct {
		rule       string
		start, end int
		want       bool
	}{
		{"unit", 3, 4, true},
		{"unit", 5, 6, false},
		{"no-num", 3, 4, false},
		{"no-num", 5, 6, true},
		{"flag", 0, 1, true},
		{"flag", 7, 7, true},
	}
	for _, c := range cases {
		got, err := e.Accept(c.rule, d, c.start, c.end)
		if err != nil {
			t.Fatalf("%s [%d:%d]: %v", c.rule, c.start, c.end, err)
		}
		if got != c.want {
			t.Fatalf("%s [%d:%d]: got %v want %v", c.rule, c.start, c.end, got, c.want)
		}
	}

	if diff := cmp.Diff([]string{"flag", "no-num", "unit"}, e.RuleNames()); diff != "" {
		t.Fatalf("rule names (-want +got):\n%s", diff)
	}
	if r, ok := e.Rule("unit"); !ok || r.HookCount != 2 {
		t.Fatalf("unit rule: %+v", r)
	}
	if diff := cmp.Diff(map[string]int{"preceded_by_num": 2, "succeeded_by_phrase": 1}, e.HookUsage()); diff != "" {
		t.Fatalf("hook usage (-want +got):\n%s", diff)
	}
}

func TestAcceptErrors(t *testing.T) {
	e := mustCompile(t, ir.DefaultEngineConfig(), nil)
	d := riceDoc(t)

	_, err := e.Accept("missing", d, 0, 1)
	var ue *UnknownRuleError
	if !errors.As(err, &ue) || ue.Name != "missing" {
		t.Fatalf("expected UnknownRuleError, got %v", err)
	}
	for _, span := range [][2]int{{-1, 1}, {3, 2}, {0, 8}} {
		if _, err := e.Accept("unit", d, span[0], span[1]); err == nil {
			t.Fatalf("span %v should be rejected as out of bounds", span)
		}
	}
	if _, err := e.Accept("unit", nil, 0, 0); err == nil {
		t.Fatalf("nil document should be an error")
	}
}

func TestCompileErrors(t *testing.T) {
	bad := []ir.MatchRule{{Name: "bad", Hooks: []ir.HookSpec{ir.NewHookSpec("succeeded_by_pos", 3)}}}
	_, err := Compile(bad, ir.DefaultEngineConfig(), nil)
	var ce *matcher.ConfigError
	if !errors.As(err, &ce) || !strings.Contains(err.Error(), "rule bad") {
		t.Fatalf("expected ConfigError naming the rule, got %v", err)
	}

	unknown := []ir.MatchRule{{Name: "u", Hooks: []ir.HookSpec{ir.NewHookSpec("followed_by", nil)}}}
	var uh *matcher.UnknownHookError
	if _, err := Compile(unknown, ir.DefaultEngineConfig(), nil); !errors.As(err, &uh) {
		t.Fatalf("expected UnknownHookError, got %v", err)
	}

	dup := []ir.MatchRule{{Name: "a"}, {Name: "a"}}
	if _, err := Compile(dup, ir.DefaultEngineConfig(), nil); err == nil {
		t.Fatalf("duplicate rule names should fail")
	}

	if _, err := Compile(nil, ir.DefaultEngineConfig().WithFilter(ir.FilterMode(9)), nil); err == nil {
		t.Fatalf("unknown filter mode should fail")
	}
}

func TestProcess(t *testing.T) {
	e := mustCompile(t, ir.DefaultEngineConfig(), nil)
	d := riceDoc(t)

	got, err := e.Process(d, []Candidate{
		{MatchName: "unit", Start: 3, End: 4, Suggestions: []string{"kg", "kilograms"}},
		{MatchName: "no-num", Start: 5, End: 6, Suggestions: []string{"rice"}},
		{MatchName: "flag", Start: 0, End: 1},
		{MatchName: "unit", Start: 5, End: 6, Suggestions: []string{"grains"}},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	type row struct {
		Name        string
		Text        string
		Suggestions []string
	}
	rows := make([]row, len(got))
	for i, s := range got {
		rows[i] = row{s.MatchName, s.Text(), s.Suggestions}
	}
	want := []row{
		{"unit", "kg", []string{"kilograms"}},
		{"flag", "I", nil},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("surviving spans (-want +got):\n%s", diff)
	}

	if _, err := e.Process(d, []Candidate{{MatchName: "nope", Start: 0, End: 1}}); err == nil {
		t.Fatalf("unknown rule in candidates should fail")
	}
}

func TestProcessLineBreakFilter(t *testing.T) {
	rules := []ir.MatchRule{{Name: "word"}}
	d, err := doc.FromWords([]string{"cat", "\n"}, []bool{false, false})
	if err != nil {
		t.Fatalf("FromWords: %v", err)
	}
	cands := []Candidate{{MatchName: "word", Start: 0, End: 2, Suggestions: []string{"cat"}}}

	exact, _ := Compile(rules, ir.DefaultEngineConfig(), nil)
	if got, _ := exact.Process(d, cands); len(got) != 1 {
		t.Fatalf("exact filter should keep the span")
	}
	lb, _ := Compile(rules, ir.ProductionConfig(), nil)
	if got, _ := lb.Process(d, cands); len(got) != 0 {
		t.Fatalf("line-break filter should drop the span")
	}
}

func TestDebugModeLogsAcceptedMatches(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := mustCompile(t, ir.DebugConfig(), zap.New(core))
	d := riceDoc(t)

	if _, err := e.Process(d, []Candidate{
		{MatchName: "unit", Start: 3, End: 4},
		{MatchName: "unit", Start: 5, End: 6},
	}); err != nil {
		t.Fatalf("Process: %v", err)
	}

	entries := logs.FilterMessage("DEBUG match").All()
	if len(entries) != 1 {
		t.Fatalf("expected one debug entry for the accepted span, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["match"] != "unit" || fields["text"] != "kg" {
		t.Fatalf("unexpected debug fields: %v", fields)
	}
	if e.HookUsage()["debug_hook"] != 3 {
		t.Fatalf("every rule should carry a debug hook: %v", e.HookUsage())
	}
}

func TestProcessBatch(t *testing.T) {
	e := mustCompile(t, ir.DefaultEngineConfig().WithParallelism(3), nil)
	d := riceDoc(t)

	batches := make([]Batch, 20)
	for i := range batches {
		cands := []Candidate{{MatchName: "flag", Start: 0, End: 1, Suggestions: []string{fmt.Sprintf("s%d", i)}}}
		if i%2 == 0 {
			cands = append(cands, Candidate{MatchName: "unit", Start: 3, End: 4, Suggestions: []string{"kilograms"}})
		}
		batches[i] = Batch{Doc: d, Candidates: cands}
	}

	out, err := e.ProcessBatch(context.Background(), batches)
	if err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if len(out) != len(batches) {
		t.Fatalf("got %d results for %d batches", len(out), len(batches))
	}
	for i, spans := range out {
		want := 1
		if i%2 == 0 {
			want = 2
		}
		if len(spans) != want {
			t.Fatalf("batch %d: %d spans, want %d", i, len(spans), want)
		}
		if spans[0].Suggestions[0] != fmt.Sprintf("s%d", i) {
			t.Fatalf("batch %d: results out of order", i)
		}
	}
}

func TestProcessBatchErrors(t *testing.T) {
	e := mustCompile(t, ir.DefaultEngineConfig(), nil)
	d := riceDoc(t)

	_, err := e.ProcessBatch(context.Background(), []Batch{
		{Doc: d, Candidates: []Candidate{{MatchName: "flag", Start: 0, End: 1}}},
		{Doc: d, Candidates: []Candidate{{MatchName: "flag", Start: 0, End: 99}}},
	})
	if err == nil || !strings.Contains(err.Error(), "batch 1") {
		t.Fatalf("expected error from batch 1, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.ProcessBatch(ctx, []Batch{{Doc: d}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	out, err := e.ProcessBatch(context.Background(), nil)
	if err != nil || len(out) != 0 {
		t.Fatalf("empty batch list: %v %v", out, err)
	}
}

package matcher

import (
	"testing"

	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/doc"
)

// riceDoc: "I bought 5 kg of rice."
//
//	0 I(nsubj->1) 1 bought(ROOT) 2 5(nummod->3) 3 kg(dobj->1) 4 of(prep->3) 5 rice(pobj->4) 6 .(punct->1)
func riceDoc(t *testing.T) *doc.Document {
	t.Helper()
	toks := []doc.Token{
		{Text: "I", POS: "PRON", Tag: "PRP", Dep: "nsubj", Head: 1, Lemma: "I"},
		{Text: "bought", POS: "VERB", Tag: "VBD", Dep: "ROOT", Head: 1, Lemma: "buy"},
		{Text: "5", POS: "NUM", Tag: "CD", Dep: "nummod", Head: 3, Lemma: "5"},
		{Text: "kg", POS: "NOUN", Tag: "NN", Dep: "dobj", Head: 1, Lemma: "kg"},
		{Text: "of", POS: "ADP", Tag: "IN", Dep: "prep", Head: 3, Lemma: "of"},
		{Text: "rice", POS: "NOUN", Tag: "NN", Dep: "pobj", Head: 4, Lemma: "rice"},
		{Text: ".", POS: "PUNCT", Tag: ".", Dep: "punct", Head: 1, Lemma: "."},
	}
	d, err := doc.FromTokens(toks, []bool{true, true, true, true, true, false, false})
	if err != nil {
		t.Fatalf("FromTokens: %v", err)
	}
	return d
}

func wordsDoc(t *testing.T, spaces []bool, words ...string) *doc.Document {
	t.Helper()
	d, err := doc.FromWords(words, spaces)
	if err != nil {
		t.Fatalf("FromWords: %v", err)
	}
	return d
}

// mustPredicate(t)(ctor(...)) dừng test nếu constructor trả lỗi.
func mustPredicate(t *testing.T) func(Predicate, error) Predicate {
	t.Helper()
	return func(p Predicate, err error) Predicate {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected constructor error: %v", err)
		}
		return p
	}
}

type spanCase struct {
	name       string
	p          Predicate
	d          *doc.Document
	start, end int
	want       bool
}

func runSpanCases(t *testing.T, cases []spanCase) {
	t.Helper()
	for _, c := range cases {
		if got := c.p.Match(c.d, c.start, c.end); got != c.want {
			t.Fatalf("%s [%d:%d]: got %v want %v", c.name, c.start, c.end, got, c.want)
		}
	}
}

package doc

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// "I bought 5 kg of rice .": bought là root, kg <- 5 (nummod), of <- kg, rice <- of (pobj)
func riceDoc(t *testing.T) *Document {
	t.Helper()
	toks := []Token{
		{Text: "I", POS: "PRON", Tag: "PRP", Dep: "nsubj", Head: 1, Lemma: "I"},
		{Text: "bought", POS: "VERB", Tag: "VBD", Dep: "ROOT", Head: 1, Lemma: "buy"},
		{Text: "5", POS: "NUM", Tag: "CD", Dep: "nummod", Head: 3, Lemma: "5"},
		{Text: "kg", POS: "NOUN", Tag: "NN", Dep: "dobj", Head: 1, Lemma: "kg"},
		{Text: "of", POS: "ADP", Tag: "IN", Dep: "prep", Head: 3, Lemma: "of"},
		{Text: "rice", POS: "NOUN", Tag: "NN", Dep: "pobj", Head: 4, Lemma: "rice"},
		{Text: ".", POS: "PUNCT", Tag: ".", Dep: "punct", Head: 1, Lemma: "."},
	}
	spaces := []bool{true, true, true, true, true, false, false}
	d, err := FromTokens(toks, spaces)
	if err != nil {
		t.Fatalf("FromTokens: %v", err)
	}
	return d
}

func TestFromTokensText(t *testing.T) {
	d := riceDoc(t)
	if d.Text() != "I bought 5 kg of rice." {
		t.Fatalf("text mismatch: %q", d.Text())
	}
	if d.Len() != 7 {
		t.Fatalf("len mismatch: %d", d.Len())
	}
	if got := d.SpanText(2, 4); got != "5 kg" {
		t.Fatalf("span text: %q", got)
	}
	if got := d.TextAfter(4); got != "of rice." {
		t.Fatalf("text after: %q", got)
	}
	if got := d.TextBefore(3); got != "I bought 5" {
		t.Fatalf("text before: %q", got)
	}
	if d.TextBefore(0) != "" || d.TextAfter(d.Len()) != "" {
		t.Fatalf("edges should be empty")
	}
	if d.StartChar(3) != 11 || d.EndChar(3, 4) != 13 {
		t.Fatalf("char offsets: %d %d", d.StartChar(3), d.EndChar(3, 4))
	}
	if d.EndChar(2, 2) != d.StartChar(2) {
		t.Fatalf("empty span end char should equal start char")
	}
}

func TestTreeRelations(t *testing.T) {
	d := riceDoc(t)

	if diff := cmp.Diff([]int{0, 3, 6}, d.Children(1)); diff != "" {
		t.Fatalf("children of root (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{4, 3, 1}, d.Ancestors(5)); diff != "" {
		t.Fatalf("ancestors of rice (-want +got):\n%s", diff)
	}
	if _, ok := d.HeadOf(1); ok {
		t.Fatalf("root should have no head")
	}
	if h, ok := d.HeadOf(5); !ok || h != 4 {
		t.Fatalf("head of rice: %d %v", h, ok)
	}
	if len(d.Ancestors(1)) != 0 {
		t.Fatalf("root should have no ancestors")
	}
}

func TestSentenceFlags(t *testing.T) {
	toks := []Token{
		{Text: "Hi", Head: 0},
		{Text: ".", Head: 0},
		{Text: "Bye", Head: 2, IsSentStart: true},
		{Text: ".", Head: 2},
	}
	d, err := FromTokens(toks, []bool{false, true, false, false})
	if err != nil {
		t.Fatalf("FromTokens: %v", err)
	}
	if !d.Token(0).IsSentStart {
		t.Fatalf("token 0 must be forced sentence start")
	}
	if !d.IsSentEnd(1) || d.IsSentEnd(0) || !d.IsSentEnd(3) {
		t.Fatalf("sentence end flags wrong")
	}
	if d.IsSentEnd(-1) || d.IsSentEnd(4) {
		t.Fatalf("out of range sentence end should be false")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New("ab", []Token{{Text: "ab", Start: 0, End: 2, Head: 3}}); err == nil {
		t.Fatalf("expected head out of range error")
	}
	if _, err := New("ab", []Token{{Text: "ab", Start: 0, End: 5}}); err == nil {
		t.Fatalf("expected offset error")
	}
	if _, err := New("ab", []Token{{Text: "xy", Start: 0, End: 2}}); err == nil {
		t.Fatalf("expected text mismatch error")
	}
	cyc := []Token{
		{Text: "a", Start: 0, End: 1, Head: 1},
		{Text: "b", Start: 2, End: 3, Head: 0},
	}
	_, err := New("a b", cyc)
	if !errors.Is(err, ErrHeadCycle) {
		t.Fatalf("expected ErrHeadCycle, got %v", err)
	}
}

func TestLexemeOf(t *testing.T) {
	cases := []struct {
		text string
		want Lexeme
	}{
		{"10", Lexeme{Lower: "10", IsDigit: true, LikeNum: true}},
		{"10,000.5", Lexeme{Lower: "10,000.5", LikeNum: true}},
		{"1/2", Lexeme{Lower: "1/2", LikeNum: true}},
		{"Ten", Lexeme{Lower: "ten", LikeNum: true}},
		{"3rd", Lexeme{Lower: "3rd", LikeNum: true}},
		{"-4", Lexeme{Lower: "-4", LikeNum: true}},
		{"$", Lexeme{Lower: "$", IsCurrency: true}},
		{"€", Lexeme{Lower: "€", IsCurrency: true}},
		{",", Lexeme{Lower: ",", IsPunct: true}},
		{"\n", Lexeme{Lower: "\n", IsSpace: true}},
		{"rice", Lexeme{Lower: "rice"}},
		{"", Lexeme{}},
	}
	for _, c := range cases {
		if diff := cmp.Diff(c.want, LexemeOf(c.text)); diff != "" {
			t.Fatalf("LexemeOf(%q) (-want +got):\n%s", c.text, diff)
		}
	}
}

func TestFromJSON(t *testing.T) {
	raw := []byte(`{
		"text": "Café costs 5 €. Cheap!",
		"sents": [{"start": 0, "end": 15}, {"start": 16, "end": 22}],
		"tokens": [
			{"id": 0, "start": 0, "end": 4, "pos": "NOUN", "tag": "NN", "dep": "nsubj", "head": 1, "lemma": "café"},
			{"id": 1, "start": 5, "end": 10, "pos": "VERB", "tag": "VBZ", "dep": "ROOT", "head": 1, "lemma": "cost"},
			{"id": 2, "start": 11, "end": 12, "pos": "NUM", "tag": "CD", "dep": "nummod", "head": 3, "lemma": "5"},
			{"id": 3, "start": 13, "end": 14, "pos": "SYM", "tag": "$", "dep": "dobj", "head": 1, "lemma": "€"},
			{"id": 4, "start": 14, "end": 15, "pos": "PUNCT", "tag": ".", "dep": "punct", "head": 1, "lemma": "."},
			{"id": 5, "start": 16, "end": 21, "pos": "ADJ", "tag": "JJ", "dep": "ROOT", "head": 5, "lemma": "cheap"},
			{"id": 6, "start": 21, "end": 22, "pos": "PUNCT", "tag": ".", "dep": "punct", "head": 5, "lemma": "!"}
		]
	}`)
	d, err := FromJSON(raw)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if d.Token(0).Text != "Café" || d.Token(3).Text != "€" {
		t.Fatalf("multi-byte offsets not converted: %q %q", d.Token(0).Text, d.Token(3).Text)
	}
	if !d.Token(3).Lex.IsCurrency {
		t.Fatalf("€ should be currency")
	}
	if !d.Token(5).IsSentStart || d.Token(4).IsSentStart {
		t.Fatalf("sentence starts not taken from sents")
	}
	if !d.IsSentEnd(4) {
		t.Fatalf("token before new sentence should be sentence end")
	}
	if d.SpanText(1, 4) != "costs 5 €" {
		t.Fatalf("span text: %q", d.SpanText(1, 4))
	}

	if _, err := FromJSON([]byte(`{"text": "ab", "tokens": [{"start": 0, "end": 9}]}`)); err == nil {
		t.Fatalf("expected offset error")
	}
}

func TestMatchedSpanCopies(t *testing.T) {
	d := riceDoc(t)
	m := NewMatchedSpan(d, 3, 4, "kg", "kilogram", "kg")
	cp := m.Clone()
	cp.Suggestions[0] = "x"
	if m.Suggestions[0] != "kilogram" {
		t.Fatalf("Clone aliased suggestions")
	}
	w := m.WithSuggestions([]string{"kilo"})
	if len(m.Suggestions) != 2 || w.Suggestions[0] != "kilo" || w.Text() != "kg" {
		t.Fatalf("WithSuggestions mutated original or lost span")
	}
	if _, err := NewSpan(d, 5, 9); err == nil {
		t.Fatalf("expected out of bounds error")
	}
	if _, err := NewSpan(nil, 0, 0); err == nil {
		t.Fatalf("expected nil document error")
	}
}

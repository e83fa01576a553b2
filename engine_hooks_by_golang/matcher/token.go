package matcher

import (
	"github.com/dlclark/regexp2"

	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/doc"
)

// -------- POS / dep / tag / lemma / token --------

// attrPredicate: token lân cận (cách distance) có attr bằng một trong values.
type attrPredicate struct {
	side     Side
	distance int
	attr     Attr
	values   []string
}

func (p attrPredicate) Match(d *doc.Document, start, end int) bool {
	i, ok := p.side.neighbor(d, start, end, p.distance)
	if !ok {
		return false
	}
	tok := &d.Tokens()[i]
	got := p.attr.of(tok)
	for _, v := range p.values {
		if got == v {
			return true
		}
	}
	return false
}

func newAttrPredicate(side Side, attr Attr, values []string) attrPredicate {
	vs := append([]string(nil), values...)
	if attr == AttrLower {
		vs = lowerAll(vs)
	}
	return attrPredicate{side: side, distance: 1, attr: attr, values: vs}
}

func SucceededByPOS(pos ...string) Predicate { return newAttrPredicate(Succeeding, AttrPOS, pos) }
func PrecededByPOS(pos ...string) Predicate  { return newAttrPredicate(Preceding, AttrPOS, pos) }
func SucceededByDep(dep ...string) Predicate { return newAttrPredicate(Succeeding, AttrDep, dep) }
func PrecededByDep(dep ...string) Predicate  { return newAttrPredicate(Preceding, AttrDep, dep) }
func SucceededByTag(tag ...string) Predicate { return newAttrPredicate(Succeeding, AttrTag, tag) }
func PrecededByTag(tag ...string) Predicate  { return newAttrPredicate(Preceding, AttrTag, tag) }

func SucceededByLemma(lemma ...string) Predicate {
	return newAttrPredicate(Succeeding, AttrLemma, lemma)
}

// PrecededByLemma xét token cách start `distance` vị trí về bên trái (distance >= 1).
func PrecededByLemma(distance int, lemma ...string) (Predicate, error) {
	if distance < 1 {
		return nil, configErrorf("preceded_by_lemma", "distance", "must be >= 1, got %d", distance)
	}
	p := newAttrPredicate(Preceding, AttrLemma, lemma)
	p.distance = distance
	return p, nil
}

// SucceededByToken so sánh lowercase text của token kế tiếp.
func SucceededByToken(token ...string) Predicate {
	return newAttrPredicate(Succeeding, AttrLower, token)
}

func PrecededByToken(token ...string) Predicate {
	return newAttrPredicate(Preceding, AttrLower, token)
}

// Deprecated: tên cũ viết sai chính tả, giữ để tương thích.
var (
	PreceededByPhrase = PrecededByPhrase
	PreceededByPOS    = PrecededByPOS
	PreceededByDep    = PrecededByDep
)

// -------- regex --------

type regexPredicate struct {
	side Side
	re   *regexp2.Regexp
}

// Match tương đương re.search trên text token lân cận; lỗi runtime (timeout) => false.
func (p regexPredicate) Match(d *doc.Document, start, end int) bool {
	i, ok := p.side.neighbor(d, start, end, 1)
	if !ok {
		return false
	}
	found, err := p.re.MatchString(d.Tokens()[i].Text)
	return err == nil && found
}

func newRegexPredicate(hook string, side Side, pattern string, sensitive bool) (Predicate, error) {
	opts := regexp2.None
	if !sensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, configErrorf(hook, "regex", "is not a valid pattern: %v", err)
	}
	return regexPredicate{side: side, re: re}, nil
}

// SucceededByRegex: token kế tiếp chứa match của pattern (mặc định không phân biệt hoa thường).
func SucceededByRegex(pattern string, sensitive bool) (Predicate, error) {
	return newRegexPredicate("succeeded_by_regex", Succeeding, pattern, sensitive)
}

func PrecededByRegex(pattern string, sensitive bool) (Predicate, error) {
	return newRegexPredicate("preceded_by_regex", Preceding, pattern, sensitive)
}

// -------- token classes --------

type tokenClass int

const (
	classNum tokenClass = iota
	classCurrency
	classPunct
	classWord
)

func (c tokenClass) test(t *doc.Token) bool {
	switch c {
	case classNum:
		return t.Lex.LikeNum || t.POS == "NUM" || t.Lex.IsDigit
	case classCurrency:
		return t.Lex.IsCurrency
	case classPunct:
		return t.Lex.IsPunct
	case classWord:
		return !t.Lex.IsPunct && !t.Lex.IsDigit && !t.Lex.IsSpace
	}
	return false
}

type classPredicate struct {
	side  Side
	class tokenClass
}

func (p classPredicate) Match(d *doc.Document, start, end int) bool {
	i, ok := p.side.neighbor(d, start, end, 1)
	if !ok {
		return false
	}
	return p.class.test(&d.Tokens()[i])
}

func SucceededByNum() Predicate      { return classPredicate{side: Succeeding, class: classNum} }
func PrecededByNum() Predicate       { return classPredicate{side: Preceding, class: classNum} }
func SucceededByCurrency() Predicate { return classPredicate{side: Succeeding, class: classCurrency} }
func PrecededByCurrency() Predicate  { return classPredicate{side: Preceding, class: classCurrency} }
func SucceededByPunct() Predicate    { return classPredicate{side: Succeeding, class: classPunct} }
func PrecededByPunct() Predicate     { return classPredicate{side: Preceding, class: classPunct} }

// SucceededByWord: token kế tiếp không phải punct, digit hay whitespace.
func SucceededByWord() Predicate { return classPredicate{side: Succeeding, class: classWord} }

// -------- succeeded_by_same_token --------

type sameTokenPredicate struct{}

func (sameTokenPredicate) Match(d *doc.Document, start, end int) bool {
	if end >= d.Len() || start >= d.Len() {
		return false
	}
	toks := d.Tokens()
	return toks[start].Lex.Lower == toks[end].Lex.Lower
}

// SucceededBySameToken: token đầu của span lặp lại ngay sau span ("the the").
func SucceededBySameToken() Predicate { return sameTokenPredicate{} }

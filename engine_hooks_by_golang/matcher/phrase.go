package matcher

import (
	"strings"

	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/doc"
)

// -------- succeeded_by_phrase / preceded_by_phrase --------

// phrasePredicate so khớp (không phân biệt hoa thường) phrase với toàn bộ text
// phía trước/sau span, không chỉ token kề bên.
type phrasePredicate struct {
	side    Side
	phrases []string // đã lower
}

func (p phrasePredicate) Match(d *doc.Document, start, end int) bool {
	switch p.side {
	case Succeeding:
		if end >= d.Len() {
			return false
		}
		after := strings.ToLower(d.TextAfter(end))
		for _, ph := range p.phrases {
			if strings.HasPrefix(after, ph) {
				return true
			}
		}
	case Preceding:
		if start <= 0 {
			return false
		}
		before := strings.ToLower(d.TextBefore(start))
		for _, ph := range p.phrases {
			if strings.HasSuffix(before, ph) {
				return true
			}
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func SucceededByPhrase(phrases ...string) Predicate {
	return phrasePredicate{side: Succeeding, phrases: lowerAll(phrases)}
}

func PrecededByPhrase(phrases ...string) Predicate {
	return phrasePredicate{side: Preceding, phrases: lowerAll(phrases)}
}

// -------- surrounded_by_phrase --------

// surroundedPredicate: cùng một phrase phải xuất hiện ở cả hai phía.
type surroundedPredicate struct {
	phrases []string
}

func (p surroundedPredicate) Match(d *doc.Document, start, end int) bool {
	if start <= 0 || end >= d.Len() {
		return false
	}
	before := strings.ToLower(d.TextBefore(start))
	after := strings.ToLower(d.TextAfter(end))
	for _, ph := range p.phrases {
		if strings.HasSuffix(before, ph) && strings.HasPrefix(after, ph) {
			return true
		}
	}
	return false
}

func SurroundedByPhrase(phrases ...string) Predicate {
	return surroundedPredicate{phrases: lowerAll(phrases)}
}

// -------- sentence_ends_with --------

type endsWithPredicate struct {
	phrases []string
}

func (p endsWithPredicate) Match(d *doc.Document, start, end int) bool {
	rest := strings.TrimSpace(strings.ToLower(d.TextAfter(end)))
	for _, ph := range p.phrases {
		if strings.HasSuffix(rest, ph) {
			return true
		}
	}
	return false
}

// SentenceEndsWith kiểm tra đuôi (đã strip) của text sau span.
func SentenceEndsWith(phrases ...string) Predicate {
	return endsWithPredicate{phrases: lowerAll(phrases)}
}

// -------- part_of_phrase --------

// partOfPhrasePredicate: text của span nằm trong phrase, và tại vị trí này trong document
// phần text ngay trước/sau span khớp với phần trước/sau tương ứng trong phrase.
type partOfPhrasePredicate struct {
	phrases []string
}

func (p partOfPhrasePredicate) Match(d *doc.Document, start, end int) bool {
	if start >= end {
		return false
	}
	matched := strings.ToLower(d.SpanText(start, end))
	if matched == "" {
		return false
	}
	text := d.Text()
	before := strings.ToLower(text[:d.StartChar(start)])
	after := strings.ToLower(text[d.EndChar(start, end):])
	for _, ph := range p.phrases {
		parts := strings.Split(ph, matched)
		// mỗi lần xuất hiện i của matched trong phrase là một vị trí nhúng khả dĩ
		for i := 0; i < len(parts)-1; i++ {
			firstPart := strings.Join(parts[:i+1], matched)
			secondPart := strings.Join(parts[i+1:], matched)
			if strings.HasSuffix(before, firstPart) && strings.HasPrefix(after, secondPart) {
				return true
			}
		}
	}
	return false
}

func PartOfPhrase(phrases ...string) Predicate {
	return partOfPhrasePredicate{phrases: lowerAll(phrases)}
}

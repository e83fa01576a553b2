package matcher

import "github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/doc"

// Predicate quyết định accept/reject một span [start, end) trong document.
// Mọi implementation là value object bất biến: an toàn khi gọi song song và
// không bao giờ panic với span hợp lệ (0 <= start <= end <= d.Len()).
type Predicate interface {
	Match(d *doc.Document, start, end int) bool
}

// PredicateFunc adapter cho hàm thường.
type PredicateFunc func(d *doc.Document, start, end int) bool

func (f PredicateFunc) Match(d *doc.Document, start, end int) bool { return f(d, start, end) }

// -------- combinators --------

type composed struct {
	outer func(bool) bool
	inner Predicate
}

func (c composed) Match(d *doc.Document, start, end int) bool {
	return c.outer(c.inner.Match(d, start, end))
}

// Compose(f, g)(d, s, e) = f(g(d, s, e)).
func Compose(f func(bool) bool, g Predicate) Predicate {
	return composed{outer: f, inner: g}
}

func not(b bool) bool { return !b }

// Neg phủ định predicate, vd Neg(PrecededByPOS("NUM")).
func Neg(p Predicate) Predicate {
	return Compose(not, p)
}

// All: true khi mọi predicate đều true (rỗng => true). Đây là cách một rule gộp các match hook.
func All(ps ...Predicate) Predicate {
	cp := append([]Predicate(nil), ps...)
	return PredicateFunc(func(d *doc.Document, start, end int) bool {
		for _, p := range cp {
			if !p.Match(d, start, end) {
				return false
			}
		}
		return true
	})
}

package matcher

import (
	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/doc"
)

// relativePredicate duyệt các token trong span và xét children trực tiếp
// hoặc ancestor gần nhất (head) của từng token.
type relativePredicate struct {
	rel    Relation
	attr   Attr
	values []string
}

func (p relativePredicate) Match(d *doc.Document, start, end int) bool {
	if end >= d.Len() || start < 0 {
		return false
	}
	toks := d.Tokens()
	for i := start; i < end; i++ {
		switch p.rel {
		case Children:
			for _, c := range d.Children(i) {
				if p.hit(&toks[c]) {
					return true
				}
			}
		case Ancestors:
			h, ok := d.HeadOf(i)
			if !ok {
				continue
			}
			if p.hit(&toks[h]) {
				return true
			}
		}
	}
	return false
}

func (p relativePredicate) hit(t *doc.Token) bool {
	got := p.attr.of(t)
	for _, v := range p.values {
		if got == v {
			return true
		}
	}
	return false
}

// RelativeXIsY: một child (Children) hoặc ancestor gần nhất (Ancestors) của token nào đó
// trong span có pos/dep/tag thuộc values.
func RelativeXIsY(rel Relation, attr Attr, values ...string) (Predicate, error) {
	if rel != Children && rel != Ancestors {
		return nil, configErrorf("relative_x_is_y", "children_or_ancestors", "invalid relation %v", rel)
	}
	switch attr {
	case AttrPOS, AttrDep, AttrTag:
	default:
		return nil, configErrorf("relative_x_is_y", "pos_or_dep", "must be `pos`, `dep`, or `tag`, got %v", attr)
	}
	return relativePredicate{rel: rel, attr: attr, values: append([]string(nil), values...)}, nil
}

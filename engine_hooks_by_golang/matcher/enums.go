package matcher

import (
	"fmt"

	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/doc"
)

// Side: phía của token/text lân cận so với span.
type Side int

const (
	Preceding Side = iota
	Succeeding
)

func (s Side) String() string {
	switch s {
	case Preceding:
		return "preceded"
	case Succeeding:
		return "succeeded"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// neighbor trả về chỉ số token cách span `distance` bước về phía side.
// ok=false khi vị trí nằm ngoài document (biên không bao giờ thoả điều kiện).
func (s Side) neighbor(d *doc.Document, start, end, distance int) (int, bool) {
	switch s {
	case Preceding:
		i := start - distance
		if start > d.Len() || i < 0 {
			return 0, false
		}
		return i, true
	case Succeeding:
		i := end + distance - 1
		if end < 0 || i >= d.Len() {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// Attr là thuộc tính token được so sánh.
type Attr int

const (
	AttrPOS Attr = iota
	AttrDep
	AttrTag
	AttrLemma
	AttrLower
)

func (a Attr) String() string {
	switch a {
	case AttrPOS:
		return "pos"
	case AttrDep:
		return "dep"
	case AttrTag:
		return "tag"
	case AttrLemma:
		return "lemma"
	case AttrLower:
		return "token"
	default:
		return fmt.Sprintf("Attr(%d)", int(a))
	}
}

func (a Attr) of(t *doc.Token) string {
	switch a {
	case AttrPOS:
		return t.POS
	case AttrDep:
		return t.Dep
	case AttrTag:
		return t.Tag
	case AttrLemma:
		return t.Lemma
	case AttrLower:
		return t.Lex.Lower
	}
	return ""
}

// ParseAttr chỉ nhận pos/dep/tag (giá trị của pos_or_dep).
func ParseAttr(s string) (Attr, error) {
	switch s {
	case "pos":
		return AttrPOS, nil
	case "dep":
		return AttrDep, nil
	case "tag":
		return AttrTag, nil
	}
	return 0, configErrorf("relative_x_is_y", "pos_or_dep", "must be set to either `pos`, `dep`, or `tag`, got %q", s)
}

// Relation: quan hệ cây được xét trong relative_x_is_y.
type Relation int

const (
	Children Relation = iota
	Ancestors
)

func (r Relation) String() string {
	switch r {
	case Children:
		return "children"
	case Ancestors:
		return "ancestors"
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

func ParseRelation(s string) (Relation, error) {
	switch s {
	case "children":
		return Children, nil
	case "ancestors":
		return Ancestors, nil
	}
	return 0, configErrorf("relative_x_is_y", "children_or_ancestors", "must be set to either `children` or `ancestors`, got %q", s)
}

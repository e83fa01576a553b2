package matcher

import (
	"strings"

	ac "github.com/petar-dambovaliev/aho-corasick"
)

// PhraseSet tìm nhanh "có phrase nào xuất hiện trong text không" bằng một automaton
// Aho-Corasick dựng một lần lúc cấu hình.
type PhraseSet struct {
	// nil nếu không có phrase khác rỗng
	ac *ac.AhoCorasick
	// phrase đã chuẩn hoá, index trùng với pattern index của AC
	patterns []string
	// có phrase rỗng => luôn khớp ("" in s)
	hasEmpty      bool
	caseSensitive bool
}

func NewPhraseSet(phrases []string, caseSensitive bool) *PhraseSet {
	ps := &PhraseSet{caseSensitive: caseSensitive}
	seen := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		if !caseSensitive {
			p = strings.ToLower(p)
		}
		if p == "" {
			ps.hasEmpty = true
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		ps.patterns = append(ps.patterns, p)
	}
	if len(ps.patterns) > 0 {
		builder := ac.NewAhoCorasickBuilder(ac.Opts{
			// hoa/thường đã được chuẩn hoá ở trên (ToLower hỗ trợ Unicode, AC chỉ ASCII)
			AsciiCaseInsensitive: false,
			MatchOnlyWholeWords:  false,
			MatchKind:            ac.LeftMostLongestMatch,
			DFA:                  false,
		})
		automaton := builder.Build(ps.patterns)
		ps.ac = &automaton
	}
	return ps
}

func (p *PhraseSet) normalize(text string) string {
	if p.caseSensitive {
		return text
	}
	return strings.ToLower(text)
}

// Contains: có ít nhất một phrase là substring của text.
func (p *PhraseSet) Contains(text string) bool {
	if p.hasEmpty {
		return true
	}
	if p.ac == nil {
		return false
	}
	return len(p.ac.FindAll(p.normalize(text))) > 0
}

// Matches trả về các phrase tìm thấy (không chồng lấn, theo thứ tự xuất hiện).
// sentence_has dùng nó để log ở mức Debug.
func (p *PhraseSet) Matches(text string) []string {
	out := make([]string, 0)
	if p.ac == nil {
		return out
	}
	for _, m := range p.ac.FindAll(p.normalize(text)) {
		if idx := m.Pattern(); idx >= 0 && idx < len(p.patterns) {
			out = append(out, p.patterns[idx])
		}
	}
	return out
}

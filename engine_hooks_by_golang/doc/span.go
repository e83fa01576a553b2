package doc

import "fmt"

// Span là khoảng token nửa mở [Start, End) trong một Document.
// Text/offset luôn được tính lại từ Document, không lưu.
type Span struct {
	Doc   *Document
	Start int
	End   int
}

func NewSpan(d *Document, start, end int) (Span, error) {
	if d == nil {
		return Span{}, fmt.Errorf("span [%d,%d): nil document", start, end)
	}
	if !d.InBounds(start, end) {
		return Span{}, fmt.Errorf("span [%d,%d) out of bounds for document of %d tokens", start, end, d.Len())
	}
	return Span{Doc: d, Start: start, End: end}, nil
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) Text() string { return s.Doc.SpanText(s.Start, s.End) }

func (s Span) StartChar() int { return s.Doc.StartChar(s.Start) }

func (s Span) EndChar() int { return s.Doc.EndChar(s.Start, s.End) }

func (s Span) String() string {
	return fmt.Sprintf("%q[%d:%d]", s.Text(), s.Start, s.End)
}

// MatchedSpan (ESpan) = Span + danh sách suggestion ứng viên (giữ thứ tự, cho phép trùng).
type MatchedSpan struct {
	Span
	MatchName   string   `json:"match_name"`
	Suggestions []string `json:"suggestions"`
}

func NewMatchedSpan(d *Document, start, end int, matchName string, suggestions ...string) *MatchedSpan {
	return &MatchedSpan{
		Span:        Span{Doc: d, Start: start, End: end},
		MatchName:   matchName,
		Suggestions: append([]string(nil), suggestions...),
	}
}

// Clone: shallow copy, suggestion slice được copy riêng.
func (m *MatchedSpan) Clone() *MatchedSpan {
	cp := *m
	cp.Suggestions = append([]string(nil), m.Suggestions...)
	return &cp
}

// WithSuggestions trả về bản sao với suggestion list mới; m không bị sửa.
func (m *MatchedSpan) WithSuggestions(suggestions []string) *MatchedSpan {
	cp := *m
	cp.Suggestions = suggestions
	return &cp
}

func (m *MatchedSpan) HasSuggestions() bool { return len(m.Suggestions) > 0 }

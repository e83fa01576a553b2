package filters

import (
	"fmt"
	"strings"

	ir "github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang"
	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/doc"
)

// SpanFilter biến đổi một dãy MatchedSpan thành dãy mới.
// Filter không sửa span đầu vào: span không đổi được trả lại nguyên con trỏ,
// span có thay đổi là bản sao với suggestion slice mới.
type SpanFilter func(spans []*doc.MatchedSpan) []*doc.MatchedSpan

const (
	ZeroDistanceName              = "filter_0distance"
	ZeroDistanceWithLineBreakName = "filter_0distance_with_line_break"
)

// ZeroDistance bỏ các suggestion trùng đúng text gốc của span; span hết suggestion bị bỏ.
// Span không có suggestion ngay từ đầu được giữ nguyên.
func ZeroDistance(spans []*doc.MatchedSpan) []*doc.MatchedSpan {
	return dropIdentical(spans, func(s string) string { return s })
}

// ZeroDistanceWithLineBreak như ZeroDistance nhưng text gốc được bỏ ' ', '\r', '\n' ở cuối trước khi so.
func ZeroDistanceWithLineBreak(spans []*doc.MatchedSpan) []*doc.MatchedSpan {
	return dropIdentical(spans, func(s string) string { return strings.TrimRight(s, " \r\n") })
}

func dropIdentical(spans []*doc.MatchedSpan, normalize func(string) string) []*doc.MatchedSpan {
	out := make([]*doc.MatchedSpan, 0, len(spans))
	for _, s := range spans {
		if s == nil {
			continue
		}
		if len(s.Suggestions) == 0 {
			out = append(out, s)
			continue
		}
		source := normalize(s.Text())
		kept := make([]string, 0, len(s.Suggestions))
		for _, sugg := range s.Suggestions {
			if sugg != source {
				kept = append(kept, sugg)
			}
		}
		switch {
		case len(kept) == 0:
			// không còn gợi ý nào có ích
		case len(kept) == len(s.Suggestions):
			out = append(out, s)
		default:
			out = append(out, s.WithSuggestions(kept))
		}
	}
	return out
}

// Chain áp dụng lần lượt các filter theo thứ tự truyền vào.
func Chain(fs ...SpanFilter) SpanFilter {
	cp := append([]SpanFilter(nil), fs...)
	return func(spans []*doc.MatchedSpan) []*doc.MatchedSpan {
		for _, f := range cp {
			if f == nil {
				continue
			}
			spans = f(spans)
		}
		return spans
	}
}

// Identity giữ nguyên dãy span (FilterNone).
func Identity(spans []*doc.MatchedSpan) []*doc.MatchedSpan {
	return append([]*doc.MatchedSpan(nil), spans...)
}

var registry = map[string]SpanFilter{
	ZeroDistanceName:              ZeroDistance,
	ZeroDistanceWithLineBreakName: ZeroDistanceWithLineBreak,
}

// Lookup tìm filter theo tên dùng trong cấu hình.
func Lookup(name string) (SpanFilter, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown span filter %q", name)
	}
	return f, nil
}

// ForMode trả về filter ứng với FilterMode của EngineConfig.
func ForMode(mode ir.FilterMode) (SpanFilter, error) {
	switch mode {
	case ir.FilterExact:
		return ZeroDistance, nil
	case ir.FilterLineBreak:
		return ZeroDistanceWithLineBreak, nil
	case ir.FilterNone:
		return Identity, nil
	}
	return nil, fmt.Errorf("unsupported filter mode %v", mode)
}

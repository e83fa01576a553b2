package matcher

import (
	"math"

	"go.uber.org/zap"
)

// Args là tham số cấu hình truyền vào factory.
// Value là tham số vị trí đầu tiên (args trong match dict), Kwargs là tham số theo tên.
type Args struct {
	Hook   string
	Value  any
	Kwargs map[string]any

	// Logger cho debug_hook; nil => zap.NewNop()
	Logger *zap.Logger
}

// check: không có kwarg lạ, không truyền trùng tham số đầu tiên, hook không tham số thì không nhận gì.
func (a Args) check(params []string) error {
	if len(params) == 0 {
		if a.Value != nil || len(a.Kwargs) > 0 {
			return configErrorf(a.Hook, "", "takes no arguments")
		}
		return nil
	}
	for k := range a.Kwargs {
		if !containsString(params, k) {
			return configErrorf(a.Hook, k, "is not a parameter of this hook")
		}
	}
	if _, dup := a.Kwargs[params[0]]; dup && a.Value != nil {
		return configErrorf(a.Hook, params[0], "given both positionally and by name")
	}
	return nil
}

func (a Args) lookup(param string, first bool) (any, bool) {
	if first && a.Value != nil {
		return a.Value, true
	}
	v, ok := a.Kwargs[param]
	return v, ok && v != nil
}

// Strings: string hoặc list of strings; string đơn được chuẩn hoá thành list 1 phần tử.
func (a Args) Strings(param string, first bool) ([]string, error) {
	v, ok := a.lookup(param, first)
	if !ok {
		return nil, configErrorf(a.Hook, param, "is required")
	}
	out, ok := toStringList(v)
	if !ok {
		return nil, configErrorf(a.Hook, param, "should be a string or list of strings, got %T", v)
	}
	return out, nil
}

// String: bắt buộc là string (không nhận list).
func (a Args) String(param string, first bool) (string, error) {
	v, ok := a.lookup(param, first)
	if !ok {
		return "", configErrorf(a.Hook, param, "is required")
	}
	s, ok := v.(string)
	if !ok {
		return "", configErrorf(a.Hook, param, "must be a string, got %T", v)
	}
	return s, nil
}

func (a Args) Bool(param string, def bool) (bool, error) {
	v, ok := a.lookup(param, false)
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return def, configErrorf(a.Hook, param, "must be a boolean, got %T", v)
	}
	return b, nil
}

// Int nhận int (YAML) hoặc float64 nguyên (JSON).
func (a Args) Int(param string, def int) (int, error) {
	v, ok := a.lookup(param, false)
	if !ok {
		return def, nil
	}
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x == math.Trunc(x) {
			return int(x), nil
		}
	}
	return def, configErrorf(a.Hook, param, "must be an integer, got %v", v)
}

func (a Args) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func toStringList(v any) ([]string, bool) {
	switch x := v.(type) {
	case string:
		return []string{x}, true
	case []string:
		return append([]string(nil), x...), true
	case []any:
		out := make([]string, 0, len(x))
		for _, it := range x {
			s, ok := it.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func containsString(arr []string, target string) bool {
	for _, s := range arr {
		if s == target {
			return true
		}
	}
	return false
}

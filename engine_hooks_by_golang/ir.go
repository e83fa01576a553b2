package engine_hooks_by_golang

import (
	"encoding/json"
	"fmt"
)

// HookSpec mô tả một match hook như trong match dict:
//
//	{"name": "succeeded_by_phrase", "args": ["kg", "g"], "match_if_predicate_is": false}
//
// Args là tham số đầu tiên (string hoặc list); Kwargs là tham số theo tên.
type HookSpec struct {
	Name               string         `json:"name" yaml:"name"`
	Args               any            `json:"args,omitempty" yaml:"args,omitempty"`
	Kwargs             map[string]any `json:"kwargs,omitempty" yaml:"kwargs,omitempty"`
	MatchIfPredicateIs bool           `json:"match_if_predicate_is" yaml:"match_if_predicate_is"`
}

func NewHookSpec(name string, args any) HookSpec {
	return HookSpec{Name: name, Args: args, MatchIfPredicateIs: true}
}

// Negated: spec có cần bọc neg() không.
func (h HookSpec) Negated() bool { return !h.MatchIfPredicateIs }

func (h HookSpec) WithKwarg(key string, value any) HookSpec {
	cp := h.Clone()
	if cp.Kwargs == nil {
		cp.Kwargs = make(map[string]any, 1)
	}
	cp.Kwargs[key] = value
	return cp
}

func (h HookSpec) Clone() HookSpec {
	cp := HookSpec{
		Name:               h.Name,
		Args:               cloneValue(h.Args),
		MatchIfPredicateIs: h.MatchIfPredicateIs,
	}
	if h.Kwargs != nil {
		cp.Kwargs = make(map[string]any, len(h.Kwargs))
		for k, v := range h.Kwargs {
			cp.Kwargs[k] = cloneValue(v)
		}
	}
	return cp
}

// Key dùng để dedupe/log, ổn định giữa các lần gọi (json sort map keys).
func (h HookSpec) Key() string {
	b, err := json.Marshal(h)
	if err != nil {
		return fmt.Sprintf("%s(%v)", h.Name, h.Args)
	}
	return string(b)
}

// MatchRule là một entry của match dict: tên match + danh sách hook.
// Extra giữ nguyên các khoá khác (patterns, suggestions, test...) mà engine không dùng.
type MatchRule struct {
	Name  string         `json:"name" yaml:"name"`
	Hooks []HookSpec     `json:"match_hook,omitempty" yaml:"match_hook,omitempty"`
	Extra map[string]any `json:"-" yaml:"-"`
}

func (r MatchRule) Clone() MatchRule {
	cp := MatchRule{Name: r.Name}
	if r.Hooks != nil {
		cp.Hooks = make([]HookSpec, 0, len(r.Hooks))
		for _, h := range r.Hooks {
			cp.Hooks = append(cp.Hooks, h.Clone())
		}
	}
	if r.Extra != nil {
		cp.Extra = make(map[string]any, len(r.Extra))
		for k, v := range r.Extra {
			cp.Extra[k] = cloneValue(v)
		}
	}
	return cp
}

func (r MatchRule) HookCount() int { return len(r.Hooks) }

func cloneValue(v any) any {
	switch x := v.(type) {
	case []string:
		return append([]string(nil), x...)
	case []any:
		out := make([]any, len(x))
		for i, it := range x {
			out[i] = cloneValue(it)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, it := range x {
			out[k] = cloneValue(it)
		}
		return out
	default:
		return v
	}
}

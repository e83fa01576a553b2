package hookcfg

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	ir "github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang"
)

const (
	matchHookKey = "match_hook"
	debugHook    = "debug_hook"
)

// LoadMatchDictYAML đọc match dict (YAML hoặc JSON):
//
//	kg-rule:
//	  patterns: [...]
//	  suggestions: [...]
//	  match_hook:
//	    - name: succeeded_by_phrase
//	      args: [of rice]
//	      match_if_predicate_is: false
//
// Các khoá khác ngoài match_hook được giữ trong MatchRule.Extra. Kết quả sort theo tên rule.
func LoadMatchDictYAML(b []byte) ([]ir.MatchRule, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, err
	}

	out := make([]ir.MatchRule, 0, len(raw))
	for name, node := range raw {
		if strings.TrimSpace(name) == "" {
			return nil, errors.New("match dict contains an empty rule name")
		}
		rule, err := parseRule(name, node)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", name, err)
		}
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func parseRule(name string, node any) (ir.MatchRule, error) {
	rule := ir.MatchRule{Name: name}
	if node == nil {
		return rule, nil
	}
	body, ok := node.(map[string]any)
	if !ok {
		return rule, fmt.Errorf("must be a mapping, got %T", node)
	}

	for k, v := range body {
		if k == matchHookKey {
			continue
		}
		if rule.Extra == nil {
			rule.Extra = make(map[string]any)
		}
		rule.Extra[k] = v
	}

	hooks, present := body[matchHookKey]
	if !present || hooks == nil {
		return rule, nil
	}
	list, ok := hooks.([]any)
	if !ok {
		return rule, fmt.Errorf("%s must be a list, got %T", matchHookKey, hooks)
	}
	for i, item := range list {
		spec, err := parseHook(item)
		if err != nil {
			return rule, fmt.Errorf("%s[%d]: %w", matchHookKey, i, err)
		}
		rule.Hooks = append(rule.Hooks, spec)
	}
	return rule, nil
}

func parseHook(item any) (ir.HookSpec, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return ir.HookSpec{}, fmt.Errorf("not a mapping (%T)", item)
	}
	name, _ := m["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return ir.HookSpec{}, errors.New("missing hook name")
	}
	spec := ir.NewHookSpec(name, m["args"])

	for k, v := range m {
		switch k {
		case "name", "args":
		case "kwargs":
			if v == nil {
				continue
			}
			kw, ok := v.(map[string]any)
			if !ok {
				return spec, fmt.Errorf("hook %s: kwargs must be a mapping, got %T", name, v)
			}
			spec.Kwargs = kw
		case "match_if_predicate_is":
			b, ok := v.(bool)
			if !ok {
				return spec, fmt.Errorf("hook %s: match_if_predicate_is must be a boolean, got %T", name, v)
			}
			spec.MatchIfPredicateIs = b
		default:
			return spec, fmt.Errorf("hook %s: unknown key %q", name, k)
		}
	}
	return spec, nil
}

// AttachDebugHooks trả về bản sao các rule, mỗi rule có thêm debug_hook(tên rule) ở cuối.
// Rule đã có debug_hook thì giữ nguyên.
func AttachDebugHooks(rules []ir.MatchRule) []ir.MatchRule {
	out := make([]ir.MatchRule, 0, len(rules))
	for _, r := range rules {
		cp := r.Clone()
		if !hasHook(cp, debugHook) {
			cp.Hooks = append(cp.Hooks, ir.NewHookSpec(debugHook, cp.Name))
		}
		out = append(out, cp)
	}
	return out
}

func hasHook(r ir.MatchRule, name string) bool {
	for _, h := range r.Hooks {
		if h.Name == name {
			return true
		}
	}
	return false
}

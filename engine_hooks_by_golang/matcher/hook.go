package matcher

import (
	"fmt"

	ir "github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang"
)

// Hook được gọi tại các pha biên dịch khác nhau.
// Trả về error nếu hook thất bại (rule sẽ không được load).
type CompilationHookFn func(ctx *CompilationContext) error

// Các pha biên dịch nơi hook có thể được đăng ký.
type CompilationPhase int

const (
	HookDiscovery   CompilationPhase = iota // trước khi dựng từng match hook
	PreCompilation                          // trước khi compile một rule
	PostCompilation                         // sau khi compile xong rule
)

// Ngữ cảnh truyền cho hook trong quá trình compile.
type CompilationContext struct {
	RuleName string

	// Vị trí của match hook trong rule; -1 với summary context
	Index int
	Spec  *ir.HookSpec

	// Số match hook của rule
	HookCount int
}

func NewCompilationContext(ruleName string, index int, spec ir.HookSpec, hookCount int) *CompilationContext {
	cp := spec.Clone()
	return &CompilationContext{
		RuleName:  ruleName,
		Index:     index,
		Spec:      &cp,
		HookCount: hookCount,
	}
}

// Tạo context tóm tắt (không gắn với match hook cụ thể), dùng cho pre/post compilation.
func NewSummaryContext(ruleName string, hookCount int) *CompilationContext {
	return &CompilationContext{
		RuleName:  ruleName,
		Index:     -1,
		HookCount: hookCount,
	}
}

func (c *CompilationContext) IsSummary() bool { return c.Spec == nil }

// Hook có bị phủ định (match_if_predicate_is=false) không?
func (c *CompilationContext) IsNegated() bool {
	return c.Spec != nil && c.Spec.Negated()
}

// Mô tả ngắn gọn context (debug/log).
func (c *CompilationContext) Description() string {
	if c.IsSummary() {
		return fmt.Sprintf("Summary context for rule %s (%d hooks)", c.RuleName, c.HookCount)
	}
	mode := "predicate"
	if c.IsNegated() {
		mode = "negated"
	}
	return fmt.Sprintf("Hook context: %s #%d %s (rule %s)", c.Spec.Name, c.Index, mode, c.RuleName)
}

package matcher

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	ir "github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang"
)

// HookBuilder là builder theo registry pattern: tên hook -> Factory.
type HookBuilder struct {
	// Registry của factories theo tên hook
	registry map[string]Factory

	// Hooks theo pha biên dịch
	compilationHooks map[CompilationPhase][]CompilationHookFn

	// Logger truyền cho debug_hook và sentence_has
	logger *zap.Logger

	mu sync.RWMutex
}

// NewHookBuilder tạo builder với toàn bộ predicate mặc định (kể cả alias cũ).
func NewHookBuilder() *HookBuilder {
	b := &HookBuilder{
		registry:         make(map[string]Factory),
		compilationHooks: make(map[CompilationPhase][]CompilationHookFn),
		logger:           zap.NewNop(),
	}
	RegisterDefaults(b.registry)
	return b
}

// RegisterHook thêm/ghi đè 1 factory theo tên.
func (b *HookBuilder) RegisterHook(name string, f Factory) *HookBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.registry[name] = f
	return b
}

func (b *HookBuilder) WithLogger(logger *zap.Logger) *HookBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	if logger == nil {
		logger = zap.NewNop()
	}
	b.logger = logger
	return b
}

// RegisterCompilationHook đăng ký 1 hook chạy ở pha compile.
func (b *HookBuilder) RegisterCompilationHook(phase CompilationPhase, hook CompilationHookFn) *HookBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.compilationHooks[phase] = append(b.compilationHooks[phase], hook)
	return b
}

// Build dựng 1 predicate từ spec; spec có match_if_predicate_is=false được bọc Neg.
func (b *HookBuilder) Build(spec ir.HookSpec) (Predicate, error) {
	b.mu.RLock()
	f, ok := b.registry[spec.Name]
	logger := b.logger
	b.mu.RUnlock()
	if !ok {
		return nil, &UnknownHookError{Name: spec.Name}
	}

	args := Args{Hook: spec.Name, Value: spec.Args, Kwargs: spec.Kwargs, Logger: logger}
	// args dạng mapping = kwargs
	if m, isMap := spec.Args.(map[string]any); isMap {
		args.Value = nil
		args.Kwargs = mergeKwargs(m, spec.Kwargs)
	}
	if err := args.check(f.Params); err != nil {
		return nil, err
	}
	p, err := f.Build(args)
	if err != nil {
		return nil, err
	}
	if spec.Negated() {
		p = Neg(p)
	}
	return p, nil
}

// Compile: dựng toàn bộ match hook của một rule, chạy compilation hooks theo pha.
// Lỗi đầu tiên dừng compile, kèm tên rule và vị trí hook.
func (b *HookBuilder) Compile(ruleName string, specs []ir.HookSpec) ([]Predicate, error) {
	if hs := b.hooks(PreCompilation); len(hs) > 0 {
		ctx := NewSummaryContext(ruleName, len(specs))
		for _, h := range hs {
			if err := h(ctx); err != nil {
				return nil, err
			}
		}
	}

	out := make([]Predicate, 0, len(specs))
	discovery := b.hooks(HookDiscovery)
	for i, spec := range specs {
		if len(discovery) > 0 {
			ctx := NewCompilationContext(ruleName, i, spec, len(specs))
			for _, h := range discovery {
				if err := h(ctx); err != nil {
					return nil, err
				}
			}
		}
		p, err := b.Build(spec)
		if err != nil {
			return nil, fmt.Errorf("rule %s: match_hook[%d]: %w", ruleName, i, err)
		}
		out = append(out, p)
	}

	if hs := b.hooks(PostCompilation); len(hs) > 0 {
		ctx := NewSummaryContext(ruleName, len(specs))
		for _, h := range hs {
			if err := h(ctx); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// ---------- helpers ----------

func mergeKwargs(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func (b *HookBuilder) hooks(phase CompilationPhase) []CompilationHookFn {
	b.mu.RLock()
	defer b.mu.RUnlock()
	h := b.compilationHooks[phase]
	out := make([]CompilationHookFn, len(h))
	copy(out, h)
	return out
}

// ---------- introspection (phục vụ test/diagnostics) ----------

func (b *HookBuilder) HookCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.registry)
}

func (b *HookBuilder) HasHook(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.registry[name]
	return ok
}

// HookNames trả về tên hook đã đăng ký, sort tăng dần.
func (b *HookBuilder) HookNames() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.registry))
	for name := range b.registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (b *HookBuilder) CompilationHookCount(phase CompilationPhase) int {
	return len(b.hooks(phase))
}

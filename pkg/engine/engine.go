package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	ir "github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang"
	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/doc"
	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/filters"
	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/matcher"
	"github.com/PhucNguyen204/MatchHooks/pkg/hookcfg"
)

// UnknownRuleError: candidate trỏ tới rule không có trong engine.
type UnknownRuleError struct{ Name string }

func (e *UnknownRuleError) Error() string { return "unknown match rule: " + e.Name }

// Candidate là span ứng viên do scan loop tạo ra, kèm suggestion đã sinh.
type Candidate struct {
	MatchName   string   `json:"match_name"`
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Suggestions []string `json:"suggestions"`
}

// Batch là một document cùng các candidate của nó.
type Batch struct {
	Doc        *doc.Document
	Candidates []Candidate
}

type CompiledRule struct {
	Name      string
	HookCount int
	accept    matcher.Predicate
}

type Engine struct {
	cfg    ir.EngineConfig
	logger *zap.Logger
	filter filters.SpanFilter

	rules map[string]CompiledRule

	// tên hook -> số lần xuất hiện trong các rule đã compile
	usageMu sync.Mutex
	usage   map[string]int
}

// Compile dựng toàn bộ rule; lỗi cấu hình đầu tiên dừng compile (kèm tên rule).
// cfg.Debug => mỗi rule có thêm debug_hook ở cuối.
func Compile(rules []ir.MatchRule, cfg ir.EngineConfig, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	filter, err := filters.ForMode(cfg.Filter)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:    cfg,
		logger: logger,
		filter: filter,
		rules:  make(map[string]CompiledRule, len(rules)),
		usage:  make(map[string]int),
	}

	if cfg.Debug {
		rules = hookcfg.AttachDebugHooks(rules)
	}

	b := matcher.NewHookBuilder().WithLogger(logger)
	b.RegisterCompilationHook(matcher.HookDiscovery, func(ctx *matcher.CompilationContext) error {
		e.usageMu.Lock()
		e.usage[ctx.Spec.Name]++
		e.usageMu.Unlock()
		return nil
	})

	for _, r := range rules {
		if _, dup := e.rules[r.Name]; dup {
			return nil, fmt.Errorf("duplicate match rule %s", r.Name)
		}
		preds, err := b.Compile(r.Name, r.Hooks)
		if err != nil {
			return nil, err
		}
		e.rules[r.Name] = CompiledRule{Name: r.Name, HookCount: len(preds), accept: matcher.All(preds...)}
	}

	logger.Debug("compiled match rules",
		zap.Int("rules", len(e.rules)),
		zap.Stringer("filter", cfg.Filter),
		zap.Bool("debug", cfg.Debug))
	return e, nil
}

// Accept: span [start, end) của rule name có qua tất cả match hook không.
func (e *Engine) Accept(name string, d *doc.Document, start, end int) (bool, error) {
	r, ok := e.rules[name]
	if !ok {
		return false, &UnknownRuleError{Name: name}
	}
	if d == nil {
		return false, errors.New("nil document")
	}
	if !d.InBounds(start, end) {
		return false, fmt.Errorf("rule %s: span [%d,%d) out of bounds for document of %d tokens", name, start, end, d.Len())
	}
	return r.accept.Match(d, start, end), nil
}

// Process: loại candidate bị hook từ chối rồi chạy filter theo cấu hình.
// Thứ tự candidate được giữ nguyên.
func (e *Engine) Process(d *doc.Document, candidates []Candidate) ([]*doc.MatchedSpan, error) {
	accepted := make([]*doc.MatchedSpan, 0, len(candidates))
	for i, c := range candidates {
		ok, err := e.Accept(c.MatchName, d, c.Start, c.End)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		if !ok {
			continue
		}
		accepted = append(accepted, doc.NewMatchedSpan(d, c.Start, c.End, c.MatchName, c.Suggestions...))
	}
	return e.filter(accepted), nil
}

// ProcessBatch xử lý nhiều document song song (tối đa cfg.Workers() goroutine).
// Kết quả giữ thứ tự batches; lỗi đầu tiên hoặc ctx bị huỷ sẽ dừng các batch còn lại.
func (e *Engine) ProcessBatch(ctx context.Context, batches []Batch) ([][]*doc.MatchedSpan, error) {
	out := make([][]*doc.MatchedSpan, len(batches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers())

	for i := range batches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			spans, err := e.Process(batches[i].Doc, batches[i].Candidates)
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}
			out[i] = spans
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------- introspection ----------

func (e *Engine) Config() ir.EngineConfig { return e.cfg }

func (e *Engine) RuleCount() int { return len(e.rules) }

func (e *Engine) HasRule(name string) bool {
	_, ok := e.rules[name]
	return ok
}

// RuleNames sort tăng dần.
func (e *Engine) RuleNames() []string {
	out := make([]string, 0, len(e.rules))
	for name := range e.rules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (e *Engine) Rule(name string) (CompiledRule, bool) {
	r, ok := e.rules[name]
	return r, ok
}

// HookUsage: số lần mỗi hook được dùng trong các rule đã compile.
func (e *Engine) HookUsage() map[string]int {
	e.usageMu.Lock()
	defer e.usageMu.Unlock()
	out := make(map[string]int, len(e.usage))
	for k, v := range e.usage {
		out[k] = v
	}
	return out
}

package matcher

import (
	"go.uber.org/zap"

	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/doc"
)

// debugPredicate luôn trả true; chỉ log span đã match kèm tên match.
type debugPredicate struct {
	matchName string
	logger    *zap.Logger
}

func (p debugPredicate) Match(d *doc.Document, start, end int) bool {
	p.logger.Info("DEBUG match",
		zap.String("match", p.matchName),
		zap.String("text", d.SpanText(start, end)),
		zap.Int("start", start),
		zap.Int("end", end),
	)
	return true
}

// DebugHook không dùng trực tiếp trong rule; engine gắn nó vào mọi rule khi bật debug.
func DebugHook(matchName string, logger *zap.Logger) Predicate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return debugPredicate{matchName: matchName, logger: logger}
}

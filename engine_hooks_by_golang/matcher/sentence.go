package matcher

import (
	"go.uber.org/zap"

	"github.com/PhucNguyen204/MatchHooks/engine_hooks_by_golang/doc"
)

// -------- sentence position --------

type sentStartPredicate struct{}

func (sentStartPredicate) Match(d *doc.Document, start, end int) bool {
	if start < 0 || start >= d.Len() {
		return false
	}
	return d.Tokens()[start].IsSentStart
}

func IsStartOfSentence() Predicate { return sentStartPredicate{} }

type sentEndPredicate struct{}

func (sentEndPredicate) Match(d *doc.Document, start, end int) bool {
	return end == d.Len() || d.IsSentEnd(end)
}

// IsEndOfSentence: span chạm cuối document, hoặc token tại end là token cuối câu.
func IsEndOfSentence() Predicate { return sentEndPredicate{} }

// -------- sentence_has --------

// sentenceHasPredicate xét toàn bộ text của document (không chỉ câu hiện tại).
type sentenceHasPredicate struct {
	set    *PhraseSet
	logger *zap.Logger
}

func (p sentenceHasPredicate) Match(d *doc.Document, start, end int) bool {
	text := d.Text()
	if !p.set.Contains(text) {
		return false
	}
	// chỉ tính Matches khi debug level bật
	if ce := p.logger.Check(zap.DebugLevel, "sentence_has hit"); ce != nil {
		ce.Write(
			zap.Strings("phrases", p.set.Matches(text)),
			zap.Int("start", start),
			zap.Int("end", end),
		)
	}
	return true
}

func SentenceHas(caseSensitive bool, phrases ...string) Predicate {
	return newSentenceHas(zap.NewNop(), caseSensitive, phrases)
}

// newSentenceHas: logger nhận phrase nào đã khớp ở mức Debug.
func newSentenceHas(logger *zap.Logger, caseSensitive bool, phrases []string) Predicate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return sentenceHasPredicate{set: NewPhraseSet(phrases, caseSensitive), logger: logger}
}

// -------- preceded_by_space --------

type precededBySpacePredicate struct{}

// Match: ký tự ngay trước start char đúng bằng ' ' (không tính tab/newline).
func (precededBySpacePredicate) Match(d *doc.Document, start, end int) bool {
	sc := d.StartChar(start)
	text := d.Text()
	if sc <= 0 || sc > len(text) {
		return false
	}
	return text[sc-1] == ' '
}

func PrecededBySpace() Predicate { return precededBySpacePredicate{} }

// -------- part_of_compound --------

type compoundPredicate struct{}

func (compoundPredicate) Match(d *doc.Document, start, end int) bool {
	if start < 0 || start >= d.Len() {
		return false
	}
	toks := d.Tokens()
	if toks[start].Dep == "compound" {
		return true
	}
	for _, c := range d.Children(start) {
		if toks[c].Dep == "compound" {
			return true
		}
	}
	return false
}

// PartOfCompound: token đầu của span là compound, hoặc có compound modifier trỏ về nó.
func PartOfCompound() Predicate { return compoundPredicate{} }

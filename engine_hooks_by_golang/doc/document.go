package doc

import (
	"errors"
	"fmt"
)

// Token là một đơn vị ngôn ngữ đã được parser gán nhãn.
// Start/End là byte offset trong text của Document.
// Head là chỉ số tuyệt đối của head token; Head == chỉ số của chính nó => root.
type Token struct {
	Text        string `json:"text"`
	Lemma       string `json:"lemma"`
	POS         string `json:"pos"`
	Tag         string `json:"tag"`
	Dep         string `json:"dep"`
	Head        int    `json:"head"`
	IsSentStart bool   `json:"is_sent_start"`
	Start       int    `json:"start"`
	End         int    `json:"end"`

	// Lex được tính lại trong New, giá trị truyền vào bị bỏ qua.
	Lex Lexeme `json:"-"`
}

// Document là snapshot bất biến: text + tokens + cây phụ thuộc (parent index + children adjacency).
// An toàn khi đọc đồng thời từ nhiều goroutine.
type Document struct {
	text     string
	tokens   []Token
	children [][]int
}

var ErrHeadCycle = errors.New("dependency heads contain a cycle")

// New dựng Document từ output của parser.
// Kiểm tra offset/head hợp lệ, ép token 0 là sentence start, dựng children adjacency một lần.
func New(text string, tokens []Token) (*Document, error) {
	n := len(tokens)
	toks := make([]Token, n)
	copy(toks, tokens)

	prevEnd := 0
	for i := range toks {
		t := &toks[i]
		if t.Start < prevEnd || t.Start > t.End || t.End > len(text) {
			return nil, fmt.Errorf("token %d: invalid offsets [%d,%d) for text of length %d", i, t.Start, t.End, len(text))
		}
		if text[t.Start:t.End] != t.Text {
			return nil, fmt.Errorf("token %d: text %q does not match document text %q", i, t.Text, text[t.Start:t.End])
		}
		if t.Head < 0 || t.Head >= n {
			return nil, fmt.Errorf("token %d: head %d out of range", i, t.Head)
		}
		t.Lex = LexemeOf(t.Text)
		prevEnd = t.End
	}
	if n > 0 {
		toks[0].IsSentStart = true
	}

	children := make([][]int, n)
	for i := range toks {
		if h := toks[i].Head; h != i {
			children[h] = append(children[h], i)
		}
	}
	d := &Document{text: text, tokens: toks, children: children}
	if err := d.checkAcyclic(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) checkAcyclic() error {
	const (
		unseen = iota
		visiting
		done
	)
	state := make([]uint8, len(d.tokens))
	for i := range d.tokens {
		var path []int
		j := i
		for state[j] == unseen {
			state[j] = visiting
			path = append(path, j)
			h := d.tokens[j].Head
			if h == j {
				break
			}
			j = h
		}
		if state[j] == visiting && d.tokens[j].Head != j {
			return fmt.Errorf("token %d: %w", j, ErrHeadCycle)
		}
		for _, p := range path {
			state[p] = done
		}
	}
	return nil
}

// Len số token.
func (d *Document) Len() int { return len(d.tokens) }

// Text toàn bộ text của document.
func (d *Document) Text() string { return d.text }

// Token trả về bản sao token i (i phải hợp lệ).
func (d *Document) Token(i int) Token { return d.tokens[i] }

// Tokens trả về slice nội bộ, caller không được sửa.
func (d *Document) Tokens() []Token { return d.tokens }

// InBounds kiểm tra 0 <= start <= end <= Len().
func (d *Document) InBounds(start, end int) bool {
	return start >= 0 && start <= end && end <= len(d.tokens)
}

// SpanText = doc[start:end].text: từ đầu token start tới cuối token end-1, không kèm whitespace cuối.
func (d *Document) SpanText(start, end int) string {
	if start < 0 || end > len(d.tokens) || start >= end {
		return ""
	}
	return d.text[d.tokens[start].Start:d.tokens[end-1].End]
}

// TextBefore = doc[:start].text
func (d *Document) TextBefore(start int) string {
	if start > len(d.tokens) {
		start = len(d.tokens)
	}
	return d.SpanText(0, start)
}

// TextAfter = doc[end:].text
func (d *Document) TextAfter(end int) string {
	if end < 0 {
		end = 0
	}
	return d.SpanText(end, len(d.tokens))
}

// StartChar là byte offset bắt đầu của span [start, end).
func (d *Document) StartChar(start int) int {
	if start < 0 {
		return 0
	}
	if start >= len(d.tokens) {
		return len(d.text)
	}
	return d.tokens[start].Start
}

// EndChar là byte offset kết thúc của span [start, end).
func (d *Document) EndChar(start, end int) int {
	if end <= start || end > len(d.tokens) {
		return d.StartChar(start)
	}
	return d.tokens[end-1].End
}

// IsSentEnd: token cuối document, hoặc token kế tiếp mở câu mới.
func (d *Document) IsSentEnd(i int) bool {
	if i < 0 || i >= len(d.tokens) {
		return false
	}
	return i == len(d.tokens)-1 || d.tokens[i+1].IsSentStart
}

// ---------------- tree ----------------

// HeadOf trả về head trực tiếp (ancestor gần nhất); ok=false nếu i là root.
func (d *Document) HeadOf(i int) (int, bool) {
	h := d.tokens[i].Head
	if h == i {
		return 0, false
	}
	return h, true
}

// Children trả về children trực tiếp theo thứ tự trong document. Không được sửa slice trả về.
func (d *Document) Children(i int) []int { return d.children[i] }

// Ancestors trả về chuỗi ancestor từ head trực tiếp tới root.
func (d *Document) Ancestors(i int) []int {
	var out []int
	for steps := 0; steps < len(d.tokens); steps++ {
		h, ok := d.HeadOf(i)
		if !ok {
			break
		}
		out = append(out, h)
		i = h
	}
	return out
}

package doc

import "fmt"

// FromTokens dựng text từ token.Text + khoảng trắng (spaces[i] = có space sau token i).
// spaces == nil => có space sau mọi token trừ token cuối.
// Start/End của token được tính lại.
func FromTokens(tokens []Token, spaces []bool) (*Document, error) {
	if spaces != nil && len(spaces) != len(tokens) {
		return nil, fmt.Errorf("spaces has %d entries for %d tokens", len(spaces), len(tokens))
	}
	toks := make([]Token, len(tokens))
	copy(toks, tokens)

	buf := make([]byte, 0, 8*len(toks))
	for i := range toks {
		toks[i].Start = len(buf)
		buf = append(buf, toks[i].Text...)
		toks[i].End = len(buf)
		space := i < len(toks)-1
		if spaces != nil {
			space = spaces[i]
		}
		if space {
			buf = append(buf, ' ')
		}
	}
	return New(string(buf), toks)
}

// FromWords: mọi token là root riêng, không có nhãn POS/dep. Tiện cho test và text thuần.
func FromWords(words []string, spaces []bool) (*Document, error) {
	toks := make([]Token, len(words))
	for i, w := range words {
		toks[i] = Token{Text: w, Lemma: w, Head: i}
	}
	return FromTokens(toks, spaces)
}

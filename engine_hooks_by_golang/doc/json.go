package doc

import (
	"encoding/json"
	"fmt"
)

// Định dạng output của spaCy Doc.to_json():
//
//	{"text": "...", "sents": [{"start":0,"end":12}],
//	 "tokens": [{"id":0,"start":0,"end":5,"pos":"PROPN","tag":"NNP","dep":"nsubj","head":1,"lemma":"Apple"}]}
//
// start/end tính theo ký tự (rune), được đổi sang byte offset.
type jsonDoc struct {
	Text   string      `json:"text"`
	Sents  []jsonRange `json:"sents"`
	Tokens []jsonToken `json:"tokens"`
}

type jsonRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonToken struct {
	ID          int    `json:"id"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	POS         string `json:"pos"`
	Tag         string `json:"tag"`
	Dep         string `json:"dep"`
	Head        int    `json:"head"`
	Lemma       string `json:"lemma"`
	IsSentStart *bool  `json:"is_sent_start,omitempty"`
}

// FromJSON decode output Doc.to_json() của spaCy.
func FromJSON(b []byte) (*Document, error) {
	var jd jsonDoc
	if err := json.Unmarshal(b, &jd); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	// rune offset -> byte offset
	byteAt := make([]int, 0, len(jd.Text)+1)
	for i := range jd.Text {
		byteAt = append(byteAt, i)
	}
	byteAt = append(byteAt, len(jd.Text))
	conv := func(r int) (int, error) {
		if r < 0 || r >= len(byteAt) {
			return 0, fmt.Errorf("char offset %d out of range", r)
		}
		return byteAt[r], nil
	}

	sentStarts := make(map[int]struct{}, len(jd.Sents))
	for _, s := range jd.Sents {
		sentStarts[s.Start] = struct{}{}
	}

	toks := make([]Token, len(jd.Tokens))
	for i, jt := range jd.Tokens {
		start, err := conv(jt.Start)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		end, err := conv(jt.End)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		if start > end {
			return nil, fmt.Errorf("token %d: start after end", i)
		}
		_, sentStart := sentStarts[jt.Start]
		if jt.IsSentStart != nil {
			sentStart = *jt.IsSentStart
		}
		toks[i] = Token{
			Text:        jd.Text[start:end],
			Lemma:       jt.Lemma,
			POS:         jt.POS,
			Tag:         jt.Tag,
			Dep:         jt.Dep,
			Head:        jt.Head,
			IsSentStart: sentStart,
			Start:       start,
			End:         end,
		}
	}
	return New(jd.Text, toks)
}

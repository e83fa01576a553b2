package doc

import (
	"strings"
	"unicode"
)

// Lexeme gom các thuộc tính chỉ phụ thuộc vào text của token (giống lexeme attrs của spaCy).
// Được tính một lần khi dựng Document.
type Lexeme struct {
	Lower      string
	IsPunct    bool
	IsDigit    bool
	LikeNum    bool
	IsCurrency bool
	IsSpace    bool
}

// LexemeOf tính thuộc tính lexical cho text.
func LexemeOf(text string) Lexeme {
	return Lexeme{
		Lower:      strings.ToLower(text),
		IsPunct:    allRunes(text, unicode.IsPunct),
		IsDigit:    allRunes(text, unicode.IsDigit),
		LikeNum:    likeNum(text),
		IsCurrency: allRunes(text, isCurrencyRune),
		IsSpace:    allRunes(text, unicode.IsSpace),
	}
}

func isCurrencyRune(r rune) bool { return unicode.Is(unicode.Sc, r) }

// allRunes: chuỗi rỗng => false
func allRunes(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}

var numberWords = map[string]struct{}{
	"zero": {}, "one": {}, "two": {}, "three": {}, "four": {}, "five": {}, "six": {},
	"seven": {}, "eight": {}, "nine": {}, "ten": {}, "eleven": {}, "twelve": {},
	"thirteen": {}, "fourteen": {}, "fifteen": {}, "sixteen": {}, "seventeen": {},
	"eighteen": {}, "nineteen": {}, "twenty": {}, "thirty": {}, "forty": {}, "fifty": {},
	"sixty": {}, "seventy": {}, "eighty": {}, "ninety": {}, "hundred": {}, "thousand": {},
	"million": {}, "billion": {}, "trillion": {}, "quadrillion": {}, "gajillion": {},
	"bazillion": {},
}

var ordinalWords = map[string]struct{}{
	"first": {}, "second": {}, "third": {}, "fourth": {}, "fifth": {}, "sixth": {},
	"seventh": {}, "eighth": {}, "ninth": {}, "tenth": {}, "eleventh": {}, "twelfth": {},
	"thirteenth": {}, "fourteenth": {}, "fifteenth": {}, "sixteenth": {},
	"seventeenth": {}, "eighteenth": {}, "nineteenth": {}, "twentieth": {},
	"thirtieth": {}, "fortieth": {}, "fiftieth": {}, "sixtieth": {}, "seventieth": {},
	"eightieth": {}, "ninetieth": {}, "hundredth": {}, "thousandth": {}, "millionth": {},
	"billionth": {}, "trillionth": {},
}

// likeNum: heuristic tiếng Anh cho "numeric-like" (10.9, 10, "ten", 1/2, 3rd, "third"...).
func likeNum(text string) bool {
	s := text
	if s != "" && strings.ContainsRune("+-±~", []rune(s)[0]) {
		s = string([]rune(s)[1:])
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, ".", "")
	if allRunes(s, unicode.IsDigit) {
		return true
	}
	if strings.Count(s, "/") == 1 {
		num, denom, _ := strings.Cut(s, "/")
		if allRunes(num, unicode.IsDigit) && allRunes(denom, unicode.IsDigit) {
			return true
		}
	}
	lower := strings.ToLower(text)
	if _, ok := numberWords[lower]; ok {
		return true
	}
	if _, ok := ordinalWords[lower]; ok {
		return true
	}
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if strings.HasSuffix(lower, suffix) && allRunes(strings.TrimSuffix(lower, suffix), unicode.IsDigit) {
			return true
		}
	}
	return false
}

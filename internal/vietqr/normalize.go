package vietqr

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxPurposeLen is the longest purpose text placed into tag 62/08.
const MaxPurposeLen = 25

// Letters that carry no canonical decomposition.
var substitutions = map[rune]rune{
	'đ': 'd',
	'Đ': 'D',
}

// NormalizePurpose transliterates s to printable ASCII and cuts it to
// MaxPurposeLen characters. Whitespace is kept as is.
func NormalizePurpose(s string) string {
	if s == "" {
		return ""
	}

	// transform.Transformer values are stateful, so the chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	out := strings.Map(func(r rune) rune {
		if sub, ok := substitutions[r]; ok {
			return sub
		}
		if r < 0x20 || r > 0x7E {
			return -1
		}
		return r
	}, stripped)

	if len(out) > MaxPurposeLen {
		out = out[:MaxPurposeLen]
	}
	return out
}

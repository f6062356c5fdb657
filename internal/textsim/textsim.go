// Package textsim estimates the similarity of two free-text answers by
// blending a character-level sequence-matcher ratio with a token-set
// Jaccard index.
package textsim

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Blend weights. The result favors shared vocabulary over raw character
// overlap; the constants are a design decision, not derived.
const (
	charWeight  = 0.4
	tokenWeight = 0.6
)

// Similarity returns the blended similarity of two strings in [0,1].
func Similarity(a, b string) float64 {
	return charWeight*CharRatio(a, b) + tokenWeight*TokenJaccard(a, b)
}

// CharRatio is the sequence-matcher ratio of the lower-cased strings:
// twice the number of characters in the longest matching blocks divided by
// the total length of both strings. Identical strings score 1.0.
func CharRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	sm := difflib.NewMatcher(
		strings.Split(strings.ToLower(a), ""),
		strings.Split(strings.ToLower(b), ""),
	)
	return sm.Ratio()
}

// TokenJaccard is |A∩B| / |A∪B| over the filtered token sets of both
// strings. If either set comes out empty, the similarity is 0.
func TokenJaccard(a, b string) float64 {
	as := tokenSet(a)
	bs := tokenSet(b)
	if len(as) == 0 || len(bs) == 0 {
		return 0
	}
	inter := 0
	for t := range as {
		if _, ok := bs[t]; ok {
			inter++
		}
	}
	union := len(as) + len(bs) - inter
	return float64(inter) / float64(union)
}

// tokenSet lower-cases, strips punctuation, splits on whitespace and drops
// short tokens and stopwords. When no stopword list is available the short
// and punctuation filters still apply.
func tokenSet(s string) map[string]struct{} {
	stop := Stopwords()
	out := make(map[string]struct{})
	for _, tok := range strings.Fields(stripPunct(strings.ToLower(s))) {
		if len([]rune(tok)) <= 2 {
			continue
		}
		if _, skip := stop[tok]; skip {
			continue
		}
		out[tok] = struct{}{}
	}
	return out
}

func stripPunct(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			sb.WriteRune(r)
		case r > 127:
			// Keep non-ASCII letters; only ASCII punctuation is stripped.
			sb.WriteRune(r)
		default:
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}

package meta

import "strings"

// stopwords never count towards similarity
var stopwords = map[string]bool{
	"video":   true,
	"podcast": true,
	"choreo":  true,
	"notes":   true,
	"front":   true,
	"back":    true,
	"from":    true,
	"the":     true,
	"a":       true,
	"is":      true,
	"to":      true,
}

// TokenSet is the set of significant words of a title or filename
type TokenSet map[string]struct{}

// Has reports whether the set contains token
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Tokens extracts the significant words (longer than two characters, not a
// stopword) from the title key of text, plus the filename key when text looks
// like a filename (contains an underscore or hyphen).
func Tokens(text string) TokenSet {
	all := BaseKeyFromTitle(text)
	if strings.ContainsAny(text, "_-") {
		all += " " + BaseKeyFromFilename(text)
	}

	set := make(TokenSet)
	for _, w := range strings.Fields(all) {
		if len(w) > 2 && !stopwords[w] {
			set[w] = struct{}{}
		}
	}
	return set
}

// Similarity returns the Jaccard index of the token sets of a and b, in [0,1].
// It is 0 when either side has no significant tokens.
func Similarity(a, b string) float64 {
	return Jaccard(Tokens(a), Tokens(b))
}

// Jaccard returns |A∩B| / |A∪B| for two token sets, or 0 if either is empty.
func Jaccard(a, b TokenSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	inter := 0
	for tok := range a {
		if b.Has(tok) {
			inter++
		}
	}

	return float64(inter) / float64(len(a)+len(b)-inter)
}

package guardrail

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks after NFD decomposition, so
// "Incêndio" and "incendio" compare equal.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases and diacritic-folds text for lexicon matching.
func Normalize(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// hasWordAt reports whether term occurs in s starting at i on word boundaries.
func hasWordAt(s, term string, i int) bool {
	if i > 0 && isWordRune(rune(s[i-1])) {
		return false
	}
	end := i + len(term)
	if end < len(s) && isWordRune(rune(s[end])) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// containsTerm is a word-boundary substring check on already-normalized text.
// Short slang like "cv" must not match inside ordinary words.
func containsTerm(normalized, term string) bool {
	for i := 0; ; {
		j := strings.Index(normalized[i:], term)
		if j < 0 {
			return false
		}
		if hasWordAt(normalized, term, i+j) {
			return true
		}
		i += j + 1
		if i >= len(normalized) {
			return false
		}
	}
}

// replaceTerm rewrites every word-boundary occurrence of term with repl on
// normalized text.
func replaceTerm(normalized, term, repl string) string {
	var b strings.Builder
	i := 0
	for {
		j := strings.Index(normalized[i:], term)
		if j < 0 {
			b.WriteString(normalized[i:])
			return b.String()
		}
		at := i + j
		if hasWordAt(normalized, term, at) {
			b.WriteString(normalized[i:at])
			b.WriteString(repl)
			i = at + len(term)
		} else {
			b.WriteString(normalized[i : at+1])
			i = at + 1
		}
		if i >= len(normalized) {
			return b.String()
		}
	}
}

package guardrail

import "regexp"

// PII-shaped substrings. Matching runs on normalized text; plates are the
// exception and are matched case-insensitively via inline flag.
var piiPatterns = []*regexp.Regexp{
	// CPF: 123.456.789-09 and bare 11-digit runs
	regexp.MustCompile(`\b\d{3}\.?\d{3}\.?\d{3}-?\d{2}\b`),
	// CNPJ: 12.345.678/0001-95
	regexp.MustCompile(`\b\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}\b`),
	// BR phone: optional +55, optional area code, 8-9 digits with separator
	regexp.MustCompile(`(\+?55[\s.-]?)?\(?\d{2}\)?[\s.-]?9?\d{4}[\s.-]\d{4}\b`),
	// email
	regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`),
	// license plates, old (ABC-1234) and Mercosul (ABC1D23) formats
	regexp.MustCompile(`(?i)\b[a-z]{3}-?\d{4}\b`),
	regexp.MustCompile(`(?i)\b[a-z]{3}\d[a-z]\d{2}\b`),
}

// properNameRE catches capitalized multi-word proper-name-shaped sequences
// ("Joao Carlos da Silva"). It runs on the original text, before folding,
// since capitalization is the signal.
var properNameRE = regexp.MustCompile(`\p{Lu}\p{Ll}+(?:\s+(?:da|de|do|dos|das)\s+\p{Lu}\p{Ll}+|\s+\p{Lu}\p{Ll}+)+`)

// matchesPII reports whether the text carries any PII-shaped substring.
// original is the raw input (capitalization intact), normalized the folded
// lowercase version.
func matchesPII(original, normalized string) bool {
	for _, re := range piiPatterns {
		if re.MatchString(normalized) {
			return true
		}
	}
	return properNameRE.MatchString(original)
}

// redactPII strips PII-shaped substrings out of normalized text for the
// suggestion. Proper names are redacted on the capitalization-preserving pass
// upstream, so only the pattern list applies here.
func redactPII(normalized string) string {
	out := normalized
	for _, re := range piiPatterns {
		out = re.ReplaceAllString(out, redacted)
	}
	return out
}

package verification

import (
	"regexp"
	"strings"
	"unicode"
)

// quantityPattern matches numeric claims: counts, percentages, money,
// magnitudes like "12", "99.9%", "3,000", "40k".
var quantityPattern = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?\s*(?:%|k\b|m\b|x\b)?`)

// extractQuantities returns the numeric claim tokens in a bullet, with
// thousands separators and trailing whitespace stripped.
func extractQuantities(text string) []string {
	matches := quantityPattern.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.ReplaceAll(strings.TrimSpace(m), ",", "")
		m = strings.ReplaceAll(m, " ", "")
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

// tokenizeWords folds text into a space-separated lowercase word stream
// using the same rune rules as skill normalization. Trailing dots are
// stripped per token so sentence punctuation cannot mask a match, while
// inner dots ("node.js") survive. Padding with spaces lets callers do
// whole-term containment checks.
func tokenizeWords(text string) string {
	var words []string
	var b strings.Builder
	flush := func() {
		if w := strings.TrimRight(b.String(), "."); w != "" {
			words = append(words, w)
		}
		b.Reset()
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return " " + strings.Join(words, " ") + " "
}

// containsTerm reports whether tokenized text contains the term as whole
// words. The term is tokenized the same way, so "Node.js" and "node js"
// compare equal.
func containsTerm(tokenized, term string) bool {
	needle := strings.TrimSpace(tokenizeWords(term))
	if needle == "" {
		return false
	}
	return strings.Contains(tokenized, " "+needle+" ")
}

// containsQuantity reports whether the tokenized source text mentions the
// numeric token. The unit suffix is stripped before lookup so "12" in the
// source supports a "12x" claim only when the bare number appears.
func containsQuantity(tokenized, quantity string) bool {
	bare := strings.TrimRight(quantity, "%kmx")
	if bare == "" {
		return false
	}
	return strings.Contains(tokenized, bare)
}

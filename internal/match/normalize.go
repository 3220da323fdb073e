package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds a name for fuzzy comparison: CamelCase boundaries and
// separators (_ - : . and spaces) are dropped and the result is lowercased.
// "hc:Loop", "hc-loop" and "HcLoop" all normalize to "hcloop".
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// TokenizeIdent splits a name into lowercase tokens at separators and
// CamelCase boundaries.
// Examples:
//   - "itemList" -> ["item", "list"]
//   - "XMLParser" -> ["xml", "parser"]
//   - "hc:else" -> ["hc", "else"]
func TokenizeIdent(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', ':', '.', ' ':
		return true
	default:
		return false
	}
}

// startsToken reports whether a CamelCase token begins at runes[i].
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	// End of an acronym: "XMLParser" splits before 'P'.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

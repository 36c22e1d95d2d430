package admission

import (
	"strings"
	"unicode/utf8"
)

// minTokenLength is the shortest fragment kept as a keyword
const minTokenLength = 3

// Tokenize splits a free-text query on whitespace and drops fragments shorter
// than three characters. Casing is preserved; every comparison made with the
// tokens is case-insensitive.
func Tokenize(query string) []string {
	fields := strings.Fields(query)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// without returns the tokens that are not in stop, compared case-insensitively
func without(tokens []string, stop []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !inFold(stop, t) {
			out = append(out, t)
		}
	}
	return out
}

// within returns the tokens that are in list, compared case-insensitively
func within(tokens []string, list []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if inFold(list, t) {
			out = append(out, t)
		}
	}
	return out
}

func inFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func containsAnyFold(s string, substrs []string) bool {
	for _, sub := range substrs {
		if containsFold(s, sub) {
			return true
		}
	}
	return false
}

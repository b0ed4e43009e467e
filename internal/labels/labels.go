// Package labels derives human-friendly labels from field ids.
package labels

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-.\s]+`)

// FromID converts a field id such as "first_name" or "billingEmail" into
// "First Name" / "Billing Email". It splits on underscores, dashes, dots and
// camelCase boundaries.
func FromID(id string) string {
	if id == "" {
		return ""
	}

	words := splitWordsPattern.Split(id, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		for _, part := range strings.Fields(splitCamel(word)) {
			segments = append(segments, titleCase(part))
		}
	}
	return strings.Join(segments, " ")
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev := rune(input[index-1])
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

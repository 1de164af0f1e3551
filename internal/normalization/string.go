package normalization

import (
	"strings"
)

func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// TrimInputString keeps the caller's casing. Used for fields like career
// goals where "Clinical Data Analyst" must stay an exact-match key.
func TrimInputString(input string) string {
	return strings.TrimSpace(input)
}

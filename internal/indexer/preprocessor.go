package indexer

import (
	"strings"
	"unicode"
)

// Preprocess trims text and collapses whitespace runs into single spaces.
func Preprocess(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false
	for _, r := range strings.TrimSpace(text) {
		if unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// PreprocessFields applies Preprocess to every string field value in place.
// Strings nested in arrays and objects are left as they are.
func PreprocessFields(fields map[string]interface{}) {
	for k, v := range fields {
		if s, ok := v.(string); ok {
			fields[k] = Preprocess(s)
		}
	}
}

package query

import (
	"regexp"
	"strings"

	"github.com/hyperjump/humansearch/internal/models"
)

// Shape classifies the surface structure of a query.
type Shape int

const (
	// ShapeSingleWord is a query with at most one word.
	ShapeSingleWord Shape = iota
	// ShapeMultiWord is several unquoted words.
	ShapeMultiWord
	// ShapePhrase contains a quoted phrase.
	ShapePhrase
	// ShapeWildcard contains * or ?.
	ShapeWildcard
	// ShapeBoolean contains a negated term.
	ShapeBoolean
)

func (s Shape) String() string {
	switch s {
	case ShapeSingleWord:
		return "single_word"
	case ShapeMultiWord:
		return "multi_word"
	case ShapePhrase:
		return "phrase"
	case ShapeWildcard:
		return "wildcard"
	case ShapeBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

var phraseRegex = regexp.MustCompile(`"([^"]+)"`)

// Phrases returns the trimmed, lower-cased contents of double-quoted phrases in q.
func Phrases(q string) []string {
	phrases := make([]string, 0)
	for _, m := range phraseRegex.FindAllStringSubmatch(q, -1) {
		if p := strings.TrimSpace(m[1]); p != "" {
			phrases = append(phrases, strings.ToLower(p))
		}
	}
	return phrases
}

// Classify determines the query shape. Wildcards take precedence over negation,
// negation over phrases.
func Classify(q string) Shape {
	if strings.ContainsAny(q, "*?") {
		return ShapeWildcard
	}
	rest := phraseRegex.ReplaceAllString(q, " ")
	words := strings.Fields(rest)
	for _, w := range words {
		if (strings.HasPrefix(w, "-") && len(w) > 1) || w == "NOT" {
			return ShapeBoolean
		}
	}
	if len(Phrases(q)) > 0 {
		return ShapePhrase
	}
	if len(words) <= 1 {
		return ShapeSingleWord
	}
	return ShapeMultiWord
}

// Understand summarizes a query. Keywords are the query tokens, entities the quoted
// phrases and the single category the query shape. Intent and sentiment are fixed.
func Understand(raw string, tokens []string, language string) *models.QueryUnderstanding {
	keywords := append([]string{}, tokens...)
	return &models.QueryUnderstanding{
		Intent:     "search",
		Entities:   Phrases(raw),
		Keywords:   keywords,
		Categories: []string{Classify(raw).String()},
		Sentiment:  0,
		Language:   language,
		Confidence: 1.0,
	}
}

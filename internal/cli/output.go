// Package cli renders search responses for the command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hyperjump/humansearch/internal/models"
	"github.com/hyperjump/humansearch/pkg/utils"
)

// OutputFormat is the format for search result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact prints one result per line.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is the raw response as indented JSON.
	OutputJSON OutputFormat = "json"
)

const snippetWidth = 160

// ParseOutputFormat maps a flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return OutputText, nil
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text, compact or json", s)
	}
}

// WriteSearchResults writes response to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		for i, r := range response.Results {
			if _, err := fmt.Fprintf(w, "%d\t%.4f\t%s\t%s\n", i+1, r.Score, r.ID, r.Explanation); err != nil {
				return err
			}
		}
		return nil
	default:
		return writeText(w, response)
	}
}

func writeText(w io.Writer, response *models.SearchResponse) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nFound %d results in %dms\n", response.Total, response.TookMs)
	if u := response.QueryUnderstanding; u != nil {
		fmt.Fprintf(&b, "Intent: %s (confidence %.2f)\n", u.Intent, u.Confidence)
	}
	b.WriteString("\n")
	for i, r := range response.Results {
		b.WriteString("─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(&b, "[%d] %s | Score: %.4f", i+1, r.ID, r.Score)
		if r.Explanation != "" {
			fmt.Fprintf(&b, " | %s", r.Explanation)
		}
		b.WriteString("\n")
		if len(r.MatchedFields) > 0 {
			fmt.Fprintf(&b, "Fields: %s\n", strings.Join(r.MatchedFields, ", "))
		}
		for _, h := range r.Highlights {
			for _, s := range h.Snippets {
				fmt.Fprintf(&b, "  %s: %s\n", h.Field, utils.Truncate(s, snippetWidth))
			}
		}
	}
	if len(response.Results) > 0 {
		b.WriteString("\n")
	}
	if len(response.Suggestions) > 0 {
		fmt.Fprintf(&b, "Suggestions: %s\n", strings.Join(response.Suggestions, ", "))
	}
	if len(response.RelatedQueries) > 0 {
		fmt.Fprintf(&b, "Related: %s\n", strings.Join(response.RelatedQueries, ", "))
	}
	writeFacets(&b, response.Facets)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeFacets(b *strings.Builder, facets map[string][]models.FacetValue) {
	if len(facets) == 0 {
		return
	}
	fields := make([]string, 0, len(facets))
	for f := range facets {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	b.WriteString("Facets:\n")
	for _, f := range fields {
		parts := make([]string, 0, len(facets[f]))
		for _, v := range facets[f] {
			parts = append(parts, fmt.Sprintf("%v (%d)", v.Value, v.Count))
		}
		fmt.Fprintf(b, "  %s: %s\n", f, strings.Join(parts, ", "))
	}
}

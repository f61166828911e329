package models

import "fmt"

const (
	// DefaultLimit is the page size used when a query does not set one.
	DefaultLimit = 10
	// DefaultLanguage is the query language used when none is given.
	DefaultLanguage = "en"
	// DefaultTypoTolerance is used by the fuzzy pass when the query sets no tolerance.
	DefaultTypoTolerance = 2
	// MaxTypoTolerance is the upper bound of the tolerance scale.
	MaxTypoTolerance = 5
)

// FilterOperator names a comparison applied by a SearchFilter.
type FilterOperator string

const (
	OpEquals     FilterOperator = "equals"
	OpNotEquals  FilterOperator = "not_equals"
	OpGt         FilterOperator = "gt"
	OpLt         FilterOperator = "lt"
	OpGte        FilterOperator = "gte"
	OpLte        FilterOperator = "lte"
	OpContains   FilterOperator = "contains"
	OpStartsWith FilterOperator = "starts_with"
	OpEndsWith   FilterOperator = "ends_with"
	OpIn         FilterOperator = "in"
	OpNotIn      FilterOperator = "not_in"
	OpBetween    FilterOperator = "between"
	OpLike       FilterOperator = "like"
	OpRegex      FilterOperator = "regex"
	OpExists     FilterOperator = "exists"
	OpNotExists  FilterOperator = "not_exists"
)

// SearchFilter restricts results by a metadata field.
type SearchFilter struct {
	Field    string         `json:"field"`
	Operator FilterOperator `json:"operator"`
	Value    interface{}    `json:"value,omitempty"`
}

// SortOption selects result ordering. Only relevance ordering is applied;
// a named field is accepted and ignored.
type SortOption struct {
	Field     string `json:"field,omitempty"`
	Direction string `json:"direction,omitempty"`
	Relevance bool   `json:"relevance,omitempty"`
}

// SearchContext carries caller information used for personalization and history.
type SearchContext struct {
	UserID          string                 `json:"user_id,omitempty"`
	SessionID       string                 `json:"session_id,omitempty"`
	PreviousQueries []string               `json:"previous_queries,omitempty"`
	Preferences     map[string]interface{} `json:"preferences,omitempty"`
	Location        string                 `json:"location,omitempty"`
	TimeOfDay       string                 `json:"time_of_day,omitempty"`
	Device          string                 `json:"device,omitempty"`
}

// SearchQuery represents a search request.
// Nil pointer flags take their documented defaults.
type SearchQuery struct {
	Query         string         `json:"query"`
	Filters       []SearchFilter `json:"filters,omitempty"`
	Sort          *SortOption    `json:"sort,omitempty"`
	Limit         int            `json:"limit,omitempty"`
	Offset        int            `json:"offset,omitempty"`
	Language      string         `json:"language,omitempty"`
	Fuzzy         *bool          `json:"fuzzy,omitempty"`
	TypoTolerance *int           `json:"typo_tolerance,omitempty"`
	Semantic      *bool          `json:"semantic,omitempty"`
	Synonyms      *bool          `json:"synonyms,omitempty"`
	Context       *SearchContext `json:"context,omitempty"`
}

// Validate checks ranges and fills in defaults. defaultLimit is used when Limit is zero;
// a non-positive defaultLimit falls back to DefaultLimit.
func (q *SearchQuery) Validate(defaultLimit int) error {
	if q.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidQuery)
	}
	if q.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", ErrInvalidQuery)
	}
	if q.TypoTolerance != nil && (*q.TypoTolerance < 0 || *q.TypoTolerance > MaxTypoTolerance) {
		return fmt.Errorf("%w: typo_tolerance must be between 0 and %d", ErrInvalidQuery, MaxTypoTolerance)
	}
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if q.Limit == 0 {
		q.Limit = defaultLimit
	}
	if q.Language == "" {
		q.Language = DefaultLanguage
	}
	return nil
}

// FuzzyEnabled reports whether the fuzzy pass runs (default true).
func (q *SearchQuery) FuzzyEnabled() bool { return q.Fuzzy == nil || *q.Fuzzy }

// SemanticEnabled reports whether the semantic pass runs (default true).
func (q *SearchQuery) SemanticEnabled() bool { return q.Semantic == nil || *q.Semantic }

// SynonymsEnabled reports whether synonym expansion runs (default true).
func (q *SearchQuery) SynonymsEnabled() bool { return q.Synonyms == nil || *q.Synonyms }

// Tolerance returns the typo tolerance, or fallback when unset.
func (q *SearchQuery) Tolerance(fallback int) int {
	if q.TypoTolerance == nil {
		return fallback
	}
	return *q.TypoTolerance
}

// UserID returns the context user id, or "" when there is no context.
func (q *SearchQuery) UserID() string {
	if q.Context == nil {
		return ""
	}
	return q.Context.UserID
}

// SortByRelevance reports whether results are ordered by score. A missing sort option
// means relevance.
func (q *SearchQuery) SortByRelevance() bool {
	return q.Sort == nil || q.Sort.Relevance
}

// Bool returns a pointer to b, for optional query flags.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n, for optional query values.
func Int(n int) *int { return &n }

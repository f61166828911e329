package models

// UserProfile holds what is known about a user. Its presence, not its content,
// triggers the personalization boost.
type UserProfile struct {
	UserID             string             `json:"user_id"`
	PreferenceWeights  map[string]float64 `json:"preference_weights,omitempty"`
	SearchPatterns     []string           `json:"search_patterns,omitempty"`
	FavoriteCategories []string           `json:"favorite_categories,omitempty"`
	ClickedItems       []string           `json:"clicked_items,omitempty"`
}

// SearchHistoryEntry is one recorded search of a user.
type SearchHistoryEntry struct {
	ID          string   `json:"id"`
	Query       string   `json:"query"`
	Timestamp   int64    `json:"timestamp"`
	ResultCount int      `json:"result_count"`
	ClickedIDs  []string `json:"clicked_ids"`
}

package personalization

import (
	"github.com/hyperjump/humansearch/internal/models"
	"github.com/hyperjump/humansearch/internal/shardmap"
)

// DefaultBoost multiplies result scores for users with a known profile.
const DefaultBoost = 1.1

// Engine stores user profiles and applies a fixed boost for known users.
type Engine struct {
	boost    float64
	profiles *shardmap.Map[*models.UserProfile]
}

// NewEngine creates a personalization engine. A non-positive boost uses DefaultBoost.
func NewEngine(boost float64, shards int) *Engine {
	if boost <= 0 {
		boost = DefaultBoost
	}
	return &Engine{boost: boost, profiles: shardmap.New[*models.UserProfile](shards)}
}

// SetProfile stores or replaces a user's profile.
func (e *Engine) SetProfile(p *models.UserProfile) {
	e.profiles.Set(p.UserID, p)
}

// Profile returns the stored profile of userID.
func (e *Engine) Profile(userID string) (*models.UserProfile, bool) {
	return e.profiles.Get(userID)
}

// AddClick appends docID to the profile's clicked items, creating the profile if needed.
func (e *Engine) AddClick(userID, docID string) {
	e.profiles.Update(userID, func(old *models.UserProfile, exists bool) *models.UserProfile {
		p := &models.UserProfile{UserID: userID}
		if exists {
			cp := *old
			p = &cp
		}
		p.ClickedItems = append(append([]string(nil), p.ClickedItems...), docID)
		return p
	})
}

// Apply multiplies every result score by the boost when userID has a profile, and
// reports whether it did. Results are modified in place.
func (e *Engine) Apply(userID string, results []*models.SearchResult) bool {
	if userID == "" {
		return false
	}
	if _, ok := e.profiles.Get(userID); !ok {
		return false
	}
	for _, r := range results {
		r.Score *= e.boost
	}
	return true
}

// Len returns the number of stored profiles.
func (e *Engine) Len() int {
	return e.profiles.Len()
}

// Package personalization keeps per-user search history and profiles and applies the
// profile score boost.
package personalization

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hyperjump/humansearch/internal/models"
)

// DefaultHistoryCapacity is the number of entries kept per user when none is configured.
const DefaultHistoryCapacity = 100

// SearchHistory is a bounded FIFO log of searches per user. When a user's log is full
// the oldest entry is dropped.
type SearchHistory struct {
	capacity int
	mu       sync.RWMutex
	entries  map[string][]models.SearchHistoryEntry
	now      func() time.Time
}

// NewSearchHistory creates a history keeping at most capacity entries per user.
func NewSearchHistory(capacity int) *SearchHistory {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &SearchHistory{
		capacity: capacity,
		entries:  make(map[string][]models.SearchHistoryEntry),
		now:      time.Now,
	}
}

// Record appends a search to the user's log and returns the stored entry.
func (h *SearchHistory) Record(userID, query string, resultCount int) models.SearchHistoryEntry {
	entry := models.SearchHistoryEntry{
		ID:          uuid.New().String(),
		Query:       query,
		Timestamp:   h.now().Unix(),
		ResultCount: resultCount,
		ClickedIDs:  []string{},
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	log := append(h.entries[userID], entry)
	if over := len(log) - h.capacity; over > 0 {
		log = append([]models.SearchHistoryEntry(nil), log[over:]...)
	}
	h.entries[userID] = log
	return entry
}

// RecordClick adds docID to the clicked ids of the user's most recent entry for query.
// It reports whether such an entry exists.
func (h *SearchHistory) RecordClick(userID, query, docID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	log := h.entries[userID]
	for i := len(log) - 1; i >= 0; i-- {
		if log[i].Query != query {
			continue
		}
		for _, id := range log[i].ClickedIDs {
			if id == docID {
				return true
			}
		}
		log[i].ClickedIDs = append(log[i].ClickedIDs, docID)
		return true
	}
	return false
}

// Entries returns a copy of the user's log, oldest first.
func (h *SearchHistory) Entries(userID string) []models.SearchHistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	log := h.entries[userID]
	out := make([]models.SearchHistoryEntry, len(log))
	for i, e := range log {
		e.ClickedIDs = append([]string{}, e.ClickedIDs...)
		out[i] = e
	}
	return out
}

// Users returns the number of users with a history.
func (h *SearchHistory) Users() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

package keyword

import "sort"

// Hit is one document's accumulated score from a retrieval pass.
type Hit struct {
	DocID  string
	Score  float64
	fields map[string]struct{}
}

// Fields returns the names of the fields that contributed to the hit, sorted.
func (h *Hit) Fields() []string {
	out := make([]string, 0, len(h.fields))
	for f := range h.fields {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// HitSet accumulates posting scores per document while keeping first-seen order.
type HitSet struct {
	order []*Hit
	byID  map[string]*Hit
}

// NewHitSet creates an empty HitSet.
func NewHitSet() *HitSet {
	return &HitSet{byID: make(map[string]*Hit)}
}

// Add adds score*weight for each posting to its document's hit.
func (s *HitSet) Add(postings []Posting, weight float64) {
	for _, p := range postings {
		h, ok := s.byID[p.DocID]
		if !ok {
			h = &Hit{DocID: p.DocID, fields: make(map[string]struct{})}
			s.byID[p.DocID] = h
			s.order = append(s.order, h)
		}
		h.Score += p.Score * weight
		h.fields[p.Field] = struct{}{}
	}
}

// Len returns the number of distinct documents.
func (s *HitSet) Len() int {
	return len(s.order)
}

// Hits returns the accumulated hits.
func (s *HitSet) Hits() []*Hit {
	return append([]*Hit(nil), s.order...)
}

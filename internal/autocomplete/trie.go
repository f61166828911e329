// Package autocomplete provides prefix completion over indexed terms.
package autocomplete

import "sort"

type node struct {
	children    map[rune]*node
	end         bool
	frequency   int
	suggestions []string
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// Trie is a prefix tree of terms with per-term insertion counts. It is not safe for
// concurrent use; Engine adds the locking.
type Trie struct {
	root  *node
	terms int
}

// Suggestion is a completion and the number of times its term was inserted.
type Suggestion struct {
	Term      string `json:"term"`
	Frequency int    `json:"frequency"`
}

// NewTrie creates an empty trie.
func NewTrie() *Trie {
	return &Trie{root: newNode()}
}

// Insert adds term, or increments its frequency if present. Empty terms are ignored.
func (t *Trie) Insert(term string) {
	if term == "" {
		return
	}
	n := t.root
	for _, r := range term {
		child, ok := n.children[r]
		if !ok {
			child = newNode()
			n.children[r] = child
		}
		n = child
	}
	if !n.end {
		n.end = true
		t.terms++
	}
	n.frequency++
	for _, s := range n.suggestions {
		if s == term {
			return
		}
	}
	n.suggestions = append(n.suggestions, term)
}

// Frequency returns how many times term was inserted.
func (t *Trie) Frequency(term string) int {
	n := t.find(term)
	if n == nil || !n.end {
		return 0
	}
	return n.frequency
}

// Len returns the number of distinct terms.
func (t *Trie) Len() int {
	return t.terms
}

// Suggest returns up to limit terms starting with prefix, most frequent first and
// alphabetically among equals. A prefix not present in the trie yields no suggestions.
func (t *Trie) Suggest(prefix string, limit int) []Suggestion {
	out := make([]Suggestion, 0)
	if limit <= 0 {
		return out
	}
	n := t.find(prefix)
	if n == nil {
		return out
	}

	collect(n, &out)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Term < out[j].Term
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (t *Trie) find(prefix string) *node {
	n := t.root
	for _, r := range prefix {
		child, ok := n.children[r]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

func collect(n *node, out *[]Suggestion) {
	for _, s := range n.suggestions {
		*out = append(*out, Suggestion{Term: s, Frequency: n.frequency})
	}
	for _, child := range n.children {
		collect(child, out)
	}
}

package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{"identical empty", "", "", 0},
		{"identical word", "hello", "hello", 0},
		{"identical unicode", "こんにちは", "こんにちは", 0},
		{"empty a", "", "hello", 5},
		{"empty b", "hello", "", 5},
		{"one substitution", "cat", "bat", 1},
		{"one insertion", "cat", "cart", 1},
		{"one deletion", "cart", "cat", 1},
		{"two substitutions", "cat", "dog", 3},
		{"kitten to sitting", "kitten", "sitting", 3},
		{"saturday to sunday", "saturday", "sunday", 3},
		{"learning to lerning", "learning", "lerning", 1},
		{"case difference", "Hello", "hello", 1},
		{"unicode substitution", "café", "cafe", 1},
		{"transposition ab-ba", "ab", "ba", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevenshteinDistance(tt.a, tt.b))
			assert.Equal(t, tt.expected, LevenshteinDistance(tt.b, tt.a), "distance must be symmetric")
		})
	}
}

func TestDamerauLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{"identical", "search", "search", 0},
		{"empty", "", "abc", 3},
		{"adjacent transposition", "ab", "ba", 1},
		{"typo transposition", "serach", "search", 1},
		{"edit after transposition", "ca", "abc", 2},
		{"kitten to sitting", "kitten", "sitting", 3},
		{"unicode transposition", "éa", "aé", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DamerauLevenshteinDistance(tt.a, tt.b))
			assert.Equal(t, tt.expected, DamerauLevenshteinDistance(tt.b, tt.a))
		})
	}
}

func TestDistances_AreMetrics(t *testing.T) {
	words := []string{"", "a", "cat", "cart", "card", "search", "serach", "kitten", "sitting", "fox", "foxes"}
	distances := map[string]func(a, b string) int{
		"levenshtein":         LevenshteinDistance,
		"damerau_levenshtein": DamerauLevenshteinDistance,
	}

	for name, d := range distances {
		t.Run(name, func(t *testing.T) {
			for _, a := range words {
				assert.Zero(t, d(a, a))
				for _, b := range words {
					assert.Equal(t, d(a, b), d(b, a), "symmetry %q %q", a, b)
					for _, c := range words {
						assert.LessOrEqual(t, d(a, c), d(a, b)+d(b, c), "triangle %q %q %q", a, b, c)
					}
				}
			}
		})
	}
}

func TestDamerauNeverExceedsLevenshtein(t *testing.T) {
	pairs := [][2]string{{"abcd", "badc"}, {"receive", "recieve"}, {"form", "from"}, {"abc", "xyz"}}
	for _, p := range pairs {
		assert.LessOrEqual(t, DamerauLevenshteinDistance(p[0], p[1]), LevenshteinDistance(p[0], p[1]))
	}
}

func BenchmarkLevenshteinDistance(b *testing.B) {
	for i := 0; i < b.N; i++ {
		LevenshteinDistance("documentation", "documantation")
	}
}

func BenchmarkDamerauLevenshteinDistance(b *testing.B) {
	for i := 0; i < b.N; i++ {
		DamerauLevenshteinDistance("documentation", "documantation")
	}
}

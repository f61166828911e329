package fuzzy

// Trigrams returns the set of contiguous three-rune substrings of s.
// A non-empty string shorter than three runes yields itself as its only gram.
func Trigrams(s string) map[string]struct{} {
	runes := []rune(s)
	grams := make(map[string]struct{})
	if len(runes) == 0 {
		return grams
	}
	if len(runes) < 3 {
		grams[s] = struct{}{}
		return grams
	}
	for i := 0; i+3 <= len(runes); i++ {
		grams[string(runes[i:i+3])] = struct{}{}
	}
	return grams
}

// TrigramSimilarity is the Jaccard index of the trigram sets of a and b.
func TrigramSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ga := Trigrams(a)
	gb := Trigrams(b)
	if len(ga) == 0 || len(gb) == 0 {
		return 0
	}

	intersection := 0
	for g := range ga {
		if _, ok := gb[g]; ok {
			intersection++
		}
	}
	union := len(ga) + len(gb) - intersection
	return float64(intersection) / float64(union)
}

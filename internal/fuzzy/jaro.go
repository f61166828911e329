package fuzzy

const (
	winklerPrefixLimit = 4
	winklerScaling     = 0.1
	winklerBoostFloor  = 0.7
)

// JaroSimilarity returns the Jaro similarity of a and b in [0,1].
// Characters match when equal and no further apart than max(len)/2 - 1 positions.
func JaroSimilarity(a, b string) float64 {
	runesA := []rune(a)
	runesB := []rune(b)
	lenA := len(runesA)
	lenB := len(runesB)
	if lenA == 0 && lenB == 0 {
		return 1
	}
	if lenA == 0 || lenB == 0 {
		return 0
	}

	window := max(lenA, lenB)/2 - 1
	if window < 0 {
		window = 0
	}

	matchedA := make([]bool, lenA)
	matchedB := make([]bool, lenB)
	matches := 0
	for i := 0; i < lenA; i++ {
		lo := max(0, i-window)
		hi := min(lenB, i+window+1)
		for j := lo; j < hi; j++ {
			if matchedB[j] || runesA[i] != runesB[j] {
				continue
			}
			matchedA[i] = true
			matchedB[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0
	}

	// Matched characters that appear in a different order count as half a transposition each.
	transpositions := 0
	k := 0
	for i := 0; i < lenA; i++ {
		if !matchedA[i] {
			continue
		}
		for !matchedB[k] {
			k++
		}
		if runesA[i] != runesB[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	t := float64(transpositions) / 2
	return (m/float64(lenA) + m/float64(lenB) + (m-t)/m) / 3
}

// JaroWinklerSimilarity boosts the Jaro similarity by 0.1 per shared leading character,
// up to four. The boost only applies when the Jaro similarity is at least 0.7.
func JaroWinklerSimilarity(a, b string) float64 {
	jaro := JaroSimilarity(a, b)
	if jaro < winklerBoostFloor {
		return jaro
	}

	runesA := []rune(a)
	runesB := []rune(b)
	prefix := 0
	for prefix < winklerPrefixLimit && prefix < len(runesA) && prefix < len(runesB) && runesA[prefix] == runesB[prefix] {
		prefix++
	}
	return jaro + float64(prefix)*winklerScaling*(1-jaro)
}

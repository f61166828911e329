// Package fuzzy provides approximate string matching: edit distances, Jaro and
// Jaro-Winkler similarity, trigram overlap and Soundex phonetic codes.
package fuzzy

// LevenshteinDistance calculates the minimum number of single-character edits
// (insertions, deletions, or substitutions) required to change one string into another.
// Strings are compared rune by rune.
func LevenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	runesA := []rune(a)
	runesB := []rune(b)
	lenA := len(runesA)
	lenB := len(runesB)
	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	// Two rows of the DP matrix are enough.
	prev := make([]int, lenB+1)
	curr := make([]int, lenB+1)
	for j := 0; j <= lenB; j++ {
		prev[j] = j
	}

	for i := 1; i <= lenA; i++ {
		curr[0] = i
		for j := 1; j <= lenB; j++ {
			cost := 1
			if runesA[i-1] == runesB[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[lenB]
}

// DamerauLevenshteinDistance calculates the unrestricted Damerau-Levenshtein distance,
// which also counts the transposition of two adjacent characters as a single edit.
// Unlike the optimal string alignment variant, substrings may be edited again after a
// transposition, so "ca" -> "abc" costs 2.
func DamerauLevenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	runesA := []rune(a)
	runesB := []rune(b)
	lenA := len(runesA)
	lenB := len(runesB)
	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	maxDist := lenA + lenB
	// lastRow[r] is the last row (1-based) of a in which rune r occurred.
	lastRow := make(map[rune]int, lenA)

	// d is offset by one in both dimensions to hold the maxDist sentinel border.
	d := make([][]int, lenA+2)
	for i := range d {
		d[i] = make([]int, lenB+2)
	}
	d[0][0] = maxDist
	for i := 0; i <= lenA; i++ {
		d[i+1][0] = maxDist
		d[i+1][1] = i
	}
	for j := 0; j <= lenB; j++ {
		d[0][j+1] = maxDist
		d[1][j+1] = j
	}

	for i := 1; i <= lenA; i++ {
		lastMatchCol := 0
		for j := 1; j <= lenB; j++ {
			i1 := lastRow[runesB[j-1]]
			j1 := lastMatchCol
			cost := 1
			if runesA[i-1] == runesB[j-1] {
				cost = 0
				lastMatchCol = j
			}
			// substitution, insertion, deletion, transposition
			d[i+1][j+1] = min(
				d[i][j]+cost,
				d[i+1][j]+1,
				d[i][j+1]+1,
				d[i1][j1]+(i-i1-1)+1+(j-j1-1),
			)
		}
		lastRow[runesA[i-1]] = i
	}

	return d[lenA+1][lenB+1]
}

// normalizedSimilarity maps an edit distance onto [0,1] using the longer rune length.
func normalizedSimilarity(a, b string, distance int) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	return 1 - float64(distance)/float64(longest)
}

package fuzzy

import (
	"fmt"
	"sort"
	"strings"
)

// Algorithm selects a string similarity function.
type Algorithm int

const (
	Levenshtein Algorithm = iota
	DamerauLevenshtein
	Jaro
	JaroWinkler
	NGram
	Soundex
)

// MaxTolerance is the largest accepted typo tolerance.
const MaxTolerance = 5

var algorithmNames = map[Algorithm]string{
	Levenshtein:        "levenshtein",
	DamerauLevenshtein: "damerau_levenshtein",
	Jaro:               "jaro",
	JaroWinkler:        "jaro_winkler",
	NGram:              "ngram",
	Soundex:            "soundex",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm maps a configuration name such as "jaro_winkler" to its Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for alg, algName := range algorithmNames {
		if algName == n {
			return alg, nil
		}
	}
	return 0, fmt.Errorf("unknown fuzzy algorithm %q", name)
}

// ParseAlgorithms parses a list of algorithm names.
func ParseAlgorithms(names []string) ([]Algorithm, error) {
	algs := make([]Algorithm, 0, len(names))
	for _, name := range names {
		alg, err := ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		algs = append(algs, alg)
	}
	return algs, nil
}

// Similarity scores a against b in [0,1] with the given algorithm.
func Similarity(a, b string, alg Algorithm) float64 {
	switch alg {
	case Levenshtein:
		return normalizedSimilarity(a, b, LevenshteinDistance(a, b))
	case DamerauLevenshtein:
		return normalizedSimilarity(a, b, DamerauLevenshteinDistance(a, b))
	case Jaro:
		return JaroSimilarity(a, b)
	case JaroWinkler:
		return JaroWinklerSimilarity(a, b)
	case NGram:
		return TrigramSimilarity(a, b)
	case Soundex:
		return SoundexSimilarity(a, b)
	default:
		return 0
	}
}

// Threshold converts a typo tolerance in [0,5] to the minimum accepted similarity 1 - t/10.
// Out of range tolerances are clamped.
func Threshold(tolerance int) float64 {
	tolerance = max(0, min(tolerance, MaxTolerance))
	return 1 - float64(tolerance)/10
}

// Match is a dictionary term accepted as similar to a probe token.
type Match struct {
	Term  string
	Score float64
}

// Matcher scores token pairs with a fixed set of algorithms, taking the best score.
type Matcher struct {
	algorithms []Algorithm
}

// DefaultAlgorithms is the algorithm set used when none is configured.
var DefaultAlgorithms = []Algorithm{Levenshtein, JaroWinkler}

// NewMatcher creates a Matcher. With no algorithms it uses DefaultAlgorithms.
func NewMatcher(algs ...Algorithm) *Matcher {
	if len(algs) == 0 {
		algs = DefaultAlgorithms
	}
	return &Matcher{algorithms: append([]Algorithm(nil), algs...)}
}

// Algorithms returns the configured algorithm set.
func (m *Matcher) Algorithms() []Algorithm {
	return append([]Algorithm(nil), m.algorithms...)
}

// Score returns the maximum similarity of a and b across the configured algorithms.
func (m *Matcher) Score(a, b string) float64 {
	best := 0.0
	for _, alg := range m.algorithms {
		if s := Similarity(a, b, alg); s > best {
			best = s
			if best >= 1 {
				break
			}
		}
	}
	return best
}

// FindSimilar returns the dictionary terms whose score against token reaches the
// threshold for tolerance, best first. An exact match is included with score 1.
func (m *Matcher) FindSimilar(token string, dictionary []string, tolerance int) []Match {
	threshold := Threshold(tolerance)
	matches := make([]Match, 0)
	for _, term := range dictionary {
		if s := m.Score(token, term); s >= threshold {
			matches = append(matches, Match{Term: term, Score: s})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Term < matches[j].Term
	})
	return matches
}

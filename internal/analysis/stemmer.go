package analysis

import "strings"

type suffixRule struct {
	suffix      string
	replacement string
}

// Checked in order; the first matching suffix wins.
var step2Rules = []suffixRule{
	{"ational", "ate"},
	{"tional", "tion"},
	{"enci", "ence"},
	{"anci", "ance"},
	{"izer", "ize"},
	{"abli", "able"},
	{"alli", "al"},
	{"entli", "ent"},
	{"eli", "e"},
	{"ousli", "ous"},
	{"ization", "ize"},
	{"ation", "ate"},
	{"ator", "ate"},
	{"alism", "al"},
	{"iveness", "ive"},
	{"fulness", "ful"},
	{"ousness", "ous"},
	{"aliti", "al"},
	{"iviti", "ive"},
	{"biliti", "ble"},
}

var step3Suffixes = []string{"icate", "ative", "alize", "iciti", "ical", "ful", "ness"}

// Stem reduces a lower-case word to an approximate root with a simplified Porter-style
// suffix stripper. Words of two characters or fewer are returned unchanged.
// The steps run in a fixed order and each operates on the previous step's output.
func Stem(word string) string {
	if len(word) <= 2 {
		return word
	}
	w := word

	// Plurals.
	switch {
	case strings.HasSuffix(w, "sses"):
		w = w[:len(w)-2]
	case strings.HasSuffix(w, "ies"):
		w = w[:len(w)-2]
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss"):
		w = w[:len(w)-1]
	}

	// -ed / -ing with repair.
	if strings.HasSuffix(w, "ed") && containsVowel(w[:len(w)-2]) {
		w = repairStem(w[:len(w)-2])
	} else if strings.HasSuffix(w, "ing") && containsVowel(w[:len(w)-3]) {
		w = repairStem(w[:len(w)-3])
	}

	// Terminal y after a consonant.
	if n := len(w); n >= 2 && w[n-1] == 'y' && isConsonant(w[n-2]) {
		w = w[:n-1] + "i"
	}

	for _, r := range step2Rules {
		if strings.HasSuffix(w, r.suffix) && len(w) > len(r.suffix) {
			w = w[:len(w)-len(r.suffix)] + r.replacement
			break
		}
	}

	for _, s := range step3Suffixes {
		if strings.HasSuffix(w, s) && len(w) > len(s) {
			w = w[:len(w)-len(s)]
			break
		}
	}

	if strings.HasSuffix(w, "e") && len(w)-1 > 3 {
		w = w[:len(w)-1]
	}
	if strings.HasSuffix(w, "ll") && len(w)-1 > 3 {
		w = w[:len(w)-1]
	}
	return w
}

func repairStem(stem string) string {
	if strings.HasSuffix(stem, "at") || strings.HasSuffix(stem, "bl") || strings.HasSuffix(stem, "iz") {
		return stem + "e"
	}
	if n := len(stem); n >= 2 && stem[n-1] == stem[n-2] && isConsonant(stem[n-1]) {
		switch stem[n-1] {
		case 'l', 's', 'z':
		default:
			return stem[:n-1]
		}
	}
	return stem
}

func isConsonant(c byte) bool {
	if c < 'a' || c > 'z' {
		return false
	}
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	}
	return true
}

func containsVowel(s string) bool {
	return strings.ContainsAny(s, "aeiouy")
}

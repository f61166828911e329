package fuzzy

import "strings"

var soundexCodes = [26]byte{
	// a  b    c    d    e  f    g    h  i  j    k    l    m    n    o  p    q    r    s    t    u  v    w  x    y  z
	0, '1', '2', '3', 0, '1', '2', 0, 0, '2', '2', '4', '5', '5', 0, '1', '2', '6', '2', '3', 0, '1', 0, '2', 0, '2',
}

// SoundexCode returns the four-character American Soundex code of s, or "" when s
// contains no ASCII letter. Non-letters are ignored and case does not matter.
// Vowels separate repeated codes; h and w do not.
func SoundexCode(s string) string {
	var code strings.Builder
	code.Grow(4)

	var last byte
	for i := 0; i < len(s) && code.Len() < 4; i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c < 'a' || c > 'z' {
			continue
		}
		digit := soundexCodes[c-'a']
		if code.Len() == 0 {
			code.WriteByte(c - ('a' - 'A'))
			last = digit
			continue
		}
		switch {
		case digit == 0 && c != 'h' && c != 'w':
			last = 0
		case digit != 0 && digit != last:
			code.WriteByte(digit)
			last = digit
		}
	}

	if code.Len() == 0 {
		return ""
	}
	for code.Len() < 4 {
		code.WriteByte('0')
	}
	return code.String()
}

// SoundexSimilarity is 1 when both strings have the same non-empty Soundex code and 0 otherwise.
func SoundexSimilarity(a, b string) float64 {
	ca := SoundexCode(a)
	if ca == "" || ca != SoundexCode(b) {
		return 0
	}
	return 1
}

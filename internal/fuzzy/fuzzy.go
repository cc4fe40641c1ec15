// Package fuzzy implements partial-ratio string similarity on top of
// Levenshtein edit distance. Scores are integers in [0,100], where 100 means
// one string contains (a near-exact copy of) the other.
package fuzzy

import "strings"

// Ratio returns the plain similarity of a and b: 100*(1 - dist/maxLen).
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	ar, br := []rune(a), []rune(b)
	maxLen := len(ar)
	if len(br) > maxLen {
		maxLen = len(br)
	}
	if maxLen == 0 {
		return 100
	}
	dist := levenshtein(ar, br)
	return int(100 * (1 - float64(dist)/float64(maxLen)))
}

// PartialRatio slides the shorter string over the longer one and returns the
// best window Ratio. Comparison is case-insensitive.
func PartialRatio(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 100
	}
	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		return 0
	}
	if len(shorter) == len(longer) {
		return Ratio(string(shorter), string(longer))
	}

	best := 0
	for start := 0; start+len(shorter) <= len(longer); start++ {
		window := longer[start : start+len(shorter)]
		dist := levenshtein(shorter, window)
		score := int(100 * (1 - float64(dist)/float64(len(shorter))))
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}
	return best
}

// levenshtein computes edit distance with the two-row optimization.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

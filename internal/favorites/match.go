package favorites

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// TitleMatch is one title accepted by Match
type TitleMatch struct {
	Index int // Index in the source slice
	Score int // Lower is better
}

// Match performs token-based fuzzy matching of query against titles.
//
// Every query word must match a distinct title word (exact, prefix, substring, or
// within a length-dependent edit distance), in any order, so "robot mr" finds
// "Mr. Robot". Titles with many unmatched words rank lower. Returns nil for an
// empty query.
func Match(query string, titles []string) []TitleMatch {
	queryWords := words(query)
	if len(queryWords) == 0 {
		return nil
	}

	matches := []TitleMatch{}
	for i, title := range titles {
		if score, ok := scoreTitle(queryWords, title); ok {
			matches = append(matches, TitleMatch{Index: i, Score: score})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].Score != matches[b].Score {
			return matches[a].Score < matches[b].Score
		}
		return len(titles[matches[a].Index]) < len(titles[matches[b].Index])
	})
	return matches
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func scoreTitle(queryWords []string, title string) (int, bool) {
	lowerTitle := strings.ToLower(title)
	titleWords := words(title)
	used := make([]bool, len(titleWords))

	total := 0
	for _, q := range queryWords {
		best, bestIdx := -1, -1
		for i, w := range titleWords {
			if used[i] {
				continue
			}
			if s := scoreWord(q, w); s >= 0 && (best < 0 || s < best) {
				best, bestIdx = s, i
			}
		}

		if best < 0 {
			// Fall back to a substring anywhere, e.g. across punctuation
			idx := strings.Index(lowerTitle, q)
			if idx < 0 {
				return 0, false
			}
			best = 150 + idx
		} else {
			used[bestIdx] = true
		}
		total += best
	}

	if extra := len(titleWords) - len(queryWords); extra > 0 {
		total += extra * 5
	}
	return total, true
}

// scoreWord returns the match quality of one query word against one title word, or -1
func scoreWord(q, w string) int {
	switch {
	case q == w:
		return 0
	case strings.HasPrefix(w, q):
		return 10
	case strings.HasPrefix(q, w):
		return 20
	}
	if idx := strings.Index(w, q); idx >= 0 {
		return 50 + idx
	}
	if typos := allowedTypos(len([]rune(q))); typos > 0 {
		if dist := fuzzy.LevenshteinDistance(q, w); dist <= typos {
			return 100 + dist*20
		}
	}
	return -1
}

// allowedTypos: 1-3 chars = 0, 4-6 chars = 1, 7+ chars = 2
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}

package anagrammer

import (
	"errors"
	"sort"
	"strings"
)

// SortKey selects the order of solve results.
type SortKey int

const (
	// SortNone keeps the word-list order.
	SortNone SortKey = iota
	// SortByScore orders by score, then length, then alphabetically.
	SortByScore
	// SortByLength orders by length, then alphabetically.
	SortByLength
)

var ErrUnknownSortKey = errors.New("unknown sort key; use score, length or none")

func (k SortKey) String() string {
	switch k {
	case SortByScore:
		return "score"
	case SortByLength:
		return "length"
	}
	return "none"
}

// ParseSortKey parses a user-supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "score", "points":
		return SortByScore, nil
	case "length", "len":
		return SortByLength, nil
	case "none", "unsorted", "":
		return SortNone, nil
	}
	return SortNone, ErrUnknownSortKey
}

func byLength(a, b Match) bool {
	if len(a.Word) != len(b.Word) {
		return len(a.Word) < len(b.Word)
	}
	return a.Word < b.Word
}

func byScore(a, b Match) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return byLength(a, b)
}

func sortMatches(matches []Match, key SortKey) {
	var less func(a, b Match) bool
	switch key {
	case SortByScore:
		less = byScore
	case SortByLength:
		less = byLength
	default:
		return
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return less(matches[i], matches[j])
	})
}

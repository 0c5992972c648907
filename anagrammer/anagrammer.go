// Package anagrammer finds the words of a word list that can be built from a
// rack of letters, scores them and orders them.
package anagrammer

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/scrabblesolver/solver/tilemapping"
)

// ErrNoDictionary is returned when there is no word list to search.
var ErrNoDictionary = errors.New("dictionary unavailable")

// Constraints restrict which words are eligible before the rack is even
// looked at. Empty fields always match. Comparisons ignore case.
type Constraints struct {
	Prefix   string
	Suffix   string
	Contains string
}

// IsZero returns true if no constraint is set.
func (c Constraints) IsZero() bool {
	return c.Prefix == "" && c.Suffix == "" && c.Contains == ""
}

func (c Constraints) upper() Constraints {
	return Constraints{
		Prefix:   strings.ToUpper(c.Prefix),
		Suffix:   strings.ToUpper(c.Suffix),
		Contains: strings.ToUpper(c.Contains),
	}
}

// Match reports whether word satisfies all three constraints.
func (c Constraints) Match(word string) bool {
	return c.upper().match(strings.ToUpper(word))
}

// match expects both c and word to be uppercase already.
func (c Constraints) match(word string) bool {
	return strings.HasPrefix(word, c.Prefix) &&
		strings.HasSuffix(word, c.Suffix) &&
		strings.Contains(word, c.Contains)
}

// Feasible checks whether word can be built from the rack, using blanks to
// cover any letters the rack is short of. It returns the word's score, where
// every letter covered by a blank is worth nothing.
func Feasible(rack *tilemapping.Rack, word string) (int, bool) {
	need := tilemapping.NewRack()
	need.Set(tilemapping.ToMachineWord(word))
	blanks := rack.Blanks()
	score := need.ScoreOn()
	for i := 0; i < tilemapping.NumLetters; i++ {
		ml := tilemapping.MachineLetter(i)
		deficit := need.CountOf(ml) - rack.CountOf(ml)
		if deficit <= 0 {
			continue
		}
		if blanks < deficit {
			return 0, false
		}
		blanks -= deficit
		score -= ml.Score() * deficit
	}
	return score, true
}

// Solve returns every word of words that can be built from letters and
// satisfies c, ordered by key. letters may contain `?` for blanks; any
// other non-letter is ignored. words is only read.
func Solve(words []string, letters string, c Constraints, key SortKey) (*Result, error) {
	if len(words) == 0 {
		return nil, ErrNoDictionary
	}
	rack := tilemapping.RackFromString(letters)
	uc := c.upper()

	matches := []Match{}
	for _, word := range words {
		if !uc.match(strings.ToUpper(word)) {
			continue
		}
		score, ok := Feasible(rack, word)
		if !ok {
			continue
		}
		matches = append(matches, Match{Word: word, Score: score})
	}
	sortMatches(matches, key)

	log.Debug().Str("rack", rack.String()).Int("tiles", rack.NumTiles()).Interface("constraints", c).
		Str("sort", key.String()).Int("matches", len(matches)).
		Int("searched", len(words)).Msg("solved")

	return &Result{Matches: matches, Sort: key}, nil
}

// Query is a single solve request over a word list.
type Query struct {
	Letters     string
	Constraints Constraints
	Sort        SortKey
}

// SolveQuery is Solve with its parameters gathered in a Query.
func SolveQuery(words []string, q Query) (*Result, error) {
	return Solve(words, q.Letters, q.Constraints, q.Sort)
}

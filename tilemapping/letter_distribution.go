package tilemapping

// LetterDistribution holds the tile values of the game.
type LetterDistribution struct {
	Name   string
	scores [NumLetters]int
}

// English is the standard English Scrabble tile scoring. It is the only
// distribution; the table is fixed.
var English = &LetterDistribution{
	Name: "english",
	scores: [NumLetters]int{
		1, 3, 3, 2, 1, 4, 2, 4, 1, 8, 5, 1, 3,
		1, 1, 3, 10, 1, 1, 1, 1, 4, 4, 8, 4, 10,
	},
}

// Score gives the score of the given machine letter. Blanks and anything out
// of range score 0.
func (ld *LetterDistribution) Score(ml MachineLetter) int {
	if ml >= NumLetters {
		return 0
	}
	return ld.scores[ml]
}

// WordScore returns the score of this word given the ld.
func (ld *LetterDistribution) WordScore(mw MachineWord) int {
	score := 0
	for _, c := range mw {
		score += ld.Score(c)
	}
	return score
}

// PointValue returns the tile value of a single character. Case does not
// matter; anything that is not a letter is worth 0.
func PointValue(r rune) int {
	ml, ok := ToMachineLetter(r)
	if !ok {
		return 0
	}
	return English.Score(ml)
}

// WordScore sums PointValue over every character of word.
func WordScore(word string) int {
	score := 0
	for _, r := range word {
		score += PointValue(r)
	}
	return score
}

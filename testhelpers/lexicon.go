package testhelpers

import (
	"github.com/scrabblesolver/solver/config"
	"github.com/scrabblesolver/solver/lexicon"
)

var DefaultConfig = config.DefaultConfig()

// SmallWords is a tiny word list for tests that need a dictionary but don't
// care which one.
var SmallWords = []string{
	"AA", "AB", "ACT", "ADZE", "AT", "CAT", "CATS", "DOG", "EAT", "EATS",
	"QI", "QUIZ", "SCAT", "TA", "TACT", "TEA", "ZAX", "ZOO",
}

// SmallLexicon returns a fresh lexicon holding SmallWords.
func SmallLexicon() *lexicon.Lexicon {
	words := make([]string, len(SmallWords))
	copy(words, SmallWords)
	return &lexicon.Lexicon{Name: "SMALL", Words: words}
}

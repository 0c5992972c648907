package tilemapping

// A "letter" or tile is internally represented by a byte. The letter A is
// represented by 0, B by 1, ... all the way to 25 for Z. Slot 26 of a rack
// holds the blanks.
const (
	// NumLetters is the size of the alphabet.
	NumLetters = 26
	// BlankIndex is the rack slot used for blanks.
	BlankIndex = NumLetters
	// RackSlots is the size of a rack's letter array, blanks included.
	RackSlots = NumLetters + 1
	// BlankToken is the user-friendly representation of a blank.
	BlankToken = '?'
)

// MachineLetter is a machine-only representation of a letter.
type MachineLetter byte

type MachineWord []MachineLetter

// ToMachineLetter converts a rune into its machine letter. Lowercase and
// uppercase letters map to the same value. ok is false for anything that is
// not an ASCII letter, blanks included.
func ToMachineLetter(r rune) (ml MachineLetter, ok bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return MachineLetter(r - 'A'), true
	case r >= 'a' && r <= 'z':
		return MachineLetter(r - 'a'), true
	}
	return 0, false
}

// UserVisible returns the uppercase letter for this machine letter.
func (ml MachineLetter) UserVisible() rune {
	if ml >= NumLetters {
		return BlankToken
	}
	return rune('A' + ml)
}

// Score returns the tile value of this letter.
func (ml MachineLetter) Score() int {
	return English.Score(ml)
}

// ToMachineWord converts the letters of word and drops everything else.
func ToMachineWord(word string) MachineWord {
	mw := make(MachineWord, 0, len(word))
	for _, r := range word {
		if ml, ok := ToMachineLetter(r); ok {
			mw = append(mw, ml)
		}
	}
	return mw
}

// UserVisible turns the passed-in machine word into a user-visible string.
func (mw MachineWord) UserVisible() string {
	runes := make([]rune, len(mw))
	for i, l := range mw {
		runes[i] = l.UserVisible()
	}
	return string(runes)
}

// Score returns the summed tile values of this word.
func (mw MachineWord) Score() int {
	return English.WordScore(mw)
}

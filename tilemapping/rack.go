package tilemapping

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Rack is a machine-friendly representation of the letters a user has to
// play with.
type Rack struct {
	// LetArr counts each letter from A (0) to Z (25). The blanks go at
	// BlankIndex.
	LetArr     [RackSlots]int
	numLetters int
}

// NewRack creates an empty rack.
func NewRack() *Rack {
	return &Rack{}
}

// RackFromString creates a Rack from user input. Letters of either case
// count toward their slot and `?` counts as a blank. Any other character is
// ignored.
func RackFromString(rack string) *Rack {
	r := &Rack{}
	r.setFromStr(rack)
	return r
}

func (r *Rack) setFromStr(rack string) {
	r.Clear()
	ignored := 0
	for _, ch := range rack {
		if ch == BlankToken {
			r.LetArr[BlankIndex]++
			r.numLetters++
			continue
		}
		ml, ok := ToMachineLetter(ch)
		if !ok {
			ignored++
			continue
		}
		r.LetArr[ml]++
		r.numLetters++
	}
	if ignored > 0 {
		log.Debug().Str("rack", rack).Int("ignored", ignored).Msg("ignored-non-letters")
	}
}

// Set sets the rack from a list of machine letters. A MachineLetter equal to
// BlankIndex adds a blank.
func (r *Rack) Set(mls []MachineLetter) {
	r.Clear()
	for _, ml := range mls {
		r.Add(ml)
	}
}

func (r *Rack) Clear() {
	for i := range r.LetArr {
		r.LetArr[i] = 0
	}
	r.numLetters = 0
}

func (r *Rack) Add(letter MachineLetter) {
	if letter > BlankIndex {
		return
	}
	r.LetArr[letter]++
	r.numLetters++
}

func (r *Rack) CountOf(letter MachineLetter) int {
	if letter > BlankIndex {
		return 0
	}
	return r.LetArr[letter]
}

// Blanks returns the number of blanks on the rack.
func (r *Rack) Blanks() int {
	return r.LetArr[BlankIndex]
}

// NumTiles returns the current number of tiles on this rack, blanks included.
func (r *Rack) NumTiles() int {
	return r.numLetters
}

// TilesOn returns the letters on the rack in alphabetical order, without
// the blanks.
func (r *Rack) TilesOn() MachineWord {
	letters := make(MachineWord, 0, r.numLetters-r.Blanks())
	for i := 0; i < NumLetters; i++ {
		for j := 0; j < r.LetArr[i]; j++ {
			letters = append(letters, MachineLetter(i))
		}
	}
	return letters
}

// ScoreOn returns the total score of the tiles on this rack. Blanks are
// worth nothing.
func (r *Rack) ScoreOn() int {
	return r.TilesOn().Score()
}

// String returns a user-visible, alphabetized version of this rack with the
// blanks at the end.
func (r *Rack) String() string {
	return r.TilesOn().UserVisible() + strings.Repeat(string(BlankToken), r.Blanks())
}

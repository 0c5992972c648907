// Package lexicon loads the word lists that the solver searches.
package lexicon

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lexicon is a named, ordered word list. It is loaded once and only read
// afterwards, so it may be shared between goroutines.
type Lexicon struct {
	Name  string
	Words []string
}

func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Words)
}

// Checksum is an xxhash of the word list, in order.
func (l *Lexicon) Checksum() uint64 {
	h := xxhash.New()
	for _, w := range l.Words {
		io.WriteString(h, w)
		io.WriteString(h, "\n")
	}
	return h.Sum64()
}

// wordCleaner normalizes raw lines into words. It is not safe for
// concurrent use because the caser keeps state.
type wordCleaner struct {
	caser   cases.Caser
	skipped int
}

func newWordCleaner() *wordCleaner {
	return &wordCleaner{caser: cases.Upper(language.Und)}
}

// clean returns the upper-cased word on line, or false if the line holds no
// usable word. Blank lines and `#` comments are skipped silently; lines
// with embedded spaces or control characters are counted as skipped.
func (wc *wordCleaner) clean(line string) (string, bool) {
	line = strings.TrimSpace(strings.TrimRight(line, "\r\n"))
	if line == "" || strings.HasPrefix(line, "#") {
		return "", false
	}
	if strings.IndexFunc(line, func(r rune) bool {
		return unicode.IsControl(r) || unicode.IsSpace(r)
	}) >= 0 {
		wc.skipped++
		return "", false
	}
	return wc.caser.String(line), true
}

// Load reads a word list with one word per line. Words are trimmed and
// upper-cased; order is preserved and duplicates are kept.
func Load(name string, r io.Reader) (*Lexicon, error) {
	wc := newWordCleaner()
	words := []string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w, ok := wc.clean(scanner.Text())
		if !ok {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return finish(name, words, wc), nil
}

func finish(name string, words []string, wc *wordCleaner) *Lexicon {
	if wc.skipped > 0 {
		log.Warn().Str("lexicon", name).Int("skipped", wc.skipped).
			Msg("skipped-malformed-words")
	}
	if len(words) == 0 {
		log.Warn().Str("lexicon", name).Msg("lexicon-is-empty")
	}
	log.Debug().Str("lexicon", name).Int("words", len(words)).Msg("loaded-lexicon")
	return &Lexicon{Name: name, Words: words}
}

package lexicon

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile loads a word list from a plain text file, or a gzipped one if
// the path ends in .gz. The lexicon is named after the file.
func LoadFile(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), ".gz")
	name = strings.TrimSuffix(name, filepath.Ext(name))

	if !strings.HasSuffix(path, ".gz") {
		return Load(name, f)
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer zr.Close()
	return Load(name, zr)
}

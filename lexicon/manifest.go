package lexicon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFile is looked for in the lexicon path.
const ManifestFile = "lexica.yaml"

const (
	FormatText   = "text"
	FormatSQLite = "sqlite"
)

// Entry describes where one lexicon lives.
type Entry struct {
	Name   string `yaml:"name"`
	File   string `yaml:"file"`
	Format string `yaml:"format"`
	// Table is the SQLite table holding the words.
	Table string `yaml:"table,omitempty"`
}

// Manifest lists the lexica available in a directory.
type Manifest struct {
	Lexica []Entry `yaml:"lexica"`
}

// ReadManifest parses a lexica.yaml file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// Find returns the entry called name. Names are matched without regard to
// case.
func (m *Manifest) Find(name string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	for _, e := range m.Lexica {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// Names lists every lexicon in the manifest.
func (m *Manifest) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, len(m.Lexica))
	for i, e := range m.Lexica {
		names[i] = e.Name
	}
	return names
}

// LoadEntry loads the lexicon an entry points to. Relative files are taken
// relative to dir.
func LoadEntry(ctx context.Context, dir string, e Entry) (*Lexicon, error) {
	path := e.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	switch e.Format {
	case FormatSQLite:
		table := e.Table
		if table == "" {
			table = "words"
		}
		return LoadSQLite(ctx, e.Name, path, table)
	case FormatText, "":
		lex, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		lex.Name = e.Name
		return lex, nil
	}
	return nil, errors.New("unknown lexicon format " + e.Format)
}

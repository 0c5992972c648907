package lexicon

import (
	"compress/gzip"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/scrabblesolver/solver/cache"
	"github.com/scrabblesolver/solver/config"
)

func TestLoad(t *testing.T) {
	is := is.New(t)
	raw := "cat\r\nACT\n\n# a comment\n  dog  \nbad word\nta\x07b\nCAT\nzoo"
	lex, err := Load("test", strings.NewReader(raw))
	is.NoErr(err)
	is.Equal(lex.Name, "test")
	// Order kept, duplicates kept, malformed lines dropped.
	is.Equal(lex.Words, []string{"CAT", "ACT", "DOG", "CAT", "ZOO"})
	is.Equal(lex.Len(), 5)
}

func TestLoadEmpty(t *testing.T) {
	is := is.New(t)
	lex, err := Load("empty", strings.NewReader("\n\n# nothing\n"))
	is.NoErr(err)
	is.Equal(lex.Len(), 0)
	is.Equal(lex.Words, []string{})
}

func TestChecksum(t *testing.T) {
	is := is.New(t)
	a := &Lexicon{Words: []string{"AA", "AB"}}
	b := &Lexicon{Words: []string{"AA", "AB"}}
	c := &Lexicon{Words: []string{"AB", "AA"}}
	d := &Lexicon{Words: []string{"AAA", "B"}}
	is.Equal(a.Checksum(), b.Checksum())
	is.True(a.Checksum() != c.Checksum())
	is.True(a.Checksum() != d.Checksum())
}

func writeGzip(t *testing.T, path, contents string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(contents)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	plain := filepath.Join(dir, "TWL06.txt")
	is.NoErr(os.WriteFile(plain, []byte("qi\nza\n"), 0644))
	lex, err := LoadFile(plain)
	is.NoErr(err)
	is.Equal(lex.Name, "TWL06")
	is.Equal(lex.Words, []string{"QI", "ZA"})

	gz := filepath.Join(dir, "CSW21.txt.gz")
	writeGzip(t, gz, "xu\r\nox\r\n")
	lex, err = LoadFile(gz)
	is.NoErr(err)
	is.Equal(lex.Name, "CSW21")
	is.Equal(lex.Words, []string{"XU", "OX"})

	_, err = LoadFile(filepath.Join(dir, "missing.txt"))
	is.True(os.IsNotExist(err))
}

func makeSQLite(t *testing.T, path string, words ...string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.Exec("CREATE TABLE words (word TEXT NOT NULL)"); err != nil {
		t.Fatal(err)
	}
	for _, w := range words {
		if _, err := db.Exec("INSERT INTO words (word) VALUES (?)", w); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadSQLite(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "words.db")
	makeSQLite(t, path, "quiz", "JAB", "bad one", "ZAX")
	lex, err := LoadSQLite(context.Background(), "db", path, "words")
	is.NoErr(err)
	is.Equal(lex.Words, []string{"QUIZ", "JAB", "ZAX"})

	_, err = LoadSQLite(context.Background(), "db", path, "words; DROP TABLE words")
	is.True(err != nil)
}

func TestManifestAndGet(t *testing.T) {
	is := is.New(t)
	cache.Clear()
	dir := t.TempDir()
	manifest := `lexica:
  - name: small
    file: small.txt
    format: text
  - name: fromdb
    file: words.db
    format: sqlite
`
	is.NoErr(os.WriteFile(filepath.Join(dir, ManifestFile), []byte(manifest), 0644))
	is.NoErr(os.WriteFile(filepath.Join(dir, "small.txt"), []byte("cat\nact\n"), 0644))
	is.NoErr(os.WriteFile(filepath.Join(dir, "plain.txt"), []byte("dog\n"), 0644))
	makeSQLite(t, filepath.Join(dir, "words.db"), "eat", "tea")

	m, err := ReadManifest(filepath.Join(dir, ManifestFile))
	is.NoErr(err)
	is.Equal(m.Names(), []string{"small", "fromdb"})
	e, ok := m.Find("SMALL")
	is.True(ok)
	is.Equal(e.File, "small.txt")

	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigLexiconPath, dir)

	lex, err := Get(cfg, "small")
	is.NoErr(err)
	is.Equal(lex.Name, "small")
	is.Equal(lex.Words, []string{"CAT", "ACT"})

	lex, err = Get(cfg, "fromdb")
	is.NoErr(err)
	is.Equal(lex.Words, []string{"EAT", "TEA"})

	// Not in the manifest; falls back to <name>.txt.
	lex, err = Get(cfg, "plain")
	is.NoErr(err)
	is.Equal(lex.Words, []string{"DOG"})

	_, err = Get(cfg, "nope")
	is.True(err != nil)

	// Second Get is served from the cache even if the file goes away.
	is.NoErr(os.Remove(filepath.Join(dir, "small.txt")))
	lex, err = Get(cfg, "small")
	is.NoErr(err)
	is.Equal(lex.Len(), 2)
}

func TestSetPopulatesCache(t *testing.T) {
	is := is.New(t)
	cache.Clear()
	Set(&Lexicon{Name: "mem", Words: []string{"ZA"}})
	lex, err := Get(config.DefaultConfig(), "mem")
	is.NoErr(err)
	is.Equal(lex.Words, []string{"ZA"})
}

func TestGetIgnoresCase(t *testing.T) {
	is := is.New(t)
	cache.Clear()
	dir := t.TempDir()
	is.NoErr(os.WriteFile(filepath.Join(dir, "twl06.txt"), []byte("qi\n"), 0644))
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigLexiconPath, dir)

	lower, err := Get(cfg, "twl06")
	is.NoErr(err)
	upper, err := Get(cfg, "TWL06")
	is.NoErr(err)
	is.True(lower == upper) // one load, one cache entry

	Set(&Lexicon{Name: "Mem", Words: []string{"ZA"}})
	lex, err := Get(cfg, "MEM")
	is.NoErr(err)
	is.Equal(lex.Words, []string{"ZA"})
}

func TestAvailable(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigLexiconPath, dir)

	names, err := Available(cfg)
	is.NoErr(err)
	is.Equal(len(names), 0)

	manifest := "lexica:\n  - name: small\n    file: small.txt\n  - name: fromdb\n    file: words.db\n    format: sqlite\n"
	is.NoErr(os.WriteFile(filepath.Join(dir, ManifestFile), []byte(manifest), 0644))
	for _, f := range []string{"small.txt", "plain.txt", "big.txt.gz", "notes.md"} {
		is.NoErr(os.WriteFile(filepath.Join(dir, f), []byte("x\n"), 0644))
	}
	names, err = Available(cfg)
	is.NoErr(err)
	is.Equal(names, []string{"small", "fromdb", "big", "plain"})

	cfg.Set(config.ConfigLexiconPath, filepath.Join(dir, "missing"))
	names, err = Available(cfg)
	is.NoErr(err)
	is.Equal(len(names), 0)
}

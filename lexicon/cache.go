package lexicon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/scrabblesolver/solver/cache"
	"github.com/scrabblesolver/solver/config"
)

var CacheKeyPrefix = "lexicon:"

// cacheKey is the same for every spelling of a name, since manifest
// lookups ignore case.
func cacheKey(name string) string {
	return CacheKeyPrefix + strings.ToUpper(name)
}

// cacheLoadFunc loads the lexicon called name into the global cache.
func cacheLoadFunc(name string) func(cfg *config.Config, key string) (any, error) {
	return func(cfg *config.Config, key string) (any, error) {
		return NamedLexicon(context.Background(), cfg, name)
	}
}

// NamedLexicon finds a lexicon by name in the configured lexicon path. The
// manifest is consulted first; without an entry there, <name>.txt and then
// <name>.txt.gz are tried.
func NamedLexicon(ctx context.Context, cfg *config.Config, name string) (*Lexicon, error) {
	dir := cfg.GetString(config.ConfigLexiconPath)
	m, err := ReadManifest(filepath.Join(dir, ManifestFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if e, ok := m.Find(name); ok {
		log.Debug().Str("lexicon", name).Str("file", e.File).Str("format", e.Format).
			Msg("found-in-manifest")
		return LoadEntry(ctx, dir, e)
	}
	for _, ext := range []string{".txt", ".txt.gz"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		lex, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		lex.Name = name
		return lex, nil
	}
	return nil, errors.New("lexicon " + name + " not found in " + dir)
}

// Set populates the cache with an already-loaded lexicon.
func Set(lex *Lexicon) {
	cache.Populate(cacheKey(lex.Name), lex)
}

// Get loads a named lexicon from the cache or from disk.
func Get(cfg *config.Config, name string) (*Lexicon, error) {
	obj, err := cache.Load(cfg, cacheKey(name), cacheLoadFunc(name))
	if err != nil {
		return nil, err
	}
	ret, ok := obj.(*Lexicon)
	if !ok {
		return nil, errors.New("could not read lexicon from cache")
	}
	return ret, nil
}

// Available lists the lexica that can be loaded from the lexicon path: every
// manifest entry, then any <name>.txt or <name>.txt.gz file not already
// listed. Names are compared without regard to case.
func Available(cfg *config.Config) ([]string, error) {
	dir := cfg.GetString(config.ConfigLexiconPath)
	m, err := ReadManifest(filepath.Join(dir, ManifestFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	names := m.Names()
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, ext := range []string{".txt.gz", ".txt"} {
			if n, ok := strings.CutSuffix(e.Name(), ext); ok {
				files = append(files, n)
				break
			}
		}
	}
	sort.Strings(files)
	names = append(names, files...)
	return lo.UniqBy(names, strings.ToUpper), nil
}

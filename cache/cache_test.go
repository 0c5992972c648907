package cache

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/scrabblesolver/solver/config"
)

func TestLoadOnce(t *testing.T) {
	is := is.New(t)
	Clear()
	cfg := config.DefaultConfig()
	calls := 0
	loader := func(cfg *config.Config, key string) (any, error) {
		calls++
		return "value-for-" + key, nil
	}
	obj, err := Load(cfg, "k1", loader)
	is.NoErr(err)
	is.Equal(obj, "value-for-k1")
	obj, err = Load(cfg, "k1", loader)
	is.NoErr(err)
	is.Equal(obj, "value-for-k1")
	is.Equal(calls, 1)

	Evict("k1")
	_, err = Load(cfg, "k1", loader)
	is.NoErr(err)
	is.Equal(calls, 2)
}

func TestLoadError(t *testing.T) {
	is := is.New(t)
	Clear()
	boom := errors.New("boom")
	_, err := Load(config.DefaultConfig(), "bad", func(*config.Config, string) (any, error) {
		return nil, boom
	})
	is.Equal(err, boom)
	// A failed load is not cached.
	obj, err := Load(config.DefaultConfig(), "bad", func(*config.Config, string) (any, error) {
		return 42, nil
	})
	is.NoErr(err)
	is.Equal(obj, 42)
}

func TestPopulate(t *testing.T) {
	is := is.New(t)
	Clear()
	Populate("p", []string{"A"})
	obj, err := Load(nil, "p", func(*config.Config, string) (any, error) {
		return nil, errors.New("should not be called")
	})
	is.NoErr(err)
	is.Equal(obj, []string{"A"})
}

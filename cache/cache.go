package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/scrabblesolver/solver/config"
)

// The cache holds large objects that are expensive to load and that we want
// to load only once per process, word lists especially. A shell session and
// the solve service both keep their lexica here.

type cache struct {
	sync.Mutex
	objects map[string]any
}

type loadFunc func(cfg *config.Config, key string) (any, error)

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache *cache

var createOnce sync.Once

func (c *cache) load(cfg *config.Config, key string, loadFunc loadFunc) error {
	log.Debug().Str("key", key).Msg("loading into cache")

	obj, err := loadFunc(cfg, key)
	if err != nil {
		return err
	}
	c.objects[key] = obj

	return nil
}

func (c *cache) get(cfg *config.Config, key string, loadFunc loadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	obj, ok := c.objects[key]
	if !ok {
		err := c.load(cfg, key, loadFunc)
		if err != nil {
			return nil, err
		}
		return c.objects[key], nil
	}
	log.Debug().Str("key", key).Msg("getting obj from cache")

	return obj, nil
}

func CreateGlobalObjectCache() {
	createOnce.Do(func() {
		GlobalObjectCache = &cache{objects: make(map[string]any)}
	})
}

// Load returns the object stored under key, calling loadFunc to create it
// if it is not cached yet.
func Load(cfg *config.Config, key string, loadFunc loadFunc) (any, error) {
	CreateGlobalObjectCache()
	return GlobalObjectCache.get(cfg, key, loadFunc)
}

// Populate stores obj under key, replacing anything already there.
func Populate(key string, obj any) {
	CreateGlobalObjectCache()
	GlobalObjectCache.Lock()
	defer GlobalObjectCache.Unlock()
	GlobalObjectCache.objects[key] = obj
}

// Evict removes key from the cache.
func Evict(key string) {
	CreateGlobalObjectCache()
	GlobalObjectCache.Lock()
	defer GlobalObjectCache.Unlock()
	delete(GlobalObjectCache.objects, key)
}

// Clear empties the cache.
func Clear() {
	CreateGlobalObjectCache()
	GlobalObjectCache.Lock()
	defer GlobalObjectCache.Unlock()
	GlobalObjectCache.objects = make(map[string]any)
}

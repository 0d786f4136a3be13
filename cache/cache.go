package cache

import (
	gocache "github.com/patrickmn/go-cache"
)

// Slots holds the derived announcement strings. Entries never expire on
// their own; rebuild operations overwrite or delete them, last write wins.
type Slots struct {
	cache *gocache.Cache
}

func NewSlots() *Slots {
	return &Slots{cache: gocache.New(gocache.NoExpiration, gocache.NoExpiration)}
}

func (s *Slots) Set(key, value string) {
	s.cache.Set(key, value, gocache.NoExpiration)
}

func (s *Slots) Clear(key string) {
	s.cache.Delete(key)
}

// Get returns the cached value, or "" when the slot is empty or was cleared.
func (s *Slots) Get(key string) string {
	value, found := s.cache.Get(key)
	if !found {
		return ""
	}
	str, ok := value.(string)
	if !ok {
		return ""
	}
	return str
}

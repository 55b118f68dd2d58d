package identity

import "sync"

// DirectoryCache memoizes one resolved value per working directory for the
// lifetime of the cache. Empty values are never stored.
type DirectoryCache struct {
	mutex  sync.RWMutex
	values map[string]string
}

// NewDirectoryCache constructs an empty cache.
func NewDirectoryCache() *DirectoryCache {
	return &DirectoryCache{values: map[string]string{}}
}

// Lookup returns the cached value for the directory, reporting false when no
// non-empty value has been stored.
func (cache *DirectoryCache) Lookup(directory string) (string, bool) {
	cache.mutex.RLock()
	defer cache.mutex.RUnlock()
	cachedValue, exists := cache.values[directory]
	if !exists || len(cachedValue) == 0 {
		return "", false
	}
	return cachedValue, true
}

// Store records value for the directory. Empty values and directories that
// already hold a value are ignored.
func (cache *DirectoryCache) Store(directory string, value string) {
	if len(value) == 0 {
		return
	}
	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	if _, exists := cache.values[directory]; exists {
		return
	}
	cache.values[directory] = value
}

// Len reports how many directories hold a cached value.
func (cache *DirectoryCache) Len() int {
	cache.mutex.RLock()
	defer cache.mutex.RUnlock()
	return len(cache.values)
}

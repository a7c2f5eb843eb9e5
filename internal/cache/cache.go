package cache

// Cache defines a generic key/value cache.
type Cache[K comparable, V any] interface {
	// Get retrieves a value from the cache
	Get(key K) (V, bool)

	// Set stores a value in the cache
	Set(key K, value V)

	// Len returns the current number of items in the cache
	Len() int
}

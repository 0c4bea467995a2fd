package ports

// ReplyCache is a time-bounded memoization layer for computed replies.
// Keys are exact-match strings; entries past their TTL are evicted lazily on
// read. Writes never fail from the caller's perspective: caching is a
// performance optimization, not a correctness requirement.
type ReplyCache interface {
	// Get returns the cached reply for key, or false on miss or expiry
	Get(key string) (string, bool)

	// Set stores value under key, overwriting unconditionally
	Set(key, value string)
}

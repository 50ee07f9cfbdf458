package kvcache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them while holding its lock.
type Hooks interface {
	// The oldest entry was evicted to make room for a write.
	Evicted(namespace, key string)

	// A read miss was filled from a callback and written.
	Filled(namespace, key string)

	// A snapshot was loaded in New. loaded is the number of entries in the
	// snapshot; kept is how many survived the size bound.
	Hydrated(namespace string, loaded, kept int)

	// New found no usable snapshot.
	// reason ∈ {"absent", "decode_error"}
	HydrationSkipped(namespace, reason string)

	// Rewriting the snapshot failed after a mutation.
	// op ∈ {"write", "remove"}
	PersistFailed(namespace, op string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Evicted(string, string)              {}
func (NopHooks) Filled(string, string)               {}
func (NopHooks) Hydrated(string, int, int)           {}
func (NopHooks) HydrationSkipped(string, string)     {}
func (NopHooks) PersistFailed(string, string, error) {}

// Package kv provides the string key-value store the rest of the
// application persists through. Values are opaque strings (the collection
// codec handles their shape); keys name whole collections.
package kv

// Store is the storage primitive: get/set/remove by string key. A missing
// key is not an error; Get reports it through ok=false.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Keys() ([]string, error)
	Close() error
}

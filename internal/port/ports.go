// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service
// layer from concrete implementations.
package port

import "context"

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// Archiver keeps a copy of every generated remittance file for auditing.
// It returns the location of the stored object.
type Archiver interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

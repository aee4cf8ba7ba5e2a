// Package storage provides key/value backends for style documents.
//
// Every backend stores opaque bytes under a validated key and implements
// [Store]. Implementations:
//   - FileStore: one file per key, written atomically (desktop and CLI use)
//   - MemoryStore: in-process map (tests, dry runs)
//   - RedisStore: shared storage for multi-instance API deployments
//   - MongoStore: one document per key in a collection
//
// Use [Open] to construct a backend from [Options]:
//
//	store, err := storage.Open(ctx, storage.Options{Backend: storage.BackendFile, Dir: dir})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrClosed is returned by operations on a closed MemoryStore.
var ErrClosed = errors.New("store closed")

// Store is a key/value document store.
type Store interface {
	// Get returns the data stored under key. found is false, with a nil
	// error, when nothing is stored.
	Get(ctx context.Context, key string) (data []byte, found bool, err error)

	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

// Lister is implemented by stores that can enumerate their keys.
type Lister interface {
	Keys(ctx context.Context) ([]string, error)
}

// Backend names a Store implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
	BackendMongo  Backend = "mongo"
)

// Options selects and configures a backend for Open.
type Options struct {
	Backend Backend

	// File backend.
	Dir string

	// Redis backend.
	Redis RedisConfig

	// Mongo backend.
	Mongo MongoConfig
}

// Open creates the Store selected by opts.Backend. An empty backend
// means BackendFile.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendFile, "":
		return NewFileStore(opts.Dir)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(ctx, opts.Redis)
	case BackendMongo:
		return NewMongoStore(ctx, opts.Mongo)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want file, memory, redis or mongo)", opts.Backend)
	}
}

package types

import "context"

/*
Loader is the contract between the cache and a backing store (a database,
an external API, another cache tier). The cache never persists anything
itself; when it wants data it does not have, or wants a write to outlive
it, it hands the work to the Loader.

Both directions are optional from the cache's point of view:

  - Load backs the read-through path (Cache.Load). It is only ever called
    after a resident miss, outside the cache lock.
  - Put backs the write policies (write-through, write-back). It stores
    data in the backing store, never in the cache.
*/
type Loader interface {
	Load(ctx context.Context, key string) (any, error)

	Put(ctx context.Context, key string, value any) error
}

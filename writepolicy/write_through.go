package writepolicy

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/krisalay/s3fifo-cache/types"
)

/*
This file implements the "write-through" policy.

Whenever the cache writes data, it immediately writes the same data to the
backing store.

So the flow is: Cache write → store write (synchronous)
*/

/*
WriteThroughPolicy directly forwards every cache write to the backing store.
*/
type WriteThroughPolicy struct {

	// store is the backing store (DB, API, etc.) where data must be
	// persisted immediately.
	store types.Loader

	log *logrus.Logger
}

/*
NewWriteThroughPolicy creates a new write-through policy. A nil logger
falls back to the logrus default.
*/
func NewWriteThroughPolicy(store types.Loader, log *logrus.Logger) *WriteThroughPolicy {
	if log == nil {
		log = logrus.New()
	}
	return &WriteThroughPolicy{store: store, log: log}
}

/*
OnWrite is called whenever the cache writes a key. We immediately write the
data to the backing store.
  - This call is synchronous
  - If the backing store is slow, cache writes become slow
  - Store failures are logged, not surfaced: the in-memory write already
    happened and is not rolled back
*/
func (w *WriteThroughPolicy) OnWrite(ctx context.Context, key string, value any) {
	if err := w.store.Put(ctx, key, value); err != nil {
		w.log.WithError(err).WithField("key", key).Warn("write-through: store put failed")
	}
}

/*
Close is required by the WritePolicy interface. Write-through does not use
background workers, so there is nothing to clean up.
*/
func (w *WriteThroughPolicy) Close() {}

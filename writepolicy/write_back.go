package writepolicy

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/krisalay/s3fifo-cache/types"
)

// This file implements the "write-back" policy.

// writeReq represents one pending write operation that needs to be sent to
// the backing store.
type writeReq struct {
	ctx   context.Context
	key   string
	value any
}

/*
WriteBackPolicy manages asynchronous writes to the backing store.
*/
type WriteBackPolicy struct {

	// store is the backing store (DB, API, etc.)
	store types.Loader

	// ch is a buffered channel that holds pending write requests.
	//
	// Buffering is important:
	// - Allows bursts of writes without blocking
	// - Improves throughput
	ch chan writeReq

	// wg is used to wait for the worker to finish during shutdown.
	wg sync.WaitGroup

	log *logrus.Logger
}

// NewWriteBackPolicy creates a new write-back policy with the given queue
// buffer. A nil logger falls back to the logrus default.
func NewWriteBackPolicy(store types.Loader, buffer int, log *logrus.Logger) *WriteBackPolicy {
	if log == nil {
		log = logrus.New()
	}

	w := &WriteBackPolicy{
		store: store,
		ch:    make(chan writeReq, buffer),
		log:   log,
	}

	// Start one background worker
	w.wg.Add(1)
	go w.worker()

	return w
}

// OnWrite is called whenever the cache writes a key.
// We do NOT write to the backing store immediately. Instead, we push the
// write into a queue. If the queue is full, we DROP the write, because
// blocking would slow down the cache and defeat the purpose of write-back.
func (w *WriteBackPolicy) OnWrite(ctx context.Context, key string, value any) {
	select {
	case w.ch <- writeReq{ctx, key, value}:
		// queued successfully
	default:
		// Intentional drop under pressure: cache stays fast, backing
		// store may miss some updates. Logged so the loss is visible.
		w.log.WithField("key", key).Warn("write-back: queue full, write dropped")
	}
}

/*
worker runs in the background and processes queued writes. It continuously
reads from the channel and writes data to the backing store.

This is where eventual consistency happens.
*/
func (w *WriteBackPolicy) worker() {
	defer w.wg.Done()

	for req := range w.ch {
		if err := w.store.Put(req.ctx, req.key, req.value); err != nil {
			w.log.WithError(err).WithField("key", req.key).Warn("write-back: store put failed")
		}
	}
}

/*
Close shuts down the write-back policy gracefully.
------------------
1. Close the channel (no more writes accepted)
2. Wait for the worker to finish processing queued writes

Without this, pending writes could be lost when the application shuts down.
*/
func (w *WriteBackPolicy) Close() {
	close(w.ch)
	w.wg.Wait()
}

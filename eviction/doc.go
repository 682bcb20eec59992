/*
Package eviction holds the queue structures behind the S3-FIFO discipline:

  - Queue: a FIFO of resident entries, used for both the small
    (probationary) queue and the main (protected) queue.
  - Ghost: a bounded FIFO of evicted keys plus a membership set, used to
    recognize returning keys and admit them straight into main.

Neither structure locks. Every S3-FIFO transition touches at least two of
{store, small, main, ghost}, so indivisibility has to come from one lock
over the whole cache; the cache holds that lock, these structures stay
plain.
*/
package eviction

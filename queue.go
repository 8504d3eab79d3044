// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// Queue is a bounded FIFO of string items with blocking Put/Get and a
// terminal "finished" state.
//
// Queue mirrors the ring-buffer shape used throughout
// [code.hybscloud.com/lfq] (contiguous backing slice, head/tail/count
// indices, a Cap accessor) but trades that package's lock-free FAA/CAS
// slot protocol for a single mutex guarding every field, because the
// pipeline's worker protocol requires true blocking semantics — a
// consumer must sleep until an item exists or the queue is finished,
// not spin on ErrWouldBlock. Three [Latch]es expose the wait points a
// blocked Put, Get, or drain-waiter needs: notFull, notEmpty, drained.
type Queue struct {
	mu       sync.Mutex
	items    []string
	head     int
	tail     int
	count    int
	cap      int
	finished atomix.Bool // lock-free fast read for already-closed fast paths

	notFull  *Latch
	notEmpty *Latch
	drained  *Latch
}

// NewQueue creates a Queue with the given capacity. Panics if capacity
// is not positive, matching [code.hybscloud.com/lfq]'s constructors
// (which panic on invalid capacity rather than returning an error, since
// a bad capacity is a programmer error discovered at construction time,
// not a runtime condition).
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		panic("pipeline: capacity must be > 0")
	}
	q := &Queue{
		items:    make([]string, capacity),
		cap:      capacity,
		notFull:  NewLatch(),
		notEmpty: NewLatch(),
		drained:  NewLatch(),
	}
	// A fresh queue is not full, so notFull starts signalled; notEmpty and
	// drained stay unsignalled until an item arrives or the queue closes
	// empty.
	q.notFull.Signal()
	return q
}

// Cap returns the queue's capacity.
func (q *Queue) Cap() int {
	return q.cap
}

// Put blocks until space is available and enqueues item, or returns
// [ErrClosed] if the queue is finished (checked at entry, and again each
// time a blocked Put wakes — so a Put parked on a full queue unblocks and
// fails as soon as signalFinished fires, per the tightened producer-after-
// close policy: a close must not leave a producer parked forever).
func (q *Queue) Put(item string) error {
	q.mu.Lock()
	for {
		if q.finished.LoadAcquire() {
			q.mu.Unlock()
			return ErrClosed
		}
		if q.count < q.cap {
			break
		}
		q.mu.Unlock()
		if err := q.notFull.Wait(); err != nil {
			return err
		}
		q.mu.Lock()
	}

	wasEmpty := q.count == 0
	q.items[q.tail] = item
	q.tail = (q.tail + 1) % q.cap
	q.count++

	if wasEmpty {
		q.notEmpty.Signal()
	}
	if q.count == q.cap {
		q.notFull.Reset()
	}
	q.mu.Unlock()
	return nil
}

// Get blocks until an item is available or the queue is finished and
// empty, in which case it returns ("", false) — the drained signal.
func (q *Queue) Get() (string, bool) {
	q.mu.Lock()
	for q.count == 0 && !q.finished.LoadAcquire() {
		q.mu.Unlock()
		q.notEmpty.Wait()
		q.mu.Lock()
	}

	if q.count == 0 {
		q.mu.Unlock()
		return "", false
	}

	wasFull := q.count == q.cap
	item := q.items[q.head]
	q.items[q.head] = ""
	q.head = (q.head + 1) % q.cap
	q.count--

	if wasFull {
		q.notFull.Signal()
	}
	if q.count == 0 {
		q.notEmpty.Reset()
		if q.finished.LoadAcquire() {
			q.drained.Signal()
		}
	}
	q.mu.Unlock()
	return item, true
}

// signalFinished marks the queue finished (idempotent) and wakes every
// waiter: blocked Gets observe drain, blocked Puts wake and fail with
// [ErrClosed]. If the queue is already empty, drained fires immediately.
func (q *Queue) signalFinished() {
	q.mu.Lock()
	if !q.finished.LoadAcquire() {
		q.finished.StoreRelease(true)
		q.notEmpty.Signal()
		q.notFull.Signal()
		if q.count == 0 {
			q.drained.Signal()
		}
	}
	q.mu.Unlock()
}

// waitDrained blocks until the queue is finished and empty.
func (q *Queue) waitDrained() error {
	return q.drained.Wait()
}

// Drain is an alias for the internal finished-signal, named to match
// [code.hybscloud.com/lfq]'s Drainer interface so pipeline.Queue and an
// lfq queue can be used behind the same shutdown vocabulary. Unlike a
// hint, Drain is enforced: every later Put, and any Put parked on a full
// queue, returns [ErrClosed].
func (q *Queue) Drain() {
	q.signalFinished()
}

// Len reports the current item count. Intended for diagnostics/tests
// only — under concurrent use the value may be stale the instant it is
// read.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

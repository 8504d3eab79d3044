// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mpscqueue is a bounded, lock-free, multi-producer
// single-consumer queue of strings. It is the fan-in path a stdout
// sink uses to collect output lines from several concurrently running
// stages without taking a mutex on every write.
//
// The algorithm is an FAA-based SCQ variant: producers claim a slot
// with an atomic add and spin briefly if they land on a slot the
// consumer hasn't vacated yet.
package mpscqueue

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// ErrFull is returned by Enqueue when the queue has no free slot. It is
// an alias of [iox.ErrWouldBlock] for ecosystem consistency.
var ErrFull = iox.ErrWouldBlock

type pad [64]byte

type slot struct {
	cycle atomix.Uint64
	data  string
	_     pad
}

// Queue is a bounded multi-producer single-consumer string queue.
type Queue struct {
	_        pad
	head     atomix.Uint64
	_        pad
	tail     atomix.Uint64
	_        pad
	draining atomix.Bool
	_        pad
	buffer   []slot
	capacity uint64
	size     uint64
	mask     uint64
}

// New returns a Queue able to hold capacity items. capacity rounds up
// to the next power of two.
func New(capacity int) *Queue {
	if capacity < 2 {
		panic("mpscqueue: capacity must be >= 2")
	}

	n := uint64(roundToPow2(capacity))
	size := n * 2

	q := &Queue{
		buffer:   make([]slot, size),
		capacity: n,
		size:     size,
		mask:     size - 1,
	}
	for i := uint64(0); i < size; i++ {
		q.buffer[i].cycle.StoreRelaxed(i / n)
	}
	return q
}

// Cap returns the queue's usable capacity.
func (q *Queue) Cap() int {
	return int(q.capacity)
}

// Drain marks the queue as draining: the consumer may keep calling
// Dequeue until it observes empty, but producers should stop calling
// Enqueue after calling Drain.
func (q *Queue) Drain() {
	q.draining.StoreRelease(true)
}

// Enqueue adds s to the queue. Safe for concurrent use by multiple
// producer goroutines. Returns ErrFull if the queue has no free slot.
func (q *Queue) Enqueue(s string) error {
	sw := spin.Wait{}
	for {
		tail := q.tail.LoadAcquire()
		head := q.head.LoadRelaxed()
		if tail >= head+q.capacity {
			return ErrFull
		}

		myTail := q.tail.AddAcqRel(1) - 1
		slot := &q.buffer[myTail&q.mask]
		expected := myTail / q.capacity

		cycle := slot.cycle.LoadAcquire()
		if cycle == expected {
			slot.data = s
			slot.cycle.StoreRelease(expected + 1)
			return nil
		}
		if int64(cycle) < int64(expected) {
			return ErrFull
		}
		sw.Once()
	}
}

// Dequeue removes and returns the oldest item. Must only be called
// from a single consumer goroutine. ok is false if the queue is empty.
func (q *Queue) Dequeue() (item string, ok bool) {
	head := q.head.LoadRelaxed()
	cycle := head / q.capacity
	slot := &q.buffer[head&q.mask]

	slotCycle := slot.cycle.LoadAcquire()
	if slotCycle != cycle+1 {
		return "", false
	}

	item = slot.data
	slot.data = ""
	slot.cycle.StoreRelease((head + q.size) / q.capacity)
	q.head.StoreRelaxed(head + 1)
	return item, true
}

func roundToPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// Latch is a level-triggered, one-shot rendezvous signal. It is the Go
// translation of the monitor_t primitive in the original plugin SDK
// (mutex + condition variable + a signaled flag): Wait blocks while
// unsignalled and returns immediately once Signal has fired, even for
// waiters that arrive after the signal; Reset is the only way to re-arm.
//
// The zero value is not ready for use; construct with [NewLatch].
type Latch struct {
	mu        sync.Mutex
	cond      sync.Cond
	ready     atomix.Bool // true once NewLatch has wired cond to mu
	signalled atomix.Bool
}

// NewLatch returns a ready-to-use, unsignalled Latch.
func NewLatch() *Latch {
	l := &Latch{}
	l.cond.L = &l.mu
	l.ready.StoreRelease(true)
	return l
}

// Wait blocks until the latch is signalled. It returns [ErrInvalidState]
// immediately if called on a Latch that was not built with [NewLatch].
func (l *Latch) Wait() error {
	if !l.ready.LoadAcquire() {
		return ErrInvalidState
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for !l.signalled.LoadAcquire() {
		l.cond.Wait()
	}
	return nil
}

// Signal sets the latch to signalled and wakes every waiter. Idempotent:
// signalling an already-signalled latch is a no-op beyond the redundant
// broadcast.
func (l *Latch) Signal() {
	if !l.ready.LoadAcquire() {
		return
	}
	l.mu.Lock()
	l.signalled.StoreRelease(true)
	l.cond.Broadcast()
	l.mu.Unlock()
}

// Reset clears the signalled state. Waiters that already observed the
// signal and returned from Wait are unaffected; Reset only re-arms the
// latch for the next Wait/Signal cycle.
func (l *Latch) Reset() {
	if !l.ready.LoadAcquire() {
		return
	}
	l.mu.Lock()
	l.signalled.StoreRelease(false)
	l.mu.Unlock()
}

// Signalled reports the current state without blocking.
func (l *Latch) Signalled() bool {
	return l.ready.LoadAcquire() && l.signalled.LoadAcquire()
}

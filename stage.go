// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"os"
	"sync"

	"code.hybscloud.com/atomix"
)

// Hook is the downstream capability installed by Attach: a stage's
// PlaceWork method, reduced to the single call the worker protocol needs.
type Hook func(s string) error

// Stage owns one bounded [Queue], one worker goroutine, and a pure
// [Transform]. It is the Go realization of the plugin SDK's per-plugin
// global context, re-architected per the source's Design Note 9.3 as an
// explicit object instantiated once per stage rather than one instance
// per loaded shared-library image — so two stages may share a Transform
// safely, and duplicate stage names need no special-casing here (the
// Pipeline orchestrator still rejects them, for output determinism).
type Stage struct {
	name      string
	transform Transform

	queue *Queue

	stateMu  sync.Mutex
	nextHook Hook

	initialised   atomix.Bool
	threadCreated atomix.Bool
	threadJoined  atomix.Bool
	endPushed     atomix.Bool
	finished      atomix.Bool

	doneLatch *Latch

	wg sync.WaitGroup
}

// NewStage constructs a Stage bound to name and transform. The stage is
// not yet running; call [Stage.Init] to start its worker.
func NewStage(name string, transform Transform) (*Stage, error) {
	if name == "" || transform == nil {
		return nil, ErrInvalidArg
	}
	return &Stage{name: name, transform: transform}, nil
}

// Name returns the stage's name.
func (s *Stage) Name() string {
	return s.name
}

// Init constructs the stage's queue and starts its worker goroutine.
func (s *Stage) Init(capacity int) error {
	if s.initialised.LoadAcquire() {
		return ErrAlreadyInit
	}
	if capacity <= 0 {
		return ErrInvalidArg
	}

	s.queue = NewQueue(capacity)
	s.doneLatch = NewLatch()
	s.endPushed.StoreRelease(false)
	s.finished.StoreRelease(false)
	s.threadJoined.StoreRelease(false)

	s.wg.Add(1)
	s.threadCreated.StoreRelease(true)
	go s.run()

	s.initialised.StoreRelease(true)
	return nil
}

// PlaceWork duplicates s (Go strings are already immutable value copies,
// so "duplicates" means simply "passes by value") and enqueues it,
// blocking if the stage's queue is full. This is the pipeline's sole
// back-pressure mechanism.
func (s *Stage) PlaceWork(item string) error {
	if !s.initialised.LoadAcquire() {
		return ErrNotInit
	}
	return s.queue.Put(item)
}

// Attach sets the stage's downstream hook. The hook is set at most once:
// any second Attach, whatever its target, is logged and ignored rather
// than treated as fatal, and the first hook stays installed. An Attach after
// the stage has already forwarded the sentinel is likewise logged and
// ignored (both are non-fatal per the error-handling design).
func (s *Stage) Attach(hook Hook) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if !s.initialised.LoadAcquire() {
		s.logError("attach called before init")
		return
	}
	if s.finished.LoadAcquire() {
		s.logError("attach after finish is not allowed")
		return
	}
	if s.nextHook != nil {
		s.logError("attach called twice; keeping existing wiring")
		return
	}
	s.nextHook = hook
}

// WaitFinished blocks until the stage's worker has signalled its
// termination latch.
func (s *Stage) WaitFinished() error {
	if !s.initialised.LoadAcquire() {
		return ErrNotInit
	}
	return s.doneLatch.Wait()
}

// Fini signals the stage's queue finished, joins the worker, and resets
// the stage to its pre-Init state.
func (s *Stage) Fini() error {
	if !s.initialised.LoadAcquire() {
		return ErrNotInit
	}

	if s.threadCreated.LoadAcquire() && !s.threadJoined.LoadAcquire() {
		s.queue.signalFinished()
		s.wg.Wait()
		s.threadJoined.StoreRelease(true)
	}

	s.queue = nil
	s.stateMu.Lock()
	s.nextHook = nil
	s.stateMu.Unlock()

	s.initialised.StoreRelease(false)
	s.threadCreated.StoreRelease(false)
	s.threadJoined.StoreRelease(false)
	s.endPushed.StoreRelease(false)
	s.finished.StoreRelease(false)
	return nil
}

// run is the worker goroutine body — the heart of the system. It drains
// the stage's queue, invokes the transform, forwards output downstream,
// and propagates the sentinel exactly once.
func (s *Stage) run() {
	defer s.wg.Done()

	for {
		item, ok := s.queue.Get()
		if !ok {
			// Drained without ever seeing the sentinel (e.g. the queue
			// was force-closed during teardown).
			break
		}

		if item == Sentinel {
			s.forwardSentinel()
			s.queue.signalFinished()
			break
		}

		out := s.transform(item)
		if !out.Ok() {
			s.logError("transform failed")
			continue
		}

		s.stateMu.Lock()
		hook := s.nextHook
		s.stateMu.Unlock()

		if hook != nil {
			if err := hook(out.String()); err != nil {
				s.logError(err.Error())
			}
		}
		// Go's garbage collector reclaims both the input and output
		// strings once unreferenced; no explicit free step is needed,
		// but the allocation-count invariant from the spec still holds
		// at the value-copy level: a passthrough Result shares the
		// input's backing array (no new allocation), an Owned Result
		// is a second, distinct allocation.
	}

	s.finished.StoreRelease(true)
	s.doneLatch.Signal()
}

// forwardSentinel performs the check-and-set on endPushed and, if this
// call won the race, invokes the captured downstream hook with the
// sentinel. Grounded on original_source/plugins/plugin_common.c's
// plugin_consumer_thread: end_pushed and next_place_work are read and
// flipped under the same lock, then the hook is invoked after releasing
// it, so no lock is held across the downstream call.
func (s *Stage) forwardSentinel() {
	s.stateMu.Lock()
	var hook Hook
	won := !s.endPushed.LoadAcquire()
	if won {
		s.endPushed.StoreRelease(true)
		hook = s.nextHook
	}
	s.stateMu.Unlock()

	if !won {
		return
	}
	if hook != nil {
		if err := hook(Sentinel); err != nil {
			s.logError(err.Error())
		}
	}
}

func (s *Stage) logError(msg string) {
	fmt.Fprintf(os.Stderr, "[ERROR][%s] - %s\n", s.name, msg)
}

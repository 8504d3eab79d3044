// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrClosed indicates the queue's finished flag was set, either before the
// call started (Put) or while the call was parked waiting for space
// (Put, woken by signalFinished). The caller retains ownership of the item.
//
// This is distinct from [iox.ErrWouldBlock]: a closed queue will never
// admit another item, whereas ErrWouldBlock-style backpressure is transient.
var ErrClosed = errors.New("pipeline: queue closed")

// ErrInvalidState is returned by a [Latch] operation performed on a latch
// that was never constructed via [NewLatch].
var ErrInvalidState = errors.New("pipeline: invalid state")

// ErrInvalidArg indicates a precondition violation: a nil item, a
// non-positive capacity, an empty stage name, or a nil transform.
var ErrInvalidArg = errors.New("pipeline: invalid argument")

// ErrNotInit indicates an operation requiring an initialised [Stage] was
// called before [Stage.Init] or after [Stage.Fini].
var ErrNotInit = errors.New("pipeline: not initialised")

// ErrAlreadyInit indicates [Stage.Init] was called on a stage that is
// already initialised.
var ErrAlreadyInit = errors.New("pipeline: already initialised")

// ErrResourceExhausted indicates the worker goroutine or queue storage for
// a stage could not be allocated.
var ErrResourceExhausted = errors.New("pipeline: resource exhausted")

// ErrTransformFailed indicates a transform returned a failed [Result] for
// a non-sentinel item. The pipeline logs this and drops the item; it is
// not fatal.
var ErrTransformFailed = errors.New("pipeline: transform failed")

// DuplicateStageError reports that the same stage name was requested twice
// in one pipeline's argument list.
type DuplicateStageError struct {
	Name     string
	First    int
	Second   int
}

func (e *DuplicateStageError) Error() string {
	return fmt.Sprintf("pipeline: duplicate plugin name: %q at positions %d and %d", e.Name, e.First, e.Second)
}

// SymbolMissingError reports that a loaded stage module did not export one
// of the five required capabilities.
type SymbolMissingError struct {
	Stage  string
	Symbol string
}

func (e *SymbolMissingError) Error() string {
	return fmt.Sprintf("pipeline: stage %q missing symbol %q", e.Stage, e.Symbol)
}

// IsWouldBlock reports whether err is the transient backpressure signal
// a lock-free producer sees when a buffer is momentarily full. Exposed
// for parity with [code.hybscloud.com/lfq]'s error helpers; pipeline.
// Queue.Put never returns it to callers (it blocks internally instead),
// but the internal stdout sink's lock-free fan-in queue does.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

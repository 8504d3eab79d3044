// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sink serializes stdout writes from the logger and typewriter
// stages without forcing every write through a shared mutex: each
// stage's goroutine enqueues onto a lock-free [mpscqueue.Queue], and a
// single background goroutine is the only writer touching os.Stdout.
package sink

import (
	"bufio"
	"os"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"

	"code.hybscloud.com/pipeline/internal/mpscqueue"
)

// Stdout is the process-wide stdout sink. The logger stage calls Write
// and the typewriter stage calls Exclusive; the CLI prints its usage
// text and shutdown line to os.Stdout directly, calling Sync first.
var Stdout = newWriter(256)

type writer struct {
	q       *mpscqueue.Queue
	w       *bufio.Writer
	writeMu sync.Mutex
	startMu sync.Mutex
	started bool
	pending atomix.Int64 // lines enqueued but not yet written+flushed
}

func newWriter(capacity int) *writer {
	return &writer{
		q: mpscqueue.New(capacity),
		w: bufio.NewWriter(os.Stdout),
	}
}

// Write enqueues line for the background writer goroutine, starting it
// on first use. Safe for concurrent use by any number of stages.
func (s *writer) Write(line string) {
	s.startMu.Lock()
	if !s.started {
		s.started = true
		go s.run()
	}
	s.startMu.Unlock()

	s.pending.Add(1)
	backoff := iox.Backoff{}
	for s.q.Enqueue(line) != nil {
		backoff.Wait()
	}
}

// Sync blocks until every line enqueued via Write before this call has
// been written and flushed to the underlying stdout. A stage's worker
// only enqueues a line and returns; nothing else makes the orchestrator
// wait for the background writer goroutine to actually catch up, so a
// caller that prints its own line straight to os.Stdout right after
// every stage's WaitFinished (the CLI's shutdown message) would
// otherwise race the queued logger/typewriter output. Sync closes that
// gap without requiring the writer goroutine itself to block on anyone.
func (s *writer) Sync() {
	backoff := iox.Backoff{}
	for s.pending.Load() > 0 {
		backoff.Wait()
	}
}

// Exclusive runs fn with sole access to the underlying writer, blocking
// the background drain loop for the duration. The typewriter stage uses
// this to animate a line byte-by-byte without the logger stage's queued
// lines interleaving mid-animation.
func (s *writer) Exclusive(fn func(w *bufio.Writer)) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	fn(s.w)
}

func (s *writer) run() {
	backoff := iox.Backoff{}
	for {
		line, ok := s.q.Dequeue()
		if !ok {
			backoff.Wait()
			continue
		}
		backoff.Reset()
		s.writeMu.Lock()
		s.w.WriteString(line)
		s.w.WriteByte('\n')
		s.w.Flush()
		s.writeMu.Unlock()
		s.pending.Add(-1)
	}
}

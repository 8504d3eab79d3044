// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pipeline provides a bounded, multi-stage string-processing
// pipeline: independently scheduled stages, each draining its own bounded
// queue, applying a transform, and forwarding the result downstream.
//
// # Quick Start
//
// Build a small pipeline from in-process stages and feed it from stdin:
//
//	loader := stages.DefaultRegistry()
//	p, err := pipeline.New(loader, 64, "uppercaser", "rotator", "logger")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Teardown()
//	if err := p.Attach(); err != nil {
//	    log.Fatal(err)
//	}
//	p.Feed(os.Stdin)
//	p.Drain()
//
// # Shutdown
//
// An `<END>` sentinel travels stage-to-stage exactly once. Each stage's
// worker goroutine forwards it at most once (enforced by a check-and-set
// under the stage's state mutex), then signals its own queue finished and exits. The
// orchestrator waits on each stage's termination latch in order before
// tearing the pipeline down.
//
// # Ownership
//
// Go strings need no explicit free, but the pointer-identity contract the
// original plugin ABI relies on (same pointer in => no allocation,
// different pointer => fresh allocation) is preserved through a tagged
// [Result] so callers can still reason about per-item allocation counts.
package pipeline

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stages

import (
	"code.hybscloud.com/pipeline"
	"code.hybscloud.com/pipeline/internal/sink"
)

// Log returns the "logger" transform: a side-effecting passthrough that
// writes "[logger] <input>" to stdout. Grounded on
// original_source/plugins/logger.c. Two distinct stages both running
// the logger transform are separate goroutines, so the write goes
// through [sink.Stdout] rather than directly to os.Stdout. The sentinel
// produces no output.
func Log(input string) pipeline.Result {
	if input == pipeline.Sentinel {
		return pipeline.Passthrough(input)
	}
	sink.Stdout.Write("[logger] " + input)
	return pipeline.Passthrough(input)
}

// Sync blocks until every line queued by a Log or Typewriter transform
// so far has actually been written to stdout. The worker protocol only
// guarantees a stage has forwarded its sentinel and exited by the time
// WaitFinished returns; it says nothing about the asynchronous stdout
// sink those two transforms share, so a caller that prints its own
// message straight to os.Stdout right after every stage drains (the CLI's
// shutdown line) must call Sync first or risk printing ahead of queued
// logger/typewriter output.
func Sync() {
	sink.Stdout.Sync()
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stages

import (
	"bufio"
	"time"

	"code.hybscloud.com/pipeline"
	"code.hybscloud.com/pipeline/internal/sink"
)

const typewriterDelay = 100 * time.Millisecond

// Typewriter returns the "typewriter" transform: a side-effecting
// passthrough that emits "[typewriter] <input>\n" to stdout one byte at a
// time, flushing and sleeping 100ms between bytes. Grounded on
// original_source/plugins/typewriter.c. The sentinel produces no output.
func Typewriter(input string) pipeline.Result {
	if input == pipeline.Sentinel {
		return pipeline.Passthrough(input)
	}

	sink.Stdout.Exclusive(func(w *bufio.Writer) {
		for _, b := range []byte("[typewriter] ") {
			w.WriteByte(b)
			w.Flush()
			time.Sleep(typewriterDelay)
		}
		for i := 0; i < len(input); i++ {
			w.WriteByte(input[i])
			w.Flush()
			time.Sleep(typewriterDelay)
		}
		w.WriteByte('\n')
		w.Flush()
	})

	return pipeline.Passthrough(input)
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stages

import "code.hybscloud.com/pipeline"

// Flip returns the "flipper" transform: byte-reverses its input.
// Grounded on original_source/plugins/flipper.c: the sentinel, empty, and
// single-byte inputs are passthrough.
func Flip(input string) pipeline.Result {
	if input == pipeline.Sentinel || len(input) <= 1 {
		return pipeline.Passthrough(input)
	}
	n := len(input)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = input[n-1-i]
	}
	return pipeline.Owned(string(out))
}

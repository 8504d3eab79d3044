// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stages

import "code.hybscloud.com/pipeline"

// Expand returns the "expander" transform: inserts a single space between
// every adjacent byte pair, producing length 2n-1 for an n-byte input.
// Grounded on original_source/plugins/expander.c: the sentinel, empty,
// and single-byte inputs are passthrough.
func Expand(input string) pipeline.Result {
	if input == pipeline.Sentinel || len(input) <= 1 {
		return pipeline.Passthrough(input)
	}
	n := len(input)
	out := make([]byte, 2*n-1)
	j := 0
	for i := 0; i < n; i++ {
		out[j] = input[i]
		j++
		if i+1 < n {
			out[j] = ' '
			j++
		}
	}
	return pipeline.Owned(string(out))
}

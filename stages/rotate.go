// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stages

import "code.hybscloud.com/pipeline"

// Rotate returns the "rotator" transform: moves the last byte to the
// front. Grounded on original_source/plugins/rotator.c: the sentinel,
// empty, and single-byte inputs are passthrough.
func Rotate(input string) pipeline.Result {
	if input == pipeline.Sentinel || len(input) <= 1 {
		return pipeline.Passthrough(input)
	}
	n := len(input)
	out := make([]byte, n)
	out[0] = input[n-1]
	copy(out[1:], input[:n-1])
	return pipeline.Owned(string(out))
}

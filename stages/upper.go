// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stages

import "code.hybscloud.com/pipeline"

// Upper returns the "uppercaser" transform: an ASCII, locale-independent
// uppercase mapping. Grounded on original_source/plugins/uppercaser.c:
// the sentinel and empty string are passthrough, every other input gets
// a freshly allocated uppercase copy with each byte mapped through the C
// locale's toupper (a-z only; other bytes pass through unchanged).
func Upper(input string) pipeline.Result {
	if input == pipeline.Sentinel || input == "" {
		return pipeline.Passthrough(input)
	}
	out := make([]byte, len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return pipeline.Owned(string(out))
}

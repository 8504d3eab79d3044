// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package modload_test

import (
	"testing"

	"code.hybscloud.com/pipeline/modload"
)

func TestLoaderFailsCleanlyWhenNoSharedObjectExists(t *testing.T) {
	l := modload.NewLoader()
	if _, _, err := l.Load("definitely-not-a-real-stage"); err == nil {
		t.Fatal("Load: want error when no .so is found on any candidate path")
	}
}

func TestLoaderZeroValuePathsFailsCleanlyWhenNoSharedObjectExists(t *testing.T) {
	l := &modload.Loader{}
	if _, _, err := l.Load("definitely-not-a-real-stage"); err == nil {
		t.Fatal("Load: want error for a nonexistent stage even with the zero-value Paths")
	}
}

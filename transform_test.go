// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline_test

import (
	"testing"

	"code.hybscloud.com/pipeline"
)

func TestResultPassthrough(t *testing.T) {
	r := pipeline.Passthrough("hello")
	if !r.Ok() {
		t.Fatal("Ok: want true")
	}
	if !r.IsPassthrough() {
		t.Fatal("IsPassthrough: want true")
	}
	if r.String() != "hello" {
		t.Fatalf("String: got %q, want %q", r.String(), "hello")
	}
}

func TestResultOwned(t *testing.T) {
	r := pipeline.Owned("HELLO")
	if !r.Ok() {
		t.Fatal("Ok: want true")
	}
	if r.IsPassthrough() {
		t.Fatal("IsPassthrough: want false for an Owned result")
	}
	if r.String() != "HELLO" {
		t.Fatalf("String: got %q, want %q", r.String(), "HELLO")
	}
}

func TestResultFailed(t *testing.T) {
	r := pipeline.Failed()
	if r.Ok() {
		t.Fatal("Ok: want false for a Failed result")
	}
}

func TestSentinelValue(t *testing.T) {
	if pipeline.Sentinel != "<END>" {
		t.Fatalf("Sentinel: got %q, want %q", pipeline.Sentinel, "<END>")
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline_test

import (
	"errors"
	"strings"
	"testing"

	"code.hybscloud.com/pipeline"
)

type fakeLoader struct {
	transforms map[string]pipeline.Transform
}

func (f *fakeLoader) Load(name string) (pipeline.Capabilities, func(), error) {
	tr, ok := f.transforms[name]
	if !ok {
		return nil, nil, errors.New("fakeLoader: unknown stage")
	}
	st, err := pipeline.NewStage(name, tr)
	if err != nil {
		return nil, nil, err
	}
	return st, func() {}, nil
}

func identity(s string) pipeline.Result { return pipeline.Passthrough(s) }

func upper(s string) pipeline.Result {
	if s == pipeline.Sentinel || s == "" {
		return pipeline.Passthrough(s)
	}
	return pipeline.Owned(strings.ToUpper(s))
}

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	l := &fakeLoader{transforms: map[string]pipeline.Transform{"a": identity}}
	_, err := pipeline.New(l, 0, "a")
	var pe *pipeline.Error
	if !errors.As(err, &pe) || pe.Code != pipeline.ExitLoadFailure {
		t.Fatalf("New(capacity=0): got %v, want ExitLoadFailure", err)
	}
}

func TestNewRejectsNoStages(t *testing.T) {
	l := &fakeLoader{transforms: map[string]pipeline.Transform{}}
	_, err := pipeline.New(l, 4)
	var pe *pipeline.Error
	if !errors.As(err, &pe) || pe.Code != pipeline.ExitLoadFailure {
		t.Fatalf("New(no stages): got %v, want ExitLoadFailure", err)
	}
}

func TestNewRejectsDuplicateStageNames(t *testing.T) {
	l := &fakeLoader{transforms: map[string]pipeline.Transform{"a": identity}}
	_, err := pipeline.New(l, 4, "a", "a")
	var pe *pipeline.Error
	if !errors.As(err, &pe) || pe.Code != pipeline.ExitLoadFailure {
		t.Fatalf("New(duplicate names): got %v, want ExitLoadFailure", err)
	}
	var dup *pipeline.DuplicateStageError
	if !errors.As(err, &dup) {
		t.Fatalf("New(duplicate names): error chain missing *DuplicateStageError: %v", err)
	}
}

func TestNewUnknownStagePropagatesLoadFailure(t *testing.T) {
	l := &fakeLoader{transforms: map[string]pipeline.Transform{"a": identity}}
	_, err := pipeline.New(l, 4, "a", "nosuch")
	var pe *pipeline.Error
	if !errors.As(err, &pe) || pe.Code != pipeline.ExitLoadFailure {
		t.Fatalf("New(unknown stage): got %v, want ExitLoadFailure", err)
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	l := &fakeLoader{transforms: map[string]pipeline.Transform{
		"upper": upper,
		"id":    identity,
	}}

	p, err := pipeline.New(l, 4, "upper", "id")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Capacity() != 4 {
		t.Fatalf("Capacity: got %d, want 4", p.Capacity())
	}
	if err := p.Attach(); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	p.Feed(strings.NewReader("hello\nworld\n"))
	p.Drain()
	p.Teardown()
}

func TestPipelineFeedSynthesizesSentinelOnEOF(t *testing.T) {
	l := &fakeLoader{transforms: map[string]pipeline.Transform{"id": identity}}
	p, err := pipeline.New(l, 2, "id")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := p.Attach(); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	// No trailing "<END>" line in the input; Feed must still terminate
	// and Drain must still return.
	p.Feed(strings.NewReader("only line, no newline"))
	p.Drain()
	p.Teardown()
}

func TestPipelineFeedHonorsExplicitSentinel(t *testing.T) {
	l := &fakeLoader{transforms: map[string]pipeline.Transform{"id": identity}}
	p, err := pipeline.New(l, 2, "id")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := p.Attach(); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	p.Feed(strings.NewReader("a\n<END>\nb\n"))
	p.Drain()
	p.Teardown()
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package modload is the Module-Loader Facade's fallback provider: it
// resolves a stage name to a platform shared object built with
// `go build -buildmode=plugin`, using Go's standard-library plugin
// package as the direct analogue of the original SDK's dlopen/dlsym pair.
//
// Resolution order matches original_source/plugin_loader.c: try
// "output/<name>.so" first, then "./<name>.so".
package modload

import (
	"fmt"
	"plugin"

	"code.hybscloud.com/pipeline"
)

// Required symbol names a stage plugin must export, the Go equivalents of
// plugin_init / plugin_fini / plugin_place_work / plugin_attach /
// plugin_wait_finished from original_source/plugin_loader.h.
const (
	symInit         = "StageInit"
	symFini         = "StageFini"
	symPlaceWork    = "PlaceWork"
	symAttach       = "Attach"
	symWaitFinished = "WaitFinished"
)

// Loader resolves stage names to Go plugins (.so files built with
// -buildmode=plugin).
type Loader struct {
	// Paths is consulted in order for each candidate filename; defaults
	// to {"output", "."} when nil, matching original_source's two-path
	// fallback.
	Paths []string
}

// NewLoader returns a Loader using the default candidate directories.
func NewLoader() *Loader {
	return &Loader{Paths: []string{"output", "."}}
}

// Load implements [pipeline.Loader].
func (l *Loader) Load(name string) (pipeline.Capabilities, func(), error) {
	paths := l.Paths
	if paths == nil {
		paths = []string{"output", "."}
	}

	var (
		p       *plugin.Plugin
		lastErr error
	)
	for _, dir := range paths {
		path := fmt.Sprintf("%s/%s.so", dir, name)
		loaded, err := plugin.Open(path)
		if err == nil {
			p = loaded
			break
		}
		lastErr = err
	}
	if p == nil {
		return nil, nil, fmt.Errorf("modload: open %q: %w", name, lastErr)
	}

	caps, err := adapt(name, p)
	if err != nil {
		return nil, nil, err
	}
	// plugin.Plugin has no Close/unload; once mapped into the process it
	// stays mapped for the process lifetime. release is a no-op, which
	// matches reality rather than pretending to support unmap.
	return caps, func() {}, nil
}

// capabilities adapts five resolved plugin.Symbols into the
// pipeline.Capabilities interface.
type capabilities struct {
	name           string
	initFn         func(int) error
	finiFn         func() error
	placeWorkFn    func(string) error
	attachFn       func(pipeline.Hook)
	waitFinishedFn func() error
}

func (c *capabilities) Name() string            { return c.name }
func (c *capabilities) Init(capacity int) error { return c.initFn(capacity) }
func (c *capabilities) PlaceWork(s string) error { return c.placeWorkFn(s) }
func (c *capabilities) Attach(hook pipeline.Hook) { c.attachFn(hook) }
func (c *capabilities) WaitFinished() error { return c.waitFinishedFn() }
func (c *capabilities) Fini() error { return c.finiFn() }

func adapt(name string, p *plugin.Plugin) (pipeline.Capabilities, error) {
	initSym, err := p.Lookup(symInit)
	if err != nil {
		return nil, &pipeline.SymbolMissingError{Stage: name, Symbol: symInit}
	}
	initFn, ok := initSym.(func(int) error)
	if !ok {
		return nil, &pipeline.SymbolMissingError{Stage: name, Symbol: symInit}
	}

	finiSym, err := p.Lookup(symFini)
	if err != nil {
		return nil, &pipeline.SymbolMissingError{Stage: name, Symbol: symFini}
	}
	finiFn, ok := finiSym.(func() error)
	if !ok {
		return nil, &pipeline.SymbolMissingError{Stage: name, Symbol: symFini}
	}

	placeSym, err := p.Lookup(symPlaceWork)
	if err != nil {
		return nil, &pipeline.SymbolMissingError{Stage: name, Symbol: symPlaceWork}
	}
	placeFn, ok := placeSym.(func(string) error)
	if !ok {
		return nil, &pipeline.SymbolMissingError{Stage: name, Symbol: symPlaceWork}
	}

	attachSym, err := p.Lookup(symAttach)
	if err != nil {
		return nil, &pipeline.SymbolMissingError{Stage: name, Symbol: symAttach}
	}
	attachFn, ok := attachSym.(func(pipeline.Hook))
	if !ok {
		return nil, &pipeline.SymbolMissingError{Stage: name, Symbol: symAttach}
	}

	waitSym, err := p.Lookup(symWaitFinished)
	if err != nil {
		return nil, &pipeline.SymbolMissingError{Stage: name, Symbol: symWaitFinished}
	}
	waitFn, ok := waitSym.(func() error)
	if !ok {
		return nil, &pipeline.SymbolMissingError{Stage: name, Symbol: symWaitFinished}
	}

	return &capabilities{
		name:           name,
		initFn:         initFn,
		finiFn:         finiFn,
		placeWorkFn:    placeFn,
		attachFn:       attachFn,
		waitFinishedFn: waitFn,
	}, nil
}

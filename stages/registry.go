// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stages provides the six reference transforms from the Transform
// Contract (upper, flip, rotate-right-1, expand, log, typewriter) and an
// in-process [Registry] that satisfies [pipeline.Loader] without requiring
// a platform shared object on disk — the "test double... backed by
// statically-linked in-process stages" the Module-Loader Facade's spec
// explicitly allows, promoted here to the default provider.
package stages

import (
	"fmt"

	"code.hybscloud.com/pipeline"
)

// Registry resolves stage names to constructors for in-process [pipeline.Stage]
// values. It implements [pipeline.Loader].
type Registry struct {
	ctors map[string]func() pipeline.Transform
}

// NewRegistry returns an empty Registry. Use [DefaultRegistry] for one
// pre-seeded with the six reference transforms.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]func() pipeline.Transform)}
}

// DefaultRegistry returns a Registry seeded with the six reference
// transforms under the names the original plugin SDK used for its shared
// objects: "uppercaser", "flipper", "rotator", "expander", "logger",
// "typewriter".
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("uppercaser", func() pipeline.Transform { return Upper })
	r.Register("flipper", func() pipeline.Transform { return Flip })
	r.Register("rotator", func() pipeline.Transform { return Rotate })
	r.Register("expander", func() pipeline.Transform { return Expand })
	r.Register("logger", func() pipeline.Transform { return Log })
	r.Register("typewriter", func() pipeline.Transform { return Typewriter })
	return r
}

// Register adds or replaces the constructor for name. factory is called
// once per Load, so stateless transforms may return the same function
// value every time (as the six reference transforms do).
func (r *Registry) Register(name string, factory func() pipeline.Transform) {
	r.ctors[name] = factory
}

// Load implements [pipeline.Loader] by constructing a fresh [*pipeline.Stage]
// for name. The release function is a no-op: in-process stages own no
// external resource to unload.
func (r *Registry) Load(name string) (pipeline.Capabilities, func(), error) {
	factory, ok := r.ctors[name]
	if !ok {
		return nil, nil, fmt.Errorf("stages: unknown plugin %q", name)
	}
	st, err := pipeline.NewStage(name, factory())
	if err != nil {
		return nil, nil, err
	}
	return st, func() {}, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.ctors[name]
	return ok
}

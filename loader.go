// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

// Capabilities is the five-operation bundle a loaded stage module exports,
// the Go shape of the original plugin SDK's five function pointers
// (plugin_init, plugin_fini, plugin_place_work, plugin_attach,
// plugin_wait_finished). [*Stage] satisfies this interface directly, so
// in-process stages need no adapter.
type Capabilities interface {
	Name() string
	Init(capacity int) error
	PlaceWork(s string) error
	Attach(hook Hook)
	WaitFinished() error
	Fini() error
}

// Loader is the Module-Loader Facade: it resolves a stage name to a
// Capabilities bundle and an opaque release function. The core pipeline
// treats Loader as a pluggable interface; a test double may back it with
// statically-linked in-process stages, as the [stages] package's Registry
// does, or it may resolve a real platform shared object, as [modload]'s
// Loader does.
type Loader interface {
	// Load resolves name to a capability bundle. The returned release
	// function must be called exactly once, after the stage's Fini has
	// returned, to unload any underlying module.
	Load(name string) (caps Capabilities, release func(), err error)
}

var _ Capabilities = (*Stage)(nil)

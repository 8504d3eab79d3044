// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package loaders composes multiple [pipeline.Loader] providers into one,
// trying each in order. This realizes the Module-Loader Facade's
// resolution order: an in-process [stages.Registry] stands in for the
// first filesystem candidate ("built-in" rather than "output/<name>.so"),
// falling back to [modload.Loader] for anything not built in.
package loaders

import (
	"errors"
	"fmt"
	"log/slog"

	"code.hybscloud.com/pipeline"
)

// Chain tries each Loader in order and returns the first successful
// resolution. If every Loader fails, Chain returns an error wrapping
// every candidate's failure, joined with [errors.Join].
type Chain struct {
	loaders []pipeline.Loader
}

// NewChain returns a Chain over the given loaders, tried in order.
func NewChain(loaders ...pipeline.Loader) *Chain {
	return &Chain{loaders: loaders}
}

// Load implements [pipeline.Loader].
func (c *Chain) Load(name string) (pipeline.Capabilities, func(), error) {
	var errs []error
	for i, l := range c.loaders {
		caps, release, err := l.Load(name)
		if err == nil {
			return caps, release, nil
		}
		slog.Debug("loader candidate did not resolve stage", "stage", name, "candidate", i, "err", err)
		errs = append(errs, err)
	}
	return nil, nil, fmt.Errorf("loaders: no provider resolved %q: %w", name, errors.Join(errs...))
}

// SPDX-License-Identifier: EPL-2.0

package loader

import "errors"

var (
	ErrQueueFull   = errors.New("load queue is full")
	ErrEmptyPath   = errors.New("empty sample path")
	ErrNoSample    = errors.New("decoder returned no sample")
	ErrMissingDeps = errors.New("loader needs shared state, params and a decode function")
)

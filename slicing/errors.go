// SPDX-License-Identifier: EPL-2.0

package slicing

import "errors"

var (
	ErrUnknownAlgorithm = errors.New("unknown slice algorithm")
)

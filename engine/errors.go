// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var ErrMissingState = errors.New("instrument needs shared state and params")
